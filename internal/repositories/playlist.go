package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/popmix/internal/models"
	"github.com/desertthunder/popmix/internal/shared"
)

// mtimeLayouts are the textual forms of playlists.mtime; Lollypop itself may also store epoch seconds.
var mtimeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z",
}

// PlaylistStore reads and writes the Lollypop playlist database.
//
// Every operation opens its own connection and closes it before returning, on success and failure alike.
type PlaylistStore struct {
	driver string
	path   string
	now    func() time.Time
	logger *log.Logger
}

// NewPlaylistStore creates a PlaylistStore for the database file at path.
//
// The file must exist; the store never creates it.
func NewPlaylistStore(driver, path string, logger *log.Logger) *PlaylistStore {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &PlaylistStore{driver: driver, path: path, now: time.Now, logger: logger}
}

// SetClock replaces the clock used for the collision suffix.
func (s *PlaylistStore) SetClock(now func() time.Time) {
	s.now = now
}

// ListPlaylists returns every playlist ordered by ID.
func (s *PlaylistStore) ListPlaylists(ctx context.Context) ([]models.Playlist, error) {
	db, err := shared.OpenExisting(s.driver, s.path, shared.ReadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to open playlist store: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, "SELECT id, name, mtime FROM playlists ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query playlists: %v", shared.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var playlists []models.Playlist
	for rows.Next() {
		var (
			playlist models.Playlist
			mtime    sql.NullString
		)
		if err := rows.Scan(&playlist.ID, &playlist.Name, &mtime); err != nil {
			return nil, fmt.Errorf("failed to scan playlist: %w", err)
		}
		playlist.MTime = parseMTime(mtime)
		playlists = append(playlists, playlist)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return playlists, nil
}

// Entries returns the track URIs stored for a playlist.
func (s *PlaylistStore) Entries(ctx context.Context, playlistID int64) ([]string, error) {
	db, err := shared.OpenExisting(s.driver, s.path, shared.ReadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to open playlist store: %w", err)
	}
	defer db.Close()

	var exists bool
	if err := db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM playlists WHERE id = ?)", playlistID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("%w: failed to check playlist: %v", shared.ErrStoreUnavailable, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %d", shared.ErrPlaylistNotFound, playlistID)
	}

	rows, err := db.QueryContext(ctx, "SELECT uri FROM tracks WHERE playlist_id = ? ORDER BY rowid", playlistID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query entries: %v", shared.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	uris := []string{}
	for rows.Next() {
		var uri string
		if err := rows.Scan(&uri); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		uris = append(uris, uri)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return uris, nil
}

// CreatePlaylist persists a playlist named name holding uris.
//
// When a playlist with the same name exists, "_<unix seconds>" is appended to the name.
// The name check, the playlist row and its entries are written in one transaction:
// on any error nothing is visible in the store.
func (s *PlaylistStore) CreatePlaylist(ctx context.Context, name string, uris []string) (models.CreateResult, error) {
	result := models.CreateResult{Requested: name}

	if strings.TrimSpace(name) == "" {
		return result, fmt.Errorf("%w: playlist name can't be empty", shared.ErrValidation)
	}
	if len(uris) == 0 {
		return result, fmt.Errorf("%w: playlist needs at least one track", shared.ErrValidation)
	}

	logger := shared.WithLogger(s.logger, "op", shared.GenerateID(), "playlist", name)

	db, err := shared.OpenExisting(s.driver, s.path, shared.ReadWrite)
	if err != nil {
		return result, fmt.Errorf("failed to open playlist store: %w", err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("%w: failed to begin transaction: %v", shared.ErrPersistence, err)
	}
	defer tx.Rollback()

	resolved, err := s.resolveName(ctx, tx, name)
	if err != nil {
		return result, err
	}
	if resolved != name {
		logger.Warn("playlist already exists", "renamed", resolved)
	}

	res, err := tx.ExecContext(ctx, "INSERT INTO playlists (name, mtime) VALUES (?, current_timestamp)", resolved)
	if err != nil {
		return result, fmt.Errorf("%w: failed to insert playlist: %v", shared.ErrPersistence, err)
	}

	id, err := res.LastInsertId()
	if err != nil || id == 0 {
		return result, fmt.Errorf("%w: no row id for new playlist: %v", shared.ErrPersistence, err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO tracks (playlist_id, uri) VALUES (?, ?)")
	if err != nil {
		return result, fmt.Errorf("%w: failed to prepare entry insert: %v", shared.ErrPersistence, err)
	}
	defer stmt.Close()

	for _, uri := range uris {
		if _, err := stmt.ExecContext(ctx, id, uri); err != nil {
			return result, fmt.Errorf("%w: failed to insert entry %s: %v", shared.ErrPersistence, uri, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return result, fmt.Errorf("%w: failed to commit playlist: %v", shared.ErrPersistence, err)
	}

	result.ID = id
	result.Name = resolved
	result.Tracks = len(uris)
	logger.Info("playlist created", "id", id, "name", resolved, "tracks", len(uris))

	return result, nil
}

// resolveName returns name, or name with a timestamp suffix when it is already taken.
//
// A suffixed name that is itself taken gets a counter appended.
func (s *PlaylistStore) resolveName(ctx context.Context, tx *sql.Tx, name string) (string, error) {
	taken, err := playlistNames(ctx, tx)
	if err != nil {
		return "", err
	}
	if !taken[name] {
		return name, nil
	}

	base := fmt.Sprintf("%s_%d", name, s.now().Unix())
	candidate := base
	for n := 2; taken[candidate]; n++ {
		candidate = fmt.Sprintf("%s_%d", base, n)
	}
	return candidate, nil
}

func playlistNames(ctx context.Context, tx *sql.Tx) (map[string]bool, error) {
	rows, err := tx.QueryContext(ctx, "SELECT name FROM playlists")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query playlist names: %v", shared.ErrPersistence, err)
	}
	defer rows.Close()

	names := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan playlist name: %w", err)
		}
		names[name] = true
	}
	return names, rows.Err()
}

func parseMTime(v sql.NullString) time.Time {
	if !v.Valid {
		return time.Time{}
	}
	if secs, err := strconv.ParseInt(v.String, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC()
	}
	for _, layout := range mtimeLayouts {
		if t, err := time.Parse(layout, v.String); err == nil {
			return t
		}
	}
	return time.Time{}
}
