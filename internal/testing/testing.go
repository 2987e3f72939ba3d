// package testing contains shared testing utilities
package testing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/desertthunder/popmix/internal/models"
	"github.com/desertthunder/popmix/internal/shared"
)

// NewCatalog writes a Lollypop-shaped catalog database holding tracks and returns its path.
//
// Artists and albums are created by name; a track repeated with another artist gets a second track_artists row.
func NewCatalog(t *testing.T, driver string, tracks []models.Track) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lollypop.db")

	db, err := shared.NewDatabase(driver, path)
	if err != nil {
		t.Fatalf("failed to create catalog: %v", err)
	}
	defer db.Close()

	if err := shared.ApplySchema(db, shared.CatalogSchema); err != nil {
		t.Fatalf("failed to apply catalog schema: %v", err)
	}

	artists := map[string]int64{}
	albums := map[string]int64{}
	seen := map[int64]bool{}
	for _, tr := range tracks {
		artistID := lookupOrInsert(t, db, artists, "artists", tr.Artist)
		albumID := lookupOrInsert(t, db, albums, "albums", tr.Album)

		if !seen[tr.ID] {
			seen[tr.ID] = true
			if _, err := db.Exec("INSERT INTO tracks (id, name, uri, album_id) VALUES (?, ?, ?, ?)", tr.ID, tr.Name, tr.URI, albumID); err != nil {
				t.Fatalf("failed to insert track %d: %v", tr.ID, err)
			}
		}
		if _, err := db.Exec("INSERT INTO track_artists (track_id, artist_id) VALUES (?, ?)", tr.ID, artistID); err != nil {
			t.Fatalf("failed to link track %d: %v", tr.ID, err)
		}
	}

	return path
}

func lookupOrInsert(t *testing.T, db *sql.DB, ids map[string]int64, table, name string) int64 {
	t.Helper()
	if id, ok := ids[name]; ok {
		return id
	}
	res, err := db.Exec(fmt.Sprintf("INSERT INTO %s (name) VALUES (?)", table), name)
	if err != nil {
		t.Fatalf("failed to insert into %s: %v", table, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("failed to read %s id: %v", table, err)
	}
	ids[name] = id
	return id
}

// NewPlaylistDB creates an empty Lollypop playlist database and returns its path.
func NewPlaylistDB(t *testing.T, driver string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "playlists.db")

	db, err := shared.NewDatabase(driver, path)
	if err != nil {
		t.Fatalf("failed to create playlist store: %v", err)
	}
	defer db.Close()

	if err := shared.ApplySchema(db, shared.PlaylistsSchema); err != nil {
		t.Fatalf("failed to apply playlists schema: %v", err)
	}
	return path
}

// SampleTracks returns n distinct catalog rows: "Song i" by "Artist i%3" on "Album i%2".
func SampleTracks(n int) []models.Track {
	tracks := make([]models.Track, n)
	for i := range tracks {
		tracks[i] = models.Track{
			ID:     int64(i + 1),
			Name:   fmt.Sprintf("Song %02d", i+1),
			URI:    fmt.Sprintf("file:///music/%02d.flac", i+1),
			Artist: fmt.Sprintf("Artist %d", i%3),
			Album:  fmt.Sprintf("Album %d", i%2),
		}
	}
	return tracks
}

// CreateCall records one call to [StubPlaylistStore.CreatePlaylist].
type CreateCall struct {
	Name string
	URIs []string
}

// StubPlaylistStore is a test double for the playlist store that records calls.
type StubPlaylistStore struct {
	mu        sync.Mutex
	Calls     []CreateCall
	Playlists []models.Playlist
	Err       error
	Rename    string // when set, reported as the effective name
}

func (s *StubPlaylistStore) CreatePlaylist(ctx context.Context, name string, uris []string) (models.CreateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, CreateCall{Name: name, URIs: append([]string(nil), uris...)})
	if s.Err != nil {
		return models.CreateResult{Requested: name}, s.Err
	}
	effective := name
	if s.Rename != "" {
		effective = s.Rename
	}
	return models.CreateResult{ID: int64(len(s.Calls)), Name: effective, Requested: name, Tracks: len(uris)}, nil
}

func (s *StubPlaylistStore) ListPlaylists(ctx context.Context) ([]models.Playlist, error) {
	return s.Playlists, s.Err
}

// CallCount returns the number of CreatePlaylist calls.
func (s *StubPlaylistStore) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Calls)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
