package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/desertthunder/popmix/internal/models"
	"github.com/desertthunder/popmix/internal/shared"
)

// CatalogRepository reads tracks from the Lollypop collection database.
//
// It never writes; callers open the database with [shared.ReadOnly].
type CatalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new CatalogRepository with the given database connection
func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListTracks returns one [models.Track] per (track, artist, album) join row, ordered by track ID.
func (r *CatalogRepository) ListTracks(ctx context.Context) ([]models.Track, error) {
	query := `
		SELECT tracks.id, tracks.name, tracks.uri, artists.name, albums.name
		FROM tracks
		JOIN track_artists ON track_artists.track_id = tracks.id
		JOIN artists ON track_artists.artist_id = artists.id
		JOIN albums ON tracks.album_id = albums.id
		ORDER BY tracks.id, artists.id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks: %w", err)
	}
	defer rows.Close()

	var tracks []models.Track
	for rows.Next() {
		var track models.Track
		if err := rows.Scan(&track.ID, &track.Name, &track.URI, &track.Artist, &track.Album); err != nil {
			return nil, fmt.Errorf("failed to scan track: %w", err)
		}
		tracks = append(tracks, track)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return tracks, nil
}

// LoadCatalog opens the catalog at path read-only, reads every track and closes the connection.
//
// Any failure means the catalog is unusable and is reported as [shared.ErrStoreUnavailable].
func LoadCatalog(ctx context.Context, driver, path string) ([]models.Track, error) {
	db, err := shared.OpenExisting(driver, path, shared.ReadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer db.Close()

	tracks, err := NewCatalogRepository(db).ListTracks(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrStoreUnavailable, err)
	}
	return tracks, nil
}
