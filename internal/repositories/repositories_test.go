package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/desertthunder/popmix/internal/models"
	"github.com/desertthunder/popmix/internal/shared"
	tu "github.com/desertthunder/popmix/internal/testing"
)

var drivers = []string{shared.DriverCGO, shared.DriverPure}

func TestCatalogRepository(t *testing.T) {
	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			t.Run("ListTracks", func(t *testing.T) {
				want := tu.SampleTracks(5)
				path := tu.NewCatalog(t, driver, want)

				got, err := LoadCatalog(context.Background(), driver, path)
				if err != nil {
					t.Fatalf("failed to load catalog: %v", err)
				}

				if len(got) != len(want) {
					t.Fatalf("expected %d tracks, got %d", len(want), len(got))
				}

				for i, track := range got {
					if track != want[i] {
						t.Errorf("track %d = %+v, want %+v", i, track, want[i])
					}
					if track.Name == "" || track.URI == "" || track.Artist == "" || track.Album == "" {
						t.Errorf("track %d has empty fields: %+v", i, track)
					}
				}
			})

			t.Run("one row per artist", func(t *testing.T) {
				tracks := []models.Track{
					{ID: 1, Name: "Duet", URI: "file:///duet.ogg", Artist: "Alice", Album: "Together"},
					{ID: 1, Name: "Duet", URI: "file:///duet.ogg", Artist: "Bob", Album: "Together"},
					{ID: 2, Name: "Solo", URI: "file:///solo.ogg", Artist: "Alice", Album: "Alone"},
				}
				path := tu.NewCatalog(t, driver, tracks)

				got, err := LoadCatalog(context.Background(), driver, path)
				if err != nil {
					t.Fatalf("failed to load catalog: %v", err)
				}

				if len(got) != 3 {
					t.Fatalf("expected 3 join rows, got %d", len(got))
				}
				if got[0].ID != 1 || got[1].ID != 1 || got[0].Artist == got[1].Artist {
					t.Errorf("expected two rows for track 1 with distinct artists, got %+v", got[:2])
				}
			})

			t.Run("tracks without artist are skipped", func(t *testing.T) {
				path := tu.NewCatalog(t, driver, tu.SampleTracks(2))

				db, err := shared.NewDatabase(driver, path)
				if err != nil {
					t.Fatalf("failed to open catalog: %v", err)
				}
				if _, err := db.Exec("INSERT INTO tracks (id, name, uri, album_id) VALUES (99, 'Orphan', 'file:///orphan', 1)"); err != nil {
					t.Fatalf("failed to insert orphan: %v", err)
				}
				db.Close()

				got, err := LoadCatalog(context.Background(), driver, path)
				if err != nil {
					t.Fatalf("failed to load catalog: %v", err)
				}
				if len(got) != 2 {
					t.Errorf("expected 2 tracks, got %d", len(got))
				}
			})

			t.Run("empty catalog", func(t *testing.T) {
				path := tu.NewCatalog(t, driver, nil)

				got, err := LoadCatalog(context.Background(), driver, path)
				if err != nil {
					t.Fatalf("failed to load catalog: %v", err)
				}
				if len(got) != 0 {
					t.Errorf("expected no tracks, got %d", len(got))
				}
			})
		})
	}
}

func TestCatalogRepositoryErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadCatalog(context.Background(), shared.DriverCGO, filepath.Join(t.TempDir(), "lollypop.db"))
		if !errors.Is(err, shared.ErrStoreUnavailable) {
			t.Fatalf("expected ErrStoreUnavailable, got %v", err)
		}
	})

	t.Run("missing tables", func(t *testing.T) {
		path := tu.NewPlaylistDB(t, shared.DriverCGO)

		_, err := LoadCatalog(context.Background(), shared.DriverCGO, path)
		if !errors.Is(err, shared.ErrStoreUnavailable) {
			t.Fatalf("expected ErrStoreUnavailable, got %v", err)
		}
	})
}

func TestPlaylistStore(t *testing.T) {
	ctx := context.Background()
	fixed := time.Unix(1700000000, 0)

	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			t.Run("Create & Entries round trip", func(t *testing.T) {
				store := NewPlaylistStore(driver, tu.NewPlaylistDB(t, driver), nil)

				result, err := store.CreatePlaylist(ctx, "Road Trip", []string{"file://a", "file://b"})
				if err != nil {
					t.Fatalf("failed to create playlist: %v", err)
				}

				if result.ID == 0 {
					t.Error("expected a row id")
				}
				if result.Name != "Road Trip" || result.Renamed() {
					t.Errorf("expected name Road Trip without rename, got %+v", result)
				}
				if result.Tracks != 2 {
					t.Errorf("expected 2 tracks, got %d", result.Tracks)
				}

				uris, err := store.Entries(ctx, result.ID)
				if err != nil {
					t.Fatalf("failed to read entries: %v", err)
				}
				slices.Sort(uris)
				if !slices.Equal(uris, []string{"file://a", "file://b"}) {
					t.Errorf("expected entries [file://a file://b], got %v", uris)
				}
			})

			t.Run("ListPlaylists", func(t *testing.T) {
				store := NewPlaylistStore(driver, tu.NewPlaylistDB(t, driver), nil)

				playlists, err := store.ListPlaylists(ctx)
				if err != nil {
					t.Fatalf("failed to list playlists: %v", err)
				}
				if len(playlists) != 0 {
					t.Errorf("expected empty store, got %d playlists", len(playlists))
				}

				for _, name := range []string{"One", "Two"} {
					if _, err := store.CreatePlaylist(ctx, name, []string{"file://x"}); err != nil {
						t.Fatalf("failed to create %s: %v", name, err)
					}
				}

				playlists, err = store.ListPlaylists(ctx)
				if err != nil {
					t.Fatalf("failed to list playlists: %v", err)
				}
				if len(playlists) != 2 {
					t.Fatalf("expected 2 playlists, got %d", len(playlists))
				}
				if playlists[0].Name != "One" || playlists[1].Name != "Two" {
					t.Errorf("unexpected playlists %+v", playlists)
				}
				if playlists[0].MTime.IsZero() {
					t.Error("expected store-generated mtime")
				}
			})

			t.Run("name collision appends timestamp", func(t *testing.T) {
				store := NewPlaylistStore(driver, tu.NewPlaylistDB(t, driver), nil)
				store.SetClock(func() time.Time { return fixed })

				first, err := store.CreatePlaylist(ctx, "X", []string{"file://first"})
				if err != nil {
					t.Fatalf("failed to create first playlist: %v", err)
				}
				second, err := store.CreatePlaylist(ctx, "X", []string{"file://second-a", "file://second-b"})
				if err != nil {
					t.Fatalf("failed to create second playlist: %v", err)
				}

				if first.Name != "X" {
					t.Errorf("expected first name X, got %s", first.Name)
				}
				wantName := fmt.Sprintf("X_%d", fixed.Unix())
				if second.Name != wantName || !second.Renamed() {
					t.Errorf("expected second name %s, got %+v", wantName, second)
				}

				playlists, err := store.ListPlaylists(ctx)
				if err != nil {
					t.Fatalf("failed to list playlists: %v", err)
				}
				if len(playlists) != 2 {
					t.Fatalf("expected 2 playlists, got %d", len(playlists))
				}

				firstURIs, _ := store.Entries(ctx, first.ID)
				secondURIs, _ := store.Entries(ctx, second.ID)
				slices.Sort(secondURIs)
				if !slices.Equal(firstURIs, []string{"file://first"}) {
					t.Errorf("first playlist entries = %v", firstURIs)
				}
				if !slices.Equal(secondURIs, []string{"file://second-a", "file://second-b"}) {
					t.Errorf("second playlist entries = %v", secondURIs)
				}
			})

			t.Run("repeated collision within a second stays unique", func(t *testing.T) {
				store := NewPlaylistStore(driver, tu.NewPlaylistDB(t, driver), nil)
				store.SetClock(func() time.Time { return fixed })

				seen := map[string]bool{}
				for range 3 {
					result, err := store.CreatePlaylist(ctx, "Mix", []string{"file://m"})
					if err != nil {
						t.Fatalf("failed to create playlist: %v", err)
					}
					if seen[result.Name] {
						t.Fatalf("duplicate playlist name %s", result.Name)
					}
					seen[result.Name] = true
				}
			})

			t.Run("quoted names are stored verbatim", func(t *testing.T) {
				store := NewPlaylistStore(driver, tu.NewPlaylistDB(t, driver), nil)
				name := `Rock 'n' Roll"); DROP TABLE playlists; --`

				result, err := store.CreatePlaylist(ctx, name, []string{"file://r"})
				if err != nil {
					t.Fatalf("failed to create playlist: %v", err)
				}

				playlists, err := store.ListPlaylists(ctx)
				if err != nil {
					t.Fatalf("failed to list playlists: %v", err)
				}
				if len(playlists) != 1 || playlists[0].Name != name || result.Name != name {
					t.Errorf("expected stored name %q, got %+v", name, playlists)
				}
			})
		})
	}
}

func TestPlaylistStoreErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing store", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "playlists.db")
		store := NewPlaylistStore(shared.DriverCGO, path, nil)

		_, err := store.CreatePlaylist(ctx, "X", []string{"file://a"})
		if !errors.Is(err, shared.ErrStoreUnavailable) {
			t.Fatalf("expected ErrStoreUnavailable, got %v", err)
		}

		if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
			t.Error("store file should not be created")
		}

		if _, err := store.ListPlaylists(ctx); !errors.Is(err, shared.ErrStoreUnavailable) {
			t.Errorf("expected ErrStoreUnavailable from ListPlaylists, got %v", err)
		}
	})

	t.Run("validation happens before opening", func(t *testing.T) {
		store := NewPlaylistStore(shared.DriverCGO, filepath.Join(t.TempDir(), "missing.db"), nil)

		if _, err := store.CreatePlaylist(ctx, "  ", []string{"file://a"}); !errors.Is(err, shared.ErrValidation) {
			t.Errorf("expected ErrValidation for blank name, got %v", err)
		}
		if _, err := store.CreatePlaylist(ctx, "Valid", nil); !errors.Is(err, shared.ErrValidation) {
			t.Errorf("expected ErrValidation for empty uris, got %v", err)
		}
	})

	t.Run("failed entry insert leaves nothing behind", func(t *testing.T) {
		path := tu.NewPlaylistDB(t, shared.DriverCGO)

		db, err := shared.NewDatabase(shared.DriverCGO, path)
		if err != nil {
			t.Fatalf("failed to open store: %v", err)
		}
		if _, err := db.Exec("DROP TABLE tracks"); err != nil {
			t.Fatalf("failed to drop tracks: %v", err)
		}
		db.Close()

		store := NewPlaylistStore(shared.DriverCGO, path, nil)
		_, err = store.CreatePlaylist(ctx, "Broken", []string{"file://a"})
		if !errors.Is(err, shared.ErrPersistence) {
			t.Fatalf("expected ErrPersistence, got %v", err)
		}

		playlists, err := store.ListPlaylists(ctx)
		if err != nil {
			t.Fatalf("failed to list playlists: %v", err)
		}
		if len(playlists) != 0 {
			t.Errorf("expected rollback to remove the playlist row, got %+v", playlists)
		}
	})

	t.Run("Entries of unknown playlist", func(t *testing.T) {
		store := NewPlaylistStore(shared.DriverCGO, tu.NewPlaylistDB(t, shared.DriverCGO), nil)

		if _, err := store.Entries(ctx, 42); !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound, got %v", err)
		}
	})
}

func TestParseMTime(t *testing.T) {
	tc := []struct {
		name  string
		value string
		want  time.Time
	}{
		{name: "sqlite current_timestamp", value: "2024-03-01 10:20:30", want: time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC)},
		{name: "epoch seconds", value: "1700000000", want: time.Unix(1700000000, 0).UTC()},
		{name: "rfc3339", value: "2024-03-01T10:20:30Z", want: time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC)},
		{name: "garbage", value: "yesterday", want: time.Time{}},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := parseMTime(sql.NullString{String: tt.value, Valid: true})
			if !got.Equal(tt.want) {
				t.Errorf("parseMTime(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
