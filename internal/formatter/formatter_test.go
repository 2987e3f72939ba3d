package formatter

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/popmix/internal/models"
	th "github.com/desertthunder/popmix/internal/testing"
)

func TestParseFormat(t *testing.T) {
	tc := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "", want: FormatText},
		{input: "text", want: FormatText},
		{input: "csv", want: FormatCSV},
		{input: "json", want: FormatJSON},
		{input: "markdown", wantErr: true},
		{input: "CSV", wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTracks(t *testing.T) {
	tracks := []models.Track{
		{ID: 1, Name: "Song, One", URI: "file:///one.flac", Artist: "Artist One", Album: "Album One"},
		{ID: 2, Name: "Song Two", URI: "file:///two.flac", Artist: "Artist Two", Album: "Album Two"},
	}

	t.Run("TracksToCSV", func(t *testing.T) {
		data, err := TracksToCSV(tracks)
		if err != nil {
			t.Fatalf("TracksToCSV failed: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected header and 2 rows, got %d lines: %s", len(lines), data)
		}
		if lines[0] != "ID,Name,Artist,Album,URI" {
			t.Errorf("CSV missing headers, got: %s", lines[0])
		}
		if lines[1] != `1,"Song, One",Artist One,Album One,file:///one.flac` {
			t.Errorf("CSV did not quote the name, got: %s", lines[1])
		}
	})

	t.Run("TracksToText", func(t *testing.T) {
		data, err := TracksToText(tracks)
		if err != nil {
			t.Fatalf("TracksToText failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "Tracks: 2") {
			t.Errorf("text missing track count")
		}
		if !strings.Contains(output, "Song Two ⦑Artist Two⦒「Album Two」") {
			t.Errorf("text missing label, got: %s", output)
		}
	})

	t.Run("empty", func(t *testing.T) {
		data, err := TracksToCSV(nil)
		if err != nil {
			t.Fatalf("TracksToCSV failed: %v", err)
		}
		if strings.TrimSpace(string(data)) != "ID,Name,Artist,Album,URI" {
			t.Errorf("expected only headers, got: %s", data)
		}
	})
}

func TestPlaylists(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	playlists := []models.Playlist{
		{ID: 1, Name: "Morning", MTime: now.Add(-72 * time.Hour)},
		{ID: 2, Name: "Broken"},
	}

	t.Run("PlaylistsToText", func(t *testing.T) {
		data, err := PlaylistsToText(playlists, now)
		if err != nil {
			t.Fatalf("PlaylistsToText failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "Playlists: 2") {
			t.Errorf("text missing playlist count")
		}
		if !strings.Contains(output, "Morning (3 days ago)") {
			t.Errorf("text missing relative time, got: %s", output)
		}
		if !strings.Contains(output, "Broken (unknown)") {
			t.Errorf("text missing unknown mtime, got: %s", output)
		}
	})

	t.Run("PlaylistsToCSV", func(t *testing.T) {
		data, err := PlaylistsToCSV(playlists)
		if err != nil {
			t.Fatalf("PlaylistsToCSV failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "1,Morning,2024-03-07T12:00:00Z") {
			t.Errorf("CSV missing mtime, got: %s", output)
		}
		if !strings.Contains(output, "2,Broken,\n") {
			t.Errorf("CSV should leave unknown mtime empty, got: %s", output)
		}
	})
}

func TestWriteExport(t *testing.T) {
	t.Run("writes file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tracks.csv")
		if err := WriteExport([]byte("ID\n"), path); err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}
		th.AssertFileExists(t, path)
		if got := th.MustReadFile(t, path); got != "ID\n" {
			t.Errorf("unexpected content: %q", got)
		}
	})

	t.Run("empty path is a no-op", func(t *testing.T) {
		if err := WriteExport([]byte("x"), ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "tracks.csv")
		if err := WriteExport([]byte("x"), path); err == nil {
			t.Fatal("expected error for missing directory")
		}
	})
}
