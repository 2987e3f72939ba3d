// package formatter renders catalog tracks and stored playlists for the non-interactive commands (CSV, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/desertthunder/popmix/internal/models"
	"github.com/dustin/go-humanize"
)

// Format names an output format accepted by the --format flag.
type Format string

const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat validates a --format value; the empty string selects [FormatText].
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case "":
		return FormatText, nil
	case FormatText, FormatCSV, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, csv or json)", s)
	}
}

// TracksToCSV converts catalog rows to CSV format with columns: ID, Name, Artist, Album, URI
func TracksToCSV(tracks []models.Track) ([]byte, error) {
	records := make([][]string, 0, len(tracks))
	for _, track := range tracks {
		records = append(records, []string{
			strconv.FormatInt(track.ID, 10),
			track.Name,
			track.Artist,
			track.Album,
			track.URI,
		})
	}
	return writeCSV([]string{"ID", "Name", "Artist", "Album", "URI"}, records)
}

// TracksToText lists track labels, one per line, the way the track list shows them
func TracksToText(tracks []models.Track) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Tracks: %d\n\n", len(tracks)))
	for _, track := range tracks {
		buf.WriteString(fmt.Sprintf("%5d  %s\n", track.ID, track.Label()))
	}

	return buf.Bytes(), nil
}

// PlaylistsToCSV converts playlists to CSV format with columns: ID, Name, Modified (RFC 3339, empty when unknown)
func PlaylistsToCSV(playlists []models.Playlist) ([]byte, error) {
	records := make([][]string, 0, len(playlists))
	for _, p := range playlists {
		modified := ""
		if !p.MTime.IsZero() {
			modified = p.MTime.UTC().Format(time.RFC3339)
		}
		records = append(records, []string{strconv.FormatInt(p.ID, 10), p.Name, modified})
	}
	return writeCSV([]string{"ID", "Name", "Modified"}, records)
}

// PlaylistsToText lists playlists with their modification time relative to now ("3 days ago")
func PlaylistsToText(playlists []models.Playlist, now time.Time) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlists: %d\n\n", len(playlists)))
	for _, p := range playlists {
		modified := "unknown"
		if !p.MTime.IsZero() {
			modified = humanize.RelTime(p.MTime, now, "ago", "from now")
		}
		buf.WriteString(fmt.Sprintf("%5d  %s (%s)\n", p.ID, p.Name, modified))
	}

	return buf.Bytes(), nil
}

func writeCSV(headers []string, records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteExport writes data to path, or returns without writing when path is empty.
func WriteExport(data []byte, path string) error {
	if path == "" {
		return nil
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
