package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/popmix/internal/formatter"
	"github.com/desertthunder/popmix/internal/models"
	"github.com/desertthunder/popmix/internal/session"
	"github.com/desertthunder/popmix/internal/shared"
	"github.com/urfave/cli/v3"
)

// Tracks prints the catalog, optionally filtered with the same matching as the TUI search.
func (r *Runner) Tracks(ctx context.Context, cmd *cli.Command) error {
	if err := r.loadConfig(cmd); err != nil {
		return err
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
	}

	tracks, err := r.catalog(ctx)
	if err != nil {
		return err
	}

	if query := cmd.String("search"); query != "" {
		matched := make([]models.Track, 0, len(tracks))
		for _, track := range tracks {
			if session.Matches(track.Label(), query) {
				matched = append(matched, track)
			}
		}
		tracks = matched
	}

	var data []byte
	switch format {
	case formatter.FormatCSV:
		data, err = formatter.TracksToCSV(tracks)
	case formatter.FormatJSON:
		data, err = marshalJSON(tracks)
	default:
		data, err = formatter.TracksToText(tracks)
	}
	if err != nil {
		return err
	}

	return r.emit(data, cmd.String("output"))
}

// Playlists prints the playlists in the playlist database.
func (r *Runner) Playlists(ctx context.Context, cmd *cli.Command) error {
	if err := r.loadConfig(cmd); err != nil {
		return err
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
	}

	playlists, err := r.playlists().ListPlaylists(ctx)
	if err != nil {
		return fmt.Errorf("failed to list playlists: %w", err)
	}

	var data []byte
	switch format {
	case formatter.FormatCSV:
		data, err = formatter.PlaylistsToCSV(playlists)
	case formatter.FormatJSON:
		data, err = marshalJSON(playlists)
	default:
		data, err = formatter.PlaylistsToText(playlists, time.Now())
	}
	if err != nil {
		return err
	}

	return r.emit(data, cmd.String("output"))
}

// Create builds a playlist from track IDs, running them through the same session as the TUI.
func (r *Runner) Create(ctx context.Context, cmd *cli.Command) error {
	if err := r.loadConfig(cmd); err != nil {
		return err
	}

	ids, err := parseIDs(cmd.StringSlice("id"))
	if err != nil {
		return err
	}

	tracks, err := r.catalog(ctx)
	if err != nil {
		return err
	}

	known := make(map[int64]bool, len(tracks))
	for _, track := range tracks {
		known[track.ID] = true
	}

	state := session.New(tracks, r.config.UI.BulkLimit)
	for _, id := range ids {
		if !known[id] {
			return fmt.Errorf("%w: %d", shared.ErrTrackNotFound, id)
		}
		if !state.IsSelected(id) {
			state, _ = session.Reduce(state, session.Toggle{ID: id})
		}
	}

	_, commands := session.Reduce(state, session.Submit{Name: cmd.String("name")})

	var result models.CreateResult
	for _, c := range commands {
		switch c := c.(type) {
		case session.Notify:
			return fmt.Errorf("%w: %s", shared.ErrValidation, c.Message)
		case session.Persist:
			result, err = r.playlists().CreatePlaylist(ctx, c.Name, c.URIs)
			if err != nil {
				return fmt.Errorf("failed to create playlist: %w", err)
			}
		}
	}

	if result.Renamed() {
		r.logger.Warn("playlist name taken, saved under a new name", "requested", result.Requested, "name", result.Name)
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, true)
	}
	return r.writePlain("Created playlist: %s (%d tracks)\n", result.Name, result.Tracks)
}

// parseIDs accepts repeated and comma separated --id values.
func parseIDs(values []string) ([]int64, error) {
	var ids []int64
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: --id %q is not a track ID", shared.ErrInvalidFlag, part)
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func marshalJSON(data any) ([]byte, error) {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(out, '\n'), nil
}
