package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/popmix/internal/formatter"
	"github.com/desertthunder/popmix/internal/models"
	"github.com/desertthunder/popmix/internal/repositories"
	"github.com/desertthunder/popmix/internal/shared"
	"github.com/urfave/cli/v3"
)

// PlaylistStore is the playlist database as seen by the commands.
type PlaylistStore interface {
	CreatePlaylist(ctx context.Context, name string, uris []string) (models.CreateResult, error)
	ListPlaylists(ctx context.Context) ([]models.Playlist, error)
}

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	store  PlaylistStore
	logger *log.Logger
	output io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
//
// A nil Config is loaded from the --config flag when a command runs; a nil Store is opened from the config.
type RunnerOpts struct {
	Config *shared.Config
	Store  PlaylistStore
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config: opts.Config,
		store:  opts.Store,
		logger: opts.Logger,
		output: opts.Output,
	}
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		tuiCommand, tracksCommand, playlistsCommand, createCommand, initCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadConfig resolves the configuration once per run.
//
// A missing file is only an error when --config was given explicitly.
func (r *Runner) loadConfig(cmd *cli.Command) error {
	if r.config != nil {
		return nil
	}

	path := cmd.String("config")
	if _, err := os.Stat(shared.ExpandPath(path)); err == nil {
		config, err := shared.LoadConfig(path)
		if err != nil {
			return err
		}
		r.config = config
	} else if cmd.IsSet("config") {
		return fmt.Errorf("%w: %s", shared.ErrMissingConfig, path)
	} else {
		r.logger.Debug("config file not found, using defaults", "path", path)
		r.config = shared.DefaultConfig()
	}

	return shared.SetLogLevel(r.logger, r.config.Log.Level)
}

func (r *Runner) playlists() PlaylistStore {
	if r.store == nil {
		r.store = repositories.NewPlaylistStore(r.config.Database.Driver, r.config.Database.PlaylistsPath, r.logger)
	}
	return r.store
}

func (r *Runner) catalog(ctx context.Context) ([]models.Track, error) {
	tracks, err := repositories.LoadCatalog(ctx, r.config.Database.Driver, r.config.Database.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	r.logger.Debug("catalog loaded", "path", r.config.Database.CatalogPath, "rows", len(tracks))
	return tracks, nil
}

// emit writes rendered output to path, or to the runner's output when path is empty.
func (r *Runner) emit(data []byte, path string) error {
	if path != "" {
		if err := formatter.WriteExport(data, path); err != nil {
			return err
		}
		r.logger.Info("export written", "path", path, "bytes", len(data))
		return nil
	}

	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
