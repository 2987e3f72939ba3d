// submodule cmd contains command definitions
package main

import (
	"github.com/desertthunder/popmix/internal/shared"
	"github.com/urfave/cli/v3"
)

// app builds the root command. Without a subcommand it starts the TUI.
func (r *Runner) app() *cli.Command {
	return &cli.Command{
		Name:    "popmix",
		Usage:   "Playlist creator for Lollypop",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file (.toml, .yaml)",
				Value:   shared.DefaultConfigPath(),
			},
		},
		Action:   r.TUI,
		Commands: r.register(),
	}
}

// tuiCommand starts the interactive playlist builder
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Browse the catalog and build a playlist interactively",
		Action: r.TUI,
	}
}

// tracksCommand prints the catalog
func tracksCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tracks",
		Usage: "List catalog tracks",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "search",
				Aliases: []string{"s"},
				Usage:   "Only tracks whose label contains this text (case-insensitive)",
			},
			formatFlag(),
			outputFlag(),
		},
		Action: r.Tracks,
	}
}

// playlistsCommand prints the playlists already stored
func playlistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "playlists",
		Usage: "List stored playlists",
		Flags: []cli.Flag{
			formatFlag(),
			outputFlag(),
		},
		Action: r.Playlists,
	}
}

// createCommand saves a playlist without the TUI
func createCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Create a playlist from catalog track IDs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "name",
				Aliases:  []string{"n"},
				Usage:    "Playlist name",
				Required: true,
			},
			&cli.StringSliceFlag{
				Name:  "id",
				Usage: "Catalog track ID (repeatable, or comma separated)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the result as JSON",
			},
		},
		Action: r.Create,
	}
}

// initCommand writes a starter configuration file
func initCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "init",
		Usage:  "Write a configuration file from the built-in template",
		Action: r.Init,
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: text, csv or json",
		Value:   "text",
	}
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Write to this file instead of stdout",
	}
}
