package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/popmix/internal/shared"
	"github.com/urfave/cli/v3"
)

// Init writes the configuration template to the --config path.
//
// Both databases belong to Lollypop, so nothing else is created here.
func (r *Runner) Init(ctx context.Context, cmd *cli.Command) error {
	path := shared.ExpandPath(cmd.String("config"))

	if err := shared.CreateConfigFile(path); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	r.logger.Info("config file created", "path", path)
	return r.writePlain("Wrote %s\n", path)
}
