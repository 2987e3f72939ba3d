package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/popmix/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	if err := runner.app().Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrStoreUnavailable) {
			logger.Fatal("database unavailable", "error", err)
		}
		logger.Fatalf("application error: %v", err)
	}
}
