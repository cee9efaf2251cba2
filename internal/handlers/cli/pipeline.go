package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gabapcia/orchwatch/internal/rewardwatch"

	"github.com/urfave/cli/v3"
)

// startWatcherCommand returns a CLI command that starts the reward watcher
// loop.
//
// Usage example:
//
//	orchwatch start
//
// The process runs until it receives an interrupt (SIGINT or SIGTERM) or
// the context is cancelled.
func startWatcherCommand(rw rewardwatch.Service) *cli.Command {
	return &cli.Command{
		Name:        "start",
		Description: "Starts the reward watcher loop scanning rounds, rewards, cut changes and winning tickets.",
		Usage:       "Runs the watcher from the stored checkpoint. Terminates gracefully on Ctrl+C or termination signals.",
		Action: func(ctx context.Context, c *cli.Command) error {
			quit := make(chan os.Signal, 1)
			defer signal.Stop(quit)

			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			if err := rw.Start(ctx); err != nil {
				return err
			}
			defer rw.Close()

			select {
			case <-quit:
			case <-ctx.Done():
			}
			return nil
		},
	}
}
