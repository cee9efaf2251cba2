package cli

import (
	"context"
	"os"

	"github.com/gabapcia/orchwatch/internal/rewardwatch"
	"github.com/gabapcia/orchwatch/internal/subscription"

	"github.com/urfave/cli/v3"
)

// Run initializes and executes the orchwatch CLI application.
//
// It registers all available commands, including:
//
//   - `start`: Starts the reward watcher loop.
//   - `subscribe`: Subscribes a chat to an orchestrator.
//   - `unsubscribe`: Removes a chat from an orchestrator.
//   - `subscriptions`: Lists every subscription.
//   - `checkpoint`: Shows or seeds the scan checkpoint.
//
// Parameters:
//   - ctx: Context used to control the lifecycle of the CLI application.
//   - rw: The rewardwatch service used by the start command.
//   - subs: The subscription service used by the subscription commands.
//   - checkpoints: The checkpoint store used by the checkpoint commands.
func Run(ctx context.Context, rw rewardwatch.Service, subs subscription.Service, checkpoints rewardwatch.CheckpointStorage) error {
	return newApp(rw, subs, checkpoints).Run(ctx, os.Args)
}

func newApp(rw rewardwatch.Service, subs subscription.Service, checkpoints rewardwatch.CheckpointStorage) *cli.Command {
	return &cli.Command{
		EnableShellCompletion: true,
		Name:                  "orchwatch",
		Description:           "Command-line interface for running the orchestrator reward watcher and managing its subscriptions.",
		Usage:                 "orchwatch [command] [flags]",
		Commands: []*cli.Command{
			startWatcherCommand(rw),
			subscribeCommand(subs),
			unsubscribeCommand(subs),
			listSubscriptionsCommand(subs),
			checkpointCommand(checkpoints),
		},
	}
}
