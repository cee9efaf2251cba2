package cli

import (
	"context"
	"fmt"

	"github.com/gabapcia/orchwatch/internal/rewardwatch"

	"github.com/urfave/cli/v3"
)

// checkpointCommand groups the commands that read and seed the checkpoint.
//
// Usage example:
//
//	orchwatch checkpoint show
//	orchwatch checkpoint set --source-block 21000000 --secondary-block 350000000 --round 3600
func checkpointCommand(checkpoints rewardwatch.CheckpointStorage) *cli.Command {
	return &cli.Command{
		Name:        "checkpoint",
		Description: "Inspect or seed the block and round checkpoint the watcher resumes from.",
		Usage:       "Manages the scan checkpoint.",
		Commands: []*cli.Command{
			showCheckpointCommand(checkpoints),
			setCheckpointCommand(checkpoints),
		},
	}
}

func showCheckpointCommand(checkpoints rewardwatch.CheckpointStorage) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Prints the stored checkpoint.",
		Action: func(ctx context.Context, c *cli.Command) error {
			cp, err := checkpoints.LoadCheckpoint(ctx)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(c.Root().Writer, "source_block=%d secondary_block=%d round=%d\n", cp.SourceBlock, cp.SecondaryBlock, cp.Round)
			return err
		},
	}
}

// setCheckpointCommand overwrites the checkpoint. The values are stored as
// given, even when lower than the current ones, so that a range can be
// rescanned.
func setCheckpointCommand(checkpoints rewardwatch.CheckpointStorage) *cli.Command {
	return &cli.Command{
		Name:  "set",
		Usage: "Seeds or overrides the checkpoint. All three values are required.",
		Flags: []cli.Flag{
			&cli.Uint64Flag{
				Name:     "source-block",
				Usage:    "Last fully scanned block of the source chain",
				Required: true,
			},
			&cli.Uint64Flag{
				Name:     "secondary-block",
				Usage:    "Secondary chain block paired with the source block",
				Required: true,
			},
			&cli.Uint64Flag{
				Name:     "round",
				Usage:    "Last round whose end was processed",
				Required: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cp := rewardwatch.Checkpoint{
				SourceBlock:    c.Uint64("source-block"),
				SecondaryBlock: c.Uint64("secondary-block"),
				Round:          c.Uint64("round"),
			}

			if err := checkpoints.SaveCheckpoint(ctx, cp); err != nil {
				return err
			}

			_, err := fmt.Fprintf(c.Root().Writer, "checkpoint set to source_block=%d secondary_block=%d round=%d\n", cp.SourceBlock, cp.SecondaryBlock, cp.Round)
			return err
		},
	}
}
