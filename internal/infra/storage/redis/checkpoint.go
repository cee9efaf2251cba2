package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gabapcia/orchwatch/internal/rewardwatch"
)

// checkpointKey is the hash holding the three checkpoint counters. They are
// written together by a single HSET.
//
// Format: "orchwatch:checkpoint"
var checkpointKey = key("checkpoint")

const (
	checkpointSourceField    = "source_block"
	checkpointSecondaryField = "secondary_block"
	checkpointRoundField     = "round"
)

// SaveCheckpoint implements rewardwatch.CheckpointStorage.
func (c *client) SaveCheckpoint(ctx context.Context, cp rewardwatch.Checkpoint) error {
	return c.conn.HSet(ctx, checkpointKey, encodeCheckpoint(cp)).Err()
}

// LoadCheckpoint implements rewardwatch.CheckpointStorage. It returns
// rewardwatch.ErrNoCheckpointFound if the checkpoint was never saved.
func (c *client) LoadCheckpoint(ctx context.Context) (rewardwatch.Checkpoint, error) {
	fields, err := c.conn.HGetAll(ctx, checkpointKey).Result()
	if err != nil {
		return rewardwatch.Checkpoint{}, err
	}

	return decodeCheckpoint(fields)
}

func encodeCheckpoint(cp rewardwatch.Checkpoint) map[string]any {
	return map[string]any{
		checkpointSourceField:    strconv.FormatUint(cp.SourceBlock, 10),
		checkpointSecondaryField: strconv.FormatUint(cp.SecondaryBlock, 10),
		checkpointRoundField:     strconv.FormatUint(cp.Round, 10),
	}
}

func decodeCheckpoint(fields map[string]string) (rewardwatch.Checkpoint, error) {
	if len(fields) == 0 {
		return rewardwatch.Checkpoint{}, rewardwatch.ErrNoCheckpointFound
	}

	var (
		cp  rewardwatch.Checkpoint
		err error
	)
	for name, dst := range map[string]*uint64{
		checkpointSourceField:    &cp.SourceBlock,
		checkpointSecondaryField: &cp.SecondaryBlock,
		checkpointRoundField:     &cp.Round,
	} {
		raw, ok := fields[name]
		if !ok {
			return rewardwatch.Checkpoint{}, fmt.Errorf("checkpoint field %q missing", name)
		}
		if *dst, err = strconv.ParseUint(raw, 10, 64); err != nil {
			return rewardwatch.Checkpoint{}, fmt.Errorf("checkpoint field %q: %w", name, err)
		}
	}

	return cp, nil
}

var _ rewardwatch.CheckpointStorage = new(client)
