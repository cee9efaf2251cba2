package pebble

import (
	"context"
	"errors"

	"github.com/gabapcia/orchwatch/internal/rewardwatch"
)

var checkpointKey = []byte{checkpointPrefix}

// SaveCheckpoint implements rewardwatch.CheckpointStorage. The three counters
// are stored as one record.
func (s *Store) SaveCheckpoint(_ context.Context, cp rewardwatch.Checkpoint) error {
	return s.set(checkpointKey, cp)
}

// LoadCheckpoint implements rewardwatch.CheckpointStorage.
func (s *Store) LoadCheckpoint(_ context.Context) (rewardwatch.Checkpoint, error) {
	var cp rewardwatch.Checkpoint
	err := s.get(checkpointKey, &cp)
	if errors.Is(err, errNotFound) {
		return rewardwatch.Checkpoint{}, rewardwatch.ErrNoCheckpointFound
	}
	return cp, err
}

var _ rewardwatch.CheckpointStorage = new(Store)
