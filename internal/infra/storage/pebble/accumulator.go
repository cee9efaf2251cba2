package pebble

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gabapcia/orchwatch/internal/rewardwatch"
)

// LoadAccumulator implements rewardwatch.AccumulatorStorage.
func (s *Store) LoadAccumulator(_ context.Context, orchestrator common.Address) (rewardwatch.Accumulator, error) {
	var acc rewardwatch.Accumulator
	err := s.get(addressKey(accumulatorPrefix, orchestrator), &acc)
	if errors.Is(err, errNotFound) {
		return rewardwatch.Accumulator{}, nil
	}
	return acc, err
}

// SaveAccumulator implements rewardwatch.AccumulatorStorage.
func (s *Store) SaveAccumulator(_ context.Context, orchestrator common.Address, acc rewardwatch.Accumulator) error {
	return s.set(addressKey(accumulatorPrefix, orchestrator), acc)
}

var _ rewardwatch.AccumulatorStorage = new(Store)
