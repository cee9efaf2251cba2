package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gabapcia/orchwatch/internal/rewardwatch"

	"github.com/redis/go-redis/v9"
)

// accumulatorsKey is the hash mapping checksummed orchestrator addresses to
// their JSON encoded ticket accumulator.
//
// Format: "orchwatch:accumulators"
var accumulatorsKey = key("accumulators")

// LoadAccumulator implements rewardwatch.AccumulatorStorage.
func (c *client) LoadAccumulator(ctx context.Context, orchestrator common.Address) (rewardwatch.Accumulator, error) {
	raw, err := c.conn.HGet(ctx, accumulatorsKey, orchestrator.Hex()).Bytes()
	if errors.Is(err, redis.Nil) {
		return rewardwatch.Accumulator{}, nil
	}
	if err != nil {
		return rewardwatch.Accumulator{}, err
	}

	var acc rewardwatch.Accumulator
	if err := json.Unmarshal(raw, &acc); err != nil {
		return rewardwatch.Accumulator{}, fmt.Errorf("decode accumulator of %s: %w", orchestrator.Hex(), err)
	}
	return acc, nil
}

// SaveAccumulator implements rewardwatch.AccumulatorStorage. The record is
// replaced as a whole by a single HSET.
func (c *client) SaveAccumulator(ctx context.Context, orchestrator common.Address, acc rewardwatch.Accumulator) error {
	raw, err := json.Marshal(acc)
	if err != nil {
		return err
	}

	return c.conn.HSet(ctx, accumulatorsKey, orchestrator.Hex(), raw).Err()
}

var _ rewardwatch.AccumulatorStorage = new(client)
