package rewardwatch

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ErrNoCheckpointFound is returned by CheckpointStorage when no checkpoint was
// ever saved.
var ErrNoCheckpointFound = errors.New("no checkpoint found")

// Checkpoint is the persisted progress of the watcher.
type Checkpoint struct {
	SourceBlock    uint64 `json:"source_block"`    // last source block fully scanned
	SecondaryBlock uint64 `json:"secondary_block"` // secondary height at the last reward-due scan
	Round          uint64 `json:"round"`           // last round whose boundary was processed
}

// Advance returns a checkpoint where each counter is the maximum of c and
// next, so that persisted progress never moves backwards.
func (c Checkpoint) Advance(next Checkpoint) Checkpoint {
	return Checkpoint{
		SourceBlock:    max(c.SourceBlock, next.SourceBlock),
		SecondaryBlock: max(c.SecondaryBlock, next.SecondaryBlock),
		Round:          max(c.Round, next.Round),
	}
}

// CheckpointStorage persists the three checkpoint counters as one atomic unit.
type CheckpointStorage interface {
	LoadCheckpoint(ctx context.Context) (Checkpoint, error)
	SaveCheckpoint(ctx context.Context, cp Checkpoint) error
}

// SubscriptionStorage exposes the subscriber lists keyed by orchestrator.
type SubscriptionStorage interface {
	ListSubscriptions(ctx context.Context) (map[common.Address][]string, error)
}

// EventRef identifies a log by its position on chain.
type EventRef struct {
	Block uint64 `json:"block"`
	Index uint   `json:"index"`
}

// After reports whether r comes strictly after o.
func (r EventRef) After(o EventRef) bool {
	if r.Block != o.Block {
		return r.Block > o.Block
	}
	return r.Index > o.Index
}

// Accumulator holds the ticket values redeemed by an orchestrator since its
// last payout notification, with the delegator share of each, in wei.
//
// Cursor is the last event folded in. It survives flushes so that logs
// replayed after a restart are not counted twice.
type Accumulator struct {
	Values []*big.Int `json:"values"`
	Shares []*big.Int `json:"shares"`
	Cursor EventRef   `json:"cursor"`
}

// Add folds an event into the accumulator.
func (a *Accumulator) Add(value, share *big.Int, ref EventRef) {
	a.Values = append(a.Values, new(big.Int).Set(value))
	a.Shares = append(a.Shares, new(big.Int).Set(share))
	a.Cursor = ref
}

// Total returns the sum of the accumulated values.
func (a Accumulator) Total() *big.Int {
	return sum(a.Values)
}

// SharesTotal returns the sum of the accumulated delegator shares.
func (a Accumulator) SharesTotal() *big.Int {
	return sum(a.Shares)
}

// Empty reports whether nothing is pending.
func (a Accumulator) Empty() bool {
	return len(a.Values) == 0
}

// Cleared returns an empty accumulator positioned at the same cursor.
func (a Accumulator) Cleared() Accumulator {
	return Accumulator{Cursor: a.Cursor}
}

func sum(values []*big.Int) *big.Int {
	total := new(big.Int)
	for _, v := range values {
		total.Add(total, v)
	}
	return total
}

// AccumulatorStorage persists one Accumulator per orchestrator. Loading an
// orchestrator that has no record returns an empty accumulator.
type AccumulatorStorage interface {
	LoadAccumulator(ctx context.Context, orchestrator common.Address) (Accumulator, error)
	SaveAccumulator(ctx context.Context, orchestrator common.Address, acc Accumulator) error
}
