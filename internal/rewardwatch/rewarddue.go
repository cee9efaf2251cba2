package rewardwatch

import (
	"context"

	"github.com/gabapcia/orchwatch/internal/pkg/logger"
	"github.com/gabapcia/orchwatch/internal/tracker"
)

// scanRewardsDue warns the subscribers of every active orchestrator that has
// not called reward yet this round. Orchestrators with an unresolved status
// are skipped.
func (s *service) scanRewardsDue(ctx context.Context, secondaryHeight uint64) error {
	blockInRound := secondaryHeight % s.roundLength

	for _, e := range s.tracker.Entities() {
		if e.RewardCalled != tracker.False || e.Active != tracker.True {
			continue
		}

		logger.Info(ctx, "reward not yet called",
			"orchestrator", e.Address.Hex(),
			"round.block", blockInRound,
		)

		if err := s.broadcast(ctx, e.Address, e.Subscribers, rewardDueMessage(e.Address, blockInRound, s.roundLength)); err != nil {
			return err
		}
	}

	return nil
}
