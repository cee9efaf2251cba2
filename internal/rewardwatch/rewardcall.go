package rewardwatch

import (
	"context"

	"github.com/gabapcia/orchwatch/internal/pkg/logger"
	"github.com/gabapcia/orchwatch/internal/tracker"
)

// scanRewardCalls reports Reward events of tracked orchestrators that have
// not been seen calling reward in round (0 for the current one), then
// marks them.
func (s *service) scanRewardCalls(ctx context.Context, from, to, round uint64) error {
	logs, err := s.filterLogs(ctx, s.contracts.BondingManager, rewardTopic, from, to)
	if err != nil {
		return err
	}

	for _, l := range logs {
		caller, err := topicAddress(l, 1)
		if err != nil {
			return err
		}

		e, ok := s.tracker.Get(caller)
		if !ok || e.RewardCalled == tracker.True {
			continue
		}

		amount, err := dataWord(l, 0)
		if err != nil {
			return err
		}

		poolRound, err := s.roundOf(ctx, round)
		if err != nil {
			return err
		}

		pool, err := s.ledger.EarningsPoolForRound(ctx, caller, poolRound)
		if err != nil {
			return ledgerErr("earnings pool for round", err)
		}

		kept := applyCut(amount, pool.RewardCut)

		logger.Info(ctx, "reward called",
			"orchestrator", caller.Hex(),
			"round", poolRound,
			"amount", amount.String(),
			"kept", kept.String(),
		)

		if err := s.broadcast(ctx, caller, e.Subscribers, s.rewardClaimedMessage(caller, poolRound, amount, kept, pool, l.TxHash)); err != nil {
			return err
		}

		s.tracker.SetRewardCalled(caller, tracker.True)
	}

	return nil
}
