package rewardwatch

import (
	"context"

	"github.com/gabapcia/orchwatch/internal/pkg/logger"
)

// scanRewardCuts reports TranscoderUpdate events of tracked orchestrators
// whose new reward cut or fee share differs from the earnings pool snapshot
// of round (0 for the current one).
func (s *service) scanRewardCuts(ctx context.Context, from, to, round uint64) error {
	logs, err := s.filterLogs(ctx, s.contracts.BondingManager, transcoderUpdateTopic, from, to)
	if err != nil {
		return err
	}

	for _, l := range logs {
		caller, err := topicAddress(l, 1)
		if err != nil {
			return err
		}

		e, ok := s.tracker.Get(caller)
		if !ok {
			continue
		}

		rewardCut, err := dataWord(l, 0)
		if err != nil {
			return err
		}
		feeShare, err := dataWord(l, 1)
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

		if pool.RewardCut.Cmp(rewardCut) == 0 && pool.FeeShare.Cmp(feeShare) == 0 {
			continue
		}

		logger.Info(ctx, "reward or fee cut changed",
			"orchestrator", caller.Hex(),
			"reward_cut.old", pool.RewardCut.String(),
			"reward_cut.new", rewardCut.String(),
			"fee_share.old", pool.FeeShare.String(),
			"fee_share.new", feeShare.String(),
		)

		if err := s.broadcast(ctx, caller, e.Subscribers, cutChangeMessage(caller, pool, rewardCut, feeShare)); err != nil {
			return err
		}
	}

	return nil
}
