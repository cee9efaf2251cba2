package rewardwatch

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gabapcia/orchwatch/internal/pkg/logger"
)

var (
	// stakeRoundingStep is 100,000 LPT in wei.
	stakeRoundingStep = new(big.Int).Mul(big.NewInt(100_000), lptDecimals)

	minNotableAmount = big.NewInt(1e16) // 0.01 ETH
	maxNotableAmount = big.NewInt(1e17) // 0.1 ETH

	maxNotableStake = big.NewInt(1_000_000)

	// weiPerStakedLPT converts whole LPT of stake into the notable amount in
	// wei: 1 / 10,000,000 ETH per LPT.
	weiPerStakedLPT = big.NewInt(1e11)
)

// roundStake rounds a stake in wei half-up to the nearest 100,000 LPT and
// returns it in whole LPT.
func roundStake(stake *big.Int) *big.Int {
	q, r := new(big.Int).QuoRem(stake, stakeRoundingStep, new(big.Int))
	if r.Lsh(r, 1).Cmp(stakeRoundingStep) >= 0 {
		q.Add(q, big.NewInt(1))
	}
	return q.Mul(q, big.NewInt(100_000))
}

// NotableThreshold returns the amount of ticket value, in wei, an
// orchestrator with the given total stake (in wei) must accumulate before its
// subscribers are notified of a payout.
//
// The stake is rounded to the nearest 100,000 LPT; the threshold is 0.01 ETH
// for a rounded stake of zero, 0.1 ETH from 1,000,000 LPT up, and one ten
// millionth of the rounded stake otherwise.
func NotableThreshold(totalStake *big.Int) *big.Int {
	rounded := roundStake(totalStake)

	switch {
	case rounded.Sign() == 0:
		return new(big.Int).Set(minNotableAmount)
	case rounded.Cmp(maxNotableStake) >= 0:
		return new(big.Int).Set(maxNotableAmount)
	default:
		return rounded.Mul(rounded, weiPerStakedLPT)
	}
}

// scanTicketRedemptions folds winning ticket redemptions into the recipient's
// accumulator and sends a payout notification once the accumulated value
// exceeds the recipient's notable threshold.
//
// The accumulator is persisted after every applied event. On flush the
// notification is dispatched before the cleared accumulator is saved, so a
// failed delivery keeps the amounts for the next attempt.
func (s *service) scanTicketRedemptions(ctx context.Context, from, to uint64) error {
	logs, err := s.filterLogs(ctx, s.contracts.TicketBroker, winningTicketRedeemedTopic, from, to)
	if err != nil {
		return err
	}

	for _, l := range logs {
		recipient, err := topicAddress(l, 2)
		if err != nil {
			return err
		}

		e, ok := s.tracker.Get(recipient)
		if !ok {
			continue
		}

		value, err := dataWord(l, 0)
		if err != nil {
			return err
		}

		acc, err := s.accumulators.LoadAccumulator(ctx, recipient)
		if err != nil {
			return storageErr("load accumulator", err)
		}

		var feeShare *big.Int
		if ref := (EventRef{Block: l.BlockNumber, Index: l.Index}); ref.After(acc.Cursor) {
			if feeShare, err = s.feeShare(ctx, recipient); err != nil {
				return err
			}

			acc.Add(value, applyCut(value, feeShare), ref)
			if err := s.accumulators.SaveAccumulator(ctx, recipient, acc); err != nil {
				return storageErr("save accumulator", err)
			}
		}

		if acc.Empty() {
			continue
		}

		if err := s.flushIfNotable(ctx, e.Address, e.Subscribers, acc, feeShare); err != nil {
			return err
		}
	}

	return nil
}

// flushIfNotable notifies the subscribers and clears the accumulator when its
// total exceeds the recipient's threshold. feeShare may be nil, in which case
// it is fetched only if a notification is due.
func (s *service) flushIfNotable(ctx context.Context, recipient common.Address, subscribers []string, acc Accumulator, feeShare *big.Int) error {
	stake, err := s.ledger.TranscoderTotalStake(ctx, recipient)
	if err != nil {
		return ledgerErr("transcoder total stake", err)
	}

	total, threshold := acc.Total(), NotableThreshold(stake)
	if total.Cmp(threshold) <= 0 {
		return nil
	}

	if feeShare == nil {
		if feeShare, err = s.feeShare(ctx, recipient); err != nil {
			return err
		}
	}

	logger.Info(ctx, "ticket payout threshold reached",
		"orchestrator", recipient.Hex(),
		"tickets", len(acc.Values),
		"total", total.String(),
		"threshold", threshold.String(),
	)

	if err := s.broadcast(ctx, recipient, subscribers, s.payoutMessage(recipient, total, acc.SharesTotal(), feeShare)); err != nil {
		return err
	}

	if err := s.accumulators.SaveAccumulator(ctx, recipient, acc.Cleared()); err != nil {
		return storageErr("clear accumulator", err)
	}

	return nil
}

func (s *service) feeShare(ctx context.Context, transcoder common.Address) (*big.Int, error) {
	feeShare, err := s.ledger.TranscoderFeeShare(ctx, transcoder)
	if err != nil {
		return nil, ledgerErr("transcoder fee share", err)
	}
	return feeShare, nil
}
