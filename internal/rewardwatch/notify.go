package rewardwatch

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gabapcia/orchwatch/internal/pkg/logger"
)

// Notifier delivers a text message to a subscriber.
type Notifier interface {
	Notify(ctx context.Context, subscriberID, text string) error
}

// pacer spaces out consecutive sends by at least pause.
type pacer struct {
	pause time.Duration
	last  time.Time
	now   func() time.Time
}

func (p *pacer) wait(ctx context.Context) error {
	if p.pause <= 0 || p.last.IsZero() {
		return nil
	}

	d := p.pause - p.now().Sub(p.last)
	if d <= 0 {
		return nil
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (p *pacer) sent() {
	p.last = p.now()
}

// broadcast sends text to every subscriber in order. The first failure aborts
// the remaining sends.
func (s *service) broadcast(ctx context.Context, orchestrator common.Address, subscribers []string, text string) error {
	for _, id := range subscribers {
		if err := s.pacer.wait(ctx); err != nil {
			return err
		}

		err := s.notifier.Notify(ctx, id, text)
		s.pacer.sent()
		if err != nil {
			return notifyErr(fmt.Sprintf("notify %s", id), err)
		}

		s.instruments.notificationSent(ctx)
		logger.Debug(ctx, "notification sent",
			"orchestrator", orchestrator.Hex(),
			"subscriber.id", id,
		)
	}

	return nil
}

var (
	lptDecimals = big.NewInt(1e18)
	ethDecimals = big.NewInt(1e18)

	// cutDenominator is the fixed-point scale of reward cut and fee share.
	cutDenominator = big.NewInt(1_000_000)
	percentScale   = big.NewInt(10_000)
)

// shortAddress renders the first 8 characters of the checksummed address.
func shortAddress(addr common.Address) string {
	return addr.Hex()[:8] + "..."
}

// formatUnits renders v / unit with the given number of decimals, rounding
// halves away from zero.
func formatUnits(v, unit *big.Int, decimals int) string {
	return new(big.Rat).SetFrac(v, unit).FloatString(decimals)
}

// formatPercent renders a parts-per-million value as a percentage without
// trailing zeros, e.g. 105000 as "10.5".
func formatPercent(ppm *big.Int) string {
	s := new(big.Rat).SetFrac(ppm, percentScale).FloatString(4)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// feeCut returns the part of fees kept by the orchestrator, in parts per
// million, given the fee share left to its delegators.
func feeCut(feeShare *big.Int) *big.Int {
	return new(big.Int).Sub(cutDenominator, feeShare)
}

// applyCut returns v * ppm / 1e6, truncated.
func applyCut(v, ppm *big.Int) *big.Int {
	out := new(big.Int).Mul(v, ppm)
	return out.Quo(out, cutDenominator)
}

func (s *service) explorerAddressLink(addr common.Address) string {
	return fmt.Sprintf("[Check the transactions on the explorer](%s/address/%s)", s.explorerURL, addr.Hex())
}

func (s *service) explorerTxLink(tx common.Hash) string {
	return fmt.Sprintf("[View the transaction on the explorer](%s/tx/%s)", s.explorerURL, tx.Hex())
}

func cutChangeMessage(addr common.Address, oldPool EarningsPool, newRewardCut, newFeeShare *big.Int) string {
	return fmt.Sprintf(
		"REWARD AND/OR FEE CUT CHANGE - Orchestrator %s changed the reward cut from %s%% to %s%% and the fee cut from %s%% to %s%%.",
		shortAddress(addr),
		formatPercent(oldPool.RewardCut), formatPercent(newRewardCut),
		formatPercent(feeCut(oldPool.FeeShare)), formatPercent(feeCut(newFeeShare)),
	)
}

func (s *service) rewardClaimedMessage(addr common.Address, round uint64, amount, kept *big.Int, pool EarningsPool, tx common.Hash) string {
	return fmt.Sprintf(
		"Rewards claimed for round %d - Orchestrator %s received %s LPT for %s LPT of total stake and kept %s LPT for itself (reward cut %s%%).\n%s",
		round, shortAddress(addr),
		formatUnits(amount, lptDecimals, 2), formatUnits(pool.TotalStake, lptDecimals, 2),
		formatUnits(kept, lptDecimals, 2), formatPercent(pool.RewardCut),
		s.explorerTxLink(tx),
	)
}

func (s *service) payoutMessage(addr common.Address, total, shares, feeShare *big.Int) string {
	return fmt.Sprintf(
		"Since the last payout notification, Orchestrator %s earned %s ETH for transcoding!\n"+
			"Out of those, its delegators share %s ETH. The Orchestrator's current fee cut is %s%%.\n%s",
		shortAddress(addr),
		formatUnits(total, ethDecimals, 3), formatUnits(shares, ethDecimals, 3),
		formatPercent(feeCut(feeShare)),
		s.explorerAddressLink(addr),
	)
}

func missedRewardMessage(addr common.Address, round uint64) string {
	return fmt.Sprintf(
		"NO REWARDS CLAIMED - Orchestrator %s did not claim the rewards in round %d! You did not get any rewards for your stake.",
		shortAddress(addr), round,
	)
}

func inactiveMessage(addr common.Address, round uint64) string {
	return fmt.Sprintf(
		"WARNING - Orchestrator %s is no longer in the active orchestrator set in round %d! You will not get rewards or fees while it stays inactive.",
		shortAddress(addr), round,
	)
}

func activeAgainMessage(addr common.Address, round uint64) string {
	return fmt.Sprintf(
		"Orchestrator %s is back in the active orchestrator set in round %d.",
		shortAddress(addr), round,
	)
}

func rewardDueMessage(addr common.Address, blockInRound, roundLength uint64) string {
	return fmt.Sprintf(
		"WARNING - Orchestrator %s did not yet claim rewards at block %d of %d in the current round!",
		shortAddress(addr), blockInRound, roundLength,
	)
}

func faultMessage(f *Fault) string {
	return fmt.Sprintf("orchwatch tick failed (%s during %s): %v", f.Kind, f.Op, f.Err)
}
