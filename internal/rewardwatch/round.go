package rewardwatch

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gabapcia/orchwatch/internal/pkg/logger"
	"github.com/gabapcia/orchwatch/internal/pkg/types"
	"github.com/gabapcia/orchwatch/internal/tracker"

	"go.opentelemetry.io/otel/attribute"
)

// boundary is a NewRound event observed on the source chain.
type boundary struct {
	Round uint64
	Block uint64
}

// detectRound looks for the first NewRound event in [from, to] announcing a
// round greater than after.
func (s *service) detectRound(ctx context.Context, from, to, after uint64) (boundary, bool, error) {
	logs, err := s.filterLogs(ctx, s.contracts.RoundsManager, newRoundTopic, from, to)
	if err != nil {
		return boundary{}, false, err
	}

	for _, l := range logs {
		if len(l.Topics) < 2 {
			return boundary{}, false, decodeErr(l, fmt.Errorf("%w: NewRound without round topic", ErrMalformedLog))
		}

		round := l.Topics[1].Big()
		if !round.IsUint64() {
			return boundary{}, false, decodeErr(l, fmt.Errorf("%w: round %s overflows", ErrMalformedLog, round))
		}

		if round.Uint64() > after {
			return boundary{Round: round.Uint64(), Block: l.BlockNumber}, true, nil
		}
	}

	return boundary{}, false, nil
}

// activeSet walks the transcoder pool linked list.
func (s *service) activeSet(ctx context.Context) (types.Set[common.Address], error) {
	size, err := s.ledger.TranscoderPoolSize(ctx)
	if err != nil {
		return nil, ledgerErr("transcoder pool size", err)
	}

	set := types.NewSet[common.Address]()
	if size == 0 {
		return set, nil
	}

	cur, err := s.ledger.FirstTranscoderInPool(ctx)
	if err != nil {
		return nil, ledgerErr("first transcoder in pool", err)
	}

	for i := uint64(0); i < size && cur != (common.Address{}); i++ {
		set.Add(cur)
		if i+1 == size {
			break
		}

		if cur, err = s.ledger.NextTranscoderInPool(ctx, cur); err != nil {
			return nil, ledgerErr("next transcoder in pool", err)
		}
	}

	return set, nil
}

type pendingAlert struct {
	orchestrator common.Address
	subscribers  []string
	text         string
}

// processRoundEnd settles the round that closed at b against the active set
// read at the boundary. Active orchestrators that never called reward are
// reported, as are transitions in and out of the active set, and every reward
// flag is reset for the new round.
//
// All tracker state is updated before any alert is sent, so a failed
// delivery never leaves flags from the closed round behind.
func (s *service) processRoundEnd(ctx context.Context, b boundary, active types.Set[common.Address]) error {
	ctx, span := s.instruments.startSpan(ctx, "rewardwatch.round_end", attribute.Int64("round", int64(b.Round)))
	defer span.End()

	closed := b.Round - 1
	var alerts []pendingAlert

	for _, e := range s.tracker.Entities() {
		if e.RewardCalled == tracker.False && e.Active == tracker.True {
			alerts = append(alerts, pendingAlert{e.Address, e.Subscribers, missedRewardMessage(e.Address, closed)})
		}

		isActive := active.Has(e.Address)
		switch {
		case isActive && e.Active == tracker.False:
			alerts = append(alerts, pendingAlert{e.Address, e.Subscribers, activeAgainMessage(e.Address, b.Round)})
		case !isActive && e.Active == tracker.True:
			alerts = append(alerts, pendingAlert{e.Address, e.Subscribers, inactiveMessage(e.Address, b.Round)})
		}

		if isActive {
			s.tracker.SetActive(e.Address, tracker.True)
		} else {
			s.tracker.SetActive(e.Address, tracker.False)
		}
	}

	s.tracker.ResetRewardCalled()
	s.instruments.roundProcessed(ctx)

	logger.Info(ctx, "round boundary processed",
		"round", b.Round,
		"round.block", b.Block,
		"active_set.size", active.Len(),
		"alerts", len(alerts),
	)

	for _, a := range alerts {
		if err := s.broadcast(ctx, a.orchestrator, a.subscribers, a.text); err != nil {
			return err
		}
	}

	return nil
}
