// Package rewardwatch implements the polling engine that follows the reward
// lifecycle of subscribed orchestrators: it detects round boundaries, scans
// reward, cut change and ticket redemption events, and notifies subscribers.
package rewardwatch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gabapcia/orchwatch/internal/pkg/logger"
	"github.com/gabapcia/orchwatch/internal/tracker"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ErrServiceAlreadyStarted is returned if Start is called more than once.
var ErrServiceAlreadyStarted = errors.New("service already started")

// Service is the watcher lifecycle.
type Service interface {
	// Start loads the checkpoint and launches the polling loop in the
	// background. It returns ErrNoCheckpointFound if the checkpoint was never
	// seeded and ErrServiceAlreadyStarted on a second call.
	Start(ctx context.Context) error

	// Close stops the polling loop and waits for the running tick to return.
	// It is safe to call Close even if the service was never started.
	Close()
}

type closeFunc func()

// Dependencies groups the collaborators of the watcher.
type Dependencies struct {
	Ledger        Ledger       // source chain
	Secondary     HeightReader // chain whose height paces the reward-due checks
	Contracts     Contracts
	Subscriptions SubscriptionStorage
	Checkpoints   CheckpointStorage
	Accumulators  AccumulatorStorage
	Notifier      Notifier
}

type service struct {
	mu        sync.Mutex // protects lifecycle state
	isStarted bool
	closeFunc closeFunc

	tickMu     sync.Mutex // serializes ticks
	checkpoint Checkpoint
	relay      faultRelay

	ledger        Ledger
	secondary     HeightReader
	contracts     Contracts
	subscriptions SubscriptionStorage
	checkpoints   CheckpointStorage
	accumulators  AccumulatorStorage
	notifier      Notifier
	tracker       *tracker.Tracker

	pollInterval time.Duration
	lagThreshold uint64
	roundLength  uint64
	explorerURL  string
	operatorID   string

	pacer       *pacer
	instruments instruments
}

var _ Service = (*service)(nil)

// Start implements Service.
func (s *service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isStarted {
		return ErrServiceAlreadyStarted
	}

	if err := s.loadCheckpoint(ctx); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go s.run(ctx, done)

	s.closeFunc = func() {
		cancel()
		<-done
	}
	s.isStarted = true
	return nil
}

// Close implements Service.
func (s *service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closeFunc != nil {
		s.closeFunc()
	}

	s.closeFunc = nil
	s.isStarted = false
}

func (s *service) loadCheckpoint(ctx context.Context) error {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()

	cp, err := s.checkpoints.LoadCheckpoint(ctx)
	if err != nil {
		return fmt.Errorf("load checkpoint: %w", err)
	}

	s.checkpoint = cp
	logger.Info(ctx, "checkpoint loaded",
		"checkpoint.source_block", cp.SourceBlock,
		"checkpoint.secondary_block", cp.SecondaryBlock,
		"checkpoint.round", cp.Round,
	)
	return nil
}

// run ticks immediately and then once per poll interval until ctx is done.
func (s *service) run(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	t := time.NewTimer(0)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.runTick(ctx)
			t.Reset(s.pollInterval)
		}
	}
}

// runTick is the failure boundary around Tick: every error and panic is
// logged, and relayed to the operator unless it repeats the last relayed one.
func (s *service) runTick(ctx context.Context) {
	ctx = logger.Derive(ctx, "tick.id", newTickID())
	ctx, span := s.instruments.startSpan(ctx, "rewardwatch.tick")
	defer span.End()

	err := s.safeTick(ctx)
	if err == nil {
		s.instruments.tickDone(ctx)
		return
	}

	if ctx.Err() != nil {
		logger.Info(ctx, "tick interrupted", "error", err)
		return
	}

	f := classify(err)
	span.RecordError(err)
	span.SetStatus(codes.Error, string(f.Kind))
	s.instruments.faultRaised(ctx, f.Kind)

	logger.Error(ctx, "tick failed",
		"fault.kind", f.Kind,
		"fault.op", f.Op,
		"error", f.Err,
	)

	if s.operatorID == "" || !s.relay.shouldRelay(f) {
		return
	}

	if err := s.notifier.Notify(ctx, s.operatorID, faultMessage(f)); err != nil {
		logger.Error(ctx, "failed to relay fault to operator", "error", err)
	}
}

func (s *service) safeTick(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tick panicked: %v", r)
		}
	}()

	return s.Tick(ctx)
}

// Tick runs one iteration of the watcher: it reconciles the tracked
// orchestrators, processes every pending round boundary and, once the
// secondary chain has advanced far enough, runs the incremental scans.
func (s *service) Tick(ctx context.Context) error {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()

	sourceHeight, err := s.ledger.BlockNumber(ctx)
	if err != nil {
		return ledgerErr("source block number", err)
	}

	secondaryHeight, err := s.secondary.BlockNumber(ctx)
	if err != nil {
		return ledgerErr("secondary block number", err)
	}

	if err := s.reconcile(ctx); err != nil {
		return err
	}

	if err := s.processBoundaries(ctx, sourceHeight); err != nil {
		return err
	}

	if secondaryHeight <= s.checkpoint.SecondaryBlock+s.lagThreshold {
		logger.Debug(ctx, "secondary chain within lag threshold",
			"secondary.height", secondaryHeight,
			"checkpoint.secondary_block", s.checkpoint.SecondaryBlock,
		)
		return nil
	}

	if from := s.checkpoint.SourceBlock + 1; sourceHeight >= from {
		if err := s.scanRange(ctx, from, sourceHeight, 0); err != nil {
			return err
		}
	}

	if err := s.scanRewardsDue(ctx, secondaryHeight); err != nil {
		return err
	}

	return s.saveCheckpoint(ctx, Checkpoint{
		SourceBlock:    sourceHeight,
		SecondaryBlock: secondaryHeight,
	})
}

func (s *service) reconcile(ctx context.Context) error {
	subs, err := s.subscriptions.ListSubscriptions(ctx)
	if err != nil {
		return storageErr("list subscriptions", err)
	}

	diff := s.tracker.Reconcile(subs)
	if len(diff.Added)+len(diff.Removed)+len(diff.Updated) > 0 {
		logger.Info(ctx, "tracked orchestrators reconciled",
			"added", len(diff.Added),
			"removed", len(diff.Removed),
			"updated", len(diff.Updated),
			"tracked", s.tracker.Len(),
		)
	}

	return nil
}

// processBoundaries handles, in order, every round boundary found above the
// source checkpoint. The range before a boundary is scanned as part of the
// closing round and the active set is read; only then is the checkpoint
// moved to the block right before the boundary and the round end settled.
// A ledger failure before the checkpoint write leaves the boundary pending
// for the next tick.
func (s *service) processBoundaries(ctx context.Context, sourceHeight uint64) error {
	for {
		from := s.checkpoint.SourceBlock + 1
		if sourceHeight < from {
			return nil
		}

		b, found, err := s.detectRound(ctx, from, sourceHeight, s.checkpoint.Round)
		if err != nil || !found {
			return err
		}

		logger.Info(ctx, "round boundary detected", "round", b.Round, "round.block", b.Block)

		if b.Block > from {
			if err := s.scanRange(ctx, from, b.Block-1, b.Round-1); err != nil {
				return err
			}
		}

		active, err := s.activeSet(ctx)
		if err != nil {
			return err
		}

		// The secondary checkpoint is projected from the round number, which
		// assumes a fixed number of secondary blocks per round.
		if err := s.saveCheckpoint(ctx, Checkpoint{
			SourceBlock:    b.Block - 1,
			SecondaryBlock: b.Round * s.roundLength,
			Round:          b.Round,
		}); err != nil {
			return err
		}

		if err := s.processRoundEnd(ctx, b, active); err != nil {
			return err
		}
	}
}

// scanRange runs the range-based scanners over [from, to]. round is the round
// the range belongs to, or 0 when it is the round in force on the ledger.
func (s *service) scanRange(ctx context.Context, from, to, round uint64) error {
	ctx, span := s.instruments.startSpan(ctx, "rewardwatch.scan",
		attribute.Int64("from", int64(from)),
		attribute.Int64("to", int64(to)),
	)
	defer span.End()

	logger.Debug(ctx, "scanning range", "from", from, "to", to)

	if err := s.scanRewardCuts(ctx, from, to, round); err != nil {
		return err
	}
	if err := s.scanRewardCalls(ctx, from, to, round); err != nil {
		return err
	}
	return s.scanTicketRedemptions(ctx, from, to)
}

// roundOf returns round, or the ledger's current round when round is 0.
func (s *service) roundOf(ctx context.Context, round uint64) (uint64, error) {
	if round > 0 {
		return round, nil
	}

	current, err := s.ledger.CurrentRound(ctx)
	if err != nil {
		return 0, ledgerErr("current round", err)
	}
	return current, nil
}

// saveCheckpoint persists the checkpoint advanced to next. The in-memory copy
// only moves once the write succeeded.
func (s *service) saveCheckpoint(ctx context.Context, next Checkpoint) error {
	cp := s.checkpoint.Advance(next)
	if cp == s.checkpoint {
		return nil
	}

	if err := s.checkpoints.SaveCheckpoint(ctx, cp); err != nil {
		return storageErr("save checkpoint", err)
	}

	s.checkpoint = cp
	logger.Debug(ctx, "checkpoint saved",
		"checkpoint.source_block", cp.SourceBlock,
		"checkpoint.secondary_block", cp.SecondaryBlock,
		"checkpoint.round", cp.Round,
	)
	return nil
}

func newTickID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

type config struct {
	pollInterval time.Duration
	lagThreshold uint64
	roundLength  uint64
	sendPause    time.Duration
	explorerURL  string
	operatorID   string
	tracker      *tracker.Tracker
}

// Option configures the service.
type Option func(*config)

// New creates the watcher service.
//
// Defaults: 5m poll interval, 500 blocks lag threshold, 5760 blocks per
// round, 1.5s pause between sends, https://arbiscan.io explorer and no
// operator relay.
func New(deps Dependencies, opts ...Option) *service {
	cfg := config{
		pollInterval: 5 * time.Minute,
		lagThreshold: 500,
		roundLength:  5760,
		sendPause:    1500 * time.Millisecond,
		explorerURL:  "https://arbiscan.io",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.tracker == nil {
		cfg.tracker = tracker.New()
	}

	return &service{
		ledger:        deps.Ledger,
		secondary:     deps.Secondary,
		contracts:     deps.Contracts,
		subscriptions: deps.Subscriptions,
		checkpoints:   deps.Checkpoints,
		accumulators:  deps.Accumulators,
		notifier:      deps.Notifier,
		tracker:       cfg.tracker,
		pollInterval:  cfg.pollInterval,
		lagThreshold:  cfg.lagThreshold,
		roundLength:   cfg.roundLength,
		explorerURL:   cfg.explorerURL,
		operatorID:    cfg.operatorID,
		pacer:         &pacer{pause: cfg.sendPause, now: time.Now},
		instruments:   newInstruments(),
	}
}

// WithPollInterval sets the time between ticks.
func WithPollInterval(d time.Duration) Option {
	return func(c *config) {
		c.pollInterval = d
	}
}

// WithLagThreshold sets how many secondary blocks must pass since the last
// checkpoint before the incremental scans run.
func WithLagThreshold(blocks uint64) Option {
	return func(c *config) {
		c.lagThreshold = blocks
	}
}

// WithRoundLength sets the number of secondary blocks in a round.
func WithRoundLength(blocks uint64) Option {
	return func(c *config) {
		c.roundLength = blocks
	}
}

// WithSendPause sets the minimum pause between two notifications.
func WithSendPause(d time.Duration) Option {
	return func(c *config) {
		c.sendPause = d
	}
}

// WithExplorerURL sets the block explorer used for links in messages.
func WithExplorerURL(url string) Option {
	return func(c *config) {
		c.explorerURL = url
	}
}

// WithOperator sets the subscriber id that receives tick failures.
func WithOperator(id string) Option {
	return func(c *config) {
		c.operatorID = id
	}
}

// WithTracker sets the entity tracker, mostly useful to inspect state in tests.
func WithTracker(t *tracker.Tracker) Option {
	return func(c *config) {
		c.tracker = t
	}
}
