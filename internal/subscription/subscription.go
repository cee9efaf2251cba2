package subscription

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gabapcia/orchwatch/internal/pkg/validator"
)

var (
	// ErrAlreadySubscribed is returned when the subscriber already follows the orchestrator.
	ErrAlreadySubscribed = errors.New("already subscribed")

	// ErrNotSubscribed is returned when the subscriber does not follow the orchestrator.
	ErrNotSubscribed = errors.New("not subscribed")

	// ErrNotRegistered is returned when the address is not a registered orchestrator.
	ErrNotRegistered = errors.New("address is not a registered orchestrator")
)

// Storage persists the subscriber lists keyed by orchestrator.
type Storage interface {
	// AddSubscriber appends subscriberID to the orchestrator's list. It
	// returns ErrAlreadySubscribed if it is already there.
	AddSubscriber(ctx context.Context, orchestrator common.Address, subscriberID string) error

	// RemoveSubscriber removes subscriberID from the orchestrator's list and
	// drops the orchestrator when the list becomes empty. It returns
	// ErrNotSubscribed if the subscriber was not there.
	RemoveSubscriber(ctx context.Context, orchestrator common.Address, subscriberID string) error

	// ListSubscriptions returns every orchestrator with its subscribers in
	// subscription order.
	ListSubscriptions(ctx context.Context) (map[common.Address][]string, error)
}

// RegistrationChecker reports whether an address is a registered orchestrator.
type RegistrationChecker interface {
	IsRegisteredTranscoder(ctx context.Context, addr common.Address) (bool, error)
}

// request is the validated input of Subscribe and Unsubscribe.
type request struct {
	Address      string `validate:"required,eth_addr"`
	SubscriberID string `validate:"required,max=64"`
}

// parseRequest validates the input and returns the canonical address.
func parseRequest(address, subscriberID string) (common.Address, error) {
	if err := validator.Validate(request{Address: address, SubscriberID: subscriberID}); err != nil {
		return common.Address{}, err
	}

	return common.HexToAddress(address), nil
}

// Subscribe implements Service.
func (s *service) Subscribe(ctx context.Context, address, subscriberID string) error {
	orchestrator, err := parseRequest(address, subscriberID)
	if err != nil {
		return err
	}

	if s.registry != nil {
		registered, err := s.registry.IsRegisteredTranscoder(ctx, orchestrator)
		if err != nil {
			return fmt.Errorf("check registration of %s: %w", orchestrator.Hex(), err)
		}
		if !registered {
			return fmt.Errorf("%w: %s", ErrNotRegistered, orchestrator.Hex())
		}
	}

	return s.storage.AddSubscriber(ctx, orchestrator, subscriberID)
}

// Unsubscribe implements Service.
func (s *service) Unsubscribe(ctx context.Context, address, subscriberID string) error {
	orchestrator, err := parseRequest(address, subscriberID)
	if err != nil {
		return err
	}

	return s.storage.RemoveSubscriber(ctx, orchestrator, subscriberID)
}

// List implements Service.
func (s *service) List(ctx context.Context) ([]Subscription, error) {
	subs, err := s.storage.ListSubscriptions(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Subscription, 0, len(subs))
	for addr, subscribers := range subs {
		out = append(out, Subscription{Orchestrator: addr, Subscribers: subscribers})
	}
	slices.SortFunc(out, func(a, b Subscription) int {
		return bytes.Compare(a.Orchestrator[:], b.Orchestrator[:])
	})

	return out, nil
}
