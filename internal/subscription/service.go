// Package subscription maintains which subscribers follow which orchestrator.
// It is the write side of the subscription store read by the watcher on
// every tick.
package subscription

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// Service defines the operations used to manage subscriptions.
//
// Implementations validate their input and delegate persistence to the
// configured Storage.
type Service interface {
	// Subscribe registers subscriberID for alerts about the orchestrator at
	// address. It returns ErrAlreadySubscribed if the pair already exists and
	// ErrNotRegistered if the address is not a registered orchestrator.
	Subscribe(ctx context.Context, address, subscriberID string) error

	// Unsubscribe removes subscriberID from the orchestrator at address. The
	// orchestrator stops being tracked once its last subscriber leaves.
	// It returns ErrNotSubscribed if the pair does not exist.
	Unsubscribe(ctx context.Context, address, subscriberID string) error

	// List returns every subscription ordered by orchestrator address.
	List(ctx context.Context) ([]Subscription, error)
}

// Subscription lists the subscribers of one orchestrator.
type Subscription struct {
	Orchestrator common.Address
	Subscribers  []string
}

// service is the concrete implementation of Service.
type service struct {
	storage  Storage
	registry RegistrationChecker
}

var _ Service = (*service)(nil)

// Option configures the service.
type Option func(*service)

// WithRegistrationChecker makes Subscribe refuse addresses that are not
// registered orchestrators.
func WithRegistrationChecker(r RegistrationChecker) Option {
	return func(s *service) {
		s.registry = r
	}
}

// New creates a subscription service backed by storage.
func New(storage Storage, opts ...Option) *service {
	s := &service{
		storage: storage,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}
