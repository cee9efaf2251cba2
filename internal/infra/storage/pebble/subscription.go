package pebble

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/cockroachdb/pebble"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gabapcia/orchwatch/internal/rewardwatch"
	"github.com/gabapcia/orchwatch/internal/subscription"
)

func (s *Store) subscribers(orchestrator common.Address) ([]string, error) {
	var subs []string
	err := s.get(addressKey(subscriptionPrefix, orchestrator), &subs)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	return subs, err
}

// AddSubscriber implements subscription.Storage.
func (s *Store) AddSubscriber(_ context.Context, orchestrator common.Address, subscriberID string) error {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	subs, err := s.subscribers(orchestrator)
	if err != nil {
		return fmt.Errorf("getting subscribers: %w", err)
	}
	if slices.Contains(subs, subscriberID) {
		return subscription.ErrAlreadySubscribed
	}

	return s.set(addressKey(subscriptionPrefix, orchestrator), append(subs, subscriberID))
}

// RemoveSubscriber implements subscription.Storage. The orchestrator record
// is deleted together with its last subscriber.
func (s *Store) RemoveSubscriber(_ context.Context, orchestrator common.Address, subscriberID string) error {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	subs, err := s.subscribers(orchestrator)
	if err != nil {
		return fmt.Errorf("getting subscribers: %w", err)
	}

	i := slices.Index(subs, subscriberID)
	if i < 0 {
		return subscription.ErrNotSubscribed
	}
	subs = slices.Delete(subs, i, i+1)

	key := addressKey(subscriptionPrefix, orchestrator)
	if len(subs) == 0 {
		return s.db.Delete(key, pebble.Sync)
	}
	return s.set(key, subs)
}

// ListSubscriptions implements subscription.Storage and
// rewardwatch.SubscriptionStorage.
func (s *Store) ListSubscriptions(_ context.Context) (map[common.Address][]string, error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte{subscriptionPrefix},
		UpperBound: []byte{subscriptionPrefix + 1},
	})
	if err != nil {
		return nil, fmt.Errorf("creating iterator: %w", err)
	}
	defer iter.Close()

	out := make(map[common.Address][]string)
	for iter.First(); iter.Valid(); iter.Next() {
		key := iter.Key()
		if len(key) != 1+common.AddressLength {
			return nil, fmt.Errorf("malformed subscription key %x", key)
		}

		value, err := iter.ValueAndErr()
		if err != nil {
			return nil, fmt.Errorf("getting value from iter: %w", err)
		}

		var subs []string
		if err := json.Unmarshal(value, &subs); err != nil {
			return nil, fmt.Errorf("decode subscribers: %w", err)
		}
		out[common.BytesToAddress(key[1:])] = subs
	}

	return out, iter.Error()
}

var (
	_ subscription.Storage            = new(Store)
	_ rewardwatch.SubscriptionStorage = new(Store)
)
