package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gabapcia/orchwatch/internal/rewardwatch"
	"github.com/gabapcia/orchwatch/internal/subscription"

	"github.com/redis/go-redis/v9"
)

// ErrTxConflict is returned when a subscription update keeps conflicting with
// concurrent writers.
var ErrTxConflict = errors.New("subscription update conflicted with concurrent writes")

// subscriptionsKey is the hash mapping checksummed orchestrator addresses to
// a JSON array of subscriber ids.
//
// Format: "orchwatch:subscriptions"
var subscriptionsKey = key("subscriptions")

func decodeSubscribers(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}

	var subs []string
	if err := json.Unmarshal([]byte(raw), &subs); err != nil {
		return nil, fmt.Errorf("decode subscribers: %w", err)
	}
	return subs, nil
}

// addSubscriber and removeSubscriber are the list edits applied inside the
// optimistic transaction.
func addSubscriber(subs []string, id string) ([]string, error) {
	if slices.Contains(subs, id) {
		return nil, subscription.ErrAlreadySubscribed
	}
	return append(subs, id), nil
}

func removeSubscriber(subs []string, id string) ([]string, error) {
	i := slices.Index(subs, id)
	if i < 0 {
		return nil, subscription.ErrNotSubscribed
	}
	return slices.Delete(subs, i, i+1), nil
}

// updateSubscribers applies edit to the subscriber list of orchestrator under
// WATCH, retrying when another client modified the hash in between. An empty
// result removes the orchestrator.
func (c *client) updateSubscribers(ctx context.Context, orchestrator common.Address, edit func([]string) ([]string, error)) error {
	field := orchestrator.Hex()

	txf := func(tx *redis.Tx) error {
		raw, err := tx.HGet(ctx, subscriptionsKey, field).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}

		subs, err := decodeSubscribers(raw)
		if err != nil {
			return err
		}

		next, err := edit(subs)
		if err != nil {
			return err
		}

		encoded, err := json.Marshal(next)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			if len(next) == 0 {
				p.HDel(ctx, subscriptionsKey, field)
			} else {
				p.HSet(ctx, subscriptionsKey, field, encoded)
			}
			return nil
		})
		return err
	}

	for range maxTxAttempts {
		err := c.conn.Watch(ctx, txf, subscriptionsKey)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}

	return ErrTxConflict
}

// AddSubscriber implements subscription.Storage.
func (c *client) AddSubscriber(ctx context.Context, orchestrator common.Address, subscriberID string) error {
	return c.updateSubscribers(ctx, orchestrator, func(subs []string) ([]string, error) {
		return addSubscriber(subs, subscriberID)
	})
}

// RemoveSubscriber implements subscription.Storage.
func (c *client) RemoveSubscriber(ctx context.Context, orchestrator common.Address, subscriberID string) error {
	return c.updateSubscribers(ctx, orchestrator, func(subs []string) ([]string, error) {
		return removeSubscriber(subs, subscriberID)
	})
}

// ListSubscriptions implements subscription.Storage and
// rewardwatch.SubscriptionStorage.
func (c *client) ListSubscriptions(ctx context.Context) (map[common.Address][]string, error) {
	fields, err := c.conn.HGetAll(ctx, subscriptionsKey).Result()
	if err != nil {
		return nil, err
	}

	return decodeSubscriptions(fields)
}

func decodeSubscriptions(fields map[string]string) (map[common.Address][]string, error) {
	out := make(map[common.Address][]string, len(fields))
	for field, raw := range fields {
		if !common.IsHexAddress(field) {
			return nil, fmt.Errorf("invalid orchestrator address %q in %s", field, subscriptionsKey)
		}

		subs, err := decodeSubscribers(raw)
		if err != nil {
			return nil, err
		}
		if len(subs) > 0 {
			out[common.HexToAddress(field)] = subs
		}
	}
	return out, nil
}

var (
	_ subscription.Storage            = new(client)
	_ rewardwatch.SubscriptionStorage = new(client)
)
