// Package tracker keeps the in-memory state of every orchestrator that has at
// least one subscriber. The set of tracked orchestrators is reconciled against
// the subscription store on each tick, while the per-orchestrator reward and
// activity flags survive reconciliation.
package tracker

import (
	"bytes"
	"maps"
	"slices"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// Status is a three-valued flag. Unknown is the state of a freshly tracked
// orchestrator and suppresses every alert that depends on the flag until an
// observation resolves it.
type Status uint8

const (
	Unknown Status = iota
	True
	False
)

// String returns the lower-case name of the status.
func (s Status) String() string {
	switch s {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}

// Entity is a tracked orchestrator.
type Entity struct {
	Address      common.Address // canonical address; Hex() renders the checksummed form
	RewardCalled Status         // whether reward was called in the current round
	Active       Status         // whether the orchestrator is in the active set
	Subscribers  []string       // subscriber ids, in subscription order
}

// Diff summarizes the effect of a reconciliation.
type Diff struct {
	Added   []common.Address
	Removed []common.Address
	Updated []common.Address
}

// Tracker owns the tracked entities. All methods are safe for concurrent use.
type Tracker struct {
	mu       sync.Mutex
	entities map[common.Address]*Entity
}

// New returns an empty Tracker.
func New() *Tracker {
	return &Tracker{
		entities: make(map[common.Address]*Entity),
	}
}

// Reconcile aligns the tracked set with subscriptions: entries that are gone
// (or left without subscribers) are removed, new ones are added with Unknown
// flags, and existing ones only get their subscriber list replaced.
func (t *Tracker) Reconcile(subscriptions map[common.Address][]string) Diff {
	t.mu.Lock()
	defer t.mu.Unlock()

	var diff Diff

	for addr := range t.entities {
		if len(subscriptions[addr]) == 0 {
			delete(t.entities, addr)
			diff.Removed = append(diff.Removed, addr)
		}
	}

	for addr, subscribers := range subscriptions {
		if len(subscribers) == 0 {
			continue
		}

		if e, ok := t.entities[addr]; ok {
			if !slices.Equal(e.Subscribers, subscribers) {
				e.Subscribers = slices.Clone(subscribers)
				diff.Updated = append(diff.Updated, addr)
			}
			continue
		}

		t.entities[addr] = &Entity{
			Address:      addr,
			RewardCalled: Unknown,
			Active:       Unknown,
			Subscribers:  slices.Clone(subscribers),
		}
		diff.Added = append(diff.Added, addr)
	}

	sortAddresses(diff.Added)
	sortAddresses(diff.Removed)
	sortAddresses(diff.Updated)
	return diff
}

// Get returns a copy of the entity tracked under addr.
func (t *Tracker) Get(addr common.Address) (Entity, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entities[addr]
	if !ok {
		return Entity{}, false
	}
	return e.clone(), true
}

// Entities returns a snapshot of all tracked entities ordered by address.
func (t *Tracker) Entities() []Entity {
	t.mu.Lock()
	defer t.mu.Unlock()

	addrs := slices.Collect(maps.Keys(t.entities))
	sortAddresses(addrs)

	out := make([]Entity, 0, len(addrs))
	for _, addr := range addrs {
		out = append(out, t.entities[addr].clone())
	}
	return out
}

// Len returns the number of tracked entities.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.entities)
}

// SetRewardCalled updates the reward flag of addr. It returns false if addr is
// not tracked.
func (t *Tracker) SetRewardCalled(addr common.Address, s Status) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entities[addr]
	if ok {
		e.RewardCalled = s
	}
	return ok
}

// SetActive updates the activity flag of addr. It returns false if addr is not
// tracked.
func (t *Tracker) SetActive(addr common.Address, s Status) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entities[addr]
	if ok {
		e.Active = s
	}
	return ok
}

// ResetRewardCalled sets the reward flag of every entity to False. It is
// called exactly once per round boundary.
func (t *Tracker) ResetRewardCalled() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, e := range t.entities {
		e.RewardCalled = False
	}
}

func (e *Entity) clone() Entity {
	c := *e
	c.Subscribers = slices.Clone(e.Subscribers)
	return c
}

func sortAddresses(addrs []common.Address) {
	slices.SortFunc(addrs, func(a, b common.Address) int {
		return bytes.Compare(a[:], b[:])
	})
}
