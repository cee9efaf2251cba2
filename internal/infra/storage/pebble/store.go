// Package pebble implements the subscription, checkpoint and accumulator
// stores on an embedded Pebble database, for single process deployments
// without a Redis server.
package pebble

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/cockroachdb/pebble"
	"github.com/ethereum/go-ethereum/common"
)

// dbName is the directory created under the configured data dir.
const dbName = "orchwatch-store"

// Key prefixes. Address keyed records are the prefix byte followed by the 20
// address bytes.
const (
	checkpointPrefix   = 0x00
	subscriptionPrefix = 0x01
	accumulatorPrefix  = 0x02
)

// errNotFound is returned by get when the key does not exist.
var errNotFound = errors.New("store resource not found")

type Store struct {
	db *pebble.DB

	// subMu serializes the read-modify-write of subscriber lists.
	subMu sync.Mutex
}

func Open(dir string) (*Store, error) {
	db, err := pebble.Open(filepath.Join(dir, dbName), &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("opening pebble db: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func addressKey(prefix byte, addr common.Address) []byte {
	return append([]byte{prefix}, addr.Bytes()...)
}

func (s *Store) get(key []byte, v any) error {
	value, closer, err := s.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return errNotFound
	}
	if err != nil {
		return err
	}
	defer closer.Close()

	return json.Unmarshal(value, v)
}

func (s *Store) set(key []byte, v any) error {
	value, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return s.db.Set(key, value, pebble.Sync)
}
