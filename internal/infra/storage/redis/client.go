// Package redis implements the subscription, checkpoint and accumulator
// stores on top of Redis hashes.
package redis

import (
	"context"
	"fmt"

	redis "github.com/redis/go-redis/v9"
)

// keyPrefix namespaces every key written by the stores.
const keyPrefix = "orchwatch"

// maxTxAttempts bounds the optimistic transaction retries on WATCH conflicts.
const maxTxAttempts = 5

func key(name string) string {
	return fmt.Sprintf("%s:%s", keyPrefix, name)
}

type client struct {
	conn *redis.Client
}

func (c *client) Close() error {
	return c.conn.Close()
}

func NewClient(ctx context.Context, addr, username, password string, db int) (*client, error) {
	conn := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
		DB:       db,
	})

	if err := conn.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &client{
		conn: conn,
	}, nil
}
