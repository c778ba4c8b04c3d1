// Package testutil provides test utilities and helpers.
package testutil

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"linkhub/internal/store"
)

// TestStore starts an in-process Redis server and returns a store bound to it.
// Both are torn down when the test ends.
func TestStore(t *testing.T) (*store.Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return store.NewFromClient(rdb), mr
}

// Int64 returns a pointer to n.
func Int64(n int64) *int64 {
	return &n
}
