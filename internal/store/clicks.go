package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// trackScript increments the total counter and, only if a remaining counter
// exists, decrements it in the same step. Returns {total, limited, remaining}.
var trackScript = redis.NewScript(`
local total = redis.call('INCR', KEYS[1])
if redis.call('EXISTS', KEYS[2]) == 1 then
	return {total, 1, redis.call('DECR', KEYS[2])}
end
return {total, 0, 0}
`)

// TrackResult reports the counters after a click.
type TrackResult struct {
	Total     int64
	Remaining *int64 // nil for unlimited links
}

// Track records one click on linkID. The remaining counter may go negative;
// readers treat anything at or below zero as exhausted.
func (s *Store) Track(ctx context.Context, linkID string) (*TrackResult, error) {
	if linkID == "" {
		return nil, ErrMissingLinkID
	}

	vals, err := trackScript.Run(ctx, s.rdb, []string{clicksKey(linkID), remainingKey(linkID)}).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("failed to track click: %w", err)
	}
	if len(vals) != 3 {
		return nil, fmt.Errorf("failed to track click: unexpected reply %v", vals)
	}

	res := &TrackResult{Total: vals[0]}
	if vals[1] == 1 {
		remaining := vals[2]
		res.Remaining = &remaining
	}
	return res, nil
}

// Clicks returns the total click count for linkID.
func (s *Store) Clicks(ctx context.Context, linkID string) (int64, error) {
	counters, err := s.counters(ctx, []string{clicksKey(linkID)})
	if err != nil {
		return 0, err
	}
	return counters[clicksKey(linkID)], nil
}
