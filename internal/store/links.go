package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"linkhub/internal/models"
)

// maxTxRetries bounds optimistic-lock retries when appending links.
const maxTxRetries = 10

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// AddLink appends link to the owner's list and, for limited links, seeds the
// remaining-click counter. The full list after the append is returned.
func (s *Store) AddLink(ctx context.Context, email string, link *models.Link) ([]models.Link, error) {
	if email == "" {
		return nil, ErrMissingEmail
	}
	if link.ID == "" {
		return nil, ErrMissingLinkID
	}

	key := linksKey(email)
	var updated []models.Link

	txf := func(tx *redis.Tx) error {
		links, err := readLinks(ctx, tx, key)
		if err != nil {
			return err
		}
		links = append(links, *link)

		data, err := json.Marshal(links)
		if err != nil {
			return fmt.Errorf("failed to encode links: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if link.IsLimited() {
				pipe.Set(ctx, remainingKey(link.ID), *link.MaxClicks, 0)
			}
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		if err == nil {
			updated = links
		}
		return err
	}

	for range maxTxRetries {
		err := s.rdb.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, fmt.Errorf("failed to add link: %w", err)
	}
	return nil, ErrConflict
}

// Links returns every link owned by email, in insertion order.
func (s *Store) Links(ctx context.Context, email string) ([]models.Link, error) {
	return readLinks(ctx, s.rdb, linksKey(email))
}

// ActiveLinks returns the owner's links minus limited links whose click
// budget is exhausted. Exhausted links are hidden, not deleted.
func (s *Store) ActiveLinks(ctx context.Context, email string) ([]models.Link, error) {
	links, err := s.Links(ctx, email)
	if err != nil {
		return nil, err
	}

	var keys []string
	for _, l := range links {
		if l.IsLimited() {
			keys = append(keys, remainingKey(l.ID))
		}
	}
	remaining, err := s.counters(ctx, keys)
	if err != nil {
		return nil, err
	}

	active := make([]models.Link, 0, len(links))
	for _, l := range links {
		if l.IsLimited() {
			left, ok := remaining[remainingKey(l.ID)]
			if !ok || left <= 0 {
				continue
			}
		}
		active = append(active, l)
	}
	return active, nil
}

// LinkStats returns every link owned by email, active or exhausted, with its
// total click count and, for limited links, the remaining budget.
func (s *Store) LinkStats(ctx context.Context, email string) ([]models.LinkStats, error) {
	links, err := s.Links(ctx, email)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, 2*len(links))
	for _, l := range links {
		keys = append(keys, clicksKey(l.ID), remainingKey(l.ID))
	}
	counters, err := s.counters(ctx, keys)
	if err != nil {
		return nil, err
	}

	stats := make([]models.LinkStats, 0, len(links))
	for _, l := range links {
		st := models.LinkStats{
			ID:     l.ID,
			Title:  l.Title,
			URL:    l.URL,
			Tag:    l.Tag,
			Clicks: counters[clicksKey(l.ID)],
			IsSnap: l.IsLimited(),
		}
		if left, ok := counters[remainingKey(l.ID)]; ok {
			st.Remaining = &left
		}
		stats = append(stats, st)
	}
	return stats, nil
}

func readLinks(ctx context.Context, r stringGetter, key string) ([]models.Link, error) {
	raw, err := r.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []models.Link{}, nil
		}
		return nil, fmt.Errorf("failed to get links: %w", err)
	}

	var links []models.Link
	if err := json.Unmarshal(raw, &links); err != nil {
		return nil, fmt.Errorf("failed to decode links: %w", err)
	}
	if links == nil {
		links = []models.Link{}
	}
	return links, nil
}

// counters reads integer values for keys. Missing keys are absent from the result.
func (s *Store) counters(ctx context.Context, keys []string) (map[string]int64, error) {
	out := make(map[string]int64, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	vals, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read counters: %w", err)
	}

	for i, v := range vals {
		str, ok := v.(string)
		if !ok {
			continue
		}
		n, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("counter %s is not an integer: %w", keys[i], err)
		}
		out[keys[i]] = n
	}
	return out, nil
}
