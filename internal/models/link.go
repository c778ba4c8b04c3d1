package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// DefaultTag is applied to links added without a tag.
const DefaultTag = "general"

// Link is one entry on a user's public profile.
type Link struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Tag       string `json:"tag"`
	MaxClicks *int64 `json:"max_clicks,omitempty"`
}

// IsLimited returns true if the link has a finite click budget.
func (l *Link) IsLimited() bool {
	return l.MaxClicks != nil && *l.MaxClicks > 0
}

// LinkStats is a link enriched with its counters for the owner's dashboard.
type LinkStats struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Tag       string `json:"tag"`
	Clicks    int64  `json:"clicks"`
	IsSnap    bool   `json:"is_snap"`
	Remaining *int64 `json:"remaining"`
}

// IsExhausted returns true if a limited link has used up its click budget.
func (s *LinkStats) IsExhausted() bool {
	return s.IsSnap && (s.Remaining == nil || *s.Remaining <= 0)
}

// FlexID is a link id that may arrive as a JSON string or number.
type FlexID string

// UnmarshalJSON accepts strings, numbers and null.
func (f *FlexID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %s", data)
	}
	*f = FlexID(n.String())
	return nil
}

// AddLinkRequest is the body accepted by the add-link endpoints. MaxClicks is
// loosely typed because clients send both numbers and strings.
type AddLinkRequest struct {
	Email     string `json:"email"`
	ID        FlexID `json:"id"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Tag       string `json:"tag"`
	MaxClicks any    `json:"max_clicks"`
}

// ErrInvalidClickLimit is returned when max_clicks is not a non-negative integer.
var ErrInvalidClickLimit = errors.New("max_clicks must be a non-negative integer")

// Link converts the request into a Link, generating an id when none was given.
func (r *AddLinkRequest) Link() (*Link, error) {
	id := string(r.ID)
	if id == "" {
		id = uuid.NewString()
	}

	limit, err := normalizeClickLimit(r.MaxClicks)
	if err != nil {
		return nil, err
	}

	tag := strings.TrimSpace(r.Tag)
	if tag == "" {
		tag = DefaultTag
	}

	return &Link{
		ID:        id,
		Title:     r.Title,
		URL:       strings.TrimSpace(r.URL),
		Tag:       tag,
		MaxClicks: limit,
	}, nil
}

// normalizeClickLimit returns nil for "no limit" (absent, zero, false or empty).
func normalizeClickLimit(v any) (*int64, error) {
	var n int64
	switch limit := v.(type) {
	case nil:
		return nil, nil
	case bool:
		if limit {
			return nil, ErrInvalidClickLimit
		}
		return nil, nil
	case string:
		if strings.TrimSpace(limit) == "" {
			return nil, nil
		}
		parsed, err := strconv.ParseInt(strings.TrimSpace(limit), 10, 64)
		if err != nil {
			return nil, ErrInvalidClickLimit
		}
		n = parsed
	case json.Number:
		parsed, err := limit.Int64()
		if err != nil {
			return nil, ErrInvalidClickLimit
		}
		n = parsed
	case float64:
		if limit != float64(int64(limit)) {
			return nil, ErrInvalidClickLimit
		}
		n = int64(limit)
	default:
		return nil, ErrInvalidClickLimit
	}

	if n < 0 {
		return nil, ErrInvalidClickLimit
	}
	if n == 0 {
		return nil, nil
	}
	return &n, nil
}
