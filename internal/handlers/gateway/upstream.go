package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/client"

	"linkhub/internal/capability"
	"linkhub/internal/config"
	"linkhub/internal/metrics"
)

// Reason names why a fallback value was used instead of the upstream answer.
type Reason string

const (
	ReasonNone        Reason = ""
	ReasonUnreachable Reason = "unreachable" // connection error or timeout
	ReasonBadStatus   Reason = "bad_status"  // upstream answered outside 2xx
	ReasonBadBody     Reason = "bad_body"    // upstream body did not decode
)

// Result is the outcome of one upstream call: the decoded value, or the
// fallback together with the reason it was used.
type Result[T any] struct {
	Value  T
	Reason Reason
	Status int    // upstream status code, 0 when unreachable
	Raw    []byte // upstream body, when one was received
	Err    error
}

// Degraded reports whether Value is a fallback.
func (r Result[T]) Degraded() bool {
	return r.Reason != ReasonNone
}

// Upstream calls backend capabilities over HTTP.
type Upstream struct {
	client  *client.Client
	hosts   config.Upstreams
	timeout time.Duration
}

// NewUpstream creates an upstream caller with a default per-call timeout.
func NewUpstream(hosts config.Upstreams, timeout time.Duration) *Upstream {
	cc := client.New()
	cc.SetTimeout(timeout)
	return &Upstream{client: cc, hosts: hosts, timeout: timeout}
}

// Get fetches path from capability c and decodes the JSON answer into T.
// Any failure yields fallback with a reason; nothing is retried.
func Get[T any](ctx context.Context, u *Upstream, c capability.Capability, path string, fallback T) Result[T] {
	return call(ctx, u, fiber.MethodGet, c, path, nil, 0, fallback)
}

// Post sends body as JSON to capability c and decodes the answer into T.
// A zero timeout uses the upstream default.
func Post[T any](ctx context.Context, u *Upstream, c capability.Capability, path string, body any, timeout time.Duration, fallback T) Result[T] {
	return call(ctx, u, fiber.MethodPost, c, path, body, timeout, fallback)
}

func call[T any](ctx context.Context, u *Upstream, method string, c capability.Capability, path string, body any, timeout time.Duration, fallback T) Result[T] {
	res := Result[T]{Value: fallback}

	status, raw, err := u.send(ctx, method, c, path, body, timeout)
	switch {
	case err != nil:
		res.Reason, res.Err = ReasonUnreachable, err
	case status < 200 || status > 299:
		res.Reason, res.Err = ReasonBadStatus, fmt.Errorf("unexpected status %d", status)
	default:
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			res.Reason, res.Err = ReasonBadBody, err
		} else {
			res.Value = v
		}
	}
	res.Status, res.Raw = status, raw

	if res.Degraded() {
		slog.Warn("upstream degraded", "capability", c, "method", method, "path", path,
			"reason", res.Reason, "status", status, "error", res.Err)
		metrics.RecordUpstream(string(c), metrics.OutcomeDegraded)
	} else {
		metrics.RecordUpstream(string(c), metrics.OutcomeOK)
	}
	return res
}

// Fetch returns the raw body of a GET to capability c. Only 200 counts as success.
func (u *Upstream) Fetch(ctx context.Context, c capability.Capability, path string) ([]byte, error) {
	status, raw, err := u.send(ctx, fiber.MethodGet, c, path, nil, 0)
	if err == nil && status != fiber.StatusOK {
		err = fmt.Errorf("unexpected status %d", status)
	}
	if err != nil {
		metrics.RecordUpstream(string(c), metrics.OutcomeDegraded)
		return nil, err
	}
	metrics.RecordUpstream(string(c), metrics.OutcomeOK)
	return raw, nil
}

// send performs one request; body, when non-nil, is sent as JSON.
func (u *Upstream) send(ctx context.Context, method string, c capability.Capability, path string, body any, timeout time.Duration) (int, []byte, error) {
	if timeout <= 0 {
		timeout = u.timeout
	}
	cfg := client.Config{Ctx: ctx, Timeout: timeout, Body: body}
	url := u.hosts.URL(c, path)

	var (
		resp *client.Response
		err  error
	)
	if method == fiber.MethodPost {
		resp, err = u.client.Post(url, cfg)
	} else {
		resp, err = u.client.Get(url, cfg)
	}
	if err != nil {
		return 0, nil, err
	}
	defer resp.Close()

	return resp.StatusCode(), bytes.Clone(resp.Body()), nil
}
