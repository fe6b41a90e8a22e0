// Package heartbeat implements the fire-and-forget coordinator notification
// client (spec.md §6): a periodic HTTP HEAD to /heartbeat?id=&status=&
// stage=&progress=, giving up after a run of consecutive failures.
package heartbeat

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// MaxConsecutiveFailures is when the client stops attempting further
// heartbeats entirely (spec.md §6: "after 20 consecutive failures the
// client stops attempting").
const MaxConsecutiveFailures = 20

// Status is the coordinator-facing run status reported alongside progress.
type Status string

const (
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

// Client periodically reports this node's status to a coordinator endpoint.
// The reporter never raises (spec.md §7): every send error is absorbed and
// only counted toward the consecutive-failure limit.
type Client struct {
	baseURL    string
	nodeID     string
	httpClient *http.Client

	stopped bool
}

// New builds a heartbeat client targeting baseURL (e.g.
// "http://coordinator:8080") for the given node id.
func New(baseURL, nodeID string) *Client {
	return &Client{
		baseURL:    baseURL,
		nodeID:     nodeID,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// Send issues one HEAD request, retrying transient failures with an
// exponential backoff capped at a handful of attempts before this single
// call gives up (distinct from the consecutive-failure budget Run tracks
// across calls).
func (c *Client) Send(ctx context.Context, stage string, status Status, progress float64) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return err
	}
	u.Path = "/heartbeat"
	q := u.Query()
	q.Set("id", c.nodeID)
	q.Set("status", string(status))
	q.Set("stage", stage)
	q.Set("progress", strconv.FormatFloat(progress, 'f', -1, 64))
	u.RawQuery = q.Encode()

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 10 * time.Millisecond
	exp.Multiplier = 1.5
	exp.MaxInterval = 100 * time.Millisecond
	policy := backoff.WithMaxRetries(exp, 2)

	return backoff.Retry(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, u.String(), nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 500 {
			return fmt.Errorf("heartbeat: coordinator returned %d", resp.StatusCode)
		}
		return nil
	}, backoff.WithContext(policy, ctx))
}

// Run reports stage/progress via progressFn on every tick until ctx is
// cancelled or MaxConsecutiveFailures consecutive Send calls fail, at
// which point it stops attempting further heartbeats (spec.md §6).
func (c *Client) Run(ctx context.Context, interval time.Duration, stage func() (string, Status, float64)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	failures := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if c.stopped {
				return
			}
			name, status, progress := stage()
			if err := c.Send(ctx, name, status, progress); err != nil {
				failures++
				log.Printf("WARNING: heartbeat send failed (%d/%d consecutive): %v", failures, MaxConsecutiveFailures, err)
				if failures >= MaxConsecutiveFailures {
					log.Printf("ERROR: heartbeat client giving up after %d consecutive failures", failures)
					c.stopped = true
				}
				continue
			}
			failures = 0
		}
	}
}
