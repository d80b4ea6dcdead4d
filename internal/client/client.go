// Package client talks to the HeartBreaker server over HTTP and maps its
// answers onto the collaborator error kinds used by the turn controller.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/Rukaro/HeartBreaker/internal/config"
	"github.com/Rukaro/HeartBreaker/internal/constants"
	"github.com/Rukaro/HeartBreaker/internal/game"
	"github.com/Rukaro/HeartBreaker/internal/logging"
)

// Client implements turn.Collaborator against the HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
	retries uint
	// backoff builds the retry schedule; tests shorten it.
	backoff func() backoff.BackOff
}

// New returns a client configured from cfg.
func New(cfg *config.ClientConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.ServerURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		retries: cfg.Retries,
		backoff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 200 * time.Millisecond
			b.MaxInterval = 2 * time.Second
			return b
		},
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// do performs one request and decodes a 2xx body into out. 4xx answers
// become *game.RejectedError, everything else a *game.TransportError.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}
	op := method + " " + path
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+constants.RouteAPIPrefix+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return &game.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &game.TransportError{Op: op, Err: err}
	}
	if resp.StatusCode >= 400 {
		var eb errorBody
		_ = json.Unmarshal(data, &eb)
		if eb.Error == "" {
			eb.Error = http.StatusText(resp.StatusCode)
		}
		if resp.StatusCode < 500 {
			return &game.RejectedError{Status: resp.StatusCode, Reason: eb.Error}
		}
		return &game.TransportError{Op: op, Err: fmt.Errorf("server error %d: %s", resp.StatusCode, eb.Error)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &game.TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// read retries idempotent requests on transport failures. Rejections are
// returned at once.
func (c *Client) read(ctx context.Context, method, path string, body, out interface{}) error {
	attempt := 0
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attempt++
		err := c.do(ctx, method, path, body, out)
		if err != nil && !game.IsRetryable(err) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	},
		backoff.WithBackOff(c.backoff()),
		backoff.WithMaxTries(c.retries+1),
		backoff.WithNotify(func(err error, _ time.Duration) {
			logging.Warn("retrying request", err, logging.Fields{
				constants.LogFieldPath:    path,
				constants.LogFieldAttempt: attempt,
			})
		}),
	)
	if err == nil || game.IsRetryable(err) {
		return err
	}
	if _, ok := game.RejectionReason(err); ok {
		return err
	}
	// Context expiry and request construction failures.
	return &game.TransportError{Op: method + " " + path, Err: err}
}

func gamePath(gameID, suffix string) string {
	return "/game/" + gameID + "/" + suffix
}

func (c *Client) NewGame(ctx context.Context) (game.Snapshot, error) {
	var snap game.Snapshot
	if err := c.do(ctx, http.MethodPost, "/game/new", nil, &snap); err != nil {
		return game.Snapshot{}, err
	}
	snap.Reindex()
	return snap, nil
}

func (c *Client) State(ctx context.Context, gameID string) (game.Snapshot, error) {
	var snap game.Snapshot
	if err := c.read(ctx, http.MethodGet, gamePath(gameID, "state"), nil, &snap); err != nil {
		return game.Snapshot{}, err
	}
	snap.Reindex()
	return snap, nil
}

func (c *Client) CheckEnemy(ctx context.Context, gameID string, enemyIndex int) (game.Reachability, error) {
	var r game.Reachability
	err := c.read(ctx, http.MethodPost, gamePath(gameID, "check-enemy"), map[string]int{"enemy_index": enemyIndex}, &r)
	return r, err
}

func (c *Client) ValidateExpression(ctx context.Context, gameID string, enemyIndex int, expression string) (game.Validation, error) {
	var v game.Validation
	err := c.read(ctx, http.MethodPost, gamePath(gameID, "validate-expression"), map[string]interface{}{
		"enemy_index": enemyIndex,
		"expression":  expression,
	}, &v)
	return v, err
}

// DefeatEnemy is never retried: a lost response may hide a committed attack.
func (c *Client) DefeatEnemy(ctx context.Context, gameID string, commit game.Commit) (game.Snapshot, error) {
	var snap game.Snapshot
	if err := c.do(ctx, http.MethodPost, gamePath(gameID, "defeat-enemy"), commit, &snap); err != nil {
		return game.Snapshot{}, err
	}
	snap.Reindex()
	return snap, nil
}

// Discard is never retried.
func (c *Client) Discard(ctx context.Context, gameID string, cardIndex int) (game.Snapshot, error) {
	var snap game.Snapshot
	if err := c.do(ctx, http.MethodPost, gamePath(gameID, "discard"), map[string]int{"card_index": cardIndex}, &snap); err != nil {
		return game.Snapshot{}, err
	}
	snap.Reindex()
	return snap, nil
}

func (c *Client) HandValues(ctx context.Context, gameID string) ([]game.HandValue, error) {
	var out struct {
		HandValues []game.HandValue `json:"hand_values"`
	}
	if err := c.read(ctx, http.MethodGet, gamePath(gameID, "hand-values"), nil, &out); err != nil {
		return nil, err
	}
	return out.HandValues, nil
}
