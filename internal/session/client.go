package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// API paths served by the session service.
const (
	PathBegin    = "/api/battles/begin"
	PathComplete = "/api/battles/complete"
)

// maxResponseSize caps how much of a response body is read.
const maxResponseSize = 1 << 20

// HTTPClient implements Service over JSON/HTTP.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient creates a client for the service at baseURL.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// BeginBattle opens a battle session.
func (c *HTTPClient) BeginBattle(ctx context.Context, opponentID, combatantID string) (BeginResult, error) {
	return post[BeginResult](ctx, c, "begin battle", PathBegin, BeginRequest{
		OpponentID:  opponentID,
		CombatantID: combatantID,
	})
}

// CompleteBattle reports a finished battle.
func (c *HTTPClient) CompleteBattle(ctx context.Context, req CompleteRequest) (Outcome, error) {
	return post[Outcome](ctx, c, "complete battle", PathComplete, req)
}

func post[T any](ctx context.Context, c *HTTPClient, op, path string, body any) (T, error) {
	var zero T

	payload, err := json.Marshal(body)
	if err != nil {
		return zero, fmt.Errorf("%s: encoding request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return zero, fmt.Errorf("%s: building request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return zero, fmt.Errorf("%s: reading response: %w", op, err)
	}

	var env Envelope[T]
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= 300 {
			return zero, &RemoteError{Op: op, Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return zero, fmt.Errorf("%s: decoding response: %w", op, err)
	}

	if !env.Success || resp.StatusCode >= 300 {
		return zero, &RemoteError{Op: op, Status: resp.StatusCode, Message: env.Message}
	}
	if env.Data == nil {
		return zero, fmt.Errorf("%s: %w", op, errEmptyData)
	}
	return *env.Data, nil
}

var errEmptyData = errors.New("response has no data")
