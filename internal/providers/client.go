package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// Unwrap selects how a provider's response envelope is peeled down to
// the raw record list
type Unwrap string

const (
	// UnwrapResponse handles the api-sports envelope {"response": [...]}.
	// Standings endpoints nest one more array level; that is flattened.
	UnwrapResponse Unwrap = "response"
	// UnwrapErgast digs out MRData.StandingsTable.StandingsLists[0].ConstructorStandings
	UnwrapErgast Unwrap = "ergast"
	// UnwrapArray handles providers returning a bare top-level array
	UnwrapArray Unwrap = "array"
)

// Source describes one upstream candidate: where to ask, how to
// authenticate, and how to unwrap what comes back
type Source struct {
	Name    string
	URL     string
	Query   url.Values
	Headers map[string]string
	Unwrap  Unwrap
}

// Outcome classifies a single fetch attempt. Failures carry the HTTP
// status (0 for transport errors) and a message; they never escape as
// errors past the client boundary.
type Outcome struct {
	OK      bool
	Records []map[string]any
	Status  int
	Message string
}

func success(records []map[string]any) Outcome {
	return Outcome{OK: true, Records: records}
}

func failure(status int, message string) Outcome {
	return Outcome{Status: status, Message: message}
}

// Client issues single-shot requests against upstream sports providers.
// Each provider name gets its own circuit breaker and outbound rate
// limiter; a tripped breaker reads as a failed attempt, feeding the
// caller's fallback chain.
type Client struct {
	httpClient *http.Client
	logger     *logrus.Logger
	rps        int

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker
	limiters map[string]*rate.Limiter
}

// NewClient creates an upstream client with a fixed per-request
// timeout and a per-provider requests-per-second ceiling
func NewClient(timeout time.Duration, rps int, logger *logrus.Logger) *Client {
	if rps <= 0 {
		rps = 10
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		rps:        rps,
		breakers:   make(map[string]*gobreaker.CircuitBreaker),
		limiters:   make(map[string]*rate.Limiter),
	}
}

// Fetch attempts the source exactly once. No retries, no backoff:
// fallback progression is the caller's job and later candidates only
// run after this one has definitively failed.
func (c *Client) Fetch(ctx context.Context, src Source) Outcome {
	if err := c.limiterFor(src.Name).Wait(ctx); err != nil {
		return failure(0, fmt.Sprintf("rate limiter wait aborted: %v", err))
	}

	result, err := c.breakerFor(src.Name).Execute(func() (interface{}, error) {
		return c.doRequest(ctx, src)
	})
	if err != nil {
		if outcome, ok := result.(Outcome); ok {
			return outcome
		}
		c.logger.WithFields(logrus.Fields{
			"provider": src.Name,
			"url":      src.URL,
		}).Warnf("Upstream fetch failed: %v", err)
		return failure(0, err.Error())
	}

	return result.(Outcome)
}

func (c *Client) doRequest(ctx context.Context, src Source) (Outcome, error) {
	reqURL := src.URL
	if len(src.Query) > 0 {
		reqURL = fmt.Sprintf("%s?%s", src.URL, src.Query.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return failure(0, err.Error()), err
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range src.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return failure(0, err.Error()), err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		outcome := failure(resp.StatusCode, fmt.Sprintf("unexpected status code: %d", resp.StatusCode))
		return outcome, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var body any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		outcome := failure(resp.StatusCode, fmt.Sprintf("unparsable payload: %v", err))
		return outcome, fmt.Errorf("unparsable payload: %w", err)
	}

	records, err := unwrapEnvelope(body, src.Unwrap)
	if err != nil {
		return failure(resp.StatusCode, err.Error()), err
	}

	return success(records), nil
}

func (c *Client) breakerFor(name string) *gobreaker.CircuitBreaker {
	c.mu.Lock()
	defer c.mu.Unlock()

	if breaker, ok := c.breakers[name]; ok {
		return breaker
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    name,
		Timeout: 60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			c.logger.WithFields(logrus.Fields{
				"component": "circuit_breaker",
				"provider":  name,
				"from":      from.String(),
				"to":        to.String(),
			}).Info("Circuit breaker state changed")
		},
	})
	c.breakers[name] = breaker
	return breaker
}

func (c *Client) limiterFor(name string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	if limiter, ok := c.limiters[name]; ok {
		return limiter
	}

	limiter := rate.NewLimiter(rate.Limit(c.rps), c.rps)
	c.limiters[name] = limiter
	return limiter
}

// unwrapEnvelope extracts the raw record list from a provider body.
// Anything that does not match the expected shape is an error, which
// the caller classifies as a failed attempt.
func unwrapEnvelope(body any, mode Unwrap) ([]map[string]any, error) {
	switch mode {
	case UnwrapResponse:
		obj, ok := body.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("expected JSON object envelope")
		}
		return toRecordList(obj["response"])
	case UnwrapErgast:
		obj, ok := body.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("expected JSON object envelope")
		}
		standings, ok := digPath(obj, "MRData", "StandingsTable", "StandingsLists")
		if !ok {
			return nil, fmt.Errorf("missing standings table")
		}
		lists, ok := standings.([]any)
		if !ok || len(lists) == 0 {
			return nil, fmt.Errorf("empty standings lists")
		}
		first, ok := lists[0].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("malformed standings list")
		}
		return toRecordList(first["ConstructorStandings"])
	case UnwrapArray:
		return toRecordList(body)
	default:
		return nil, fmt.Errorf("unknown unwrap mode: %s", mode)
	}
}

// toRecordList converts a decoded JSON value to []map[string]any,
// flattening one nested array level (standings endpoints group teams
// by conference/group).
func toRecordList(v any) ([]map[string]any, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected array payload")
	}

	records := make([]map[string]any, 0, len(list))
	for _, item := range list {
		switch entry := item.(type) {
		case map[string]any:
			records = append(records, entry)
		case []any:
			for _, nested := range entry {
				if m, ok := nested.(map[string]any); ok {
					records = append(records, m)
				}
			}
		}
	}
	return records, nil
}

func digPath(obj map[string]any, keys ...string) (any, bool) {
	var current any = obj
	for _, key := range keys {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}
