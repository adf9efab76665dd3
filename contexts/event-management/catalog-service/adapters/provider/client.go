package provider

import (
	"context"
	"encoding/json"
	"log/slog"
	"math/rand/v2"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	application "github.com/RadikAgl/events/contexts/event-management/catalog-service/application"
	"github.com/RadikAgl/events/contexts/event-management/catalog-service/ports"
)

const (
	defaultMaxAttempts    = 6
	defaultBackoffCap     = 60 * time.Second
	defaultConnectTimeout = 5 * time.Second
	defaultRequestTimeout = 30 * time.Second
	maxJitter             = 500 * time.Millisecond
)

// retriableStatuses are transient upstream conditions worth another attempt.
var retriableStatuses = map[int]struct{}{
	http.StatusRequestTimeout:      {},
	http.StatusTooManyRequests:     {},
	http.StatusInternalServerError: {},
	http.StatusBadGateway:          {},
	http.StatusServiceUnavailable:  {},
	http.StatusGatewayTimeout:      {},
}

// Config carries the ambient provider settings injected by the composition root.
type Config struct {
	BaseURL        string
	Token          string
	MaxAttempts    int
	BackoffCap     time.Duration
	RequestTimeout time.Duration
}

// Client pages through the provider HTTP API, retrying transiently failing
// pages with capped exponential backoff and honoring rate-limit hints.
// Page-level give-ups (retry exhaustion, client rejection) end the run early
// and are logged, never surfaced as errors: the stream is restartable only by
// a fresh Events call.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	token       string
	maxAttempts int
	backoffCap  time.Duration
	logger      *slog.Logger

	// sleep and jitter are injectable so retry schedules are testable.
	sleep  func(ctx context.Context, d time.Duration) error
	jitter func() time.Duration
}

type pageResponse struct {
	Results []ports.ProviderItem `json:"results"`
	Next    *string              `json:"next"`
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	backoffCap := cfg.BackoffCap
	if backoffCap <= 0 {
		backoffCap = defaultBackoffCap
	}
	requestTimeout := cfg.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: requestTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: defaultConnectTimeout}).DialContext,
			},
		},
		baseURL:     cfg.BaseURL,
		token:       cfg.Token,
		maxAttempts: maxAttempts,
		backoffCap:  backoffCap,
		logger:      application.ResolveLogger(logger),
		sleep:       sleepWithContext,
		jitter: func() time.Duration {
			return time.Duration(rand.Int64N(int64(maxJitter)))
		},
	}
}

// Events streams provider records page by page until the upstream reports no
// next page, a page comes back empty, or a page has to be given up on.
func (c *Client) Events(ctx context.Context, changedSince string, yield func(ports.ProviderItem) error) error {
	next := c.baseURL
	if changedSince != "" {
		next += "?changed_at=" + url.QueryEscape(changedSince)
	}

	for next != "" {
		page, ok, err := c.fetchPage(ctx, next)
		if err != nil {
			return err
		}
		if !ok || len(page.Results) == 0 {
			return nil
		}

		for _, item := range page.Results {
			if err := yield(item); err != nil {
				return err
			}
		}

		if page.Next == nil {
			return nil
		}
		next = *page.Next
	}
	return nil
}

// fetchPage runs the bounded per-page attempt loop. ok=false means the page
// (and with it the rest of the chain) was given up on; the error return is
// reserved for context cancellation.
func (c *Client) fetchPage(ctx context.Context, pageURL string) (pageResponse, bool, error) {
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		page, outcome, err := c.fetchOnce(ctx, pageURL, attempt)
		if err != nil {
			return pageResponse{}, false, err
		}
		switch outcome {
		case fetchOK:
			return page, true, nil
		case fetchAbort:
			return pageResponse{}, false, nil
		case fetchRetry:
		}
	}

	c.logger.Warn("page retry attempts exhausted",
		"event", "provider_page_retries_exhausted",
		"module", "event-management/catalog-service",
		"layer", "adapter",
		"url", pageURL,
		"attempts", c.maxAttempts,
	)
	return pageResponse{}, false, nil
}

type fetchOutcome int

const (
	fetchOK fetchOutcome = iota
	fetchRetry
	fetchAbort
)

func (c *Client) fetchOnce(ctx context.Context, pageURL string, attempt int) (pageResponse, fetchOutcome, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		c.logAbort(pageURL, "invalid page url: "+err.Error())
		return pageResponse{}, fetchAbort, nil
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return pageResponse{}, fetchRetry, ctx.Err()
		}
		if err := c.sleep(ctx, c.backoff(attempt)); err != nil {
			return pageResponse{}, fetchRetry, err
		}
		return pageResponse{}, fetchRetry, nil
	}
	defer resp.Body.Close()

	status := resp.StatusCode

	if status == http.StatusTooManyRequests {
		wait := c.backoff(attempt)
		if hint, ok := parseRetryAfter(resp.Header.Get("Retry-After")); ok {
			wait = hint
		}
		if err := c.sleep(ctx, wait); err != nil {
			return pageResponse{}, fetchRetry, err
		}
		return pageResponse{}, fetchRetry, nil
	}

	if _, ok := retriableStatuses[status]; ok {
		if err := c.sleep(ctx, c.backoff(attempt)); err != nil {
			return pageResponse{}, fetchRetry, err
		}
		return pageResponse{}, fetchRetry, nil
	}

	if status >= 400 {
		// Non-retriable rejection: the rest of this chain is unreachable.
		c.logAbort(pageURL, "HTTP "+strconv.Itoa(status))
		return pageResponse{}, fetchAbort, nil
	}

	var page pageResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		c.logAbort(pageURL, "malformed page body: "+err.Error())
		return pageResponse{}, fetchAbort, nil
	}
	return page, fetchOK, nil
}

// backoff grows exponentially per attempt with random jitter, capped.
func (c *Client) backoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	shift := uint(attempt - 1)
	if shift > 30 {
		shift = 30
	}
	wait := time.Duration(1<<shift)*time.Second + c.jitter()
	if wait > c.backoffCap {
		return c.backoffCap
	}
	return wait
}

// parseRetryAfter reads a server wait hint in seconds, floored at one second.
func parseRetryAfter(value string) (time.Duration, bool) {
	if value == "" {
		return 0, false
	}
	seconds, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	if seconds < 1 {
		seconds = 1
	}
	return time.Duration(seconds) * time.Second, true
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Client) logAbort(pageURL string, reason string) {
	c.logger.Warn("provider page chain aborted",
		"event", "provider_page_chain_aborted",
		"module", "event-management/catalog-service",
		"layer", "adapter",
		"url", pageURL,
		"reason", reason,
	)
}
