package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"pspcatalog/internal/psp/models"
)

const (
	apiKeyHeader    = "Ocp-Apim-Subscription-Key"
	maxResponseSize = 8 << 20

	defaultFailureThreshold = 5
	defaultOpenTimeout      = 30 * time.Second
)

type servicesResponse struct {
	Services []models.UpstreamService `json:"services"`
	PageInfo *pageInfo                `json:"page_info"`
}

type pageInfo struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	ItemsFound int  `json:"items_found"`
	TotalPages *int `json:"total_pages"`
}

// Client reads the paginated upstream services feed.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     *slog.Logger

	failureThreshold uint32
	openTimeout      time.Duration
}

type Option func(*Client)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient replaces the default client. Its Timeout is the per-call limit.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithFailureThreshold sets how many consecutive retryable failures open the breaker.
func WithFailureThreshold(n uint32) Option {
	return func(c *Client) {
		if n > 0 {
			c.failureThreshold = n
		}
	}
}

// WithOpenTimeout sets how long the breaker stays open before probing again.
func WithOpenTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.openTimeout = d
		}
	}
}

func New(baseURL, apiKey string, timeout time.Duration, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("feed base url is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid feed base url: %w", err)
	}

	c := &Client{
		baseURL:          strings.TrimRight(baseURL, "/"),
		apiKey:           apiKey,
		httpClient:       &http.Client{Timeout: timeout},
		logger:           slog.Default(),
		failureThreshold: defaultFailureThreshold,
		openTimeout:      defaultOpenTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "psp-feed",
		Timeout: c.openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= c.failureThreshold
		},
		// Only upstream health problems count against the breaker.
		IsSuccessful: func(err error) bool {
			return err == nil || !IsRetryable(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("feed circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})
	return c, nil
}

// FetchPage requests one page of the services feed. Caller cancellation is
// returned as is and never counts as an upstream failure.
func (c *Client) FetchPage(ctx context.Context, pageIndex, pageSize int) (*models.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("feed page %d: %w", pageIndex, err)
	}
	out, err := c.breaker.Execute(func() (any, error) {
		return c.fetch(ctx, pageIndex, pageSize)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, newFeedError(CategoryOutage, pageIndex, "circuit open", err)
		}
		return nil, err
	}
	return out.(*models.Page), nil
}

func (c *Client) fetch(ctx context.Context, pageIndex, pageSize int) (*models.Page, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(pageIndex))
	q.Set("limit", strconv.Itoa(pageSize))
	endpoint := c.baseURL + "/services?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, newFeedError(CategoryBadData, pageIndex, "build request", err)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("feed page %d: %w", pageIndex, err)
		}
		if isTimeout(ctx, err) {
			return nil, newFeedError(CategoryTimeout, pageIndex, "request timed out", err)
		}
		return nil, newFeedError(CategoryOutage, pageIndex, "request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("feed page %d: %w", pageIndex, err)
		}
		if isTimeout(ctx, err) {
			return nil, newFeedError(CategoryTimeout, pageIndex, "reading body timed out", err)
		}
		return nil, newFeedError(CategoryOutage, pageIndex, "read body", err)
	}

	page, err := parseServicesResponse(resp.StatusCode, body, pageIndex)
	if err != nil {
		return nil, err
	}
	c.logger.DebugContext(ctx, "feed page fetched",
		"page", pageIndex,
		"services", len(page.Services),
		"total_pages", *page.TotalPages,
	)
	return page, nil
}

func parseServicesResponse(status int, body []byte, pageIndex int) (*models.Page, error) {
	if category, failed := categoryForStatus(status); failed {
		fe := newFeedError(category, pageIndex, fmt.Sprintf("unexpected status %d", status), nil)
		fe.StatusCode = status
		return nil, fe
	}

	var resp servicesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, newFeedError(CategoryBadData, pageIndex, "decode response", err)
	}
	if resp.PageInfo == nil || resp.PageInfo.TotalPages == nil {
		return nil, newFeedError(CategoryBadData, pageIndex, "missing total_pages", nil)
	}
	if *resp.PageInfo.TotalPages < 0 {
		return nil, newFeedError(CategoryBadData, pageIndex, "negative total_pages", nil)
	}

	total := *resp.PageInfo.TotalPages
	return &models.Page{
		Services:   resp.Services,
		PageIndex:  pageIndex,
		TotalPages: &total,
	}, nil
}

func categoryForStatus(status int) (Category, bool) {
	switch {
	case status >= 200 && status < 300:
		return "", false
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return CategoryAuth, true
	case status == http.StatusTooManyRequests:
		return CategoryRateLimited, true
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return CategoryTimeout, true
	case status >= 500:
		return CategoryOutage, true
	default:
		return CategoryBadData, true
	}
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
