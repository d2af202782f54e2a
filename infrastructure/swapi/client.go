package swapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"socialgraph/application/ports"
	pkgerrors "socialgraph/pkg/errors"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// DefaultBaseURL is the public people collection
const DefaultBaseURL = "https://swapi.dev/api/people/"

// maxBodyBytes bounds a single page response
const maxBodyBytes = 4 << 20

// ClientConfig holds configuration for the people source client
type ClientConfig struct {
	BaseURL string
	// Timeout bounds one page request; zero means no timeout
	Timeout time.Duration
	// Breaker trips once MinRequests calls have been seen and the failure ratio reaches FailureRatio
	FailureRatio float64
	MinRequests  uint32
	OpenTimeout  time.Duration
}

// DefaultClientConfig returns the default configuration
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		BaseURL:      DefaultBaseURL,
		Timeout:      30 * time.Second,
		FailureRatio: 0.6,
		MinRequests:  3,
		OpenTimeout:  60 * time.Second,
	}
}

// pageResponse is the paginated collection envelope
type pageResponse struct {
	Count   int            `json:"count"`
	Next    *string        `json:"next"`
	Results []ports.Person `json:"results"`
}

// Client fetches people pages over HTTP behind a circuit breaker
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     *zap.Logger
}

// NewClient creates a people source client
func NewClient(cfg ClientConfig, logger *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, pkgerrors.NewValidationError(fmt.Sprintf("invalid people source URL %q", cfg.BaseURL))
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "people-source",
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    breaker,
		logger:     logger,
	}, nil
}

// PageURL returns the URL requested for a page
func (c *Client) PageURL(page int) string {
	u := *c.baseURL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String()
}

// FetchPage retrieves one page of people
func (c *Client) FetchPage(ctx context.Context, page int) ([]ports.Person, error) {
	if page < 1 {
		return nil, pkgerrors.NewValidationError("page must be >= 1")
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetch(ctx, page)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, pkgerrors.NewUnavailableError("people source").WithCause(err)
		}
		return nil, err
	}

	return result.([]ports.Person), nil
}

func (c *Client) fetch(ctx context.Context, page int) ([]ports.Person, error) {
	pageURL := c.PageURL(page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, pkgerrors.NewInternalError("build page request").WithCause(err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.NewNetworkError(fmt.Sprintf("fetch people page %d", page), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, pkgerrors.NewExternalError("people source",
			fmt.Errorf("page %d: status %d: %s", page, resp.StatusCode, string(snippet)))
	}

	var body pageResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&body); err != nil {
		return nil, pkgerrors.NewExternalError("people source", fmt.Errorf("decode page %d: %w", page, err))
	}
	if body.Results == nil {
		return nil, pkgerrors.NewExternalError("people source", fmt.Errorf("page %d: response has no results", page))
	}

	c.logger.Debug("Fetched people page",
		zap.String("url", pageURL),
		zap.Int("records", len(body.Results)),
		zap.Duration("duration", time.Since(start)),
	)

	return body.Results, nil
}

var _ ports.PeopleSource = (*Client)(nil)
