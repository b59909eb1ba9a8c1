package solar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

var (
	errRateLimited   = errors.New("rate limited")
	errServerError   = errors.New("server error")
	errUnexpected    = errors.New("unexpected status code")
	errCircuitOpen   = errors.New("circuit breaker open")
	errNoHTTPClient  = errors.New("http client not configured")
	errInvalidConfig = errors.New("invalid retry configuration")
)

// retryPolicy is an exponential backoff schedule: Base, 2×Base, 4×Base ... capped at Cap.
type retryPolicy struct {
	Retries int
	Base    time.Duration
	Cap     time.Duration
}

func defaultRetryPolicy() retryPolicy {
	return retryPolicy{Retries: 3, Base: 500 * time.Millisecond, Cap: 5 * time.Second}
}

func (r retryPolicy) delay(attempt int) time.Duration {
	d := r.Base << uint(attempt)
	if r.Cap > 0 && (d > r.Cap || d <= 0) {
		d = r.Cap
	}
	return d
}

// apiClient issues GET requests to a third-party API through a circuit breaker,
// retrying rate limits, 5xx responses and transport failures.
type apiClient struct {
	http    *http.Client
	retry   retryPolicy
	breaker *gobreaker.CircuitBreaker
}

func newAPIClient(name string, client *http.Client) *apiClient {
	return &apiClient{
		http:  client,
		retry: defaultRetryPolicy(),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: 5,
			Interval:    time.Minute,
			Timeout:     2 * time.Minute,
		}),
	}
}

// get returns a 2xx response; the caller closes its body.
func (c *apiClient) get(ctx context.Context, rawURL string) (*http.Response, error) {
	if c.http == nil {
		return nil, errNoHTTPClient
	}
	if c.retry.Retries < 0 || c.retry.Base <= 0 {
		return nil, errInvalidConfig
	}

	for attempt := 0; ; attempt++ {
		resp, err := c.once(ctx, rawURL)
		if err == nil {
			return resp, nil
		}
		if !retryable(err) || attempt >= c.retry.Retries {
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.retry.delay(attempt)):
		}
	}
}

func (c *apiClient) once(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	out, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		if err := statusError(resp.StatusCode); err != nil {
			drain(resp)
			return nil, err
		}
		return resp, nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
	}
	if err != nil {
		return nil, err
	}
	return out.(*http.Response), nil
}

func statusError(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusTooManyRequests:
		return errRateLimited
	case code >= 500:
		return errServerError
	default:
		return fmt.Errorf("%w: %d", errUnexpected, code)
	}
}

func retryable(err error) bool {
	switch {
	case errors.Is(err, errUnexpected), errors.Is(err, errCircuitOpen):
		return false
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	}
	return true
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
}
