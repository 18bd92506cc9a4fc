package fetcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

// Policy bounds one logical fetch: total attempts, per-attempt timeout and
// the linear backoff base (wait = BackoffBase * attempt number).
type Policy struct {
	MaxAttempts int
	Timeout     time.Duration
	BackoffBase time.Duration
}

// Request describes one upstream call. RetryableStatus decides whether a
// non-2xx status is transient for this provider; when nil, 429 and 5xx are
// retried.
type Request struct {
	Method          string
	URL             string
	Query           url.Values
	Headers         map[string]string
	Body            []byte
	RetryableStatus func(status int) bool
}

// TransientError marks failures worth retrying: transport errors, timeouts
// and provider statuses that mean "try again".
type TransientError struct {
	Message string
	Err     error
}

func (e *TransientError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transient upstream failure: %s: %v", e.Message, e.Err)
	}
	return "transient upstream failure: " + e.Message
}

func (e *TransientError) Unwrap() error { return e.Err }

// TerminalError marks failures no retry can fix (client errors, rejected
// credentials). Message carries the upstream body verbatim for diagnostics.
type TerminalError struct {
	StatusCode int
	Message    string
}

func (e *TerminalError) Error() string {
	return fmt.Sprintf("upstream rejected request (status %d): %s", e.StatusCode, e.Message)
}

// IsTransient reports whether err is (or wraps) a TransientError.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// IsTerminal reports whether err is (or wraps) a TerminalError.
func IsTerminal(err error) bool {
	var te *TerminalError
	return errors.As(err, &te)
}

// Client performs remote calls with bounded retries. It never touches the
// cache layer; composing services decide what to do with the payload.
type Client struct {
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{httpClient: &http.Client{}}
}

// NewClientWithTransport is used by tests to stub the network.
func NewClientWithTransport(rt http.RoundTripper) *Client {
	return &Client{httpClient: &http.Client{Transport: rt}}
}

func defaultRetryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

// Do executes the request under the given policy. Attempts are sequential;
// a success short-circuits immediately, a terminal error aborts the loop,
// and the final transient failure is returned with the last upstream
// message attached.
func (c *Client) Do(ctx context.Context, req Request, policy Policy) ([]byte, error) {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	retryable := req.RetryableStatus
	if retryable == nil {
		retryable = defaultRetryable
	}

	var lastErr error
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		payload, err := c.doOnce(ctx, req, policy.Timeout, retryable)
		if err == nil {
			return payload, nil
		}
		if IsTerminal(err) {
			return nil, err
		}
		lastErr = err
		logrus.WithError(err).Warnf("[FETCH] attempt %d/%d failed for %s", attempt, policy.MaxAttempts, req.URL)

		if attempt == policy.MaxAttempts {
			break
		}

		// Linear backoff, cooperative with the caller's context.
		select {
		case <-time.After(policy.BackoffBase * time.Duration(attempt)):
		case <-ctx.Done():
			return nil, &TransientError{Message: "fetch cancelled during backoff", Err: ctx.Err()}
		}
	}

	return nil, fmt.Errorf("all %d attempts failed: %w", policy.MaxAttempts, lastErr)
}

func (c *Client) doOnce(ctx context.Context, req Request, timeout time.Duration, retryable func(int) bool) ([]byte, error) {
	attemptCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	target := req.URL
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(attemptCtx, method, target, body)
	if err != nil {
		return nil, &TerminalError{Message: fmt.Sprintf("malformed request: %v", err)}
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransientError{Message: "transport failure", Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransientError{Message: "reading response body", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if retryable(resp.StatusCode) {
			return nil, &TransientError{Message: fmt.Sprintf("status %d: %s", resp.StatusCode, string(payload))}
		}
		return nil, &TerminalError{StatusCode: resp.StatusCode, Message: string(payload)}
	}

	return payload, nil
}
