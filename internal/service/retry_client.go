package service

import (
	"net/http"
	"time"

	"github.com/brandongraves08/packstack/pkg/apperror"

	"github.com/rs/zerolog"
)

const (
	retryMaxAttempts = 3
	retryBaseDelay   = 1 * time.Second
	requestTimeout   = 10 * time.Second
)

// RetryClient issues HTTP requests with bounded retries on transport-level
// failures (timeouts, DNS errors, connection resets). Delays between attempts
// follow an exponential schedule: baseDelay, 2*baseDelay. Non-2xx responses
// are returned as-is and never retried; classifying them is the caller's job.
type RetryClient struct {
	client      *http.Client
	maxAttempts int
	baseDelay   time.Duration
	log         zerolog.Logger
}

// NewRetryClient creates a retry client. A nil httpClient gets a default
// client with the fixed per-attempt timeout.
func NewRetryClient(httpClient *http.Client, log zerolog.Logger) *RetryClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}
	return &RetryClient{
		client:      httpClient,
		maxAttempts: retryMaxAttempts,
		baseDelay:   retryBaseDelay,
		log:         log,
	}
}

// Do executes the request, retrying transport errors up to the attempt bound.
// Exhausting all attempts yields a structured provider-unavailable error.
func (r *RetryClient) Do(req *http.Request) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		if attempt > 0 {
			delay := r.baseDelay << (attempt - 1)
			select {
			case <-req.Context().Done():
				return nil, apperror.ErrProviderUnavailable(req.Context().Err())
			case <-time.After(delay):
			}
			// Request bodies are consumed on send; rewind before the retry.
			if req.GetBody != nil {
				body, err := req.GetBody()
				if err != nil {
					return nil, apperror.InternalError(err)
				}
				req.Body = body
			}
		}

		resp, err := r.client.Do(req)
		if err != nil {
			lastErr = err
			r.log.Warn().
				Err(err).
				Str("url", req.URL.String()).
				Int("attempt", attempt+1).
				Msg("provider request failed")
			continue
		}
		return resp, nil
	}

	return nil, apperror.ErrProviderUnavailable(lastErr)
}
