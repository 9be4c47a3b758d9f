// Package adapters holds clients for external services the analyzer
// depends on, chiefly the NLP annotation service.
package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"time"

	"github.com/tekstlab/leesmeter/internal/annotation"
)

// RetryConfig controls the backoff loop around annotation requests.
type RetryConfig struct {
	MaxAttempts   int           `json:"max_attempts"`
	InitialDelay  time.Duration `json:"initial_delay"`
	MaxDelay      time.Duration `json:"max_delay"`
	BackoffFactor float64       `json:"backoff_factor"`
	JitterEnabled bool          `json:"jitter_enabled"`
}

// DefaultRetryConfig returns the retry defaults used against the
// annotation service.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:   3,
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      5 * time.Second,
		BackoffFactor: 2.0,
		JitterEnabled: true,
	}
}

// HTTPAnnotator calls an external tokenizer/parser service that turns
// raw text into sentences of dependency-parsed tokens.
type HTTPAnnotator struct {
	baseURL string
	client  *http.Client
	retry   RetryConfig
}

// NewHTTPAnnotator creates an annotator client for the service at
// baseURL.
func NewHTTPAnnotator(baseURL string, timeout time.Duration) *HTTPAnnotator {
	return &HTTPAnnotator{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		retry:   DefaultRetryConfig(),
	}
}

// WithRetry overrides the default retry behavior.
func (a *HTTPAnnotator) WithRetry(cfg RetryConfig) *HTTPAnnotator {
	a.retry = cfg
	return a
}

type annotateRequest struct {
	Text string `json:"text"`
}

// Annotate sends text to the annotation service and decodes the
// parsed document. Transient failures are retried with exponential
// backoff.
func (a *HTTPAnnotator) Annotate(ctx context.Context, text string) (*annotation.Document, error) {
	payload, err := json.Marshal(annotateRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("failed to encode annotation request: %w", err)
	}

	resp, err := a.doWithRetry(ctx, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/annotate", bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return a.client.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("annotation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("annotation service error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var doc annotation.Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode annotation response: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("annotation service returned an invalid document: %w", err)
	}

	return &doc, nil
}

// Healthy reports whether the annotation service answers its health
// endpoint. Used by the readiness probe.
func (a *HTTPAnnotator) Healthy(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("annotation service unreachable: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("annotation service unhealthy: status %d", resp.StatusCode)
	}
	return nil
}

// doWithRetry runs fn until it yields a non-retryable outcome or the
// attempt budget runs out. Response bodies of retried attempts are
// drained so connections can be reused.
func (a *HTTPAnnotator) doWithRetry(ctx context.Context, fn func() (*http.Response, error)) (*http.Response, error) {
	var lastResp *http.Response
	var lastErr error

	for attempt := 0; attempt < a.retry.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		resp, err := fn()
		if err == nil {
			if !retryableStatus(resp.StatusCode) {
				return resp, nil
			}
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			lastResp = nil
			lastErr = fmt.Errorf("annotation service returned status %d", resp.StatusCode)
		} else {
			lastErr = err
		}

		if attempt == a.retry.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(a.backoffDelay(attempt)):
		}
	}

	return lastResp, lastErr
}

// backoffDelay computes the exponential backoff for the given attempt,
// capped at MaxDelay, with up to 10% jitter.
func (a *HTTPAnnotator) backoffDelay(attempt int) time.Duration {
	delay := time.Duration(float64(a.retry.InitialDelay) * math.Pow(a.retry.BackoffFactor, float64(attempt)))
	if delay > a.retry.MaxDelay {
		delay = a.retry.MaxDelay
	}
	if a.retry.JitterEnabled && delay >= 10 {
		delay += time.Duration(rand.Int63n(int64(delay / 10)))
	}
	return delay
}

func retryableStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return true
	case http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
