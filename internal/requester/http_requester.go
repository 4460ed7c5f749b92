package requester

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/brizzai/linkedin-connector/internal/config"
	"github.com/brizzai/linkedin-connector/internal/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// DefaultTimeout bounds a single API call when no timeout is configured
const DefaultTimeout = 30 * time.Second

// NewHTTPClient creates the client shared by the token exchange and the API calls
func NewHTTPClient(cfg *config.LinkedInConfig) *http.Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// HTTPRequester handles both request building and execution
type HTTPRequester struct {
	client  *http.Client
	builder *HTTPRequestBuilder
}

type HTTPRequesterParams struct {
	fx.In

	Client      *http.Client
	Config      *config.LinkedInConfig
	AuthManager AuthManager
}

// NewHTTPRequester creates a new HTTPRequester
func NewHTTPRequester(params HTTPRequesterParams) *HTTPRequester {
	client := params.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &HTTPRequester{
		client: client,
		builder: NewHTTPRequestBuilder(HTTPRequestBuilderParams{
			Config:      params.Config,
			AuthManager: params.AuthManager,
		}),
	}
}

// SetTimeout sets the timeout for the HTTP client
func (r *HTTPRequester) SetTimeout(timeout time.Duration) {
	r.client.Timeout = timeout
}

// Do builds and executes the route. Non-2xx statuses are not errors here,
// callers decide what a successful status is.
func (r *HTTPRequester) Do(ctx context.Context, route *Route) (*Response, error) {
	req, err := r.builder.BuildRequest(ctx, route)
	if err != nil {
		return nil, err
	}
	logger.Debug("request route", zap.String("method", req.Method), zap.String("url", req.URL))

	resp, err := r.execute(req)
	if err != nil {
		logger.Error("failed to execute request", zap.String("url", req.URL), zap.Error(err))
		return nil, err
	}

	logger.Debug("response received", zap.String("url", req.URL), zap.Int("status", resp.StatusCode))
	return resp, nil
}

// execute performs the actual HTTP request execution
func (r *HTTPRequester) execute(req *Request) (*Response, error) {
	resp, err := r.client.Do(req.HttpRequest)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Warn("failed to close response body", zap.Error(closeErr))
		}
	}()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       bodyBytes,
		Headers:    resp.Header,
	}, nil
}
