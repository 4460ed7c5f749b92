package requester

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/brizzai/linkedin-connector/internal/config"

	"go.uber.org/fx"
)

// HTTPRequestBuilderParams holds the parameters for creating an HTTPRequestBuilder
type HTTPRequestBuilderParams struct {
	fx.In
	Config      *config.LinkedInConfig
	AuthManager AuthManager
}

// HTTPRequestBuilder turns routes into authorized HTTP requests
type HTTPRequestBuilder struct {
	baseURL string
	authMgr AuthManager
}

// NewHTTPRequestBuilder creates a new HTTPRequestBuilder
func NewHTTPRequestBuilder(params HTTPRequestBuilderParams) *HTTPRequestBuilder {
	return &HTTPRequestBuilder{
		baseURL: strings.TrimRight(params.Config.APIBaseURL, "/"),
		authMgr: params.AuthManager,
	}
}

// BuildRequest builds an authorized request for the route
func (b *HTTPRequestBuilder) BuildRequest(ctx context.Context, route *Route) (*Request, error) {
	if route == nil {
		return nil, fmt.Errorf("route is nil")
	}

	url := b.buildURL(route)

	body, contentType, err := b.createRequestBody(route)
	if err != nil {
		return nil, fmt.Errorf("failed to create request body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, route.Method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	headers := make(map[string]string, len(route.Headers))
	for key, value := range route.Headers {
		headers[key] = value
		httpReq.Header.Set(key, value)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	if err := b.authMgr.ApplyAuth(httpReq); err != nil {
		return nil, fmt.Errorf("failed to apply authentication: %w", err)
	}

	return &Request{
		URL:         url,
		Method:      route.Method,
		Body:        body,
		Headers:     headers,
		ContentType: contentType,
		HttpRequest: httpReq,
	}, nil
}

func (b *HTTPRequestBuilder) buildURL(route *Route) string {
	url := b.baseURL + route.Path
	if route.RawQuery != "" {
		url += "?" + route.RawQuery
	}
	return url
}

func (b *HTTPRequestBuilder) createRequestBody(route *Route) (io.Reader, string, error) {
	if route.Body == nil {
		return nil, "", nil
	}

	jsonData, err := json.Marshal(route.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal request body: %w", err)
	}
	return bytes.NewReader(jsonData), "application/json", nil
}
