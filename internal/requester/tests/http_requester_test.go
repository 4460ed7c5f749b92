package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brizzai/linkedin-connector/internal/config"
	"github.com/brizzai/linkedin-connector/internal/requester"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockAuthManager implements the AuthManager interface for testing
type MockAuthManager struct{}

func (m *MockAuthManager) ApplyAuth(req *http.Request) error {
	req.Header.Set("Authorization", "Bearer T")
	return nil
}

func TestHTTPRequester(t *testing.T) {
	tests := []struct {
		name           string
		route          *requester.Route
		timeout        time.Duration
		serverResponse func(w http.ResponseWriter, r *http.Request)
		checkResponse  func(t *testing.T, response *requester.Response, err error)
	}{
		{
			name:    "Simple GET Request",
			route:   &requester.Route{Method: http.MethodGet, Path: "/me"},
			timeout: 30 * time.Second,
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/me", r.URL.Path)
				assert.Equal(t, "Bearer T", r.Header.Get("Authorization"))
				w.WriteHeader(http.StatusOK)
				if err := json.NewEncoder(w).Encode(map[string]string{"id": "U"}); err != nil {
					t.Errorf("Failed to encode response: %v", err)
				}
			},
			checkResponse: func(t *testing.T, response *requester.Response, err error) {
				require.NoError(t, err)
				assert.Equal(t, http.StatusOK, response.StatusCode)

				var body map[string]string
				require.NoError(t, json.Unmarshal(response.Body, &body))
				assert.Equal(t, "U", body["id"])
			},
		},
		{
			name: "POST Request with Body",
			route: &requester.Route{
				Method: http.MethodPost,
				Path:   "/ugcPosts",
				Body:   map[string]string{"key1": "value1"},
			},
			timeout: 30 * time.Second,
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				var body map[string]interface{}
				if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
					t.Errorf("Failed to decode request: %v", err)
				}
				assert.Equal(t, "value1", body["key1"])

				w.Header().Set("X-Restli-Id", "P123")
				w.WriteHeader(http.StatusCreated)
			},
			checkResponse: func(t *testing.T, response *requester.Response, err error) {
				require.NoError(t, err)
				assert.Equal(t, http.StatusCreated, response.StatusCode)
				assert.Equal(t, "P123", response.Headers.Get("x-restli-id"))
			},
		},
		{
			name:    "Error Status Is Not An Error",
			route:   &requester.Route{Method: http.MethodGet, Path: "/me"},
			timeout: 30 * time.Second,
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"message":"expired"}`))
			},
			checkResponse: func(t *testing.T, response *requester.Response, err error) {
				require.NoError(t, err)
				assert.Equal(t, http.StatusUnauthorized, response.StatusCode)
				assert.JSONEq(t, `{"message":"expired"}`, string(response.Body))
			},
		},
		{
			name:    "Request Timeout",
			route:   &requester.Route{Method: http.MethodGet, Path: "/timeout"},
			timeout: 100 * time.Millisecond,
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(200 * time.Millisecond)
				w.WriteHeader(http.StatusOK)
			},
			checkResponse: func(t *testing.T, response *requester.Response, err error) {
				assert.Error(t, err)
				assert.Nil(t, response)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(tt.serverResponse))
			defer server.Close()

			r := requester.NewHTTPRequester(requester.HTTPRequesterParams{
				Client:      &http.Client{},
				Config:      &config.LinkedInConfig{APIBaseURL: server.URL},
				AuthManager: &MockAuthManager{},
			})
			r.SetTimeout(tt.timeout)

			resp, err := r.Do(context.Background(), tt.route)
			tt.checkResponse(t, resp, err)
		})
	}
}

func TestNewHTTPClient(t *testing.T) {
	assert.Equal(t, requester.DefaultTimeout, requester.NewHTTPClient(&config.LinkedInConfig{}).Timeout)
	assert.Equal(t, 5*time.Second, requester.NewHTTPClient(&config.LinkedInConfig{RequestTimeout: 5 * time.Second}).Timeout)
}
