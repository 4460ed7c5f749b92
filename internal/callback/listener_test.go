package callback

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brizzai/linkedin-connector/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStartedListener(t *testing.T, cfg *config.CallbackConfig) *Listener {
	t.Helper()
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:0"
	}
	l := NewListener(cfg)
	require.NoError(t, l.Start())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = l.Shutdown(ctx)
	})
	return l
}

func TestListener_ServeHTTP(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		target      string
		verifyState bool
		wantStatus  int
		wantBody    string
		wantCode    string
	}{
		{
			name:       "code delivered",
			method:     http.MethodGet,
			target:     "/?code=X",
			wantStatus: http.StatusOK,
			wantBody:   "Authorization Successful!",
			wantCode:   "X",
		},
		{
			name:       "missing code",
			method:     http.MethodGet,
			target:     "/?state=abc",
			wantStatus: http.StatusBadRequest,
			wantBody:   "Authorization Failed!",
		},
		{
			name:       "provider error",
			method:     http.MethodGet,
			target:     "/?error=user_cancelled_login&error_description=The+user+cancelled",
			wantStatus: http.StatusBadRequest,
			wantBody:   "Authorization Failed!",
		},
		{
			name:       "empty code",
			method:     http.MethodGet,
			target:     "/?code=",
			wantStatus: http.StatusBadRequest,
			wantBody:   "Authorization Failed!",
		},
		{
			name:        "state mismatch",
			method:      http.MethodGet,
			target:      "/?code=X&state=forged",
			verifyState: true,
			wantStatus:  http.StatusBadRequest,
			wantBody:    "Authorization Failed!",
		},
		{
			name:        "state match",
			method:      http.MethodGet,
			target:      "/?code=X&state=expected",
			verifyState: true,
			wantStatus:  http.StatusOK,
			wantCode:    "X",
		},
		{
			name:       "state ignored without verification",
			method:     http.MethodGet,
			target:     "/?code=X&state=anything",
			wantStatus: http.StatusOK,
			wantCode:   "X",
		},
		{
			name:       "other path",
			method:     http.MethodGet,
			target:     "/favicon.ico",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "wrong method",
			method:     http.MethodPost,
			target:     "/?code=X",
			wantStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newStartedListener(t, &config.CallbackConfig{VerifyState: tt.verifyState})
			l.ExpectState("expected")

			rec := httptest.NewRecorder()
			l.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
				assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
			}

			code, err := l.Await(context.Background(), 50*time.Millisecond)
			if tt.wantCode == "" {
				assert.ErrorIs(t, err, ErrTimeout)
				assert.Empty(t, code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestListener_FirstCodeWins(t *testing.T) {
	l := newStartedListener(t, &config.CallbackConfig{})

	for _, target := range []string{"/?code=first", "/?code=second"} {
		rec := httptest.NewRecorder()
		l.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	code, err := l.Await(context.Background(), time.Second)
	require.NoError(t, err)
	assert.Equal(t, "first", code)

	_, err = l.Await(context.Background(), 50*time.Millisecond)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestListener_RoundTrip(t *testing.T) {
	l := newStartedListener(t, &config.CallbackConfig{Path: "/auth/linkedin/callback", VerifyState: true})
	l.ExpectState("s1")

	// Browsers ask for a favicon first, it must not satisfy the wait
	resp, err := http.Get("http://" + l.listener.Addr().String() + "/favicon.ico")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Get(l.URL() + "?code=abc&state=s1")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "You can now close this window")

	code, err := l.Await(context.Background(), time.Second)
	require.NoError(t, err)
	assert.Equal(t, "abc", code)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, l.Shutdown(ctx))

	_, err = http.Get(l.URL() + "?code=late")
	assert.Error(t, err, "socket must be released after shutdown")
}

func TestListener_Await(t *testing.T) {
	t.Run("not started", func(t *testing.T) {
		l := NewListener(&config.CallbackConfig{})
		_, err := l.Await(context.Background(), time.Millisecond)
		assert.ErrorIs(t, err, ErrNotStarted)
	})

	t.Run("context cancelled", func(t *testing.T) {
		l := newStartedListener(t, &config.CallbackConfig{})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := l.Await(ctx, 0)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestListener_StartAddressInUse(t *testing.T) {
	first := newStartedListener(t, &config.CallbackConfig{})

	second := NewListener(&config.CallbackConfig{Addr: first.listener.Addr().String()})
	assert.Error(t, second.Start())
}

func TestNewListener_Defaults(t *testing.T) {
	l := NewListener(&config.CallbackConfig{})
	assert.Equal(t, config.DefaultCallbackAddr, l.addr)
	assert.Equal(t, config.DefaultCallbackPath, l.path)
	assert.Equal(t, "http://localhost:3000/", l.URL())
}
