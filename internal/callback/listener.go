// Package callback receives the OAuth redirect on a local, short-lived
// HTTP server.
package callback

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/brizzai/linkedin-connector/internal/auth/models"
	"github.com/brizzai/linkedin-connector/internal/config"
	"github.com/brizzai/linkedin-connector/internal/logger"
	"github.com/brizzai/linkedin-connector/internal/utils"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const readHeaderTimeout = 10 * time.Second

// ErrTimeout is returned by Await when no code arrived in time
var ErrTimeout = errors.New("timed out waiting for the authorization redirect")

// ErrNotStarted is returned by Await before Start
var ErrNotStarted = errors.New("callback listener not started")

var (
	successPage = utils.HTMLPage{
		Title:   "LinkedIn Authorization",
		Heading: "Authorization Successful!",
		Message: "You can now close this window and return to the application.",
	}
	failurePage = utils.HTMLPage{
		Title:   "LinkedIn Authorization",
		Heading: "Authorization Failed!",
		Message: "Failed to get authorization code from LinkedIn.",
	}
)

// Listener serves the redirect URI until one authorization code arrives
type Listener struct {
	addr        string
	path        string
	verifyState bool

	mu            sync.Mutex
	expectedState string
	delivered     bool

	codes    chan models.AuthorizationCode
	errChan  chan error
	server   *http.Server
	listener net.Listener
}

// NewListener creates a listener for cfg. Nothing is bound until Start.
func NewListener(cfg *config.CallbackConfig) *Listener {
	addr := cfg.Addr
	if addr == "" {
		addr = config.DefaultCallbackAddr
	}
	path := cfg.Path
	if path == "" {
		path = config.DefaultCallbackPath
	}

	return &Listener{
		addr:        addr,
		path:        path,
		verifyState: cfg.VerifyState,
		codes:       make(chan models.AuthorizationCode, 1),
		errChan:     make(chan error, 1),
	}
}

// ExpectState sets the state a redirect must carry when verification is on
func (l *Listener) ExpectState(state string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.expectedState = state
}

// Start binds the address and serves in the background
func (l *Listener) Start() error {
	ln, err := net.Listen("tcp", l.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", l.addr, err)
	}

	l.listener = ln
	l.server = &http.Server{
		Handler:           l,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		logger.Info("Starting callback listener",
			zap.String("address", ln.Addr().String()),
			zap.String("path", l.path),
		)
		if err := l.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.errChan <- fmt.Errorf("callback server error: %w", err)
		}
	}()

	return nil
}

// URL returns the address the listener actually serves, useful with port 0
func (l *Listener) URL() string {
	addr := l.addr
	if l.listener != nil {
		addr = l.listener.Addr().String()
	}
	return "http://" + addr + l.path
}

// Await blocks until a code is delivered, the server fails, ctx is done or
// timeout elapses. A zero timeout waits for ctx only.
func (l *Listener) Await(ctx context.Context, timeout time.Duration) (string, error) {
	if l.server == nil {
		return "", ErrNotStarted
	}

	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case code := <-l.codes:
		return code.Code, nil
	case err := <-l.errChan:
		return "", err
	case <-ctx.Done():
		return "", ctx.Err()
	case <-expired:
		return "", ErrTimeout
	}
}

// Shutdown stops the server and releases the socket
func (l *Listener) Shutdown(ctx context.Context) error {
	if l.server == nil {
		return nil
	}

	logger.Debug("Shutting down callback listener")
	if err := l.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("callback listener shutdown error: %w", err)
	}
	return nil
}

// ServeHTTP handles the redirect from the consent page
func (l *Listener) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != l.path {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	code := query.Get("code")
	state := query.Get("state")

	if code == "" {
		fields := []zap.Field{}
		if providerErr := query.Get("error"); providerErr != "" {
			fields = append(fields,
				zap.String("error", providerErr),
				zap.String("error_description", query.Get("error_description")),
			)
		}
		logger.Warn("Authorization redirect without code", fields...)
		utils.WriteHTML(w, http.StatusBadRequest, failurePage)
		return
	}

	if !l.stateMatches(state) {
		logger.Warn("Authorization redirect with unexpected state", zap.String("state", state))
		utils.WriteHTML(w, http.StatusBadRequest, failurePage)
		return
	}

	utils.WriteHTML(w, http.StatusOK, successPage)
	l.deliver(models.AuthorizationCode{Code: code, State: state})
}

func (l *Listener) stateMatches(state string) bool {
	l.mu.Lock()
	expected := l.expectedState
	l.mu.Unlock()

	if !l.verifyState || expected == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(state), []byte(expected)) == 1
}

// deliver hands the first code to Await; later codes are dropped
func (l *Listener) deliver(code models.AuthorizationCode) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.delivered {
		logger.Debug("Ignoring repeated authorization redirect")
		return
	}
	l.delivered = true
	l.codes <- code
}

// Module provides the callback listener
var Module = fx.Options(
	fx.Provide(NewListener),
)
