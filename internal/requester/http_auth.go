package requester

import (
	"errors"
	"net/http"
	"sync"

	"golang.org/x/oauth2"
)

// ErrNoToken is returned when a request is authorized before the token exchange
var ErrNoToken = errors.New("no access token available")

// AuthManager handles request authentication
type AuthManager interface {
	ApplyAuth(req *http.Request) error
}

// TokenAuthManager adds the bearer token obtained from the code exchange
type TokenAuthManager struct {
	mu    sync.RWMutex
	token *oauth2.Token
}

// NewTokenAuthManager creates a TokenAuthManager without a token
func NewTokenAuthManager() *TokenAuthManager {
	return &TokenAuthManager{}
}

// SetToken stores the token used for subsequent requests
func (a *TokenAuthManager) SetToken(token *oauth2.Token) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = token
}

// Token returns the stored token, or nil before the exchange
func (a *TokenAuthManager) Token() *oauth2.Token {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token
}

// ApplyAuth adds the Authorization header to the request
func (a *TokenAuthManager) ApplyAuth(req *http.Request) error {
	token := a.Token()
	if token == nil || token.AccessToken == "" {
		return ErrNoToken
	}
	// LinkedIn omits token_type, SetAuthHeader falls back to Bearer
	token.SetAuthHeader(req)
	return nil
}
