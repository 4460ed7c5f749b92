package providers

import (
	"context"

	"github.com/brizzai/linkedin-connector/internal/auth/models"
	"golang.org/x/oauth2"
)

// Provider defines the authorization-code flow of an OAuth identity provider
type Provider interface {
	// AuthorizationRequest returns the parameters of the consent page request
	AuthorizationRequest(state string) *models.AuthorizationRequest

	// GetAuthURL returns the consent page URL for the given state
	GetAuthURL(state string) string

	// ExchangeCode exchanges an authorization code for an access token
	ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error)
}
