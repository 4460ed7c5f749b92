package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/brizzai/linkedin-connector/internal/auth/models"
	"github.com/brizzai/linkedin-connector/internal/config"
	"github.com/brizzai/linkedin-connector/internal/logger"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

type LinkedInProvider struct {
	oauth2Config *oauth2.Config
	httpClient   *http.Client
}

// NewLinkedInProvider builds the provider from the application credentials.
// LinkedIn expects client_id and client_secret in the form body, not in
// a basic auth header.
func NewLinkedInProvider(cfg *config.LinkedInConfig, client *http.Client) *LinkedInProvider {
	authBase := strings.TrimRight(cfg.AuthBaseURL, "/")
	return &LinkedInProvider{
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       cfg.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   authBase + "/authorization",
				TokenURL:  authBase + "/accessToken",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		httpClient: client,
	}
}

func (p *LinkedInProvider) AuthorizationRequest(state string) *models.AuthorizationRequest {
	return &models.AuthorizationRequest{
		ClientID:    p.oauth2Config.ClientID,
		RedirectURI: p.oauth2Config.RedirectURL,
		Scopes:      append([]string(nil), p.oauth2Config.Scopes...),
		State:       state,
	}
}

// GetAuthURL sets response_type, client_id, redirect_uri, scope and state
func (p *LinkedInProvider) GetAuthURL(state string) string {
	return p.oauth2Config.AuthCodeURL(state)
}

func (p *LinkedInProvider) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	if p.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	}

	token, err := p.oauth2Config.Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			logger.Error("Token endpoint rejected the authorization code",
				zap.Int("status", retrieveErr.Response.StatusCode),
				zap.ByteString("body", retrieveErr.Body),
			)
		}
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return token, nil
}
