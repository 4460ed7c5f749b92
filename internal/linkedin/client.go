// Package linkedin talks to the LinkedIn OAuth and v2 REST endpoints on
// behalf of a single member: code exchange, profile lookup and publishing.
package linkedin

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/brizzai/linkedin-connector/internal/auth/constants"
	"github.com/brizzai/linkedin-connector/internal/auth/models"
	"github.com/brizzai/linkedin-connector/internal/auth/providers"
	"github.com/brizzai/linkedin-connector/internal/config"
	"github.com/brizzai/linkedin-connector/internal/logger"
	"github.com/brizzai/linkedin-connector/internal/requester"
	"github.com/tidwall/gjson"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const (
	profilePath = "/me"
	emailPath   = "/emailAddress"
	emailQuery  = "q=members&projection=(elements*(handle~))"
	postsPath   = "/ugcPosts"

	// emailField is the gjson path of the primary email address
	emailField = `elements.0.handle\~.emailAddress`
)

// Client performs the token exchange and the member API calls
type Client struct {
	provider  providers.Provider
	requester *requester.HTTPRequester
	auth      *requester.TokenAuthManager
	namespace string
	identity  *models.UserIdentity
}

type ClientParams struct {
	fx.In

	Config    *config.LinkedInConfig
	Provider  providers.Provider
	Requester *requester.HTTPRequester
	Auth      *requester.TokenAuthManager
}

// NewClient creates a Client. The token is set by ExchangeToken.
func NewClient(params ClientParams) *Client {
	return &Client{
		provider:  params.Provider,
		requester: params.Requester,
		auth:      params.Auth,
		namespace: params.Config.URNNamespace,
	}
}

// AuthorizationRequest returns the consent request parameters for state
func (c *Client) AuthorizationRequest(state string) *models.AuthorizationRequest {
	return c.provider.AuthorizationRequest(state)
}

// AuthorizationURL returns the consent page URL. No network call is made.
func (c *Client) AuthorizationURL(state string) string {
	return c.provider.GetAuthURL(state)
}

// ExchangeToken trades the authorization code for an access token and keeps
// it for the following API calls.
func (c *Client) ExchangeToken(ctx context.Context, code string) error {
	token, err := c.provider.ExchangeCode(ctx, code)
	if err != nil {
		logger.Error("Error getting access token", zap.Error(err))
		return err
	}

	c.auth.SetToken(token)

	fields := []zap.Field{}
	if !token.Expiry.IsZero() {
		fields = append(fields, zap.Duration("expires_in", time.Until(token.Expiry).Round(time.Second)))
	}
	logger.Info("Access token obtained", fields...)
	return nil
}

// Token returns the access token, or nil before a successful exchange
func (c *Client) Token() *oauth2.Token {
	return c.auth.Token()
}

// Identity returns the identity fetched by FetchIdentity
func (c *Client) Identity() *models.UserIdentity {
	return c.identity
}

// FetchIdentity reads the member profile and, best effort, the primary
// email address.
func (c *Client) FetchIdentity(ctx context.Context) (*models.UserIdentity, error) {
	resp, err := c.requester.Do(ctx, &requester.Route{Method: http.MethodGet, Path: profilePath})
	if err != nil {
		logger.Error("Error getting profile", zap.Error(err))
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		logger.Error("Error getting profile",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", resp.Body),
		)
		return nil, &StatusError{Op: "get profile", StatusCode: resp.StatusCode, Body: resp.Body}
	}

	if !gjson.ValidBytes(resp.Body) {
		return nil, fmt.Errorf("failed to decode profile: invalid JSON")
	}
	profile := gjson.ParseBytes(resp.Body)

	id := profile.Get("id").String()
	if id == "" {
		return nil, fmt.Errorf("failed to decode profile: missing id")
	}

	identity := &models.UserIdentity{
		ID:        id,
		FirstName: profile.Get("localizedFirstName").String(),
		LastName:  profile.Get("localizedLastName").String(),
	}

	email, err := c.fetchEmail(ctx)
	if err != nil {
		logger.Warn("Error getting email", zap.Error(err))
	} else {
		identity.Email = email
	}

	c.identity = identity
	return identity, nil
}

func (c *Client) fetchEmail(ctx context.Context) (string, error) {
	resp, err := c.requester.Do(ctx, &requester.Route{
		Method:   http.MethodGet,
		Path:     emailPath,
		RawQuery: emailQuery,
	})
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{Op: "get email", StatusCode: resp.StatusCode, Body: resp.Body}
	}

	email := gjson.GetBytes(resp.Body, emailField)
	if !email.Exists() || email.String() == "" {
		return "", fmt.Errorf("no email address in response")
	}
	return email.String(), nil
}

// DraftPost builds the UGC payload for text authored by the fetched member
func (c *Client) DraftPost(text string) (*UGCPost, error) {
	if c.identity == nil || c.identity.ID == "" {
		return nil, ErrNoIdentity
	}
	return NewTextPost(PersonURN(c.namespace, c.identity.ID), text), nil
}

// PublishPost publishes text as a public post and returns the id LinkedIn
// assigned to it.
func (c *Client) PublishPost(ctx context.Context, text string) (string, error) {
	post, err := c.DraftPost(text)
	if err != nil {
		return "", err
	}

	resp, err := c.requester.Do(ctx, &requester.Route{
		Method: http.MethodPost,
		Path:   postsPath,
		Headers: map[string]string{
			constants.RestliProtocolHeader: constants.RestliProtocolVersion,
		},
		Body: post,
	})
	if err != nil {
		logger.Error("Error creating post", zap.Error(err))
		return "", fmt.Errorf("failed to create post: %w", err)
	}

	if resp.StatusCode != http.StatusCreated {
		logger.Error("Error creating post",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", resp.Body),
		)
		return "", &StatusError{Op: "create post", StatusCode: resp.StatusCode, Body: resp.Body}
	}

	postID := resp.Headers.Get(constants.RestliIDHeader)
	logger.Info("Post created", zap.String("post_id", postID))
	return postID, nil
}
