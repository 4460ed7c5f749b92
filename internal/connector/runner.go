// Package connector runs the authorize, exchange, profile and publish
// pipeline end to end.
package connector

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/brizzai/linkedin-connector/internal/browser"
	"github.com/brizzai/linkedin-connector/internal/callback"
	"github.com/brizzai/linkedin-connector/internal/config"
	"github.com/brizzai/linkedin-connector/internal/linkedin"
	"github.com/brizzai/linkedin-connector/internal/logger"
	"github.com/brizzai/linkedin-connector/internal/posts"
	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// shutdownTimeout is the maximum time to wait for the callback listener to stop
const shutdownTimeout = 5 * time.Second

// Runner executes one connection test
type Runner struct {
	cfg      *config.Config
	client   *linkedin.Client
	listener *callback.Listener
	opener   browser.Opener
	picker   *posts.Picker
	newState func() string
}

type RunnerParams struct {
	fx.In

	Config   *config.Config
	Client   *linkedin.Client
	Listener *callback.Listener
	Opener   browser.Opener
	Picker   *posts.Picker
}

// NewRunner creates a Runner
func NewRunner(params RunnerParams) *Runner {
	return &Runner{
		cfg:      params.Config,
		client:   params.Client,
		listener: params.Listener,
		opener:   params.Opener,
		picker:   params.Picker,
		newState: uuid.NewString,
	}
}

// Run authorizes the application, fetches the member profile and publishes
// a test post. Each step runs only when the previous one succeeded.
func (r *Runner) Run(ctx context.Context) error {
	if missing := r.cfg.MissingSecrets(); len(missing) > 0 {
		logger.Warn("LinkedIn credentials are not configured, authorization will likely fail",
			zap.Strings("missing", missing),
		)
	}

	code, err := r.authorize(ctx)
	if err != nil {
		return err
	}
	pterm.Success.Println("Authorization code received!")

	if err := r.client.ExchangeToken(ctx, code); err != nil {
		return fmt.Errorf("failed to get access token: %w", err)
	}
	pterm.Success.Println("Access token obtained successfully!")

	identity, err := r.client.FetchIdentity(ctx)
	if err != nil {
		return fmt.Errorf("failed to get user profile: %w", err)
	}
	pterm.Println(renderIdentity(identity))

	text := r.picker.Pick()
	pterm.Info.Printfln("Creating test post with content:\n%q", text)

	if r.cfg.Post.DryRun {
		return r.printDraft(text)
	}

	postID, err := r.client.PublishPost(ctx, text)
	if err != nil {
		return fmt.Errorf("failed to create test post: %w", err)
	}

	pterm.Success.Printfln("Post created successfully! Post ID: %s", postID)
	pterm.Success.Println("LinkedIn API connection test completed successfully!")
	return nil
}

// authorize runs the consent round trip. The listener is shut down before
// authorize returns, so no later call overlaps with it.
func (r *Runner) authorize(ctx context.Context) (code string, err error) {
	state := r.newState()
	authURL := r.client.AuthorizationURL(state)
	r.listener.ExpectState(state)

	if err := r.listener.Start(); err != nil {
		return "", fmt.Errorf("failed to start callback listener: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if shutdownErr := r.listener.Shutdown(shutdownCtx); shutdownErr != nil {
			logger.Error("Failed to stop callback listener", zap.Error(shutdownErr))
			if err == nil {
				err = shutdownErr
			}
		}
	}()

	pterm.Info.Println("Please authorize the application by visiting this URL:")
	pterm.Println(authURL)

	if err := r.opener.Open(authURL); err != nil {
		logger.Warn("Failed to open browser, visit the URL manually", zap.Error(err))
	}

	spinner, spinErr := pterm.DefaultSpinner.Start("Waiting for authorization...")
	if spinErr != nil {
		logger.Debug("Spinner unavailable", zap.Error(spinErr))
	}

	code, err = r.listener.Await(ctx, r.cfg.Callback.Timeout)
	if spinner != nil {
		if err != nil {
			spinner.Fail("No authorization received")
		} else {
			spinner.Success("Authorization received")
		}
	}
	if err != nil {
		return "", fmt.Errorf("failed to receive authorization code: %w", err)
	}
	return code, nil
}

func (r *Runner) printDraft(text string) error {
	post, err := r.client.DraftPost(text)
	if err != nil {
		return err
	}

	payload, err := json.MarshalIndent(post, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode post: %w", err)
	}

	pterm.Warning.Println("Dry run, the post was not published. Payload:")
	pterm.Println(string(payload))
	return nil
}
