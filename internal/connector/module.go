package connector

import (
	"github.com/brizzai/linkedin-connector/internal/browser"
	"github.com/brizzai/linkedin-connector/internal/callback"
	"github.com/brizzai/linkedin-connector/internal/config"
	"github.com/brizzai/linkedin-connector/internal/linkedin"
	"github.com/brizzai/linkedin-connector/internal/posts"
	"github.com/brizzai/linkedin-connector/internal/requester"
	"go.uber.org/fx"
)

// Module provides the runner
var Module = fx.Module("connector",
	fx.Provide(
		NewRunner,
	),
)

// AppOptions wires every module around cfg
func AppOptions(cfg *config.Config) fx.Option {
	return fx.Options(
		fx.Supply(cfg, &cfg.LinkedIn, &cfg.Callback, &cfg.Post),
		requester.Module,
		linkedin.Module,
		callback.Module,
		posts.Module,
		browser.Module,
		Module,
	)
}
