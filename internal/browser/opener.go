// Package browser opens the consent page for the member.
package browser

//go:generate mockgen -destination=mock_opener.go -package=browser . Opener

import (
	"github.com/brizzai/linkedin-connector/internal/config"
	"github.com/brizzai/linkedin-connector/internal/logger"
	pkgbrowser "github.com/pkg/browser"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Opener shows a URL to the user
type Opener interface {
	Open(url string) error
}

// SystemOpener uses the platform's default browser
type SystemOpener struct{}

func (SystemOpener) Open(url string) error {
	return pkgbrowser.OpenURL(url)
}

// NoopOpener leaves opening the URL to the user
type NoopOpener struct{}

func (NoopOpener) Open(url string) error {
	logger.Debug("Browser disabled, not opening URL", zap.String("url", url))
	return nil
}

// NewOpener returns the opener matching cfg.OpenBrowser
func NewOpener(cfg *config.Config) Opener {
	if !cfg.OpenBrowser {
		return NoopOpener{}
	}
	return SystemOpener{}
}

// Module provides the browser opener
var Module = fx.Options(
	fx.Provide(NewOpener),
)
