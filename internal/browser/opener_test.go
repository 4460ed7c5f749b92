package browser

import (
	"testing"

	"github.com/brizzai/linkedin-connector/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestNewOpener(t *testing.T) {
	assert.IsType(t, SystemOpener{}, NewOpener(&config.Config{OpenBrowser: true}))
	assert.IsType(t, NoopOpener{}, NewOpener(&config.Config{OpenBrowser: false}))
}

func TestNoopOpener(t *testing.T) {
	assert.NoError(t, NoopOpener{}.Open("https://www.linkedin.com/oauth/v2/authorization"))
}
