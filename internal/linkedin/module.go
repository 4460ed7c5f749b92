package linkedin

import (
	"github.com/brizzai/linkedin-connector/internal/auth/providers"
	"go.uber.org/fx"
)

// Module provides the LinkedIn provider and API client
var Module = fx.Options(
	fx.Provide(
		fx.Annotate(
			providers.NewLinkedInProvider,
			fx.As(new(providers.Provider)),
		),
		NewClient,
	),
)
