package requester

import (
	"go.uber.org/fx"
)

// Module provides the requester module dependencies
var Module = fx.Options(
	fx.Provide(
		NewHTTPClient,
		fx.Annotate(
			NewTokenAuthManager,
			fx.As(fx.Self()),
			fx.As(new(AuthManager)),
		),
		NewHTTPRequester,
	),
)
