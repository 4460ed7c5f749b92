package constants

const (
	// TokenType for Bearer authentication
	TokenType = "Bearer"

	// AuthHeaderName is the name of the Authorization header
	AuthHeaderName = "Authorization"

	// RestliProtocolHeader selects the Rest.li protocol version on the v2 API
	RestliProtocolHeader  = "X-Restli-Protocol-Version"
	RestliProtocolVersion = "2.0.0"

	// RestliIDHeader carries the id of a newly created entity
	RestliIDHeader = "X-Restli-Id"

	// DefaultURNNamespace is the namespace of LinkedIn person URNs
	DefaultURNNamespace = "li"
)

// DefaultScopes are the member permissions the connector asks for
var DefaultScopes = []string{"r_liteprofile", "r_emailaddress", "w_member_social"}

// UGC post field values
const (
	LifecycleStatePublished = "PUBLISHED"
	ShareMediaCategoryNone  = "NONE"
	VisibilityPublic        = "PUBLIC"
)
