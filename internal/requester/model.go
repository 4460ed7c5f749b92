package requester

// Route describes one call against the REST API
type Route struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	// RawQuery is appended verbatim; LinkedIn projections such as
	// (elements*(handle~)) must not be percent-encoded
	RawQuery string            `json:"raw_query,omitempty"`
	Headers  map[string]string `json:"headers,omitempty"`
	// Body is marshalled as JSON when set
	Body interface{} `json:"body,omitempty"`
}
