package constants

// Request headers consumed by the context resolver
const (
	HeaderAuthorization = "Authorization"
	HeaderAPIKey        = "Token"
	HeaderOrg           = "org"
)

// Gin context keys
const (
	ContextKeyRequestContext = "request_context"
	ContextKeyOrgID          = "org"
)

// DefaultOrgName is the fallback organization every self-registered user
// is attached to until they create or join a real one.
const DefaultOrgName = "Default Org"

// Password rules
const (
	MinPasswordLength = 8
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)
