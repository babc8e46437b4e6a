package shared

// ContextKey is the type for context values set by API middleware.
type ContextKey string

// UsernameContextKey is the context key under which the auth middleware
// stores the verified username of the caller.
const UsernameContextKey ContextKey = "username"
