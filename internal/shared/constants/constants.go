package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// HTTP Headers
	HeaderContentType  = "Content-Type"
	HeaderXRequestID   = "X-Request-ID"
	HeaderSessionToken = "X-Session-Token"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyIdentity  = "identity"
	ContextKeySession   = "session"
	ContextKeyRequestID = "request_id"

	// Default session cookie
	DefaultSessionCookie = "session_token"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgUnauthorized        = "Login required"
	ErrMsgForbidden           = "Admin access required"
	ErrMsgTicketNotFound      = "Ticket not found"
)
