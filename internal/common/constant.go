package common

// AuthorizationHeaderName is the HTTP header carrying the bearer access token.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token in the Authorization header.
const BearerPrefix = "Bearer "

// User roles stored in users.role and carried in the access token.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
