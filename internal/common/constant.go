package common

// AuthorizationHeaderName carries the bearer session token on every
// authenticated request.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token inside the Authorization header.
const BearerPrefix = "Bearer "

// MaxUploadSize is the default upload ceiling (10 MiB).
const MaxUploadSize int64 = 10 << 20

// InvalidTokenMessage is the gateway's answer to a bearer token that fails
// verification. Clients treat it as the end of their session.
const InvalidTokenMessage = "Invalid or expired token"
