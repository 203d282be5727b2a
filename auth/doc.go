// Package auth provides the optional bearer token check in front of the
// Fortune Compass HTTP endpoint.
//
// An Authenticator validates an incoming bearer token string and returns a
// UserInfo (or an error). The streaming HTTP handler extracts the token from
// the Authorization header and maps the sentinel errors to HTTP challenges.
// When a token is accepted, sessions created by the request are bound to
// UserInfo.UserID and may only be reused by the same user.
//
// # Access Token Authentication
//
// NewFromDiscovery validates JWT access tokens using OpenID Connect discovery
// to locate the issuer's JWKS. NewFromJWKS skips discovery and reads keys
// from a fixed URL. Both refresh keys in the background.
//
//	authn, err := auth.NewFromDiscovery(ctx, "https://issuer.example", "https://compass.example/mcp",
//	    auth.WithRequiredScopes("fortune:read"),
//	)
//	if err != nil { log.Fatal(err) }
//
// # Errors
//
// ErrUnauthorized signals the token is invalid (signature, expiry, audience).
// ErrInsufficientScope signals successful authentication but missing
// required scope(s).
package auth
