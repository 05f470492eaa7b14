// Package common contains shared constants and sentinel errors used across
// simpletwitter components.
package common

// AuthorizationHeaderName is the gRPC metadata key carrying the bearer token.
const AuthorizationHeaderName = "authorization"

// BearerScheme prefixes the token inside the authorization header.
const BearerScheme = "Bearer"

// ErrorDomain is reported as the domain of structured error details.
const ErrorDomain = "simpletwitter"
