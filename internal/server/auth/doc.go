// Package auth holds the authentication primitives: the bcrypt password
// verifier, the HS256 token codec, the per-request Identity and the
// role-based authorization predicate.
package auth
