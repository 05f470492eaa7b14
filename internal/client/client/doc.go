// Package client talks to the simpletwitter gRPC backend.
//
// GRPCClient keeps one connection, attaches the session token obtained at
// login to every call as "authorization: Bearer <token>", and turns gRPC
// statuses back into the sentinel errors of package common, so callers can
// use errors.Is(err, common.ErrAlreadyFollowing) and similar checks.
// Transport failures surface as ErrUnavailable.
package client
