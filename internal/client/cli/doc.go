// Package cli provides the interactive simpletwitter command-line client.
//
// It connects to the backend over gRPC, prompts for credentials (the
// password is read without echo) and runs a REPL with follow-graph commands:
// whoami, profile, follow, unfollow, top, followers and followings.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
