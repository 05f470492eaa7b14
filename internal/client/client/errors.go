package client

import (
	"errors"

	"github.com/dmitrijs2005/simpletwitter/internal/common"
	"google.golang.org/grpc/codes"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrNotLoggedIn  = errors.New("not logged in")
	ErrUnauthorized = errors.New("unauthorized")
)

// RemoteError is an error reported by the server. It unwraps to the common
// sentinel matching its Kind, when the kind is known.
type RemoteError struct {
	Code    codes.Code
	Kind    common.Kind
	Message string
	err     error
}

func (e *RemoteError) Error() string {
	return e.Message
}

func (e *RemoteError) Unwrap() error {
	return e.err
}
