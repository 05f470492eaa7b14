// Package common defines shared constants and sentinel errors used across
// client and server layers of simpletwitter. Callers should use errors.Is to
// match these values and KindOf to obtain a stable machine-readable kind.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Authentication errors.
	ErrAccountNotFound = errors.New("account not found")
	ErrBadCredentials  = errors.New("bad credentials")
	ErrUnauthenticated = errors.New("missing token")
	ErrTokenExpired    = errors.New("token expired")
	ErrTokenMalformed  = errors.New("token malformed")

	// Authorization errors.
	ErrForbidden = errors.New("forbidden")

	// Follow graph errors.
	ErrSelfFollow       = errors.New("cannot follow yourself")
	ErrTargetNotFound   = errors.New("target account not found")
	ErrAlreadyFollowing = errors.New("already following")
	ErrNotFollowing     = errors.New("not following")

	// Account management errors.
	ErrInvalidArgument = errors.New("invalid argument")
	ErrAccountTaken    = errors.New("account already registered")
	ErrEmailTaken      = errors.New("email already registered")

	// Collaborator faults. Always surfaced, never retried here.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// Kind is a stable identifier of an error category that clients can branch on
// without matching message text.
type Kind string

const (
	KindUnknown            Kind = "UNKNOWN"
	KindAccountNotFound    Kind = "ACCOUNT_NOT_FOUND"
	KindBadCredentials     Kind = "BAD_CREDENTIALS"
	KindUnauthenticated    Kind = "UNAUTHENTICATED"
	KindTokenExpired       Kind = "TOKEN_EXPIRED"
	KindTokenMalformed     Kind = "TOKEN_MALFORMED"
	KindForbidden          Kind = "FORBIDDEN"
	KindSelfFollow         Kind = "SELF_FOLLOW"
	KindTargetNotFound     Kind = "TARGET_NOT_FOUND"
	KindAlreadyFollowing   Kind = "ALREADY_FOLLOWING"
	KindNotFollowing       Kind = "NOT_FOLLOWING"
	KindInvalidArgument    Kind = "INVALID_ARGUMENT"
	KindAccountTaken       Kind = "ACCOUNT_TAKEN"
	KindEmailTaken         Kind = "EMAIL_TAKEN"
	KindStorageUnavailable Kind = "STORAGE_UNAVAILABLE"
)

// kinds is ordered: the first sentinel matched by errors.Is wins, so domain
// kinds come before the storage fault that may wrap them.
var kinds = []struct {
	err  error
	kind Kind
}{
	{ErrAccountNotFound, KindAccountNotFound},
	{ErrBadCredentials, KindBadCredentials},
	{ErrUnauthenticated, KindUnauthenticated},
	{ErrTokenExpired, KindTokenExpired},
	{ErrTokenMalformed, KindTokenMalformed},
	{ErrForbidden, KindForbidden},
	{ErrSelfFollow, KindSelfFollow},
	{ErrTargetNotFound, KindTargetNotFound},
	{ErrAlreadyFollowing, KindAlreadyFollowing},
	{ErrNotFollowing, KindNotFollowing},
	{ErrInvalidArgument, KindInvalidArgument},
	{ErrAccountTaken, KindAccountTaken},
	{ErrEmailTaken, KindEmailTaken},
	{ErrStorageUnavailable, KindStorageUnavailable},
}

// KindOf returns the kind of err, or KindUnknown when err matches none of the
// sentinels above. A nil error has no kind and yields "".
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindUnknown
}

// ErrorOfKind is the inverse of KindOf for known kinds. It lets clients turn a
// kind received over the wire back into a sentinel usable with errors.Is.
// Unknown kinds yield nil.
func ErrorOfKind(kind Kind) error {
	for _, k := range kinds {
		if k.kind == kind {
			return k.err
		}
	}
	return nil
}
