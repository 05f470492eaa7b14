package grpc

import (
	"errors"

	"github.com/dmitrijs2005/simpletwitter/internal/common"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var kindCodes = map[common.Kind]codes.Code{
	common.KindAccountNotFound:    codes.NotFound,
	common.KindBadCredentials:     codes.Unauthenticated,
	common.KindUnauthenticated:    codes.Unauthenticated,
	common.KindTokenExpired:       codes.Unauthenticated,
	common.KindTokenMalformed:     codes.Unauthenticated,
	common.KindForbidden:          codes.PermissionDenied,
	common.KindSelfFollow:         codes.FailedPrecondition,
	common.KindTargetNotFound:     codes.NotFound,
	common.KindAlreadyFollowing:   codes.AlreadyExists,
	common.KindNotFollowing:       codes.FailedPrecondition,
	common.KindInvalidArgument:    codes.InvalidArgument,
	common.KindAccountTaken:       codes.AlreadyExists,
	common.KindEmailTaken:         codes.AlreadyExists,
	common.KindStorageUnavailable: codes.Unavailable,
}

// toStatus converts a service error into a gRPC status carrying the error
// kind as an ErrorInfo reason. Storage and unknown faults never leak their
// cause to the caller.
func toStatus(err error) error {
	kind := common.KindOf(err)
	code, ok := kindCodes[kind]
	if !ok {
		return status.Error(codes.Internal, "internal error")
	}
	return withKind(code, kind, message(kind, err))
}

func message(kind common.Kind, err error) string {
	switch kind {
	case common.KindStorageUnavailable:
		return common.ErrStorageUnavailable.Error()
	case common.KindInvalidArgument:
		return err.Error()
	default:
		return common.ErrorOfKind(kind).Error()
	}
}

func withKind(code codes.Code, kind common.Kind, msg string) error {
	st := status.New(code, msg)
	if detailed, err := st.WithDetails(&errdetails.ErrorInfo{
		Reason: string(kind),
		Domain: common.ErrorDomain,
	}); err == nil {
		st = detailed
	}
	return st.Err()
}

// authStatus maps a failed token check. Anything short of a storage fault
// is reported as Unauthenticated, a token for a vanished account included.
func authStatus(err error) error {
	kind := common.KindOf(err)
	switch kind {
	case common.KindStorageUnavailable, common.KindUnknown:
		return toStatus(err)
	case common.KindForbidden:
		return withKind(codes.PermissionDenied, kind, message(kind, err))
	default:
		return withKind(codes.Unauthenticated, kind, message(kind, err))
	}
}

// loginStatus hides whether the account exists.
func loginStatus(err error) error {
	if errors.Is(err, common.ErrAccountNotFound) || errors.Is(err, common.ErrBadCredentials) {
		return withKind(codes.Unauthenticated, common.KindBadCredentials, "invalid account or password")
	}
	return toStatus(err)
}
