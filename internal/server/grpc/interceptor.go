package grpc

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/simpletwitter/internal/common"
	"github.com/dmitrijs2005/simpletwitter/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// bearerToken extracts the token from "authorization: Bearer <token>".
func bearerToken(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(common.AuthorizationHeaderName)
	if len(values) == 0 {
		return ""
	}
	scheme, token, found := strings.Cut(strings.TrimSpace(values[0]), " ")
	if !found || !strings.EqualFold(scheme, common.BearerScheme) {
		return ""
	}
	return strings.TrimSpace(token)
}

// authInterceptor is the auth gate: it authenticates the bearer token,
// checks the route's role and stores the identity in the context. Failed
// checks never reach the handler.
func (s *GRPCServer) authInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {

	r, ok := routes[info.FullMethod]
	if !ok {
		s.logger.Error(ctx, "no access rule for method", "method", info.FullMethod)
		return nil, status.Error(codes.Internal, "internal error")
	}

	if r.public {
		return handler(ctx, req)
	}

	if s.gate == nil {
		return nil, status.Error(codes.Unauthenticated, common.ErrUnauthenticated.Error())
	}

	identity, err := s.gate.AuthenticateByToken(ctx, bearerToken(ctx))
	if err != nil {
		s.logger.Warn(ctx, "authentication failed", "method", info.FullMethod, "kind", common.KindOf(err))
		return nil, authStatus(err)
	}

	if err := auth.Authorize(identity, r.role); err != nil {
		s.logger.Warn(ctx, "access denied", "method", info.FullMethod, "account_id", identity.ID(), "role", identity.Role())
		return nil, authStatus(err)
	}

	return handler(auth.WithIdentity(ctx, identity), req)
}
