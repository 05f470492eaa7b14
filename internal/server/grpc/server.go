package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/simpletwitter/internal/logging"
	"github.com/dmitrijs2005/simpletwitter/internal/server/auth"
	"github.com/dmitrijs2005/simpletwitter/internal/server/services"
	"google.golang.org/grpc"
)

// TokenAuthenticator resolves a bearer token into an identity.
type TokenAuthenticator interface {
	AuthenticateByToken(ctx context.Context, token string) (*auth.Identity, error)
}

// Services bundles the application services the RPC handlers delegate to.
type Services struct {
	Auth     *services.AuthService
	Accounts *services.AccountService
	Follows  *services.FollowService
	Graph    *services.GraphService
	Media    *services.MediaService
}

type GRPCServer struct {
	address  string
	logger   logging.Logger
	gate     TokenAuthenticator
	auth     *services.AuthService
	accounts *services.AccountService
	follows  *services.FollowService
	graph    *services.GraphService
	media    *services.MediaService
}

func NewGRPCServer(a string, l logging.Logger, svc Services) *GRPCServer {
	s := &GRPCServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		auth:     svc.Auth,
		accounts: svc.Accounts,
		follows:  svc.Follows,
		graph:    svc.Graph,
		media:    svc.Media,
	}
	if svc.Auth != nil {
		s.gate = svc.Auth
	}
	return s
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.authInterceptor))
	RegisterSimpleTwitterServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
