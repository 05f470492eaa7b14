package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/simpletwitter/internal/api"
	"github.com/dmitrijs2005/simpletwitter/internal/common"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	dialOpts    []grpc.DialOption
	conn        *grpc.ClientConn

	mu          sync.RWMutex
	accessToken string
}

var _ Client = (*GRPCClient)(nil)

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	if token := s.token(); token != "" {
		ctx = withAccessToken(ctx, token)
	}

	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewGRPCClient creates a client for endpointURL. Extra dial options are
// appended after the defaults, which tests use to dial over bufconn.
func NewGRPCClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, dialOpts: opts}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {
	opts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(api.CodecName)),
	}, s.dialOpts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *GRPCClient) setToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = token
}

func (s *GRPCClient) LoggedIn() bool {
	return s.token() != ""
}

// Logout forgets the session token. Tokens are stateless, so nothing is
// sent to the server.
func (s *GRPCClient) Logout() {
	s.setToken("")
}

func (s *GRPCClient) invoke(ctx context.Context, method string, req, resp any) error {
	if err := s.conn.Invoke(ctx, api.FullMethod(method), req, resp); err != nil {
		return mapError(err)
	}
	return nil
}

func (s *GRPCClient) authed(ctx context.Context, method string, req, resp any) error {
	if !s.LoggedIn() {
		return ErrNotLoggedIn
	}
	return s.invoke(ctx, method, req, resp)
}

// mapError turns a gRPC status into a RemoteError carrying the server's
// error kind, or into ErrUnavailable when the server could not be reached.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}

	var kind common.Kind
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok && info.Domain == common.ErrorDomain {
			kind = common.Kind(info.Reason)
		}
	}

	if kind == "" {
		switch st.Code() {
		case codes.Unavailable, codes.DeadlineExceeded:
			return ErrUnavailable
		case codes.Unauthenticated, codes.PermissionDenied:
			return &RemoteError{Code: st.Code(), Message: st.Message(), err: ErrUnauthorized}
		default:
			return fmt.Errorf("rpc error: %w", err)
		}
	}

	return &RemoteError{
		Code:    st.Code(),
		Kind:    kind,
		Message: st.Message(),
		err:     common.ErrorOfKind(kind),
	}
}

func (s *GRPCClient) SignUp(ctx context.Context, req *api.SignUpRequest) (*api.Account, error) {
	var resp api.Account
	if err := s.invoke(ctx, api.MethodSignUp, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *GRPCClient) login(ctx context.Context, method, account string, password []byte) (*api.Account, error) {
	req := &api.LoginRequest{Account: account, Password: string(password)}

	var resp api.LoginResponse
	if err := s.invoke(ctx, method, req, &resp); err != nil {
		return nil, err
	}

	s.setToken(resp.Token)
	return &resp.User, nil
}

// Login authenticates a user account and keeps the session token for
// subsequent calls.
func (s *GRPCClient) Login(ctx context.Context, account string, password []byte) (*api.Account, error) {
	return s.login(ctx, api.MethodLogin, account, password)
}

func (s *GRPCClient) AdminLogin(ctx context.Context, account string, password []byte) (*api.Account, error) {
	return s.login(ctx, api.MethodAdminLogin, account, password)
}

func (s *GRPCClient) CurrentUser(ctx context.Context) (*api.UserProfile, error) {
	var resp api.UserProfile
	if err := s.authed(ctx, api.MethodGetCurrentUser, &api.Empty{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *GRPCClient) GetUser(ctx context.Context, id int64) (*api.UserProfile, error) {
	var resp api.UserProfile
	if err := s.authed(ctx, api.MethodGetUser, &api.GetUserRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *GRPCClient) PutProfile(ctx context.Context, req *api.PutProfileRequest) (*api.Account, error) {
	var resp api.Account
	if err := s.authed(ctx, api.MethodPutProfile, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *GRPCClient) RequestMediaUpload(ctx context.Context, kind string) (*api.MediaUploadResponse, error) {
	var resp api.MediaUploadResponse
	if err := s.authed(ctx, api.MethodRequestMediaUpload, &api.MediaUploadRequest{Kind: kind}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *GRPCClient) Follow(ctx context.Context, id int64) error {
	return s.authed(ctx, api.MethodFollow, &api.FollowRequest{ID: id}, &api.Status{})
}

func (s *GRPCClient) Unfollow(ctx context.Context, id int64) error {
	return s.authed(ctx, api.MethodUnfollow, &api.UnfollowRequest{FollowingID: id}, &api.Status{})
}

func (s *GRPCClient) TopUsers(ctx context.Context, limit int) ([]api.TopUser, error) {
	var resp api.TopUsersResponse
	if err := s.authed(ctx, api.MethodTopUsers, &api.TopUsersRequest{Limit: limit}, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

func (s *GRPCClient) Followers(ctx context.Context, id int64) ([]api.FollowEntry, error) {
	var resp api.FollowListResponse
	if err := s.authed(ctx, api.MethodFollowers, &api.FollowListRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return resp.Entries, nil
}

func (s *GRPCClient) Followings(ctx context.Context, id int64) ([]api.FollowEntry, error) {
	var resp api.FollowListResponse
	if err := s.authed(ctx, api.MethodFollowings, &api.FollowListRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return resp.Entries, nil
}

func (s *GRPCClient) ListAccounts(ctx context.Context) ([]api.AccountStats, error) {
	var resp api.AccountListResponse
	if err := s.authed(ctx, api.MethodAdminListAccounts, &api.Empty{}, &resp); err != nil {
		return nil, err
	}
	return resp.Accounts, nil
}
