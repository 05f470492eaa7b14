package grpc

import (
	"context"

	"github.com/dmitrijs2005/simpletwitter/internal/api"
	"google.golang.org/grpc"
)

// SimpleTwitterServer is the set of RPCs served under api.ServiceName.
type SimpleTwitterServer interface {
	SignUp(context.Context, *api.SignUpRequest) (*api.Account, error)
	Login(context.Context, *api.LoginRequest) (*api.LoginResponse, error)
	AdminLogin(context.Context, *api.LoginRequest) (*api.LoginResponse, error)
	GetCurrentUser(context.Context, *api.Empty) (*api.UserProfile, error)
	GetUser(context.Context, *api.GetUserRequest) (*api.UserProfile, error)
	PutAccount(context.Context, *api.PutAccountRequest) (*api.Account, error)
	PutProfile(context.Context, *api.PutProfileRequest) (*api.Account, error)
	RequestMediaUpload(context.Context, *api.MediaUploadRequest) (*api.MediaUploadResponse, error)
	Follow(context.Context, *api.FollowRequest) (*api.Status, error)
	Unfollow(context.Context, *api.UnfollowRequest) (*api.Status, error)
	TopUsers(context.Context, *api.TopUsersRequest) (*api.TopUsersResponse, error)
	Followers(context.Context, *api.FollowListRequest) (*api.FollowListResponse, error)
	Followings(context.Context, *api.FollowListRequest) (*api.FollowListResponse, error)
	AdminListAccounts(context.Context, *api.Empty) (*api.AccountListResponse, error)
}

// unary builds the method descriptor protoc would otherwise generate for a
// single request/response RPC.
func unary[Req, Resp any](method string, call func(SimpleTwitterServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(SimpleTwitterServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: api.FullMethod(method),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(SimpleTwitterServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: api.ServiceName,
	HandlerType: (*SimpleTwitterServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(api.MethodSignUp, SimpleTwitterServer.SignUp),
		unary(api.MethodLogin, SimpleTwitterServer.Login),
		unary(api.MethodAdminLogin, SimpleTwitterServer.AdminLogin),
		unary(api.MethodGetCurrentUser, SimpleTwitterServer.GetCurrentUser),
		unary(api.MethodGetUser, SimpleTwitterServer.GetUser),
		unary(api.MethodPutAccount, SimpleTwitterServer.PutAccount),
		unary(api.MethodPutProfile, SimpleTwitterServer.PutProfile),
		unary(api.MethodRequestMediaUpload, SimpleTwitterServer.RequestMediaUpload),
		unary(api.MethodFollow, SimpleTwitterServer.Follow),
		unary(api.MethodUnfollow, SimpleTwitterServer.Unfollow),
		unary(api.MethodTopUsers, SimpleTwitterServer.TopUsers),
		unary(api.MethodFollowers, SimpleTwitterServer.Followers),
		unary(api.MethodFollowings, SimpleTwitterServer.Followings),
		unary(api.MethodAdminListAccounts, SimpleTwitterServer.AdminListAccounts),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "simpletwitter/v1/simpletwitter.json",
}

func RegisterSimpleTwitterServer(s grpc.ServiceRegistrar, srv SimpleTwitterServer) {
	s.RegisterService(&serviceDesc, srv)
}
