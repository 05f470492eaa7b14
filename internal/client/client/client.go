package client

import (
	"context"

	"github.com/dmitrijs2005/simpletwitter/internal/api"
)

type Client interface {
	Close() error
	LoggedIn() bool
	Logout()
	SignUp(ctx context.Context, req *api.SignUpRequest) (*api.Account, error)
	Login(ctx context.Context, account string, password []byte) (*api.Account, error)
	AdminLogin(ctx context.Context, account string, password []byte) (*api.Account, error)
	CurrentUser(ctx context.Context) (*api.UserProfile, error)
	GetUser(ctx context.Context, id int64) (*api.UserProfile, error)
	PutProfile(ctx context.Context, req *api.PutProfileRequest) (*api.Account, error)
	RequestMediaUpload(ctx context.Context, kind string) (*api.MediaUploadResponse, error)
	Follow(ctx context.Context, id int64) error
	Unfollow(ctx context.Context, id int64) error
	TopUsers(ctx context.Context, limit int) ([]api.TopUser, error)
	Followers(ctx context.Context, id int64) ([]api.FollowEntry, error)
	Followings(ctx context.Context, id int64) ([]api.FollowEntry, error)
	ListAccounts(ctx context.Context) ([]api.AccountStats, error)
}
