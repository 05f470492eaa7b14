package grpc

import (
	"context"

	"github.com/dmitrijs2005/simpletwitter/internal/api"
	"github.com/dmitrijs2005/simpletwitter/internal/common"
	"github.com/dmitrijs2005/simpletwitter/internal/server/auth"
	"github.com/dmitrijs2005/simpletwitter/internal/server/models"
	"github.com/dmitrijs2005/simpletwitter/internal/server/services"
)

const statusSuccess = "success"

// fail logs err at a level matching its kind and converts it to a status.
func (s *GRPCServer) fail(ctx context.Context, method string, err error) error {
	kind := common.KindOf(err)
	switch kind {
	case common.KindStorageUnavailable, common.KindUnknown:
		s.logger.Error(ctx, method+" failed", "kind", kind, "error", err)
	default:
		s.logger.Warn(ctx, method+" rejected", "kind", kind, "error", err)
	}
	return toStatus(err)
}

func (s *GRPCServer) identity(ctx context.Context) (*auth.Identity, error) {
	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		return nil, toStatus(common.ErrUnauthenticated)
	}
	return identity, nil
}

func (s *GRPCServer) SignUp(ctx context.Context, req *api.SignUpRequest) (*api.Account, error) {
	account, err := s.accounts.SignUp(ctx, services.SignUpInput{
		Account:       req.Account,
		Name:          req.Name,
		Email:         req.Email,
		Password:      req.Password,
		CheckPassword: req.CheckPassword,
	})
	if err != nil {
		return nil, s.fail(ctx, api.MethodSignUp, err)
	}

	s.logger.Info(ctx, "account registered", "account_id", account.ID)
	resp := toAPIAccount(account)
	return &resp, nil
}

func (s *GRPCServer) login(ctx context.Context, method string, req *api.LoginRequest, role models.Role) (*api.LoginResponse, error) {
	token, identity, err := s.auth.Login(ctx, req.Account, req.Password, role)
	if err != nil {
		// the caller sees one answer for unknown account and wrong password
		s.logger.Warn(ctx, method+" rejected", "kind", common.KindOf(err))
		return nil, loginStatus(err)
	}

	account := identity.Account()
	s.logger.Info(ctx, "login succeeded", "account_id", account.ID, "role", account.Role)
	return &api.LoginResponse{
		Status: statusSuccess,
		Token:  token,
		User:   toAPIAccount(&account),
	}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.LoginResponse, error) {
	return s.login(ctx, api.MethodLogin, req, models.RoleUser)
}

func (s *GRPCServer) AdminLogin(ctx context.Context, req *api.LoginRequest) (*api.LoginResponse, error) {
	return s.login(ctx, api.MethodAdminLogin, req, models.RoleAdmin)
}

// GetCurrentUser is GetUser for the caller. IsFollowed is always false
// since an account cannot follow itself.
func (s *GRPCServer) GetCurrentUser(ctx context.Context, _ *api.Empty) (*api.UserProfile, error) {
	identity, err := s.identity(ctx)
	if err != nil {
		return nil, err
	}
	return s.profile(ctx, api.MethodGetCurrentUser, identity.ID(), identity)
}

func (s *GRPCServer) GetUser(ctx context.Context, req *api.GetUserRequest) (*api.UserProfile, error) {
	identity, err := s.identity(ctx)
	if err != nil {
		return nil, err
	}
	return s.profile(ctx, api.MethodGetUser, req.ID, identity)
}

func (s *GRPCServer) profile(ctx context.Context, method string, subjectID int64, identity *auth.Identity) (*api.UserProfile, error) {
	profile, err := s.accounts.GetProfile(ctx, subjectID, identity)
	if err != nil {
		return nil, s.fail(ctx, method, err)
	}

	resp := &api.UserProfile{
		Account:        toAPIAccount(&profile.Account),
		FollowerCount:  profile.Aggregate.FollowerCount,
		FollowingCount: profile.Aggregate.FollowingCount,
		TweetCount:     profile.Aggregate.ContentCount,
		IsFollowed:     profile.Aggregate.IsFollowed,
	}
	if profile.Account.ID != identity.ID() {
		resp.Email = ""
	}
	resp.AvatarURL = s.downloadURL(ctx, profile.Account.Avatar)
	resp.CoverURL = s.downloadURL(ctx, profile.Account.Cover)

	return resp, nil
}

// downloadURL presigns key. A failure degrades to no URL.
func (s *GRPCServer) downloadURL(ctx context.Context, key string) string {
	if s.media == nil || key == "" {
		return ""
	}
	url, err := s.media.DownloadURL(ctx, key)
	if err != nil {
		s.logger.Warn(ctx, "presign download failed", "key", key, "error", err)
		return ""
	}
	return url
}

func (s *GRPCServer) PutAccount(ctx context.Context, req *api.PutAccountRequest) (*api.Account, error) {
	identity, err := s.identity(ctx)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.PutAccount(ctx, identity.ID(), req.ID, services.AccountUpdate{
		Account:       req.Account,
		Name:          req.Name,
		Email:         req.Email,
		Password:      req.Password,
		CheckPassword: req.CheckPassword,
	})
	if err != nil {
		return nil, s.fail(ctx, api.MethodPutAccount, err)
	}

	s.logger.Info(ctx, "account updated", "account_id", account.ID)
	resp := toAPIAccount(account)
	return &resp, nil
}

func (s *GRPCServer) PutProfile(ctx context.Context, req *api.PutProfileRequest) (*api.Account, error) {
	identity, err := s.identity(ctx)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.PutProfile(ctx, identity.ID(), req.ID, services.ProfileUpdate{
		Name:         req.Name,
		Introduction: req.Introduction,
		Avatar:       req.Avatar,
		Cover:        req.Cover,
	})
	if err != nil {
		return nil, s.fail(ctx, api.MethodPutProfile, err)
	}

	s.logger.Info(ctx, "profile updated", "account_id", account.ID)
	resp := toAPIAccount(account)
	return &resp, nil
}

func (s *GRPCServer) RequestMediaUpload(ctx context.Context, req *api.MediaUploadRequest) (*api.MediaUploadResponse, error) {
	identity, err := s.identity(ctx)
	if err != nil {
		return nil, err
	}

	kind, err := services.ParseMediaKind(req.Kind)
	if err != nil {
		return nil, s.fail(ctx, api.MethodRequestMediaUpload, err)
	}

	key, url, err := s.media.RequestUpload(ctx, identity.ID(), kind)
	if err != nil {
		return nil, s.fail(ctx, api.MethodRequestMediaUpload, err)
	}

	return &api.MediaUploadResponse{Key: key, URL: url}, nil
}

func (s *GRPCServer) Follow(ctx context.Context, req *api.FollowRequest) (*api.Status, error) {
	identity, err := s.identity(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.follows.Follow(ctx, identity.ID(), req.ID); err != nil {
		return nil, s.fail(ctx, api.MethodFollow, err)
	}

	s.logger.Info(ctx, "followed", "follower_id", identity.ID(), "following_id", req.ID)
	return &api.Status{Status: statusSuccess}, nil
}

func (s *GRPCServer) Unfollow(ctx context.Context, req *api.UnfollowRequest) (*api.Status, error) {
	identity, err := s.identity(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.follows.Unfollow(ctx, identity.ID(), req.FollowingID); err != nil {
		return nil, s.fail(ctx, api.MethodUnfollow, err)
	}

	s.logger.Info(ctx, "unfollowed", "follower_id", identity.ID(), "following_id", req.FollowingID)
	return &api.Status{Status: statusSuccess}, nil
}

func (s *GRPCServer) TopUsers(ctx context.Context, req *api.TopUsersRequest) (*api.TopUsersResponse, error) {
	identity, err := s.identity(ctx)
	if err != nil {
		return nil, err
	}

	list, err := s.graph.TopFollowed(ctx, req.Limit, identity)
	if err != nil {
		return nil, s.fail(ctx, api.MethodTopUsers, err)
	}

	return &api.TopUsersResponse{Users: toAPITopUsers(list)}, nil
}

func (s *GRPCServer) Followers(ctx context.Context, req *api.FollowListRequest) (*api.FollowListResponse, error) {
	identity, err := s.identity(ctx)
	if err != nil {
		return nil, err
	}

	list, err := s.graph.Followers(ctx, req.ID, identity)
	if err != nil {
		return nil, s.fail(ctx, api.MethodFollowers, err)
	}

	return &api.FollowListResponse{Entries: toAPIFollowEntries(list)}, nil
}

func (s *GRPCServer) Followings(ctx context.Context, req *api.FollowListRequest) (*api.FollowListResponse, error) {
	identity, err := s.identity(ctx)
	if err != nil {
		return nil, err
	}

	list, err := s.graph.Followings(ctx, req.ID, identity)
	if err != nil {
		return nil, s.fail(ctx, api.MethodFollowings, err)
	}

	return &api.FollowListResponse{Entries: toAPIFollowEntries(list)}, nil
}

func (s *GRPCServer) AdminListAccounts(ctx context.Context, _ *api.Empty) (*api.AccountListResponse, error) {
	list, err := s.accounts.ListAccounts(ctx)
	if err != nil {
		return nil, s.fail(ctx, api.MethodAdminListAccounts, err)
	}

	return &api.AccountListResponse{Accounts: toAPIAccountStats(list)}, nil
}
