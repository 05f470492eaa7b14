package api

import "time"

type Empty struct{}

type Status struct {
	Status string `json:"status"`
}

// Account is the public view of an account. It never carries a password
// hash.
type Account struct {
	ID           int64     `json:"id"`
	Account      string    `json:"account"`
	Email        string    `json:"email,omitempty"`
	Name         string    `json:"name"`
	Introduction string    `json:"introduction"`
	Avatar       string    `json:"avatar"`
	Cover        string    `json:"cover"`
	Role         string    `json:"role,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type SignUpRequest struct {
	Account       string `json:"account"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	CheckPassword string `json:"checkPassword"`
}

type LoginRequest struct {
	Account  string `json:"account"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Status string  `json:"status"`
	Token  string  `json:"token"`
	User   Account `json:"user"`
}

type GetUserRequest struct {
	ID int64 `json:"id"`
}

// UserProfile is an account with its follow graph counters. AvatarURL and
// CoverURL are short-lived download links.
type UserProfile struct {
	Account
	AvatarURL      string `json:"avatarUrl,omitempty"`
	CoverURL       string `json:"coverUrl,omitempty"`
	FollowerCount  int64  `json:"followerCount"`
	FollowingCount int64  `json:"followingCount"`
	TweetCount     int64  `json:"tweetCount"`
	IsFollowed     bool   `json:"isFollowed"`
}

type PutAccountRequest struct {
	ID            int64  `json:"id"`
	Account       string `json:"account"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	CheckPassword string `json:"checkPassword"`
}

type PutProfileRequest struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Introduction string `json:"introduction"`
	Avatar       string `json:"avatar"`
	Cover        string `json:"cover"`
}

type MediaUploadRequest struct {
	Kind string `json:"kind"`
}

type MediaUploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type FollowRequest struct {
	ID int64 `json:"id"`
}

type UnfollowRequest struct {
	FollowingID int64 `json:"followingId"`
}

type TopUsersRequest struct {
	Limit int `json:"limit"`
}

type TopUser struct {
	ID            int64  `json:"id"`
	Account       string `json:"account"`
	Name          string `json:"name"`
	Avatar        string `json:"avatar"`
	FollowerCount int64  `json:"followerCount"`
	IsFollowed    bool   `json:"isFollowed"`
}

type TopUsersResponse struct {
	Users []TopUser `json:"users"`
}

type FollowListRequest struct {
	ID int64 `json:"id"`
}

type FollowEntry struct {
	ID           int64     `json:"id"`
	Account      string    `json:"account"`
	Name         string    `json:"name"`
	Avatar       string    `json:"avatar"`
	Introduction string    `json:"introduction"`
	CreatedAt    time.Time `json:"createdAt"`
	IsFollowed   bool      `json:"isFollowed"`
}

type FollowListResponse struct {
	Entries []FollowEntry `json:"entries"`
}

type AccountStats struct {
	Account
	TweetCount     int64 `json:"tweetCount"`
	FollowerCount  int64 `json:"followerCount"`
	FollowingCount int64 `json:"followingCount"`
}

type AccountListResponse struct {
	Accounts []AccountStats `json:"accounts"`
}
