// Package models defines server-side data models persisted in the database.
package models

import "time"

// Role is the coarse permission class of an account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Account is a registered user. PasswordHash never leaves the
// persistence and auth layers.
type Account struct {
	ID           int64
	Account      string
	Email        string
	PasswordHash string
	Name         string
	Introduction string
	// Avatar and Cover are object-storage keys, empty when unset.
	Avatar    string
	Cover     string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AccountStats is an account with its content and graph counters, as shown
// in the admin account list.
type AccountStats struct {
	Account        Account
	TweetCount     int64
	FollowerCount  int64
	FollowingCount int64
}
