package grpc

import (
	"github.com/dmitrijs2005/simpletwitter/internal/api"
	"github.com/dmitrijs2005/simpletwitter/internal/server/models"
)

func toAPIAccount(a *models.Account) api.Account {
	return api.Account{
		ID:           a.ID,
		Account:      a.Account,
		Email:        a.Email,
		Name:         a.Name,
		Introduction: a.Introduction,
		Avatar:       a.Avatar,
		Cover:        a.Cover,
		Role:         string(a.Role),
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func toAPITopUsers(list []models.AccountSummary) []api.TopUser {
	out := make([]api.TopUser, 0, len(list))
	for _, u := range list {
		out = append(out, api.TopUser{
			ID:            u.ID,
			Account:       u.Account,
			Name:          u.Name,
			Avatar:        u.Avatar,
			FollowerCount: u.FollowerCount,
			IsFollowed:    u.IsFollowed,
		})
	}
	return out
}

func toAPIFollowEntries(list []models.FollowEntry) []api.FollowEntry {
	out := make([]api.FollowEntry, 0, len(list))
	for _, e := range list {
		out = append(out, api.FollowEntry{
			ID:           e.AccountID,
			Account:      e.Account,
			Name:         e.Name,
			Avatar:       e.Avatar,
			Introduction: e.Introduction,
			CreatedAt:    e.FollowedAt,
			IsFollowed:   e.IsFollowed,
		})
	}
	return out
}

func toAPIAccountStats(list []models.AccountStats) []api.AccountStats {
	out := make([]api.AccountStats, 0, len(list))
	for i := range list {
		out = append(out, api.AccountStats{
			Account:        toAPIAccount(&list[i].Account),
			TweetCount:     list[i].TweetCount,
			FollowerCount:  list[i].FollowerCount,
			FollowingCount: list[i].FollowingCount,
		})
	}
	return out
}
