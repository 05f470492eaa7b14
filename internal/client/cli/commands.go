package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/simpletwitter/internal/api"
	"github.com/dmitrijs2005/simpletwitter/internal/client/client"
	"github.com/dmitrijs2005/simpletwitter/internal/common"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// Register prompts for the sign-up fields and creates a user account.
// Passwords are wiped before returning.
func (a *App) Register(ctx context.Context) error {
	var req api.SignUpRequest
	var err error

	if req.Account, err = getSimpleText(a.reader, "Enter account", a.out); err != nil {
		return err
	}
	if req.Name, err = getSimpleText(a.reader, "Enter name", a.out); err != nil {
		return err
	}
	if req.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	check, err := getPassword(a.reader, "Repeat password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(check)

	req.Password, req.CheckPassword = string(password), string(check)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	acc, err := a.client.SignUp(ctx, &req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered %s (id %d)\n", acc.Account, acc.ID)
	return nil
}

type loginFunc func(ctx context.Context, account string, password []byte) (*api.Account, error)

func (a *App) login(ctx context.Context, fn loginFunc) error {
	account, err := getSimpleText(a.reader, "Enter account", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	acc, err := fn(ctx, account, password)
	if err != nil {
		return err
	}

	a.userID, a.userName = acc.ID, acc.Account
	fmt.Fprintf(a.out, "Logged in as %s\n", acc.Account)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	return a.login(ctx, a.client.Login)
}

func (a *App) AdminLogin(ctx context.Context) error {
	return a.login(ctx, a.client.AdminLogin)
}

func (a *App) Logout(ctx context.Context) error {
	a.client.Logout()
	a.userID, a.userName = 0, ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	if !a.isLoggedIn() {
		return client.ErrNotLoggedIn
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	p, err := a.client.CurrentUser(ctx)
	if err != nil {
		return err
	}
	return a.printProfile(p)
}

func (a *App) Profile(ctx context.Context, id int64) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	p, err := a.client.GetUser(ctx, id)
	if err != nil {
		return err
	}
	return a.printProfile(p)
}

func (a *App) printProfile(p *api.UserProfile) error {
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "id\t%d\n", p.ID)
	fmt.Fprintf(w, "account\t@%s\n", p.Account.Account)
	fmt.Fprintf(w, "name\t%s\n", p.Name)
	if p.Email != "" {
		fmt.Fprintf(w, "email\t%s\n", p.Email)
	}
	if p.Introduction != "" {
		fmt.Fprintf(w, "introduction\t%s\n", p.Introduction)
	}
	if p.AvatarURL != "" {
		fmt.Fprintf(w, "avatar\t%s\n", p.AvatarURL)
	}
	fmt.Fprintf(w, "tweets\t%d\n", p.TweetCount)
	fmt.Fprintf(w, "followers\t%d\n", p.FollowerCount)
	fmt.Fprintf(w, "following\t%d\n", p.FollowingCount)
	if p.ID != a.userID {
		fmt.Fprintf(w, "followed by you\t%s\n", yesNo(p.IsFollowed))
	}
	return w.Flush()
}

// EditProfile updates the caller's name and introduction.
func (a *App) EditProfile(ctx context.Context) error {
	if !a.isLoggedIn() {
		return client.ErrNotLoggedIn
	}

	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	intro, err := getMultiline(a.reader, "Enter introduction", a.out)
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	acc, err := a.client.PutProfile(ctx, &api.PutProfileRequest{ID: a.userID, Name: name, Introduction: intro})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Profile updated: %s\n", acc.Name)
	return nil
}

func (a *App) Follow(ctx context.Context, id int64) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.Follow(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Now following %d\n", id)
	return nil
}

func (a *App) Unfollow(ctx context.Context, id int64) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.Unfollow(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Unfollowed %d\n", id)
	return nil
}

func (a *App) Top(ctx context.Context, limit int) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	users, err := a.client.TopUsers(ctx, limit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tID\tACCOUNT\tNAME\tFOLLOWERS\tFOLLOWED")
	for i, u := range users {
		fmt.Fprintf(w, "%d\t%d\t@%s\t%s\t%d\t%s\n", i+1, u.ID, u.Account, u.Name, u.FollowerCount, yesNo(u.IsFollowed))
	}
	return w.Flush()
}

func (a *App) Followers(ctx context.Context, id int64) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	entries, err := a.client.Followers(ctx, id)
	if err != nil {
		return err
	}
	return a.printEntries(entries)
}

func (a *App) Followings(ctx context.Context, id int64) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	entries, err := a.client.Followings(ctx, id)
	if err != nil {
		return err
	}
	return a.printEntries(entries)
}

func (a *App) printEntries(entries []api.FollowEntry) error {
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "(none)")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tACCOUNT\tNAME\tSINCE\tFOLLOWED")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t@%s\t%s\t%s\t%s\n", e.ID, e.Account, e.Name, e.CreatedAt.Format("2006-01-02 15:04"), yesNo(e.IsFollowed))
	}
	return w.Flush()
}

// Accounts lists every account with its counters. Admin sessions only.
func (a *App) Accounts(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	list, err := a.client.ListAccounts(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tACCOUNT\tROLE\tTWEETS\tFOLLOWERS\tFOLLOWING")
	for _, s := range list {
		fmt.Fprintf(w, "%d\t@%s\t%s\t%d\t%d\t%d\n", s.ID, s.Account.Account, s.Role, s.TweetCount, s.FollowerCount, s.FollowingCount)
	}
	return w.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
