package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	AdminLogin(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Profile(ctx context.Context, id int64) error
	EditProfile(ctx context.Context) error
	Follow(ctx context.Context, id int64) error
	Unfollow(ctx context.Context, id int64) error
	Top(ctx context.Context, limit int) error
	Followers(ctx context.Context, id int64) error
	Followings(ctx context.Context, id int64) error
	Accounts(ctx context.Context) error
	UploadMedia(ctx context.Context, kind, path string) error
}

// runREPL reads commands line by line from reader and dispatches them to a.
// Command prompts read from the same reader, so input is never read ahead.
// The loop exits on EOF or when the user types "exit" or "quit".
//
//	Not logged in: help, register, login, admin, exit | quit
//	Logged in:     help, whoami, profile <id>, editprofile, avatar <file>,
//	               cover <file>, follow <id>, unfollow <id>, top [n],
//	               followers <id>, followings <id>, accounts, logout,
//	               exit | quit
//
// Command errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("st %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, profile <id>, editprofile, avatar <file>, cover <file>, follow <id>, unfollow <id>, top [n], followers <id>, followings <id>, accounts, logout, exit")
			} else {
				printlnFn("Available commands: register, login, admin, exit")
			}

		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "admin":
			cmdErr = a.AdminLogin(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "whoami":
			cmdErr = a.WhoAmI(ctx)
		case "editprofile":
			cmdErr = a.EditProfile(ctx)
		case "accounts":
			cmdErr = a.Accounts(ctx)

		case "profile", "follow", "unfollow", "followers", "followings":
			id, ok := parseID(args)
			if !ok {
				printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
				continue
			}
			switch cmd {
			case "profile":
				cmdErr = a.Profile(ctx, id)
			case "follow":
				cmdErr = a.Follow(ctx, id)
			case "unfollow":
				cmdErr = a.Unfollow(ctx, id)
			case "followers":
				cmdErr = a.Followers(ctx, id)
			case "followings":
				cmdErr = a.Followings(ctx, id)
			}

		case "avatar", "cover":
			if len(args) != 1 {
				printlnFn(fmt.Sprintf("Usage: %s <file>", cmd))
				continue
			}
			cmdErr = a.UploadMedia(ctx, cmd, args[0])

		case "top":
			limit := 0
			if len(args) > 0 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n <= 0 {
					printlnFn("Usage: top [n]")
					continue
				}
				limit = n
			}
			cmdErr = a.Top(ctx, limit)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
	}
}

func parseID(args []string) (int64, bool) {
	if len(args) == 0 {
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
