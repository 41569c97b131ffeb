package cli

import (
	"bufio"
	"context"
	"fmt"
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
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Go(ctx context.Context, path string) error
	Courses(ctx context.Context) error
	Search(ctx context.Context, query string) error
	Course(ctx context.Context, id string) error
	Follow(ctx context.Context, id string) error
	Unfollow(ctx context.Context, id string) error
	Followed(ctx context.Context) error
	Instructor(ctx context.Context, id string) error
	Ratings(ctx context.Context, id, instructor string) error
	Rate(ctx context.Context, id string) error
	Comments(ctx context.Context, id, instructor string) error
	Comment(ctx context.Context, id string, parent string) error
	Like(ctx context.Context, id string) error
	Unlike(ctx context.Context, id string) error
	Reviews(ctx context.Context, args []string) error
	Post(ctx context.Context) error
}

const (
	helpAnonymous = "Available commands: register, login, go <path>, courses, search <q>, course <id>, " +
		"instructor <id>, ratings <id> [instructor], comments <id> [instructor], " +
		"reviews <file> [semester] [instructor] [order], post, exit"
	helpSignedIn = "Available commands: whoami, go <path>, courses, search <q>, course <id>, instructor <id>, " +
		"follow <id>, unfollow <id>, followed, ratings <id> [instructor], rate <id>, comments <id> [instructor], " +
		"comment <id> [parent], like <comment>, unlike <comment>, " +
		"reviews <file> [semester] [instructor] [order], post, logout, exit"
)

// runREPL starts a simple read-eval-print loop for the course-review CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. The loop exits on scanner EOF
// or when the user types "exit" or "quit". Errors returned by command
// handlers are printed and the loop goes on.
//
// The prompt shows the current status (from statusFn): the signed-in user
// and the current route.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("cc %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpAnonymous)
			}

		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "whoami":
			err = a.WhoAmI(ctx)

		case "go":
			if len(args) != 1 {
				printlnFn("Usage: go <path>")
				continue
			}
			err = a.Go(ctx, args[0])

		case "courses":
			err = a.Courses(ctx)
		case "search":
			if len(args) == 0 {
				printlnFn("Usage: search <query>")
				continue
			}
			err = a.Search(ctx, strings.Join(args, " "))
		case "course", "instructor", "follow", "unfollow", "rate", "like", "unlike":
			if len(args) != 1 {
				printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
				continue
			}
			err = dispatchByID(ctx, a, cmd, args[0])
		case "ratings", "comments":
			if len(args) < 1 || len(args) > 2 {
				printlnFn(fmt.Sprintf("Usage: %s <course-id> [instructor-id]", cmd))
				continue
			}
			instructor := ""
			if len(args) == 2 {
				instructor = args[1]
			}
			if cmd == "ratings" {
				err = a.Ratings(ctx, args[0], instructor)
			} else {
				err = a.Comments(ctx, args[0], instructor)
			}
		case "followed":
			err = a.Followed(ctx)
		case "comment":
			if len(args) < 1 || len(args) > 2 {
				printlnFn("Usage: comment <course-id> [parent-comment-id]")
				continue
			}
			parent := ""
			if len(args) == 2 {
				parent = args[1]
			}
			err = a.Comment(ctx, args[0], parent)

		case "reviews":
			if len(args) == 0 {
				printlnFn("Usage: reviews <file.html> [semester] [instructor] [order]")
				continue
			}
			err = a.Reviews(ctx, args)
		case "post":
			err = a.Post(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn(describeError(err))
		}
	}
}

func dispatchByID(ctx context.Context, a execIface, cmd, id string) error {
	switch cmd {
	case "course":
		return a.Course(ctx, id)
	case "follow":
		return a.Follow(ctx, id)
	case "unfollow":
		return a.Unfollow(ctx, id)
	case "instructor":
		return a.Instructor(ctx, id)
	case "rate":
		return a.Rate(ctx, id)
	case "like":
		return a.Like(ctx, id)
	case "unlike":
		return a.Unlike(ctx, id)
	}
	return fmt.Errorf("unknown command %q", cmd)
}
