package cli

import (
	"bufio"
	"context"
	"fmt"
)

// getStatus renders the prompt status: "(user /path)".
func (a *App) getStatus() string {
	who := "guest"
	if a.store.IsAuthenticated() {
		who = "signed in"
		if u := a.store.User(); u != nil {
			who = u.Email
			if who == "" {
				who = u.Name
			}
		}
	}
	return fmt.Sprintf("(%s %s)", who, a.router.Current().FullPath)
}

// Root prints the welcome banner and runs the REPL on stdin.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to the course review CLI (type 'help' for commands)")
	if a.store.IsAuthenticated() {
		printlnFn("Session restored.")
	}
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(lineReader{a.reader}))
}
