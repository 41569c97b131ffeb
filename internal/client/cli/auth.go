package cli

import (
	"context"
	"fmt"

	"github.com/coursecomment/coursecomment/internal/client/router"
	"github.com/coursecomment/coursecomment/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for email, name and password and creates the account.
// When the server signs the user in right away the session starts;
// otherwise the user is sent to log in.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.commandContext(ctx)
	defer cancel()

	if err := a.authService.Register(ctx, email, password, name); err != nil {
		return err
	}

	if a.store.IsAuthenticated() {
		fmt.Fprintln(a.out, "Success! You are signed in.")
	} else {
		fmt.Fprintln(a.out, "Success! Please log in.")
		_, _ = a.router.Push(router.Location{Path: router.PathLogin})
	}
	return nil
}

// Login prompts for credentials and signs in.
func (a *App) Login(ctx context.Context) error {
	if cur := a.router.Current(); cur.Name == router.Login {
		if from := cur.Query.Get(router.RedirectQueryKey); from != "" {
			fmt.Fprintf(a.out, "Sign in to continue (you were on %s)\n", from)
		}
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.commandContext(ctx)
	defer cancel()

	if err := a.authService.Login(ctx, email, password); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	ctx, cancel := a.commandContext(ctx)
	defer cancel()

	u, err := a.authService.Profile(ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, renderUser(u))
	return nil
}
