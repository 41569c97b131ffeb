// Package services contains application services for the course-review
// client. This file holds the authentication flow: login, register, logout
// and the reaction to an expired session.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/coursecomment/coursecomment/internal/client/api"
	"github.com/coursecomment/coursecomment/internal/client/models"
	"github.com/coursecomment/coursecomment/internal/client/router"
	"github.com/coursecomment/coursecomment/internal/client/session"
	"github.com/coursecomment/coursecomment/internal/cryptox"
	"github.com/coursecomment/coursecomment/internal/logging"
)

// Navigator moves the client between routes. *router.Router satisfies it.
type Navigator interface {
	Push(loc router.Location) (router.Route, error)
	Current() router.Route
}

// AuthService defines the session actions exposed to the CLI.
//
// Contract:
//   - Login / Register: hash the password, call the API, store token and
//     user, navigate to the dashboard. API failures are returned unchanged.
//   - Logout: clear the session and navigate to the login page.
//   - Profile: the signed-in user, fetched from the API when the session
//     was restored from storage without one.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) error
	Register(ctx context.Context, email string, password []byte, name string) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (*models.User, error)
}

var ErrNotSignedIn = errors.New("not signed in")

type authService struct {
	client api.Client
	store  *session.Store
	nav    Navigator
	log    logging.Logger
}

func NewAuthService(client api.Client, store *session.Store, nav Navigator, log logging.Logger) AuthService {
	return &authService{client: client, store: store, nav: nav, log: log}
}

func (a *authService) Login(ctx context.Context, email string, password []byte) error {
	res, err := a.client.Login(ctx, email, cryptox.HashPassword(password))
	if err != nil {
		a.log.Error(ctx, "Login error", "email", email, "error", err)
		return err
	}
	return a.signIn(ctx, res)
}

// Register creates the account. The backend may accept a registration
// without returning a token; the session then stays anonymous and the user
// has to log in.
func (a *authService) Register(ctx context.Context, email string, password []byte, name string) error {
	res, err := a.client.Register(ctx, email, cryptox.HashPassword(password), name)
	if err != nil {
		a.log.Error(ctx, "Registration error", "email", email, "error", err)
		return err
	}
	if res.Token == "" {
		a.log.Info(ctx, "registration accepted without session", "email", email, "message", res.Message)
		return nil
	}
	return a.signIn(ctx, res)
}

func (a *authService) signIn(ctx context.Context, res *models.AuthResult) error {
	if err := a.store.SetAuthenticated(ctx, res.Token, res.User); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	if _, err := a.nav.Push(router.Location{Path: router.PathDashboard}); err != nil {
		return fmt.Errorf("navigate to dashboard: %w", err)
	}
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	_, err := a.store.Clear(ctx)
	if _, navErr := a.nav.Push(router.Location{Path: router.PathLogin}); navErr != nil {
		err = errors.Join(err, navErr)
	}
	return err
}

func (a *authService) Profile(ctx context.Context) (*models.User, error) {
	if !a.store.IsAuthenticated() {
		return nil, ErrNotSignedIn
	}
	if u := a.store.User(); u != nil {
		return u, nil
	}

	u, err := a.client.Me(ctx)
	if err != nil {
		return nil, err
	}
	// Keep the token, fill in the user the hydrated session lacked.
	if token := a.store.Token(); token != "" {
		if err := a.store.SetAuthenticated(ctx, token, u); err != nil {
			return nil, err
		}
	}
	return u, nil
}

// ExpireSession returns the hook for api.OnUnauthorized. Every 401 sends
// the user to the login page with the page they were on as the redirect
// target; the session is cleared at most once however many 401s arrive.
// A 401 received on the login page itself (a failed sign-in) stays there.
func ExpireSession(store *session.Store, nav Navigator, log logging.Logger) func(ctx context.Context) {
	return func(ctx context.Context) {
		cur := nav.Current()

		changed, err := store.Clear(ctx)
		if err != nil {
			log.Error(ctx, "clear expired session", "error", err)
		}
		if changed {
			log.Info(ctx, "session expired", "from", cur.FullPath)
		}
		if cur.Name == router.Login {
			return
		}

		if _, err := nav.Push(router.LoginRedirect(cur.FullPath)); err != nil {
			log.Error(ctx, "redirect to login", "error", err)
		}
	}
}
