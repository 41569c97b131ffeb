package cli

import (
	"context"
	"fmt"

	"github.com/coursecomment/coursecomment/internal/client/router"
)

// Go navigates to path and shows the page it lands on. Guarded pages send
// anonymous users to the login page.
func (a *App) Go(ctx context.Context, path string) error {
	to, err := a.router.PushPath(path)
	if err != nil {
		return err
	}

	switch to.Name {
	case router.Dashboard:
		if err := a.WhoAmI(ctx); err != nil {
			return err
		}
		return a.Followed(ctx)
	case router.CourseDetails:
		return a.showCourse(ctx, to.Params["id"])
	case router.Login:
		fmt.Fprintln(a.out, "Login page: type 'login' to sign in.")
	case router.Register:
		fmt.Fprintln(a.out, "Register page: type 'register' to create an account.")
	default:
		fmt.Fprintln(a.out, "Home: type 'courses' to browse.")
	}
	return nil
}
