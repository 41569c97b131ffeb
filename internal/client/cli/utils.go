package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/coursecomment/coursecomment/internal/client/api"
	"github.com/coursecomment/coursecomment/internal/client/router"
	"github.com/coursecomment/coursecomment/internal/client/services"
)

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q is not a valid id", services.ErrValidation, s)
	}
	return id, nil
}

// describeError turns a command error into a line for the user.
func describeError(err error) string {
	var apiErr *api.APIError
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		return "Not authorized: please log in."
	case errors.Is(err, api.ErrUnavailable):
		return "Server unavailable, try again later."
	case errors.Is(err, context.DeadlineExceeded):
		return "Request timed out."
	case errors.Is(err, router.ErrRouteNotFound):
		return "No such page."
	case errors.Is(err, services.ErrNotSignedIn):
		return "You are not signed in."
	case errors.As(err, &apiErr):
		return "Error: " + apiErr.Message
	default:
		return "Error: " + err.Error()
	}
}
