// Package router is the client route table: named locations, a navigation
// guard for routes that need a session, and the current location used to
// build post-login redirects.
package router

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

var ErrRouteNotFound = errors.New("route not found")

// Route names.
const (
	Home          = "Home"
	Login         = "Login"
	Register      = "Register"
	Dashboard     = "Dashboard"
	CourseDetails = "CourseDetails"
)

// Paths of the routes the client navigates to directly.
const (
	PathHome      = "/"
	PathLogin     = "/login"
	PathRegister  = "/register"
	PathDashboard = "/dashboard"
)

// RedirectQueryKey carries the path to return to after signing in.
const RedirectQueryKey = "redirect"

// RouteDef is one entry of the route table. Pattern uses chi syntax
// ("/courses/{id}").
type RouteDef struct {
	Name         string
	Pattern      string
	RequiresAuth bool
}

// DefaultRoutes is the application route table.
var DefaultRoutes = []RouteDef{
	{Name: Home, Pattern: PathHome},
	{Name: Login, Pattern: PathLogin},
	{Name: Register, Pattern: PathRegister},
	{Name: Dashboard, Pattern: PathDashboard, RequiresAuth: true},
	{Name: CourseDetails, Pattern: "/courses/{id}"},
}

// Location is a navigation target.
type Location struct {
	Path  string
	Query url.Values
}

// Route is a resolved location.
type Route struct {
	Name         string
	Path         string
	FullPath     string
	Params       map[string]string
	Query        url.Values
	RequiresAuth bool
}

// AuthChecker reports whether a session is present. The session store
// satisfies it.
type AuthChecker interface {
	IsAuthenticated() bool
}

// Router resolves locations against the route table and keeps track of the
// current route. Safe for concurrent use.
type Router struct {
	mux    *chi.Mux
	byPat  map[string]RouteDef
	byName map[string]RouteDef
	auth   AuthChecker

	mu      sync.RWMutex
	current Route
}

// New builds a router over routes. The current route starts at Home.
func New(routes []RouteDef, auth AuthChecker) *Router {
	r := &Router{
		mux:    chi.NewRouter(),
		byPat:  make(map[string]RouteDef, len(routes)),
		byName: make(map[string]RouteDef, len(routes)),
		auth:   auth,
	}
	noop := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	for _, def := range routes {
		r.mux.Get(def.Pattern, noop)
		r.byPat[def.Pattern] = def
		r.byName[def.Name] = def
	}

	if home, err := r.Resolve(Location{Path: PathHome}); err == nil {
		r.current = home
	}
	return r
}

// Resolve matches loc against the route table without navigating.
func (r *Router) Resolve(loc Location) (Route, error) {
	path, query := splitPath(loc)

	rctx := chi.NewRouteContext()
	if !r.mux.Match(rctx, http.MethodGet, path) {
		return Route{}, ErrRouteNotFound
	}

	def, ok := r.byPat[rctx.RoutePattern()]
	if !ok {
		return Route{}, ErrRouteNotFound
	}

	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, k := range rctx.URLParams.Keys {
		params[k] = rctx.URLParams.Values[i]
	}

	return Route{
		Name:         def.Name,
		Path:         path,
		FullPath:     fullPath(path, query),
		Params:       params,
		Query:        query,
		RequiresAuth: def.RequiresAuth,
	}, nil
}

// Push navigates to loc. A route that requires a session redirects to Login
// when none is present. The returned route is the one actually entered.
func (r *Router) Push(loc Location) (Route, error) {
	to, err := r.Resolve(loc)
	if err != nil {
		return Route{}, err
	}

	if to.RequiresAuth && (r.auth == nil || !r.auth.IsAuthenticated()) {
		to, err = r.Resolve(Location{Path: r.byName[Login].Pattern})
		if err != nil {
			return Route{}, err
		}
	}

	r.mu.Lock()
	r.current = to
	r.mu.Unlock()
	return to, nil
}

// PushPath is Push for a raw "path?query" string.
func (r *Router) PushPath(raw string) (Route, error) {
	return r.Push(Location{Path: raw})
}

func (r *Router) Current() Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// LoginRedirect returns the login location remembering from as the page to
// come back to.
func LoginRedirect(from string) Location {
	return Location{Path: PathLogin, Query: url.Values{RedirectQueryKey: []string{from}}}
}

func splitPath(loc Location) (string, url.Values) {
	path := loc.Path
	query := url.Values{}

	if i := strings.IndexByte(path, '?'); i >= 0 {
		if parsed, err := url.ParseQuery(path[i+1:]); err == nil {
			query = parsed
		}
		path = path[:i]
	}
	for k, vs := range loc.Query {
		for _, v := range vs {
			query.Add(k, v)
		}
	}

	if path == "" {
		path = PathHome
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path, query
}

func fullPath(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}
