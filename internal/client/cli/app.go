package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/coursecomment/coursecomment/internal/client/api"
	"github.com/coursecomment/coursecomment/internal/client/config"
	"github.com/coursecomment/coursecomment/internal/client/repositories/metadata"
	"github.com/coursecomment/coursecomment/internal/client/router"
	"github.com/coursecomment/coursecomment/internal/client/services"
	"github.com/coursecomment/coursecomment/internal/client/session"
	"github.com/coursecomment/coursecomment/internal/client/storage"
	"github.com/coursecomment/coursecomment/internal/logging"
	"github.com/coursecomment/coursecomment/internal/posts"
)

type App struct {
	config        *config.Config
	log           logging.Logger
	db            *sql.DB
	store         *session.Store
	router        *router.Router
	authService   services.AuthService
	courseService services.CourseService
	composer      *posts.Composer
	uploader      posts.Uploader
	reader        *bufio.Reader
	out           io.Writer
}

// NewApp wires the client: local database, persisted session, route table,
// API client with its interceptors, and the services on top.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := storage.Open(ctx, c.DBPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DBPath, "error", err)
		return nil, err
	}

	store := session.NewStore(metadata.NewSQLiteRepository(db))
	if err := store.Hydrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	r := router.New(router.DefaultRoutes, store)
	expire := services.ExpireSession(store, r, log)

	apiClient, err := api.NewHTTPClient(c.BaseURL(),
		api.WithRequestInterceptor(api.BearerToken(store), api.RequestID()),
		api.WithResponseInterceptor(api.LogFailures(log), api.OnUnauthorized(expire)),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	var uploader posts.Uploader
	if c.S3.Enabled() {
		up, err := posts.NewS3Uploader(ctx, c.S3)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("image storage: %w", err)
		}
		uploader = up
	}

	log.Debug(ctx, "client ready", "api", apiClient.BaseURL(), "authenticated", store.IsAuthenticated())

	return &App{
		config:        c,
		log:           log,
		db:            db,
		store:         store,
		router:        r,
		authService:   services.NewAuthService(apiClient, store, r, log),
		courseService: services.NewCourseService(apiClient),
		composer:      posts.NewComposer(),
		uploader:      uploader,
		reader:        bufio.NewReader(os.Stdin),
		out:           os.Stdout,
	}, nil
}

// Run starts the REPL and blocks until the user leaves it.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()
	a.Root(ctx)
	return nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.store.IsAuthenticated()
}

// commandContext bounds a single command by the configured timeout.
func (a *App) commandContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config != nil && a.config.RequestTimeout > 0 {
		return context.WithTimeout(ctx, a.config.RequestTimeout)
	}
	return context.WithCancel(ctx)
}
