package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/coursecomment/coursecomment/internal/client/api"
	"github.com/coursecomment/coursecomment/internal/client/models"
	"github.com/coursecomment/coursecomment/internal/client/repositories/metadata"
	"github.com/coursecomment/coursecomment/internal/client/router"
	"github.com/coursecomment/coursecomment/internal/client/session"
	"github.com/coursecomment/coursecomment/internal/common"
	"github.com/coursecomment/coursecomment/internal/cryptox"
	"github.com/coursecomment/coursecomment/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fake client ----

// fakeClient implements api.Client for unit tests of the services.
type fakeClient struct {
	LoginRet    *models.AuthResult
	LoginErr    error
	RegisterRet *models.AuthResult
	RegisterErr error
	MeRet       *models.User
	MeErr       error
	MeCalls     int

	CoursesRet  []models.Course
	CourseRet   *models.CourseDetail
	RatingsRet  *models.RatingSummary
	CommentsRet []models.Comment
	CommentRet  *models.Comment
	InstRet     *models.InstructorDetail
	LikesRet    int
	Err         error

	LastEmail        string
	LastPasswordHash string
	LastName         string
	LastQuery        string
	LastID           int64
	LastInstructorID int64
	LastRatings      *models.RatingSubmission
	LastComment      *models.CommentInput
	Calls            int
}

func (f *fakeClient) Login(_ context.Context, email, passwordHash string) (*models.AuthResult, error) {
	f.LastEmail, f.LastPasswordHash = email, passwordHash
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Register(_ context.Context, email, passwordHash, name string) (*models.AuthResult, error) {
	f.LastEmail, f.LastPasswordHash, f.LastName = email, passwordHash, name
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeClient) Me(context.Context) (*models.User, error) {
	f.MeCalls++
	return f.MeRet, f.MeErr
}

func (f *fakeClient) ListCourses(context.Context) ([]models.Course, error) {
	f.Calls++
	return f.CoursesRet, f.Err
}

func (f *fakeClient) SearchCourses(_ context.Context, q string) ([]models.Course, error) {
	f.Calls++
	f.LastQuery = q
	return f.CoursesRet, f.Err
}

func (f *fakeClient) GetCourse(_ context.Context, id int64) (*models.CourseDetail, error) {
	f.Calls++
	f.LastID = id
	return f.CourseRet, f.Err
}

func (f *fakeClient) FollowCourse(_ context.Context, id int64) error {
	f.Calls++
	f.LastID = id
	return f.Err
}

func (f *fakeClient) UnfollowCourse(_ context.Context, id int64) error {
	f.Calls++
	f.LastID = id
	return f.Err
}

func (f *fakeClient) FollowedCourses(context.Context) ([]models.Course, error) {
	f.Calls++
	return f.CoursesRet, f.Err
}

func (f *fakeClient) GetCourseRatings(_ context.Context, id int64) (*models.RatingSummary, error) {
	f.Calls++
	f.LastID = id
	return f.RatingsRet, f.Err
}

func (f *fakeClient) GetInstructor(_ context.Context, id int64) (*models.InstructorDetail, error) {
	f.Calls++
	f.LastID = id
	return f.InstRet, f.Err
}

func (f *fakeClient) GetInstructorRatings(_ context.Context, courseID, instructorID int64) (*models.RatingSummary, error) {
	f.Calls++
	f.LastID, f.LastInstructorID = courseID, instructorID
	return f.RatingsRet, f.Err
}

func (f *fakeClient) ListInstructorComments(_ context.Context, courseID, instructorID int64) ([]models.Comment, error) {
	f.Calls++
	f.LastID, f.LastInstructorID = courseID, instructorID
	return f.CommentsRet, f.Err
}

func (f *fakeClient) LikeComment(_ context.Context, id int64) (int, error) {
	f.Calls++
	f.LastID = id
	return f.LikesRet, f.Err
}

func (f *fakeClient) UnlikeComment(_ context.Context, id int64) (int, error) {
	f.Calls++
	f.LastID = id
	return f.LikesRet, f.Err
}

func (f *fakeClient) GetMyRatings(_ context.Context, id int64) (*models.RatingSummary, error) {
	f.Calls++
	f.LastID = id
	return f.RatingsRet, f.Err
}

func (f *fakeClient) SubmitRatings(_ context.Context, in models.RatingSubmission) error {
	f.Calls++
	f.LastRatings = &in
	return f.Err
}

func (f *fakeClient) ListComments(_ context.Context, id int64) ([]models.Comment, error) {
	f.Calls++
	f.LastID = id
	return f.CommentsRet, f.Err
}

func (f *fakeClient) PostComment(_ context.Context, in models.CommentInput) (*models.Comment, error) {
	f.Calls++
	f.LastComment = &in
	return f.CommentRet, f.Err
}

// ---- helpers ----

type fixture struct {
	repo   *metadata.MemoryRepository
	store  *session.Store
	router *router.Router
	client *fakeClient
	svc    AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := metadata.NewMemoryRepository()
	store := session.NewStore(repo)
	r := router.New(router.DefaultRoutes, store)
	fc := &fakeClient{}
	return &fixture{
		repo:   repo,
		store:  store,
		router: r,
		client: fc,
		svc:    NewAuthService(fc, store, r, logging.Discard()),
	}
}

func persistedToken(t *testing.T, repo metadata.Repository) string {
	t.Helper()
	v, err := repo.Get(context.Background(), common.TokenStorageKey)
	require.NoError(t, err)
	return string(v)
}

// ---- tests ----

func TestLogin_Success_AuthenticatesAndNavigates(t *testing.T) {
	f := newFixture(t)
	user := &models.User{ID: 7, Email: "a@b.c", Name: "Ann"}
	f.client.LoginRet = &models.AuthResult{Token: "tok", User: user}

	err := f.svc.Login(context.Background(), "a@b.c", []byte("secret"))
	require.NoError(t, err)

	assert.Equal(t, "a@b.c", f.client.LastEmail)
	assert.Equal(t, cryptox.HashPassword([]byte("secret")), f.client.LastPasswordHash)

	snap := f.store.Snapshot()
	assert.True(t, snap.IsAuthenticated)
	assert.Equal(t, "tok", snap.Token)
	require.NotNil(t, snap.User)
	assert.Equal(t, "Ann", snap.User.Name)
	assert.Equal(t, "tok", persistedToken(t, f.repo))

	assert.Equal(t, router.Dashboard, f.router.Current().Name)
}

func TestLogin_Error_PropagatesAndStaysAnonymous(t *testing.T) {
	f := newFixture(t)
	apiErr := &api.APIError{Status: http.StatusBadRequest, Message: "Invalid email or password"}
	f.client.LoginErr = apiErr

	err := f.svc.Login(context.Background(), "a@b.c", []byte("bad"))
	require.Error(t, err)

	var got *api.APIError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, "Invalid email or password", got.Message)

	assert.False(t, f.store.IsAuthenticated())
	assert.Equal(t, router.Home, f.router.Current().Name)
}

func TestLogin_EmptyToken_Rejected(t *testing.T) {
	f := newFixture(t)
	f.client.LoginRet = &models.AuthResult{}

	err := f.svc.Login(context.Background(), "a@b.c", []byte("p"))
	require.ErrorIs(t, err, session.ErrEmptyToken)
	assert.False(t, f.store.IsAuthenticated())
}

func TestRegister_WithToken_SignsIn(t *testing.T) {
	f := newFixture(t)
	f.client.RegisterRet = &models.AuthResult{Token: "new", User: &models.User{ID: 1, Name: "Bo"}}

	err := f.svc.Register(context.Background(), "bo@x.y", []byte("pw"), "Bo")
	require.NoError(t, err)

	assert.Equal(t, "Bo", f.client.LastName)
	assert.Equal(t, cryptox.HashPassword([]byte("pw")), f.client.LastPasswordHash)
	assert.True(t, f.store.IsAuthenticated())
	assert.Equal(t, router.Dashboard, f.router.Current().Name)
}

func TestRegister_WithoutToken_StaysAnonymous(t *testing.T) {
	f := newFixture(t)
	f.client.RegisterRet = &models.AuthResult{Message: "User registered successfully"}

	err := f.svc.Register(context.Background(), "bo@x.y", []byte("pw"), "Bo")
	require.NoError(t, err)

	assert.False(t, f.store.IsAuthenticated())
	assert.Equal(t, "", persistedToken(t, f.repo))
	assert.Equal(t, router.Home, f.router.Current().Name)
}

func TestRegister_ErrorFromClient(t *testing.T) {
	f := newFixture(t)
	f.client.RegisterErr = errors.New("dup")

	err := f.svc.Register(context.Background(), "u", []byte("p"), "n")
	require.Error(t, err)
	assert.False(t, f.store.IsAuthenticated())
}

func TestLogout_ClearsSessionAndGoesToLogin(t *testing.T) {
	f := newFixture(t)
	f.client.LoginRet = &models.AuthResult{Token: "tok", User: &models.User{ID: 1}}
	require.NoError(t, f.svc.Login(context.Background(), "a", []byte("p")))

	require.NoError(t, f.svc.Logout(context.Background()))

	snap := f.store.Snapshot()
	assert.False(t, snap.IsAuthenticated)
	assert.Empty(t, snap.Token)
	assert.Nil(t, snap.User)
	assert.Equal(t, "", persistedToken(t, f.repo))
	assert.Equal(t, router.Login, f.router.Current().Name)
}

func TestProfile(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Profile(context.Background())
		require.ErrorIs(t, err, ErrNotSignedIn)
	})

	t.Run("user in session", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.store.SetAuthenticated(context.Background(), "tok", &models.User{Name: "Ann"}))

		u, err := f.svc.Profile(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Ann", u.Name)
		assert.Zero(t, f.client.MeCalls)
	})

	t.Run("hydrated session fetches user", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.repo.Set(context.Background(), common.TokenStorageKey, []byte("tok")))
		require.NoError(t, f.store.Hydrate(context.Background()))
		f.client.MeRet = &models.User{ID: 3, Name: "Cy"}

		u, err := f.svc.Profile(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Cy", u.Name)

		_, err = f.svc.Profile(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, f.client.MeCalls)
		assert.Equal(t, "tok", f.store.Token())
	})
}

func TestExpireSession_ClearsOnceAndRedirects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.SetAuthenticated(ctx, "tok", &models.User{ID: 1}))
	_, err := f.router.Push(router.Location{Path: "/courses/42", Query: url.Values{"tab": {"ratings"}}})
	require.NoError(t, err)

	hook := ExpireSession(f.store, f.router, logging.Discard())
	hook(ctx)

	assert.False(t, f.store.IsAuthenticated())
	cur := f.router.Current()
	assert.Equal(t, router.Login, cur.Name)
	assert.Equal(t, "/courses/42?tab=ratings", cur.Query.Get(router.RedirectQueryKey))

	// Already on the login page: nothing to clear and no redirect loop.
	hook(ctx)
	cur = f.router.Current()
	assert.Equal(t, router.Login, cur.Name)
	assert.Equal(t, "/courses/42?tab=ratings", cur.Query.Get(router.RedirectQueryKey))

	assert.Empty(t, persistedToken(t, f.repo))
}

func TestExpireSession_AnonymousOnCourseRedirects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.router.Push(router.Location{Path: "/courses/5"})
	require.NoError(t, err)
	require.False(t, f.store.IsAuthenticated())

	ExpireSession(f.store, f.router, logging.Discard())(ctx)

	assert.False(t, f.store.IsAuthenticated())
	cur := f.router.Current()
	assert.Equal(t, router.Login, cur.Name)
	assert.Equal(t, "/courses/5", cur.Query.Get(router.RedirectQueryKey))
	assert.Equal(t, "/login?redirect=%2Fcourses%2F5", cur.FullPath)
}

func TestExpireSession_ThroughHTTPClient(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		assert.Equal(t, "Bearer tok", r.Header.Get(common.AuthorizationHeaderName))
		w.Header().Set("Content-Type", common.ContentTypeJSON)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid token"}`))
	}))
	defer srv.Close()

	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.SetAuthenticated(ctx, "tok", &models.User{ID: 1}))
	_, err := f.router.Push(router.Location{Path: router.PathDashboard})
	require.NoError(t, err)

	var expired int
	expire := ExpireSession(f.store, f.router, logging.Discard())
	c, err := api.NewHTTPClient(srv.URL,
		api.WithRequestInterceptor(api.BearerToken(f.store)),
		api.WithResponseInterceptor(api.OnUnauthorized(func(ctx context.Context) {
			expired++
			expire(ctx)
		})),
	)
	require.NoError(t, err)

	_, err = c.ListCourses(ctx)
	require.ErrorIs(t, err, api.ErrUnauthorized)

	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, expired)
	assert.False(t, f.store.IsAuthenticated())
	assert.Equal(t, router.Login, f.router.Current().Name)
	assert.Equal(t, router.PathDashboard, f.router.Current().Query.Get(router.RedirectQueryKey))
}
