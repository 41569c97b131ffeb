package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/coursecomment/coursecomment/internal/client/models"
	"github.com/coursecomment/coursecomment/internal/common"
)

// HTTPClient talks JSON to the API over net/http.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

type options struct {
	base     http.RoundTripper
	request  []RequestInterceptor
	response []ResponseInterceptor
}

type Option func(*options)

// WithTransport replaces the underlying transport (http.DefaultTransport).
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.base = rt }
}

// WithRequestInterceptor appends request interceptors.
func WithRequestInterceptor(ics ...RequestInterceptor) Option {
	return func(o *options) { o.request = append(o.request, ics...) }
}

// WithResponseInterceptor appends response interceptors.
func WithResponseInterceptor(ics ...ResponseInterceptor) Option {
	return func(o *options) { o.response = append(o.response, ics...) }
}

// NewHTTPClient returns a client for baseURL, e.g. BaseURLFor(production).
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}

	o := &options{base: http.DefaultTransport}
	for _, opt := range opts {
		opt(o)
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Transport: &interceptingTransport{base: o.base, request: o.request, response: o.response},
		},
	}, nil
}

func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

func (c *HTTPClient) Login(ctx context.Context, email, passwordHash string) (*models.AuthResult, error) {
	body := map[string]string{"email": email, "password_hash": passwordHash}

	var out models.AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Register(ctx context.Context, email, passwordHash, name string) (*models.AuthResult, error) {
	body := map[string]string{"email": email, "password_hash": passwordHash, "name": name}

	var out models.AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ListCourses(ctx context.Context) ([]models.Course, error) {
	out := []models.Course{}
	if err := c.do(ctx, http.MethodGet, "/courses", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) SearchCourses(ctx context.Context, query string) ([]models.Course, error) {
	out := []models.Course{}
	q := url.Values{"q": []string{query}}
	if err := c.do(ctx, http.MethodGet, "/courses/search", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetCourse(ctx context.Context, id int64) (*models.CourseDetail, error) {
	var out models.CourseDetail
	if err := c.do(ctx, http.MethodGet, "/courses/"+itoa(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) FollowCourse(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, "/follows/courses/"+itoa(id), nil, nil, nil)
}

func (c *HTTPClient) UnfollowCourse(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/follows/courses/"+itoa(id), nil, nil, nil)
}

func (c *HTTPClient) FollowedCourses(ctx context.Context) ([]models.Course, error) {
	out := []models.Course{}
	if err := c.do(ctx, http.MethodGet, "/users/me/followed-courses", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetInstructor(ctx context.Context, id int64) (*models.InstructorDetail, error) {
	var out models.InstructorDetail
	if err := c.do(ctx, http.MethodGet, "/instructors/"+itoa(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetCourseRatings(ctx context.Context, courseID int64) (*models.RatingSummary, error) {
	var out models.RatingSummary
	if err := c.do(ctx, http.MethodGet, "/ratings/courses/"+itoa(courseID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetInstructorRatings(ctx context.Context, courseID, instructorID int64) (*models.RatingSummary, error) {
	var out models.RatingSummary
	path := "/ratings" + instructorPath(courseID, instructorID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetMyRatings(ctx context.Context, courseID int64) (*models.RatingSummary, error) {
	var out models.RatingSummary
	q := url.Values{"course_id": []string{itoa(courseID)}}
	if err := c.do(ctx, http.MethodGet, "/ratings/my-ratings", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) SubmitRatings(ctx context.Context, in models.RatingSubmission) error {
	return c.do(ctx, http.MethodPost, "/ratings", nil, in, nil)
}

func (c *HTTPClient) ListComments(ctx context.Context, courseID int64) ([]models.Comment, error) {
	out := []models.Comment{}
	if err := c.do(ctx, http.MethodGet, "/comments/courses/"+itoa(courseID), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) ListInstructorComments(ctx context.Context, courseID, instructorID int64) ([]models.Comment, error) {
	out := []models.Comment{}
	path := "/comments" + instructorPath(courseID, instructorID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) PostComment(ctx context.Context, in models.CommentInput) (*models.Comment, error) {
	var out models.Comment
	if err := c.do(ctx, http.MethodPost, "/comments", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LikeComment likes a comment and returns its new like count.
func (c *HTTPClient) LikeComment(ctx context.Context, commentID int64) (int, error) {
	var out models.LikeCount
	if err := c.do(ctx, http.MethodPost, "/likes/comments/"+itoa(commentID), nil, nil, &out); err != nil {
		return 0, err
	}
	return out.LikeCount, nil
}

// UnlikeComment removes the caller's like and returns the new like count.
func (c *HTTPClient) UnlikeComment(ctx context.Context, commentID int64) (int, error) {
	var out models.LikeCount
	if err := c.do(ctx, http.MethodDelete, "/likes/comments/"+itoa(commentID), nil, nil, &out); err != nil {
		return 0, err
	}
	return out.LikeCount, nil
}

// do sends one JSON request and decodes a 2xx body into out (if non-nil).
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", common.ContentTypeJSON)
	req.Header.Set("Accept", common.ContentTypeJSON)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %w", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var msg models.MessageResponse
		_ = json.Unmarshal(data, &msg)
		return newAPIError(resp.StatusCode, msg.Message)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func instructorPath(courseID, instructorID int64) string {
	return "/courses/" + itoa(courseID) + "/instructors/" + itoa(instructorID)
}

var _ Client = (*HTTPClient)(nil)

// IsUnauthorized is a shorthand for errors.Is(err, ErrUnauthorized).
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
