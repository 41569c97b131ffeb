package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/coursecomment/coursecomment/internal/common"
	"github.com/coursecomment/coursecomment/internal/logging"
)

// RequestInterceptor runs on every outgoing request before it is sent. It
// may modify the request; returning an error aborts the call.
type RequestInterceptor func(req *http.Request) error

// ResponseInterceptor observes every completed round trip. Exactly one of
// resp and err is non-nil. It cannot change the outcome; the caller still
// receives the original response or error.
type ResponseInterceptor func(req *http.Request, resp *http.Response, err error)

// TokenSource yields the current bearer token, "" when signed out.
type TokenSource interface {
	Token() string
}

// interceptingTransport applies request interceptors, delegates to base and
// then hands the result to response interceptors, in registration order.
type interceptingTransport struct {
	base     http.RoundTripper
	request  []RequestInterceptor
	response []ResponseInterceptor
}

func (t *interceptingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not mutate the caller's request.
	req = req.Clone(req.Context())
	for _, ic := range t.request {
		if err := ic(req); err != nil {
			return nil, err
		}
	}

	resp, err := t.base.RoundTrip(req)
	for _, ic := range t.response {
		ic(req, resp, err)
	}
	return resp, err
}

// BearerToken sets "Authorization: Bearer <token>" when src holds a token.
func BearerToken(src TokenSource) RequestInterceptor {
	return func(req *http.Request) error {
		if token := src.Token(); token != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
		}
		return nil
	}
}

// RequestID stamps each request with a fresh X-Request-ID unless the caller
// set one already.
func RequestID() RequestInterceptor {
	return func(req *http.Request) error {
		if req.Header.Get(common.RequestIDHeaderName) == "" {
			req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
		}
		return nil
	}
}

// LogFailures logs transport errors and non-2xx responses.
func LogFailures(log logging.Logger) ResponseInterceptor {
	return func(req *http.Request, resp *http.Response, err error) {
		ctx := req.Context()
		fields := []any{
			"method", req.Method,
			"url", req.URL.String(),
			"request_id", req.Header.Get(common.RequestIDHeaderName),
		}

		if err != nil {
			log.Error(ctx, "API error", append(fields, "error", err)...)
			return
		}
		if resp.StatusCode >= http.StatusBadRequest {
			log.Warn(ctx, "API error", append(fields, "status", resp.StatusCode)...)
		}
	}
}

// OnUnauthorized calls fn whenever the server answers 401.
func OnUnauthorized(fn func(ctx context.Context)) ResponseInterceptor {
	return func(req *http.Request, resp *http.Response, err error) {
		if err == nil && resp != nil && resp.StatusCode == http.StatusUnauthorized {
			fn(req.Context())
		}
	}
}
