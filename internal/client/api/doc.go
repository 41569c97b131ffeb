// Package api is the HTTP client for the course-review backend.
//
// # Overview
//
// Client is the transport-agnostic contract used by the services layer;
// HTTPClient implements it over net/http with JSON bodies. Cross-cutting
// behaviour is attached through interceptors installed on the transport:
//
//   - BearerToken injects "Authorization: Bearer <token>" from the session.
//   - RequestID stamps X-Request-ID for log correlation.
//   - LogFailures logs every transport error and non-2xx answer.
//   - OnUnauthorized reacts to 401 (the CLI clears the session and sends
//     the user to the login page).
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable. Non-2xx answers are *APIError;
// 401/403 also match ErrUnauthorized and 502-504 match ErrUnavailable via
// errors.Is. There are no retries and no default deadline: a call runs until
// it completes or its context is cancelled.
package api
