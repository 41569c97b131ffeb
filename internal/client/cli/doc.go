// Package cli provides the interactive course-review command-line client.
//
// It wires configuration, the local session database, the API client with
// its interceptors, and an interactive REPL. A persisted session is restored
// at start; a 401 from the API clears it and moves the user to the login
// page, remembering where they were.
//
// Key features:
//   - Register / Login / Logout / WhoAmI
//   - Navigate the route table (go <path>); guarded pages need a session
//   - Browse, search, follow, rate and comment on courses
//   - Filter and sort review cards from an HTML page
//   - Compose a post with tags and images
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
