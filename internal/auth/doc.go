// Package auth implements credential handling and session-backed identity.
//
// It covers four concerns:
//
//   - Password hashing and verification with bcrypt (password.go).
//   - The auth service: signup and credential checks against the user table
//     (service.go).
//   - Cookie-backed, server-validated sessions built on scs with a SQLite
//     store, plus the Gin adapter that commits session cookies (sessions.go,
//     gin_adapter.go).
//   - The per-request identity middleware and the RequireAuth guard that
//     redirects anonymous users to /login?next=<path> (middleware.go).
//
// The session holds only the user ID; the identity middleware resolves it to
// a full user record once per request, so a deleted account degrades to an
// anonymous session instead of a broken one.
package auth
