package http

import (
	"github.com/readshelf/readshelf/internal/auth"
	"github.com/readshelf/readshelf/internal/database"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router. This replaces a long parameter list
// in NewRouter for better maintainability.
type RouterConfig struct {
	// Core dependencies
	Database *database.Database

	// Catalog stores
	BookStore       BookStore
	AuthorStore     AuthorStore
	GenreStore      GenreStore
	UserStore       UserReader
	FavouritesStore FavouritesStore

	// Authentication
	AuthService    *auth.Service
	SessionManager *auth.SessionManager
	AuthMiddleware *auth.Middleware
	CSRFSecret     []byte
	SecureCookies  bool

	// UI paths. When TemplatesPath is empty the embedded templates
	// are used.
	TemplatesPath string

	// Application info
	Version string
}
