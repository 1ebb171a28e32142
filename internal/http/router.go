package http

import (
	"html/template"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/readshelf/readshelf/internal/auth"
	"github.com/readshelf/readshelf/internal/web"
)

// templateFuncs returns the functions available inside HTML templates.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		// formatDate renders a publish date the way readers expect it,
		// e.g. "July 11, 1960".
		"formatDate": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.Format("January 2, 2006")
		},
		// formValue renders a date for an <input type="date"> value.
		"formValue": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.Format("2006-01-02")
		},
		"deref": func(p *uint) uint {
			if p == nil {
				return 0
			}
			return *p
		},
	}
}

// loadTemplates parses the HTML templates, preferring an on-disk override
// when a path is configured and falling back to the embedded set.
func loadTemplates(templatesPath string) *template.Template {
	root := template.New("").Funcs(templateFuncs())
	if templatesPath != "" {
		return template.Must(root.ParseGlob(templatesPath + "/*.html"))
	}
	return template.Must(root.ParseFS(web.Templates, web.TemplatesPattern))
}

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())

	// CSRF must run before the session middleware so the session
	// context is preserved across the request replacement CSRF does.
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	// Resolve the session into a user on every request so templates can
	// branch on login state even on public pages.
	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.ResolveIdentity())
	}

	router.SetHTMLTemplate(loadTemplates(cfg.TemplatesPath))

	// Signup, login and logout
	authController := auth.NewAuthController(cfg.AuthService, cfg.SessionManager)
	authController.RegisterRoutes(router)

	health := NewHealthController(cfg.Database, cfg.Version)
	uiController := NewUIController(cfg.BookStore, cfg.UserStore)
	booksController := NewBooksController(cfg.BookStore, cfg.AuthorStore, cfg.GenreStore, cfg.FavouritesStore)
	authorsController := NewAuthorsController(cfg.AuthorStore)
	genresController := NewGenresController(cfg.GenreStore)
	favouritesController := NewFavouritesController(cfg.FavouritesStore)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Public pages
	router.GET("/", uiController.HomePage)
	router.GET("/book/:id", booksController.BookPage)
	router.GET("/profile/:username", uiController.ProfilePage)

	// Pages and actions that require a logged-in user. Anonymous
	// requests are redirected to the login page with a next parameter.
	protected := router.Group("", cfg.AuthMiddleware.RequireAuth())
	protected.GET("/create_book", booksController.CreateBookPage)
	protected.POST("/create_book", booksController.CreateBook)
	protected.POST("/book/:id", booksController.UpdateBook)
	protected.GET("/create_author", authorsController.CreateAuthorPage)
	protected.POST("/create_author", authorsController.CreateAuthor)
	protected.GET("/create_genre", genresController.CreateGenrePage)
	protected.POST("/create_genre", genresController.CreateGenre)
	protected.POST("/favorite/:id", favouritesController.Favourite)
	protected.POST("/unfavorite/:id", favouritesController.Unfavourite)

	return router
}
