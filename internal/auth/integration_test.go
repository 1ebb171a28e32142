package auth

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/readshelf/readshelf/internal/config"
	"github.com/readshelf/readshelf/internal/entities"
)

const testFormTemplates = `
{{define "signup"}}<h1>Sign Up</h1>{{if .Error}}<p>{{.Error}}</p>{{end}}{{end}}
{{define "login"}}<h1>Log In</h1>{{if .Error}}<p>{{.Error}}</p>{{end}}<input name="next" value="{{.Next}}">{{end}}
`

func setupTestRouter(t *testing.T) (*gin.Engine, *Service, *SessionManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&entities.User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get SQL DB: %v", err)
	}

	cfg := config.Auth{
		SessionLifetime: 24 * time.Hour,
		BcryptCost:      10,
		SecureCookies:   false,
	}

	svc := NewService(db, cfg)

	sm, err := NewSessionManager(sqlDB, cfg)
	if err != nil {
		t.Fatalf("failed to create session manager: %v", err)
	}

	middleware := NewMiddleware(svc, sm)

	router := gin.New()
	router.SetHTMLTemplate(template.Must(template.New("").Parse(testFormTemplates)))
	router.Use(sm.SessionLoadSave())
	router.Use(middleware.ResolveIdentity())

	NewAuthController(svc, sm).RegisterRoutes(router)

	router.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUsername(c))
	})

	protected := router.Group("", middleware.RequireAuth())
	protected.GET("/create_book", func(c *gin.Context) {
		c.String(http.StatusOK, "create book form")
	})

	return router, svc, sm
}

func postForm(router *gin.Engine, path, form string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// sessionCookie extracts the session cookie from a recorder's headers.
// (httptest.ResponseRecorder.Result() doesn't include headers added after
// the body is written.)
func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	setCookieHeader := w.Header().Get("Set-Cookie")
	if setCookieHeader == "" {
		t.Fatal("No Set-Cookie header found")
	}

	header := http.Header{}
	header.Add("Set-Cookie", setCookieHeader)
	resp := http.Response{Header: header}
	for _, c := range resp.Cookies() {
		if c.Name == "session" {
			return c
		}
	}
	t.Fatalf("No session cookie found in Set-Cookie header: %s", setCookieHeader)
	return nil
}

func TestIntegration_GuardRedirectsAnonymous(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/create_book", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("Expected 302, got %d", w.Code)
	}
	location := w.Header().Get("Location")
	if location != "/login?next=%2Fcreate_book" {
		t.Errorf("Location = %q, want /login?next=%%2Fcreate_book", location)
	}
}

func TestIntegration_SignupDoesNotLogIn(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	w := postForm(router, "/signup", "username=me1&password=password123", nil)
	if w.Code != http.StatusFound {
		t.Fatalf("Expected redirect after signup, got %d", w.Code)
	}
	if location := w.Header().Get("Location"); location != "/login" {
		t.Errorf("Location = %q, want /login", location)
	}

	// A fresh request without logging in must still be anonymous
	req := httptest.NewRequest(http.MethodGet, "/create_book", nil)
	anon := httptest.NewRecorder()
	router.ServeHTTP(anon, req)
	if anon.Code != http.StatusFound {
		t.Errorf("Expected anonymous redirect after signup, got %d", anon.Code)
	}
}

func TestIntegration_SignupDuplicateUsername(t *testing.T) {
	router, svc, _ := setupTestRouter(t)

	if _, err := svc.Signup("me1", "password123"); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	w := postForm(router, "/signup", "username=me1&password=other", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected inline form error, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "that username is taken") {
		t.Errorf("Expected taken-username message, got %s", w.Body.String())
	}
}

func TestIntegration_LoginErrors(t *testing.T) {
	router, svc, _ := setupTestRouter(t)

	if _, err := svc.Signup("me1", "password123"); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	tests := []struct {
		name    string
		form    string
		message string
	}{
		{
			name:    "unknown user",
			form:    "username=nobody&password=password123",
			message: "User does not exist",
		},
		{
			name:    "wrong password",
			form:    "username=me1&password=wrong",
			message: "Password incorrect",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postForm(router, "/login", tt.form, nil)
			if w.Code != http.StatusOK {
				t.Fatalf("Expected inline form error, got %d", w.Code)
			}
			if !strings.Contains(w.Body.String(), tt.message) {
				t.Errorf("Expected %q in body, got %s", tt.message, w.Body.String())
			}
		})
	}
}

func TestIntegration_LoginLogoutFlow(t *testing.T) {
	router, svc, _ := setupTestRouter(t)

	if _, err := svc.Signup("me1", "password123"); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	// Step 1: login redirects to the requested next page
	loginW := postForm(router, "/login", "username=me1&password=password123&next=%2Fcreate_book", nil)
	if loginW.Code != http.StatusFound {
		t.Fatalf("Login failed: %d - %s", loginW.Code, loginW.Body.String())
	}
	if location := loginW.Header().Get("Location"); location != "/create_book" {
		t.Errorf("Location = %q, want /create_book", location)
	}
	cookie := sessionCookie(t, loginW)

	// Step 2: the session cookie resolves to the user
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(cookie)
	whoW := httptest.NewRecorder()
	router.ServeHTTP(whoW, req)
	if whoW.Body.String() != "me1" {
		t.Errorf("whoami = %q, want me1", whoW.Body.String())
	}

	// Step 3: protected route is reachable
	req = httptest.NewRequest(http.MethodGet, "/create_book", nil)
	req.AddCookie(cookie)
	protW := httptest.NewRecorder()
	router.ServeHTTP(protW, req)
	if protW.Code != http.StatusOK {
		t.Errorf("Protected route with session returned %d, expected 200", protW.Code)
	}

	// Step 4: logout destroys the session
	req = httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(cookie)
	logoutW := httptest.NewRecorder()
	router.ServeHTTP(logoutW, req)
	if logoutW.Code != http.StatusFound {
		t.Fatalf("Logout returned %d, expected 302", logoutW.Code)
	}
	if location := logoutW.Header().Get("Location"); location != "/" {
		t.Errorf("Logout Location = %q, want /", location)
	}

	// Step 5: the old session no longer authenticates
	req = httptest.NewRequest(http.MethodGet, "/create_book", nil)
	req.AddCookie(cookie)
	afterW := httptest.NewRecorder()
	router.ServeHTTP(afterW, req)
	if afterW.Code != http.StatusFound {
		t.Errorf("Expected redirect after logout, got %d", afterW.Code)
	}
}

func TestIntegration_LoginRejectsExternalNext(t *testing.T) {
	router, svc, _ := setupTestRouter(t)

	if _, err := svc.Signup("me1", "password123"); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	w := postForm(router, "/login", "username=me1&password=password123&next=//evil.com", nil)
	if w.Code != http.StatusFound {
		t.Fatalf("Login failed: %d", w.Code)
	}
	if location := w.Header().Get("Location"); location != "/" {
		t.Errorf("Location = %q, want / for external next target", location)
	}
}

func TestIntegration_LogoutWhileAnonymous(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Errorf("Anonymous logout returned %d, expected 302", w.Code)
	}
}
