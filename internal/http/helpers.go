package http

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/readshelf/readshelf/internal/auth"
)

// AuthTemplateData holds identity info for templates.
type AuthTemplateData struct {
	LoggedIn  bool   // Whether the request carries an authenticated user
	Username  string // Current user's username (empty if anonymous)
	CSRFToken string // CSRF token for forms (empty when CSRF is disabled)
}

// authTemplateData assembles the template view of the request's identity.
// Templates access it as .Auth.
func authTemplateData(c *gin.Context) AuthTemplateData {
	data := AuthTemplateData{
		CSRFToken: auth.GetCSRFToken(c),
	}
	if user := auth.CurrentUser(c); user != nil {
		data.LoggedIn = true
		data.Username = user.Username
	}
	return data
}

// parseIDParam extracts and validates an unsigned integer ID from URL
// parameters. Responds with 404 and returns false when the value is not a
// valid ID, since such paths never name an existing resource.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.String(http.StatusNotFound, "Not found")
		return 0, false
	}
	return uint(id), true
}

// respondInternalError logs the error and sends a plain 500. The actual
// error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.String(http.StatusInternalServerError, "Internal server error")
}
