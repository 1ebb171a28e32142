package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/readshelf/readshelf/internal/auth"
	"github.com/readshelf/readshelf/internal/entities"
)

func TestParseIDParam_Valid(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "123"}}

	id, ok := parseIDParam(c, "id")

	assert.True(t, ok)
	assert.Equal(t, uint(123), id)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestParseIDParam_Invalid(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []string{"abc", "-1", "1.5", ""}
	for _, value := range tests {
		t.Run(value, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Params = gin.Params{{Key: "id", Value: value}}

			id, ok := parseIDParam(c, "id")

			assert.False(t, ok)
			assert.Equal(t, uint(0), id)
			assert.Equal(t, http.StatusNotFound, w.Code)
		})
	}
}

func TestAuthTemplateData_Anonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	data := authTemplateData(c)

	assert.False(t, data.LoggedIn)
	assert.Empty(t, data.Username)
}

func TestAuthTemplateData_Authenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(auth.ContextKeyUser, &entities.User{Username: "me1"})

	data := authTemplateData(c)

	assert.True(t, data.LoggedIn)
	assert.Equal(t, "me1", data.Username)
}
