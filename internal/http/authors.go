package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/readshelf/readshelf/internal/entities"
)

// AuthorStore defines the author operations the controller needs.
type AuthorStore interface {
	AuthorReader
	CreateAuthor(name, biography string) (*entities.Author, error)
}

type AuthorsController struct {
	store AuthorStore
}

func NewAuthorsController(store AuthorStore) *AuthorsController {
	return &AuthorsController{store: store}
}

// CreateAuthorPage renders the author creation form.
func (controller *AuthorsController) CreateAuthorPage(c *gin.Context) {
	c.HTML(http.StatusOK, "create_author", gin.H{
		"Name":      "",
		"Biography": "",
		"Error":     "",
		"Auth":      authTemplateData(c),
	})
}

// CreateAuthor handles the author creation form submission. Author names
// carry no uniqueness constraint.
func (controller *AuthorsController) CreateAuthor(c *gin.Context) {
	name := c.PostForm("name")
	if name == "" {
		c.HTML(http.StatusOK, "create_author", gin.H{
			"Name":      name,
			"Biography": c.PostForm("biography"),
			"Error":     "Name is required",
			"Auth":      authTemplateData(c),
		})
		return
	}

	_, err := controller.store.CreateAuthor(name, c.PostForm("biography"))
	if err != nil {
		respondInternalError(c, err, "create author")
		return
	}

	c.Redirect(http.StatusFound, "/")
}
