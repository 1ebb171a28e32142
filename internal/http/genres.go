package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/readshelf/readshelf/internal/entities"
)

// GenreStore defines the genre operations the controller needs.
type GenreStore interface {
	GenreReader
	CreateGenre(name string) (*entities.Genre, error)
}

type GenresController struct {
	store GenreStore
}

func NewGenresController(store GenreStore) *GenresController {
	return &GenresController{store: store}
}

// CreateGenrePage renders the genre creation form.
func (controller *GenresController) CreateGenrePage(c *gin.Context) {
	c.HTML(http.StatusOK, "create_genre", gin.H{
		"Name":  "",
		"Error": "",
		"Auth":  authTemplateData(c),
	})
}

// CreateGenre handles the genre creation form submission.
func (controller *GenresController) CreateGenre(c *gin.Context) {
	name := c.PostForm("name")
	if name == "" {
		c.HTML(http.StatusOK, "create_genre", gin.H{
			"Name":  name,
			"Error": "Name is required",
			"Auth":  authTemplateData(c),
		})
		return
	}

	_, err := controller.store.CreateGenre(name)
	if err != nil {
		respondInternalError(c, err, "create genre")
		return
	}

	c.Redirect(http.StatusFound, "/")
}
