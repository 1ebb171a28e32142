package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/readshelf/readshelf/internal/entities"
)

// BookReader defines the read operations the pages need.
type BookReader interface {
	GetAllBooks() ([]entities.Book, error)
	GetBookByID(id uint) (*entities.Book, error)
}

// UserReader defines the user read operations the pages need.
type UserReader interface {
	GetAllUsers() ([]entities.User, error)
	GetUserWithFavourites(username string) (*entities.User, error)
}

type UIController struct {
	books BookReader
	users UserReader
}

func NewUIController(books BookReader, users UserReader) *UIController {
	return &UIController{
		books: books,
		users: users,
	}
}

// HomePage lists all books and readers. Creation links render only for
// authenticated users.
func (controller *UIController) HomePage(c *gin.Context) {
	books, err := controller.books.GetAllBooks()
	if err != nil {
		respondInternalError(c, err, "load books")
		return
	}

	users, err := controller.users.GetAllUsers()
	if err != nil {
		respondInternalError(c, err, "load users")
		return
	}

	c.HTML(http.StatusOK, "home", gin.H{
		"Books": books,
		"Users": users,
		"Auth":  authTemplateData(c),
	})
}

// ProfilePage shows a user's profile with their favourite books. The page is
// public; only its header varies with login state.
func (controller *UIController) ProfilePage(c *gin.Context) {
	username := c.Param("username")

	profile, err := controller.users.GetUserWithFavourites(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusNotFound, "User not found")
			return
		}
		respondInternalError(c, err, "load profile")
		return
	}

	c.HTML(http.StatusOK, "profile", gin.H{
		"Profile": profile,
		"Auth":    authTemplateData(c),
	})
}
