package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/readshelf/readshelf/internal/auth"
	"github.com/readshelf/readshelf/internal/entities"
)

// FavouritesStore defines database operations for favourites management.
type FavouritesStore interface {
	AddFavourite(userID, bookID uint) error
	RemoveFavourite(userID, bookID uint) error
	IsFavourite(userID, bookID uint) (bool, error)
	GetFavouriteBooks(userID uint) ([]entities.Book, error)
}

type FavouritesController struct {
	store FavouritesStore
}

func NewFavouritesController(store FavouritesStore) *FavouritesController {
	return &FavouritesController{store: store}
}

// Favourite adds a book to the current user's favourites.
// POST /favorite/:id. Favouriting twice is a no-op.
func (fc *FavouritesController) Favourite(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user := auth.CurrentUser(c)
	if err := fc.store.AddFavourite(user.ID, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusNotFound, "Book not found")
			return
		}
		respondInternalError(c, err, "add favourite")
		return
	}

	c.Redirect(http.StatusFound, "/book/"+strconv.FormatUint(uint64(bookID), 10))
}

// Unfavourite removes a book from the current user's favourites.
// POST /unfavorite/:id. Removing a never-favourited book is a no-op.
func (fc *FavouritesController) Unfavourite(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user := auth.CurrentUser(c)
	if err := fc.store.RemoveFavourite(user.ID, bookID); err != nil {
		respondInternalError(c, err, "remove favourite")
		return
	}

	c.Redirect(http.StatusFound, "/book/"+strconv.FormatUint(uint64(bookID), 10))
}
