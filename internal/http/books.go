package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/readshelf/readshelf/internal/auth"
	"github.com/readshelf/readshelf/internal/database/books"
	"github.com/readshelf/readshelf/internal/entities"
)

// errInvalidPublishDate flags a publish date that is not YYYY-MM-DD.
var errInvalidPublishDate = errors.New("invalid publish date")

// BookStore defines the book operations the controllers need.
type BookStore interface {
	BookReader
	CreateBook(input books.BookInput) (*entities.Book, error)
	UpdateBook(id uint, input books.BookInput) (*entities.Book, error)
}

// AuthorReader lists authors for the book forms.
type AuthorReader interface {
	GetAllAuthors() ([]entities.Author, error)
}

// GenreReader lists genres for the book forms.
type GenreReader interface {
	GetAllGenres() ([]entities.Genre, error)
}

// FavouriteChecker reports whether a user has favourited a book.
type FavouriteChecker interface {
	IsFavourite(userID, bookID uint) (bool, error)
}

type BooksController struct {
	store      BookStore
	authors    AuthorReader
	genres     GenreReader
	favourites FavouriteChecker
}

func NewBooksController(store BookStore, authors AuthorReader, genres GenreReader, favourites FavouriteChecker) *BooksController {
	return &BooksController{
		store:      store,
		authors:    authors,
		genres:     genres,
		favourites: favourites,
	}
}

// BookPage shows a book's detail view. The favourite control and the edit
// form render only for authenticated users.
func (controller *BooksController) BookPage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.store.GetBookByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusNotFound, "Book not found")
			return
		}
		respondInternalError(c, err, "load book")
		return
	}

	controller.renderBookPage(c, book, "")
}

// CreateBookPage renders the book creation form.
func (controller *BooksController) CreateBookPage(c *gin.Context) {
	controller.renderCreateBookPage(c, "")
}

// CreateBook handles the book creation form submission. Validation failures
// (bad audience, dangling author reference, malformed date) come back inline
// on the form.
func (controller *BooksController) CreateBook(c *gin.Context) {
	input, err := parseBookForm(c)
	if err != nil {
		controller.renderCreateBookPage(c, bookFormError(err))
		return
	}

	book, err := controller.store.CreateBook(input)
	if err != nil {
		if errors.Is(err, books.ErrAuthorNotFound) {
			controller.renderCreateBookPage(c, bookFormError(err))
			return
		}
		respondInternalError(c, err, "create book")
		return
	}

	c.Redirect(http.StatusFound, "/book/"+strconv.FormatUint(uint64(book.ID), 10))
}

// UpdateBook replaces all mutable fields of a book. There is no partial
// update; the form always submits the full field set.
func (controller *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	input, err := parseBookForm(c)
	if err != nil {
		book, loadErr := controller.store.GetBookByID(id)
		if loadErr != nil {
			c.String(http.StatusNotFound, "Book not found")
			return
		}
		controller.renderBookPage(c, book, bookFormError(err))
		return
	}

	book, err := controller.store.UpdateBook(id, input)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.String(http.StatusNotFound, "Book not found")
		case errors.Is(err, books.ErrAuthorNotFound):
			book, loadErr := controller.store.GetBookByID(id)
			if loadErr != nil {
				c.String(http.StatusNotFound, "Book not found")
				return
			}
			controller.renderBookPage(c, book, bookFormError(err))
		default:
			respondInternalError(c, err, "update book")
		}
		return
	}

	c.Redirect(http.StatusFound, "/book/"+strconv.FormatUint(uint64(book.ID), 10))
}

func (controller *BooksController) renderBookPage(c *gin.Context, book *entities.Book, errorMsg string) {
	authors, err := controller.authors.GetAllAuthors()
	if err != nil {
		respondInternalError(c, err, "load authors")
		return
	}

	genres, err := controller.genres.GetAllGenres()
	if err != nil {
		respondInternalError(c, err, "load genres")
		return
	}

	isFavourite := false
	if user := auth.CurrentUser(c); user != nil {
		isFavourite, err = controller.favourites.IsFavourite(user.ID, book.ID)
		if err != nil {
			respondInternalError(c, err, "check favourite")
			return
		}
	}

	c.HTML(http.StatusOK, "book", gin.H{
		"Book":        book,
		"Authors":     authors,
		"Genres":      genres,
		"Audiences":   entities.Audiences(),
		"IsFavourite": isFavourite,
		"Error":       errorMsg,
		"Auth":        authTemplateData(c),
	})
}

func (controller *BooksController) renderCreateBookPage(c *gin.Context, errorMsg string) {
	authors, err := controller.authors.GetAllAuthors()
	if err != nil {
		respondInternalError(c, err, "load authors")
		return
	}

	genres, err := controller.genres.GetAllGenres()
	if err != nil {
		respondInternalError(c, err, "load genres")
		return
	}

	c.HTML(http.StatusOK, "create_book", gin.H{
		"Title":       c.PostForm("title"),
		"PublishDate": c.PostForm("publish_date"),
		"Authors":     authors,
		"Genres":      genres,
		"Audiences":   entities.Audiences(),
		"Error":       errorMsg,
		"Auth":        authTemplateData(c),
	})
}

// parseBookForm reads the full set of book fields from the form.
func parseBookForm(c *gin.Context) (books.BookInput, error) {
	input := books.BookInput{
		Title: c.PostForm("title"),
	}

	if dateStr := c.PostForm("publish_date"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return input, errInvalidPublishDate
		}
		input.PublishDate = &date
	}

	audience, err := entities.ParseAudience(c.PostForm("audience"))
	if err != nil {
		return input, err
	}
	input.Audience = audience

	if authorStr := c.PostForm("author"); authorStr != "" {
		authorID, err := strconv.ParseUint(authorStr, 10, 32)
		if err != nil {
			return input, books.ErrAuthorNotFound
		}
		input.AuthorID = uint(authorID)
	}

	for _, genreStr := range c.PostFormArray("genres") {
		genreID, err := strconv.ParseUint(genreStr, 10, 32)
		if err != nil {
			continue
		}
		input.GenreIDs = append(input.GenreIDs, uint(genreID))
	}

	return input, nil
}

// bookFormError maps validation errors to the inline form message.
func bookFormError(err error) string {
	switch {
	case errors.Is(err, entities.ErrInvalidAudience):
		return "Please choose a valid audience."
	case errors.Is(err, books.ErrAuthorNotFound):
		return "The selected author does not exist."
	case errors.Is(err, errInvalidPublishDate):
		return "Publish date must be in YYYY-MM-DD format."
	}
	return "Failed to save book."
}
