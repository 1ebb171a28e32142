// Package books provides database operations for book management.
//
// Creation and update run inside a single transaction so that a dangling
// author reference or a failed genre replacement leaves no partial write.
package books

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/readshelf/readshelf/internal/entities"
)

// ErrAuthorNotFound is returned when a book payload references an author ID
// that does not resolve to an existing author.
var ErrAuthorNotFound = errors.New("author not found")

// BookInput carries all mutable book fields. Updates replace every field;
// there is no partial update.
type BookInput struct {
	Title       string
	PublishDate *time.Time
	AuthorID    uint
	Audience    entities.Audience
	GenreIDs    []uint
}

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateBook persists a new book after resolving its author and genre
// references.
func (r *Repository) CreateBook(input BookInput) (*entities.Book, error) {
	var book *entities.Book

	err := r.db.Transaction(func(tx *gorm.DB) error {
		authorID, genres, err := resolveReferences(tx, input)
		if err != nil {
			return err
		}

		book = &entities.Book{
			Title:       input.Title,
			PublishDate: input.PublishDate,
			AuthorID:    authorID,
			Audience:    input.Audience,
			Genres:      genres,
		}

		return tx.Create(book).Error
	})
	if err != nil {
		return nil, err
	}

	return r.GetBookByID(book.ID)
}

// UpdateBook replaces all mutable fields of an existing book, genres
// included. Returns gorm.ErrRecordNotFound if the book does not exist.
func (r *Repository) UpdateBook(id uint, input BookInput) (*entities.Book, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var book entities.Book
		if err := tx.First(&book, id).Error; err != nil {
			return err
		}

		authorID, genres, err := resolveReferences(tx, input)
		if err != nil {
			return err
		}

		book.Title = input.Title
		book.PublishDate = input.PublishDate
		book.AuthorID = authorID
		book.Audience = input.Audience

		if err := tx.Model(&book).Association("Genres").Replace(genres); err != nil {
			return fmt.Errorf("failed to replace genres: %w", err)
		}

		return tx.Save(&book).Error
	})
	if err != nil {
		return nil, err
	}

	return r.GetBookByID(id)
}

// GetBookByID retrieves a book with its author and genres.
func (r *Repository) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Author").Preload("Genres").First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetAllBooks returns every book with its author, ordered by title.
func (r *Repository) GetAllBooks() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Preload("Author").Order("title ASC").Find(&books).Error
	return books, err
}

// resolveReferences validates the author reference and loads the referenced
// genres. Unknown genre IDs are dropped; a missing author is an error.
func resolveReferences(tx *gorm.DB, input BookInput) (*uint, []entities.Genre, error) {
	var authorID *uint
	if input.AuthorID != 0 {
		var author entities.Author
		if err := tx.First(&author, input.AuthorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, ErrAuthorNotFound
			}
			return nil, nil, err
		}
		authorID = &author.ID
	}

	var genres []entities.Genre
	if len(input.GenreIDs) > 0 {
		if err := tx.Where("id IN ?", input.GenreIDs).Find(&genres).Error; err != nil {
			return nil, nil, err
		}
	}

	return authorID, genres, nil
}
