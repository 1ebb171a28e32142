// Package authors provides database operations for author management.
package authors

import (
	"gorm.io/gorm"

	"github.com/readshelf/readshelf/internal/entities"
)

// Repository handles all author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateAuthor persists a new author. Author names are not unique; two
// distinct authors may share a name.
func (r *Repository) CreateAuthor(name, biography string) (*entities.Author, error) {
	author := &entities.Author{
		Name:      name,
		Biography: biography,
	}

	if err := r.db.Create(author).Error; err != nil {
		return nil, err
	}

	return author, nil
}

// GetAuthorByID retrieves an author by ID.
func (r *Repository) GetAuthorByID(id uint) (*entities.Author, error) {
	var author entities.Author
	err := r.db.First(&author, id).Error
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// GetAuthorWithBooks retrieves an author together with their books.
func (r *Repository) GetAuthorWithBooks(id uint) (*entities.Author, error) {
	var author entities.Author
	err := r.db.Preload("Books").First(&author, id).Error
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// GetAllAuthors returns every author ordered by name.
func (r *Repository) GetAllAuthors() ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.Order("name ASC").Find(&authors).Error
	return authors, err
}
