// Package genres provides database operations for genre management.
package genres

import (
	"gorm.io/gorm"

	"github.com/readshelf/readshelf/internal/entities"
)

// Repository handles all genre database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new genres repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateGenre persists a new genre. Name uniqueness is intended in practice
// but not enforced beyond insertion.
func (r *Repository) CreateGenre(name string) (*entities.Genre, error) {
	genre := &entities.Genre{Name: name}

	if err := r.db.Create(genre).Error; err != nil {
		return nil, err
	}

	return genre, nil
}

// GetGenreByID retrieves a genre by ID.
func (r *Repository) GetGenreByID(id uint) (*entities.Genre, error) {
	var genre entities.Genre
	err := r.db.First(&genre, id).Error
	if err != nil {
		return nil, err
	}
	return &genre, nil
}

// GetGenresByIDs resolves a set of genre IDs to the genres that exist.
// Unknown IDs are skipped rather than treated as an error.
func (r *Repository) GetGenresByIDs(ids []uint) ([]entities.Genre, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var genres []entities.Genre
	err := r.db.Where("id IN ?", ids).Find(&genres).Error
	return genres, err
}

// GetAllGenres returns every genre ordered by name.
func (r *Repository) GetAllGenres() ([]entities.Genre, error) {
	var genres []entities.Genre
	err := r.db.Order("name ASC").Find(&genres).Error
	return genres, err
}
