// Package favourites provides database operations for per-user favourite
// book lists.
//
// The user side of the relation is authoritative: rows live in the
// user_favorite_books join table and both add and remove are idempotent, so
// redundant calls never error and never create duplicate rows.
package favourites

import (
	"gorm.io/gorm"

	"github.com/readshelf/readshelf/internal/entities"
)

const joinTable = "user_favorite_books"

// Repository handles all favourites database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new favourites repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AddFavourite adds a book to a user's favourites. Favouriting an
// already-favourited book is a no-op. Returns gorm.ErrRecordNotFound if the
// user or the book does not exist.
func (r *Repository) AddFavourite(userID, bookID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var user entities.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}

		var book entities.Book
		if err := tx.First(&book, bookID).Error; err != nil {
			return err
		}

		var existing int64
		err := tx.Table(joinTable).
			Where("user_id = ? AND book_id = ?", userID, bookID).
			Count(&existing).Error
		if err != nil {
			return err
		}
		if existing > 0 {
			return nil
		}

		return tx.Model(&user).Association("FavoriteBooks").Append(&book)
	})
}

// RemoveFavourite removes a book from a user's favourites. Removing a book
// that was never favourited is a no-op.
func (r *Repository) RemoveFavourite(userID, bookID uint) error {
	user := entities.User{ID: userID}
	book := entities.Book{ID: bookID}
	return r.db.Model(&user).Association("FavoriteBooks").Delete(&book)
}

// IsFavourite reports whether the given book is in the user's favourites.
func (r *Repository) IsFavourite(userID, bookID uint) (bool, error) {
	var count int64
	err := r.db.Table(joinTable).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetFavouriteBooks returns a user's favourite books with their authors.
func (r *Repository) GetFavouriteBooks(userID uint) ([]entities.Book, error) {
	var user entities.User
	err := r.db.Preload("FavoriteBooks.Author").First(&user, userID).Error
	if err != nil {
		return nil, err
	}
	return user.FavoriteBooks, nil
}

// GetFavouriteCount returns the number of favourites a user has.
func (r *Repository) GetFavouriteCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Table(joinTable).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
