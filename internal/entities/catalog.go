package entities

import (
	"errors"
	"time"
)

// Audience classifies a book's intended readership.
type Audience string

const (
	AudienceChildren   Audience = "CHILDREN"
	AudienceYoungAdult Audience = "YOUNG_ADULT"
	AudienceAdult      Audience = "ADULT"
)

// ErrInvalidAudience is returned when a submitted audience value is not one
// of the known enum members.
var ErrInvalidAudience = errors.New("invalid audience value")

// ParseAudience validates a raw form value against the audience enum.
func ParseAudience(value string) (Audience, error) {
	switch Audience(value) {
	case AudienceChildren, AudienceYoungAdult, AudienceAdult:
		return Audience(value), nil
	}
	return "", ErrInvalidAudience
}

// Audiences returns every audience value, in display order.
func Audiences() []Audience {
	return []Audience{AudienceChildren, AudienceYoungAdult, AudienceAdult}
}

type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Username      string    `gorm:"uniqueIndex;size:80" json:"username"`
	PasswordHash  string    `gorm:"size:128" json:"-"` // bcrypt hash, never plaintext
	FavoriteBooks []Book    `gorm:"many2many:user_favorite_books;" json:"favorite_books,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Author struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"index;size:256" json:"name"`
	Biography string    `gorm:"type:text" json:"biography,omitempty"`
	Books     []Book    `gorm:"foreignKey:AuthorID" json:"books,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Genre struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"index;size:100" json:"name"`
	Books     []Book    `gorm:"many2many:book_genres;" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type Book struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"index;size:512" json:"title"`
	PublishDate *time.Time `json:"publish_date,omitempty"`
	AuthorID    *uint      `gorm:"index" json:"author_id,omitempty"`
	Author      *Author    `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Genres      []Genre    `gorm:"many2many:book_genres;" json:"genres,omitempty"`
	Audience    Audience   `gorm:"size:20;default:'ADULT'" json:"audience"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (Author) TableName() string {
	return "authors"
}

func (Genre) TableName() string {
	return "genres"
}

func (Book) TableName() string {
	return "books"
}
