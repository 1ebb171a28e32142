package authors

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/readshelf/readshelf/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository, func()) {
	dbPath := "./test_authors_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.Author{},
		&entities.Genre{},
		&entities.Book{},
	)
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return db, repo, cleanup
}

func TestRepository_CreateAuthor(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	author, err := repo.CreateAuthor("Harper Lee", "American novelist.")

	require.NoError(t, err)
	assert.NotZero(t, author.ID)
	assert.Equal(t, "Harper Lee", author.Name)
	assert.Equal(t, "American novelist.", author.Biography)
}

func TestRepository_CreateAuthor_SharedName(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	first, err := repo.CreateAuthor("John Smith", "")
	require.NoError(t, err)

	// Names are not unique, two distinct authors may share one
	second, err := repo.CreateAuthor("John Smith", "")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestRepository_GetAuthorByID(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	created, err := repo.CreateAuthor("Harper Lee", "")
	require.NoError(t, err)

	found, err := repo.GetAuthorByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Harper Lee", found.Name)

	_, err = repo.GetAuthorByID(9999)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestRepository_GetAuthorWithBooks(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	author, err := repo.CreateAuthor("Harper Lee", "")
	require.NoError(t, err)

	book := entities.Book{Title: "To Kill a Mockingbird", AuthorID: &author.ID}
	require.NoError(t, db.Create(&book).Error)

	found, err := repo.GetAuthorWithBooks(author.ID)
	require.NoError(t, err)
	require.Len(t, found.Books, 1)
	assert.Equal(t, "To Kill a Mockingbird", found.Books[0].Title)
}

func TestRepository_GetAllAuthors(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	for _, name := range []string{"Woolf", "Austen", "Tolstoy"} {
		_, err := repo.CreateAuthor(name, "")
		require.NoError(t, err)
	}

	authors, err := repo.GetAllAuthors()
	require.NoError(t, err)
	require.Len(t, authors, 3)
	assert.Equal(t, "Austen", authors[0].Name)
	assert.Equal(t, "Tolstoy", authors[1].Name)
	assert.Equal(t, "Woolf", authors[2].Name)
}
