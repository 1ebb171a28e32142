// Command generate_demo creates a demo database with a sample catalog of
// public domain books.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/readshelf/readshelf/internal/auth"
	"github.com/readshelf/readshelf/internal/config"
	"github.com/readshelf/readshelf/internal/database"
	"github.com/readshelf/readshelf/internal/database/authors"
	"github.com/readshelf/readshelf/internal/database/books"
	"github.com/readshelf/readshelf/internal/database/favourites"
	"github.com/readshelf/readshelf/internal/database/genres"
	"github.com/readshelf/readshelf/internal/database/users"
	"github.com/readshelf/readshelf/internal/entities"
)

const defaultDemoDatabasePath = "./demo/demo.db"

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	authorRepo := authors.NewRepository(db.DB)
	genreRepo := genres.NewRepository(db.DB)
	bookRepo := books.NewRepository(db.DB)
	userRepo := users.NewRepository(db.DB)
	favouriteRepo := favourites.NewRepository(db.DB)

	genresByName := createGenres(genreRepo)
	authorsByName := createAuthors(authorRepo)

	var created []*entities.Book
	for _, cfg := range demoBooks() {
		author, ok := authorsByName[cfg.AuthorName]
		if !ok {
			log.Printf("Skipping %s: unknown author %s", cfg.Title, cfg.AuthorName)
			continue
		}

		var genreIDs []uint
		for _, name := range cfg.GenreNames {
			if genre, ok := genresByName[name]; ok {
				genreIDs = append(genreIDs, genre.ID)
			}
		}

		book, err := bookRepo.CreateBook(books.BookInput{
			Title:       cfg.Title,
			PublishDate: cfg.PublishDate,
			AuthorID:    author.ID,
			Audience:    cfg.Audience,
			GenreIDs:    genreIDs,
		})
		if err != nil {
			log.Printf("Failed to save book %s: %v", cfg.Title, err)
			continue
		}
		created = append(created, book)
		log.Printf("Saved: %s by %s", book.Title, author.Name)
	}

	createDemoReader(userRepo, favouriteRepo, created)

	log.Println("Demo database generated successfully!")
}

func createGenres(repo *genres.Repository) map[string]entities.Genre {
	names := []string{
		"fiction",
		"classic",
		"philosophy",
		"science",
		"gothic",
	}

	byName := make(map[string]entities.Genre)
	for _, name := range names {
		genre, err := repo.CreateGenre(name)
		if err != nil {
			log.Printf("Failed to create genre %s: %v", name, err)
			continue
		}
		byName[name] = *genre
	}
	return byName
}

func createAuthors(repo *authors.Repository) map[string]entities.Author {
	seed := []struct {
		name      string
		biography string
	}{
		{
			name:      "Jane Austen",
			biography: "English novelist known for her six major novels set among the landed gentry.",
		},
		{
			name:      "Mary Shelley",
			biography: "English novelist who wrote the Gothic novel Frankenstein at the age of eighteen.",
		},
		{
			name:      "Leo Tolstoy",
			biography: "Russian writer regarded as one of the greatest authors of all time.",
		},
		{
			name:      "Oscar Wilde",
			biography: "Irish poet and playwright, one of the most popular writers of the 1890s.",
		},
		{
			name:      "Charles Darwin",
			biography: "English naturalist, best known for his contributions to evolutionary biology.",
		},
		{
			name:      "Lewis Carroll",
			biography: "English author of children's fiction, notably Alice's Adventures in Wonderland.",
		},
	}

	byName := make(map[string]entities.Author)
	for _, s := range seed {
		author, err := repo.CreateAuthor(s.name, s.biography)
		if err != nil {
			log.Printf("Failed to create author %s: %v", s.name, err)
			continue
		}
		byName[s.name] = *author
	}
	return byName
}

// demoBook describes a catalog entry before the referenced author and
// genres are resolved to IDs.
type demoBook struct {
	Title       string
	AuthorName  string
	GenreNames  []string
	PublishDate *time.Time
	Audience    entities.Audience
}

func date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func demoBooks() []demoBook {
	return []demoBook{
		{
			Title:       "Pride and Prejudice",
			AuthorName:  "Jane Austen",
			GenreNames:  []string{"fiction", "classic"},
			PublishDate: date(1813, time.January, 28),
			Audience:    entities.AudienceAdult,
		},
		{
			Title:       "Frankenstein",
			AuthorName:  "Mary Shelley",
			GenreNames:  []string{"fiction", "classic", "gothic", "science"},
			PublishDate: date(1818, time.January, 1),
			Audience:    entities.AudienceAdult,
		},
		{
			Title:       "War and Peace",
			AuthorName:  "Leo Tolstoy",
			GenreNames:  []string{"fiction", "classic"},
			PublishDate: date(1869, time.January, 1),
			Audience:    entities.AudienceAdult,
		},
		{
			Title:       "The Picture of Dorian Gray",
			AuthorName:  "Oscar Wilde",
			GenreNames:  []string{"fiction", "classic", "gothic"},
			PublishDate: date(1890, time.June, 20),
			Audience:    entities.AudienceYoungAdult,
		},
		{
			Title:       "On the Origin of Species",
			AuthorName:  "Charles Darwin",
			GenreNames:  []string{"science", "classic", "philosophy"},
			PublishDate: date(1859, time.November, 24),
			Audience:    entities.AudienceAdult,
		},
		{
			Title:       "Alice's Adventures in Wonderland",
			AuthorName:  "Lewis Carroll",
			GenreNames:  []string{"fiction", "classic"},
			PublishDate: date(1865, time.November, 26),
			Audience:    entities.AudienceChildren,
		},
	}
}

// createDemoReader adds a sample account with a couple of favourites so the
// demo homepage and profile pages have something to show.
// Credentials: demo / demo-password.
func createDemoReader(userRepo *users.Repository, favouriteRepo *favourites.Repository, catalog []*entities.Book) {
	hash, err := auth.HashPassword("demo-password", config.DefaultBcryptCost)
	if err != nil {
		log.Printf("Failed to hash demo password: %v", err)
		return
	}

	user, err := userRepo.CreateUser("demo", hash)
	if err != nil {
		log.Printf("Failed to create demo user: %v", err)
		return
	}

	for i, book := range catalog {
		if i >= 2 {
			break
		}
		if err := favouriteRepo.AddFavourite(user.ID, book.ID); err != nil {
			log.Printf("Failed to favourite %s: %v", book.Title, err)
		}
	}

	log.Printf("Created demo user %q", user.Username)
}
