package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bookclubapp/go-bookclub-backend/internal/auth"
	"github.com/bookclubapp/go-bookclub-backend/internal/domain"
	"github.com/bookclubapp/go-bookclub-backend/internal/repo"
)

// newTestDB opens a throwaway file-backed SQLite DB with the full schema
// and foreign keys enabled, mirroring production bootstrap.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA foreign_keys=ON;")
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// testPeople returns a PeopleService with the cheapest hashing cost so the
// password-path tests stay fast.
func testPeople(db *gorm.DB) *PeopleService {
	return &PeopleService{DB: db, BcryptCost: bcrypt.MinCost}
}

func testTokens(t *testing.T) *auth.TokenService {
	t.Helper()
	return auth.NewTokenService("test-secret", time.Hour)
}

func mustPerson(t *testing.T, db *gorm.DB, email string) *domain.Person {
	t.Helper()
	p, err := testPeople(db).Create(context.Background(), CreatePersonInput{
		Name:     "Seed Person",
		Email:    email,
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("seed person %s: %v", email, err)
	}
	return p
}

func mustBook(t *testing.T, db *gorm.DB, title string) *domain.Book {
	t.Helper()
	svc := &BooksService{DB: db}
	b, err := svc.Create(context.Background(), CreateBookInput{Title: title, Author: "Author"})
	if err != nil {
		t.Fatalf("seed book %s: %v", title, err)
	}
	return b
}

func mustClub(t *testing.T, db *gorm.DB, name, creatorID string) *domain.Club {
	t.Helper()
	svc := &ClubsService{DB: db}
	c, err := svc.Create(context.Background(), CreateClubInput{Name: name, CreatorID: creatorID})
	if err != nil {
		t.Fatalf("seed club %s: %v", name, err)
	}
	return c
}

func strptr(s string) *string { return &s }

func intptr(n int) *int { return &n }
