package repo

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bookclubapp/go-bookclub-backend/internal/domain"
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
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedPerson(t *testing.T, db *gorm.DB, email string) *domain.Person {
	t.Helper()
	p := &domain.Person{Name: "Seed", Email: email, PasswordHash: "x"}
	if err := Create(context.Background(), db, p); err != nil {
		t.Fatalf("seed person: %v", err)
	}
	return p
}

func TestCreateAndGetByID(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	p := seedPerson(t, db, "a@example.com")
	if p.ID == "" {
		t.Fatalf("expected generated id")
	}

	got, err := GetByID[domain.Person](ctx, db, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Email != "a@example.com" {
		t.Fatalf("unexpected row: %+v", got)
	}

	if _, err := GetByID[domain.Person](ctx, db, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestList_PaginationMath(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		seedPerson(t, db, fmt.Sprintf("p%02d@example.com", i))
	}

	items, total, err := List[domain.Person](ctx, db, ListQuery{Page: 3, PageSize: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 25 {
		t.Fatalf("total = %d, want 25", total)
	}
	if len(items) != 5 {
		t.Fatalf("page 3 of 25 with size 10 should hold 5 rows, got %d", len(items))
	}

	// A page past the end is empty, never nil.
	items, total, err = List[domain.Person](ctx, db, ListQuery{Page: 9, PageSize: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 25 || items == nil || len(items) != 0 {
		t.Fatalf("expected empty page, got %d items (total %d)", len(items), total)
	}
}

func TestList_FiltersAndSort(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := seedPerson(t, db, "alice@example.com")
	club := &domain.Club{Name: "Club", CreatorID: alice.ID}
	if err := Create(ctx, db, club); err != nil {
		t.Fatalf("create club: %v", err)
	}
	chat := &domain.Chat{ClubID: club.ID}
	if err := Create(ctx, db, chat); err != nil {
		t.Fatalf("create chat: %v", err)
	}

	// Messages with forced, distinct timestamps so ordering is deterministic.
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		m := &domain.Message{ChatID: chat.ID, PersonID: alice.ID, Content: fmt.Sprintf("m%d", i)}
		if err := Create(ctx, db, m); err != nil {
			t.Fatalf("create message: %v", err)
		}
		if err := db.Model(m).Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error; err != nil {
			t.Fatalf("backdate message: %v", err)
		}
	}

	asc, total, err := List[domain.Message](ctx, db, ListQuery{
		Filters:  map[string]any{"chat_id": chat.ID},
		Sort:     "created_at ASC",
		Page:     1,
		PageSize: 10,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 || len(asc) != 3 {
		t.Fatalf("expected 3 messages, got %d (total %d)", len(asc), total)
	}
	if asc[0].Content != "m0" || asc[2].Content != "m2" {
		t.Fatalf("ascending order broken: %v %v", asc[0].Content, asc[2].Content)
	}

	desc, _, err := List[domain.Message](ctx, db, ListQuery{
		Filters:  map[string]any{"chat_id": chat.ID},
		Page:     1,
		PageSize: 10,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if desc[0].Content != "m2" {
		t.Fatalf("default sort should be newest first, got %v", desc[0].Content)
	}
}

func TestUpdate_PartialSemantics(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	p := seedPerson(t, db, "keep@example.com")
	if err := Update(ctx, db, p, map[string]any{"name": "Renamed"}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := GetByID[domain.Person](ctx, db, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Renamed" {
		t.Fatalf("name not updated: %+v", got)
	}
	if got.Email != "keep@example.com" {
		t.Fatalf("untouched column must keep its value: %+v", got)
	}

	// Explicit NULL write for a nullable column.
	bio := "old"
	if err := Update(ctx, db, got, map[string]any{"bio": &bio}); err != nil {
		t.Fatalf("Update bio: %v", err)
	}
	if err := Update(ctx, db, got, map[string]any{"bio": nil}); err != nil {
		t.Fatalf("Update bio to NULL: %v", err)
	}
	got, _ = GetByID[domain.Person](ctx, db, p.ID)
	if got.Bio != nil {
		t.Fatalf("bio should be NULL, got %v", *got.Bio)
	}
}

func TestUpdate_EmptyChangesAndMissingRow(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	p := seedPerson(t, db, "e@example.com")
	if err := Update(ctx, db, p, map[string]any{}); err != nil {
		t.Fatalf("empty changes must be a no-op, got %v", err)
	}

	ghost := &domain.Person{Model: domain.Model{ID: "missing"}}
	if err := Update(ctx, db, ghost, map[string]any{"name": "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing row, got %v", err)
	}
}

func TestDelete_SoftKeepsRow(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	p := seedPerson(t, db, "soft@example.com")
	if err := Delete[domain.Person](ctx, db, map[string]any{"id": p.ID}); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	// Default reads exclude the tombstoned row.
	if _, err := GetByID[domain.Person](ctx, db, p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("soft-deleted row must be invisible, got %v", err)
	}

	// The row itself survives for recoverability.
	var n int64
	if err := db.Unscoped().Model(&domain.Person{}).Where("id = ?", p.ID).Count(&n).Error; err != nil {
		t.Fatalf("unscoped count: %v", err)
	}
	if n != 1 {
		t.Fatalf("soft delete must retain the row, found %d", n)
	}

	if err := Delete[domain.Person](ctx, db, map[string]any{"id": p.ID}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete should be ErrNotFound, got %v", err)
	}
}

func TestDelete_HardRemovesRow(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	tag := &domain.Tag{Name: "mystery"}
	if err := Create(ctx, db, tag); err != nil {
		t.Fatalf("create tag: %v", err)
	}
	if err := Delete[domain.Tag](ctx, db, map[string]any{"id": tag.ID}); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	var n int64
	if err := db.Unscoped().Model(&domain.Tag{}).Where("id = ?", tag.ID).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("hard delete must remove the row, found %d", n)
	}
}

func TestDelete_CascadesMessagesWithChat(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	p := seedPerson(t, db, "c@example.com")
	club := &domain.Club{Name: "Club", CreatorID: p.ID}
	if err := Create(ctx, db, club); err != nil {
		t.Fatalf("create club: %v", err)
	}
	chat := &domain.Chat{ClubID: club.ID}
	if err := Create(ctx, db, chat); err != nil {
		t.Fatalf("create chat: %v", err)
	}
	msg := &domain.Message{ChatID: chat.ID, PersonID: p.ID, Content: "hello"}
	if err := Create(ctx, db, msg); err != nil {
		t.Fatalf("create message: %v", err)
	}

	if err := Delete[domain.Chat](ctx, db, map[string]any{"id": chat.ID}); err != nil {
		t.Fatalf("Delete chat: %v", err)
	}

	var n int64
	if err := db.Model(&domain.Message{}).Where("chat_id = ?", chat.ID).Count(&n).Error; err != nil {
		t.Fatalf("count messages: %v", err)
	}
	if n != 0 {
		t.Fatalf("chat deletion must cascade to messages, found %d", n)
	}
}

func TestSearchByField(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for _, name := range []string{"Science-Fiction", "fantasy", "historical fiction", "poetry"} {
		if err := Create(ctx, db, &domain.Tag{Name: name}); err != nil {
			t.Fatalf("create tag %q: %v", name, err)
		}
	}

	got, err := SearchByField[domain.Tag](ctx, db, "name", "FICTION", 10)
	if err != nil {
		t.Fatalf("SearchByField: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	// Ordered by name ascending: "Science-Fiction" < "historical fiction"
	// holds in SQLite's default BINARY collation (uppercase sorts first).
	if got[0].Name != "Science-Fiction" || got[1].Name != "historical fiction" {
		t.Fatalf("unexpected order: %q, %q", got[0].Name, got[1].Name)
	}

	none, err := SearchByField[domain.Tag](ctx, db, "name", "zzz", 10)
	if err != nil {
		t.Fatalf("SearchByField: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Fatalf("no matches should be an empty slice, got %v", none)
	}
}

func TestExistsAndCount(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seedPerson(t, db, "x@example.com")
	ok, err := Exists[domain.Person](ctx, db, map[string]any{"email": "x@example.com"})
	if err != nil || !ok {
		t.Fatalf("Exists = %v, %v; want true", ok, err)
	}
	ok, err = Exists[domain.Person](ctx, db, map[string]any{"email": "nobody@example.com"})
	if err != nil || ok {
		t.Fatalf("Exists = %v, %v; want false", ok, err)
	}
}

func TestIsDuplicate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seedPerson(t, db, "dup@example.com")
	err := Create(ctx, db, &domain.Person{Name: "Other", Email: "dup@example.com", PasswordHash: "y"})
	if err == nil {
		t.Fatalf("expected unique violation")
	}
	if !IsDuplicate(err) {
		t.Fatalf("IsDuplicate(%v) = false; want true", err)
	}

	if IsDuplicate(nil) || IsDuplicate(errors.New("boom")) {
		t.Fatalf("IsDuplicate must be specific to unique violations")
	}
}
