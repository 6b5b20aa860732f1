package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bookclubapp/go-bookclub-backend/internal/utils"
)

func TestHistoryService_Create(t *testing.T) {
	db := newTestDB(t)
	svc := &HistoryService{DB: db}
	ctx := context.Background()

	p := mustPerson(t, db, "hist@example.com")
	c := mustClub(t, db, "Historians", p.ID)
	b := mustBook(t, db, "Volume I")

	before := time.Now().UTC().Add(-time.Second)
	h, err := svc.Create(ctx, CreateHistoryInput{ClubID: c.ID, BookID: b.ID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if h.StartedAt.Before(before) {
		t.Fatalf("zero StartedAt not defaulted: %v", h.StartedAt)
	}

	if _, err := svc.Create(ctx, CreateHistoryInput{ClubID: "missing", BookID: b.ID}); !errors.Is(err, ErrClubNotFound) {
		t.Fatalf("expected ErrClubNotFound, got %v", err)
	}
	if _, err := svc.Create(ctx, CreateHistoryInput{ClubID: c.ID, BookID: "missing"}); !errors.Is(err, ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}

	// The same book may be re-read; no uniqueness on the pair.
	if _, err := svc.Create(ctx, CreateHistoryInput{ClubID: c.ID, BookID: b.ID}); err != nil {
		t.Fatalf("re-read rejected: %v", err)
	}
}

func TestHistoryService_UpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	svc := &HistoryService{DB: db}
	ctx := context.Background()

	p := mustPerson(t, db, "cycle@example.com")
	c := mustClub(t, db, "Cyclers", p.ID)
	b := mustBook(t, db, "Cycle Pick")
	h, err := svc.Create(ctx, CreateHistoryInput{ClubID: c.ID, BookID: b.ID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	finished := time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)
	got, err := svc.Update(ctx, h.ID, UpdateHistoryInput{
		FinishedAt: utils.Some(finished),
		Notes:      utils.Some("great discussion"),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.FinishedAt == nil || !got.FinishedAt.Equal(finished) {
		t.Fatalf("finished_at not recorded: %+v", got.FinishedAt)
	}
	if got.Notes == nil || *got.Notes != "great discussion" {
		t.Fatalf("notes not recorded: %+v", got.Notes)
	}

	// An explicit null reopens the cycle.
	got, err = svc.Update(ctx, h.ID, UpdateHistoryInput{FinishedAt: utils.Null[time.Time]()})
	if err != nil {
		t.Fatalf("clear finished_at: %v", err)
	}
	if got.FinishedAt != nil {
		t.Fatalf("finished_at not cleared: %v", got.FinishedAt)
	}
	if got.Notes == nil || *got.Notes != "great discussion" {
		t.Fatalf("notes clobbered by unset optional: %+v", got.Notes)
	}

	if err := svc.Delete(ctx, h.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, h.ID); !errors.Is(err, ErrHistoryNotFound) {
		t.Fatalf("expected ErrHistoryNotFound, got %v", err)
	}
}

func TestHistoryService_List_Filters(t *testing.T) {
	db := newTestDB(t)
	svc := &HistoryService{DB: db}
	ctx := context.Background()

	p := mustPerson(t, db, "filters@example.com")
	c1 := mustClub(t, db, "One", p.ID)
	c2 := mustClub(t, db, "Two", p.ID)
	b1 := mustBook(t, db, "Pick A")
	b2 := mustBook(t, db, "Pick B")

	for _, pair := range []struct{ club, book string }{
		{c1.ID, b1.ID}, {c1.ID, b2.ID}, {c2.ID, b1.ID},
	} {
		if _, err := svc.Create(ctx, CreateHistoryInput{ClubID: pair.club, BookID: pair.book}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	_, total, err := svc.List(ctx, HistoryListQuery{Page: 1, Size: 10, ClubID: c1.ID})
	if err != nil {
		t.Fatalf("List by club: %v", err)
	}
	if total != 2 {
		t.Fatalf("club filter: expected 2 rows, got %d", total)
	}

	_, total, err = svc.List(ctx, HistoryListQuery{Page: 1, Size: 10, BookID: b1.ID})
	if err != nil {
		t.Fatalf("List by book: %v", err)
	}
	if total != 2 {
		t.Fatalf("book filter: expected 2 rows, got %d", total)
	}
}
