package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/bookclubapp/go-bookclub-backend/internal/auth"
	"github.com/bookclubapp/go-bookclub-backend/internal/domain"
	"github.com/bookclubapp/go-bookclub-backend/internal/services"
)

// Stubs implement just the interfaces a test exercises; the rest of the
// Handlers fields stay nil.

type stubAuth struct {
	token string
	err   error
}

func (s *stubAuth) Login(context.Context, string, string) (string, error) {
	return s.token, s.err
}

type stubPeople struct {
	created  *services.CreatePersonInput
	updated  *services.UpdatePersonInput
	person   *domain.Person
	list     []domain.Person
	total    int64
	err      error
	listHits int
}

func (s *stubPeople) Create(_ context.Context, in services.CreatePersonInput) (*domain.Person, error) {
	s.created = &in
	return s.person, s.err
}

func (s *stubPeople) List(context.Context, int, int) ([]domain.Person, int64, error) {
	s.listHits++
	return s.list, s.total, s.err
}

func (s *stubPeople) Get(context.Context, string) (*domain.Person, error) {
	return s.person, s.err
}

func (s *stubPeople) Update(_ context.Context, _ string, in services.UpdatePersonInput) (*domain.Person, error) {
	s.updated = &in
	return s.person, s.err
}

func (s *stubPeople) Delete(context.Context, string) error { return s.err }

type stubBooks struct {
	created *services.CreateBookInput
	book    *domain.Book
	err     error
}

func (s *stubBooks) Create(_ context.Context, in services.CreateBookInput) (*domain.Book, error) {
	s.created = &in
	return s.book, s.err
}

func (s *stubBooks) List(context.Context, services.BookListQuery) ([]domain.Book, int64, error) {
	return nil, 0, s.err
}

func (s *stubBooks) Get(context.Context, string, []string) (*domain.Book, error) {
	return s.book, s.err
}

func (s *stubBooks) Update(context.Context, string, services.UpdateBookInput) (*domain.Book, error) {
	return s.book, s.err
}

func (s *stubBooks) Delete(context.Context, string) error { return s.err }

type stubTags struct {
	tags []domain.Tag
	err  error
}

func (s *stubTags) Create(context.Context, string) (*domain.Tag, error) {
	return nil, s.err
}

func (s *stubTags) List(context.Context, int, int) ([]domain.Tag, int64, error) {
	return s.tags, int64(len(s.tags)), s.err
}

func (s *stubTags) Get(context.Context, string) (*domain.Tag, error) {
	return nil, s.err
}

func (s *stubTags) Delete(context.Context, string) error { return s.err }

func (s *stubTags) Search(context.Context, string, int) ([]domain.Tag, error) {
	return s.tags, s.err
}

type stubReviews struct {
	created *services.CreateReviewInput
	review  *domain.Review
	err     error
}

func (s *stubReviews) Create(_ context.Context, in services.CreateReviewInput) (*domain.Review, error) {
	s.created = &in
	return s.review, s.err
}

func (s *stubReviews) List(context.Context, services.ReviewListQuery) ([]domain.Review, int64, error) {
	return nil, 0, s.err
}

func (s *stubReviews) Get(context.Context, string, []string) (*domain.Review, error) {
	return s.review, s.err
}

func (s *stubReviews) Update(context.Context, string, services.UpdateReviewInput) (*domain.Review, error) {
	return s.review, s.err
}

func (s *stubReviews) Delete(context.Context, string) error { return s.err }

// asUser simulates a verified bearer token upstream of the handler.
func asUser(id, email string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("identity", &auth.Claims{ID: id, Email: email})
		c.Next()
	}
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return body
}

func TestLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		h := New(&stubAuth{token: "signed.jwt.token"}, nil, nil, nil, nil, nil, nil, nil, nil, nil)
		r := gin.New()
		r.POST("/auth/login", h.Login)

		w := doJSON(t, r, http.MethodPost, "/auth/login", gin.H{"email": "a@example.com", "password": "pw"})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if body := decode(t, w); body["token"] != "signed.jwt.token" {
			t.Fatalf("unexpected body: %v", body)
		}
	})

	t.Run("bad credentials", func(t *testing.T) {
		h := New(&stubAuth{err: services.ErrInvalidCredentials}, nil, nil, nil, nil, nil, nil, nil, nil, nil)
		r := gin.New()
		r.POST("/auth/login", h.Login)

		w := doJSON(t, r, http.MethodPost, "/auth/login", gin.H{"email": "a@example.com", "password": "wrong"})
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
		if body := decode(t, w); body["error"] != "invalid credentials" {
			t.Fatalf("unexpected body: %v", body)
		}
	})

	t.Run("field errors", func(t *testing.T) {
		h := New(&stubAuth{}, nil, nil, nil, nil, nil, nil, nil, nil, nil)
		r := gin.New()
		r.POST("/auth/login", h.Login)

		w := doJSON(t, r, http.MethodPost, "/auth/login", gin.H{"email": "not-an-email"})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		body := decode(t, w)
		if _, hasList := body["errors"]; !hasList {
			t.Fatalf("expected errors array, got %v", body)
		}
	})
}

func TestCreatePerson(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("created", func(t *testing.T) {
		stub := &stubPeople{person: &domain.Person{Name: "Ada", Email: "ada@example.com"}}
		h := New(nil, stub, nil, nil, nil, nil, nil, nil, nil, nil)
		r := gin.New()
		r.POST("/people", h.CreatePerson)

		w := doJSON(t, r, http.MethodPost, "/people", gin.H{
			"name": "Ada", "email": "ada@example.com", "password": "longenough",
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		if stub.created == nil || stub.created.Email != "ada@example.com" {
			t.Fatalf("service input wrong: %+v", stub.created)
		}
	})

	t.Run("email conflict maps to 400", func(t *testing.T) {
		h := New(nil, &stubPeople{err: services.ErrEmailInUse}, nil, nil, nil, nil, nil, nil, nil, nil)
		r := gin.New()
		r.POST("/people", h.CreatePerson)

		w := doJSON(t, r, http.MethodPost, "/people", gin.H{
			"name": "Ada", "email": "ada@example.com", "password": "longenough",
		})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if body := decode(t, w); body["error"] != "email already in use" {
			t.Fatalf("unexpected body: %v", body)
		}
	})

	t.Run("short password rejected by binding", func(t *testing.T) {
		stub := &stubPeople{}
		h := New(nil, stub, nil, nil, nil, nil, nil, nil, nil, nil)
		r := gin.New()
		r.POST("/people", h.CreatePerson)

		w := doJSON(t, r, http.MethodPost, "/people", gin.H{
			"name": "Ada", "email": "ada@example.com", "password": "short",
		})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if stub.created != nil {
			t.Fatal("service must not be called on a binding failure")
		}
	})
}

func TestUpdatePerson_NullVsOmitted(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(stub *stubPeople) *gin.Engine {
		h := New(nil, stub, nil, nil, nil, nil, nil, nil, nil, nil)
		r := gin.New()
		r.PATCH("/people/:id", h.UpdatePerson)
		return r
	}

	t.Run("explicit null clears", func(t *testing.T) {
		stub := &stubPeople{person: &domain.Person{}}
		r := newRouter(stub)

		req := httptest.NewRequest(http.MethodPatch, "/people/p1", bytes.NewBufferString(`{"bio": null}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if stub.updated == nil {
			t.Fatal("service not called")
		}
		if !stub.updated.Bio.Set || stub.updated.Bio.Valid {
			t.Fatalf("explicit null not forwarded: %+v", stub.updated.Bio)
		}
		if stub.updated.PhotoURL.Set {
			t.Fatalf("omitted field reported as set: %+v", stub.updated.PhotoURL)
		}
	})

	t.Run("omitted field is untouched", func(t *testing.T) {
		stub := &stubPeople{person: &domain.Person{}}
		r := newRouter(stub)

		w := doJSON(t, r, http.MethodPatch, "/people/p1", gin.H{"name": "New Name"})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if stub.updated.Bio.Set || stub.updated.PhotoURL.Set {
			t.Fatalf("omitted optionals reported as set: %+v", stub.updated)
		}
	})

	t.Run("bounds still enforced on values", func(t *testing.T) {
		stub := &stubPeople{person: &domain.Person{}}
		r := newRouter(stub)

		w := doJSON(t, r, http.MethodPatch, "/people/p1", gin.H{"photo_url": "not a url"})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if stub.updated != nil {
			t.Fatal("service must not be called on a field error")
		}
	})
}

func TestListPeople(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("envelope", func(t *testing.T) {
		stub := &stubPeople{
			list:  []domain.Person{{Name: "One"}, {Name: "Two"}},
			total: 12,
		}
		h := New(nil, stub, nil, nil, nil, nil, nil, nil, nil, nil)
		r := gin.New()
		r.GET("/people", h.ListPeople)

		w := doJSON(t, r, http.MethodGet, "/people?page=2&size=5", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		body := decode(t, w)
		pg, okP := body["pagination"].(map[string]any)
		if !okP {
			t.Fatalf("missing pagination: %v", body)
		}
		if pg["currentPage"] != float64(2) || pg["pageSize"] != float64(5) ||
			pg["totalItems"] != float64(12) || pg["totalPages"] != float64(3) {
			t.Fatalf("unexpected pagination: %v", pg)
		}
		if data, okD := body["data"].([]any); !okD || len(data) != 2 {
			t.Fatalf("unexpected data: %v", body["data"])
		}
	})

	t.Run("invalid pagination rejected before querying", func(t *testing.T) {
		stub := &stubPeople{}
		h := New(nil, stub, nil, nil, nil, nil, nil, nil, nil, nil)
		r := gin.New()
		r.GET("/people", h.ListPeople)

		for _, q := range []string{"page=abc", "size=0", "page=-1", "size=xyz"} {
			w := doJSON(t, r, http.MethodGet, "/people?"+q, nil)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("%s: expected 400, got %d", q, w.Code)
			}
		}
		if stub.listHits != 0 {
			t.Fatalf("service called %d times despite invalid pagination", stub.listHits)
		}
	})
}

func TestCreateBook_RecordsCreator(t *testing.T) {
	gin.SetMode(gin.TestMode)

	stub := &stubBooks{book: &domain.Book{Title: "Dune"}}
	h := New(nil, nil, stub, nil, nil, nil, nil, nil, nil, nil)
	r := gin.New()
	r.POST("/books", asUser("person-7", "u@example.com"), h.CreateBook)

	w := doJSON(t, r, http.MethodPost, "/books", gin.H{"title": "Dune", "author": "Herbert"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if stub.created == nil || stub.created.CreatedByID == nil || *stub.created.CreatedByID != "person-7" {
		t.Fatalf("creator not recorded: %+v", stub.created)
	}
}

func TestCreateReview(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("reviewer is the caller", func(t *testing.T) {
		stub := &stubReviews{review: &domain.Review{Rating: 4}}
		h := New(nil, nil, nil, nil, nil, nil, nil, nil, nil, stub)
		r := gin.New()
		r.POST("/reviews", asUser("person-3", "u@example.com"), h.CreateReview)

		w := doJSON(t, r, http.MethodPost, "/reviews", gin.H{
			"book_id": "6f1b2a10-0000-4000-8000-000000000001", "rating": 4,
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		if stub.created == nil || stub.created.PersonID != "person-3" {
			t.Fatalf("reviewer not taken from token: %+v", stub.created)
		}
	})

	t.Run("no identity", func(t *testing.T) {
		h := New(nil, nil, nil, nil, nil, nil, nil, nil, nil, &stubReviews{})
		r := gin.New()
		r.POST("/reviews", h.CreateReview)

		w := doJSON(t, r, http.MethodPost, "/reviews", gin.H{
			"book_id": "6f1b2a10-0000-4000-8000-000000000001", "rating": 4,
		})
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("duplicate pair maps to 400", func(t *testing.T) {
		h := New(nil, nil, nil, nil, nil, nil, nil, nil, nil, &stubReviews{err: services.ErrReviewExists})
		r := gin.New()
		r.POST("/reviews", asUser("person-3", "u@example.com"), h.CreateReview)

		w := doJSON(t, r, http.MethodPost, "/reviews", gin.H{
			"book_id": "6f1b2a10-0000-4000-8000-000000000001", "rating": 4,
		})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestSearchTags(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("results", func(t *testing.T) {
		stub := &stubTags{tags: []domain.Tag{{Name: "fiction"}}}
		h := New(nil, nil, nil, stub, nil, nil, nil, nil, nil, nil)
		r := gin.New()
		r.GET("/tags/search", h.SearchTags)

		w := doJSON(t, r, http.MethodGet, "/tags/search?term=fic", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("short term is a client error", func(t *testing.T) {
		h := New(nil, nil, nil, &stubTags{err: services.ErrTermTooShort}, nil, nil, nil, nil, nil, nil)
		r := gin.New()
		r.GET("/tags/search", h.SearchTags)

		w := doJSON(t, r, http.MethodGet, "/tags/search?term=f", nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
		}
		if body := decode(t, w); body["error"] != "search term too short" {
			t.Fatalf("unexpected body: %v", body)
		}
	})
}

func TestServiceErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", services.ErrBookNotFound, http.StatusNotFound},
		{"validation", services.Validation("rating", "must be between 1 and 5"), http.StatusBadRequest},
		{"conflict", services.ErrTagExists, http.StatusBadRequest},
		{"short search term", services.ErrTermTooShort, http.StatusBadRequest},
		{"credentials", services.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/x", func(c *gin.Context) { serviceError(c, tc.err) })

			w := doJSON(t, r, http.MethodGet, "/x", nil)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
			if tc.status == http.StatusInternalServerError {
				if body := decode(t, w); body["error"] != "internal server error" {
					t.Fatalf("internal detail leaked: %v", body)
				}
			}
		})
	}
}

func TestBadJSONBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := New(nil, &stubPeople{}, nil, nil, nil, nil, nil, nil, nil, nil)
	r := gin.New()
	r.POST("/people", h.CreatePerson)

	req := httptest.NewRequest(http.MethodPost, "/people", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if body := decode(t, w); body["error"] != "invalid JSON body" {
		t.Fatalf("unexpected body: %v", body)
	}
}
