// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the generic resource accessors shared by
// every entity: paginated listing, lookups, creation, partial update,
// deletion, and case-insensitive substring search.
//
// All functions are context-aware, accept a *gorm.DB handle (safe for use
// within transactions), and are parameterized over the entity type. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a record is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - Unique-constraint violations propagate as the raw driver error; use
//     IsDuplicate to detect them. The constraint — not any pre-check — is
//     the authoritative uniqueness guard under concurrent writers.
//
// Soft deletion is uniform: entities embedding domain.SoftDelete carry a
// gorm.DeletedAt column, so GORM excludes soft-deleted rows from every
// default read and turns Delete into a timestamp update. Entities without
// the column are removed physically; dependent rows go with them via the
// foreign-key cascade rules declared on the models (foreign_keys pragma ON).
package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested record does not exist (or is
// soft-deleted). It aliases gorm.ErrRecordNotFound for consistency across
// the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// Scope is a composable query fragment (joins, extra predicates) applied to
// both the count and the page query of List.
type Scope func(*gorm.DB) *gorm.DB

// ListQuery describes one paginated listing. Page and PageSize must already
// be validated (>= 1) by the caller; handlers reject anything else before a
// query is issued.
type ListQuery struct {
	// Filters are ANDed column equality predicates, e.g. {"club_id": id}.
	Filters map[string]any
	// Scopes are applied to both the count and the page query.
	Scopes []Scope
	// Sort is an ORDER BY expression; empty means "created_at DESC".
	Sort string
	// Distinct counts distinct primary rows (needed for join-based filters).
	Distinct bool

	Page     int
	PageSize int

	// Preloads are GORM association paths, already validated against the
	// relation registry in domain.
	Preloads []string
}

// List returns one page of T plus the total row count for pagination
// metadata. Soft-deleted rows are excluded for soft-deletable entities.
func List[T any](ctx context.Context, db *gorm.DB, q ListQuery) ([]T, int64, error) {
	var model T
	base := db.WithContext(ctx).Model(&model)
	for col, v := range q.Filters {
		base = base.Where(col+" = ?", v)
	}
	for _, s := range q.Scopes {
		base = s(base)
	}

	count := base.Session(&gorm.Session{})
	if q.Distinct {
		count = count.Distinct("id")
	}
	var total int64
	if err := count.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sort := q.Sort
	if sort == "" {
		sort = "created_at DESC"
	}

	page := base.Session(&gorm.Session{})
	if q.Distinct {
		page = page.Distinct()
	}
	for _, p := range q.Preloads {
		page = page.Preload(p)
	}
	var items []T
	err := page.
		Order(sort).
		Offset((q.Page - 1) * q.PageSize).
		Limit(q.PageSize).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []T{}
	}
	return items, total, nil
}

// GetByID fetches a single T by primary key, eagerly loading the given
// association paths. Returns ErrNotFound when the row is missing or
// soft-deleted.
func GetByID[T any](ctx context.Context, db *gorm.DB, id string, preloads ...string) (*T, error) {
	return GetBy[T](ctx, db, map[string]any{"id": id}, preloads...)
}

// GetBy fetches a single T matching all conds (column equality). Used for
// composite-key lookups (e.g. club_members) and uniqueness pre-checks.
func GetBy[T any](ctx context.Context, db *gorm.DB, conds map[string]any, preloads ...string) (*T, error) {
	tx := db.WithContext(ctx)
	for col, v := range conds {
		tx = tx.Where(col+" = ?", v)
	}
	for _, p := range preloads {
		tx = tx.Preload(p)
	}
	var out T
	if err := tx.First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// Exists reports whether any T matches conds.
func Exists[T any](ctx context.Context, db *gorm.DB, conds map[string]any) (bool, error) {
	n, err := Count[T](ctx, db, conds)
	return n > 0, err
}

// Count returns the number of T rows matching conds.
func Count[T any](ctx context.Context, db *gorm.DB, conds map[string]any) (int64, error) {
	var model T
	tx := db.WithContext(ctx).Model(&model)
	for col, v := range conds {
		tx = tx.Where(col+" = ?", v)
	}
	var total int64
	err := tx.Count(&total).Error
	return total, err
}

// Create inserts entity. Identifiers are assigned by the model's
// BeforeCreate hook; duplicate-key errors propagate raw (see IsDuplicate).
func Create[T any](ctx context.Context, db *gorm.DB, entity *T) error {
	return db.WithContext(ctx).Create(entity).Error
}

// Update applies the changes map (column → new value) to entity and reloads
// the persisted columns into it. Only the provided columns are written,
// giving partial-update semantics; an explicit nil value writes NULL.
func Update[T any](ctx context.Context, db *gorm.DB, entity *T, changes map[string]any) error {
	if len(changes) == 0 {
		return nil
	}
	res := db.WithContext(ctx).Model(entity).Updates(changes)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes all T rows matching conds: a timestamped soft delete for
// entities embedding domain.SoftDelete, a physical delete otherwise.
// Returns ErrNotFound when nothing matched.
func Delete[T any](ctx context.Context, db *gorm.DB, conds map[string]any) error {
	tx := db.WithContext(ctx)
	for col, v := range conds {
		tx = tx.Where(col+" = ?", v)
	}
	var model T
	res := tx.Delete(&model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SearchByField returns up to limit rows whose column contains term,
// compared case-insensitively, ordered by the column ascending. The caller
// is responsible for minimum-length validation of term.
func SearchByField[T any](ctx context.Context, db *gorm.DB, column, term string, limit int) ([]T, error) {
	var model T
	var items []T
	err := db.WithContext(ctx).
		Model(&model).
		Where("LOWER("+column+") LIKE ?", "%"+strings.ToLower(term)+"%").
		Order(column + " ASC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// IsDuplicate detects unique-constraint violations across drivers that may
// not map to gorm.ErrDuplicatedKey.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// SQLite typically: "UNIQUE constraint failed"
	// Postgres typically: "duplicate key value violates unique constraint"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
