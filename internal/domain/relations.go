// Package domain – association registry.
//
// The entity relationship graph is fixed at compile time: each entry maps a
// table to the relations callers may request via the `include` list, keyed by
// the wire name and resolving to the GORM preload path. The registry is
// read-only after process start; handlers and services validate every include
// against it before any query is issued. Many-to-many relations resolve
// through their join table transparently (join-row attributes never appear in
// responses).
package domain

import (
	"fmt"
	"sort"
)

// relations maps table name → wire include name → GORM preload path.
var relations = map[string]map[string]string{
	"people": {},
	"books": {
		"tags":       "Tags",
		"created_by": "CreatedBy",
		"reviews":    "Reviews",
	},
	"tags": {},
	"clubs": {
		"creator":      "Creator",
		"current_book": "CurrentBook",
	},
	"club_members":      {},
	"club_book_history": {"club": "Club", "book": "Book"},
	"chats":             {"club": "Club"},
	"messages":          {"person": "Person"},
	"reviews":           {"book": "Book", "person": "Person"},
}

// Includes validates the requested include names for table and resolves them
// to GORM preload paths. An unknown table or relation name is a caller error.
func Includes(table string, names []string) ([]string, error) {
	rels, ok := relations[table]
	if !ok {
		return nil, fmt.Errorf("unknown entity %q", table)
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		path, ok := rels[n]
		if !ok {
			return nil, fmt.Errorf("unknown relation %q for %s", n, table)
		}
		out = append(out, path)
	}
	return out, nil
}

// Relations returns the sorted wire names of the relations available for
// table. Used to build helpful validation messages.
func Relations(table string) []string {
	rels := relations[table]
	out := make([]string, 0, len(rels))
	for n := range rels {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
