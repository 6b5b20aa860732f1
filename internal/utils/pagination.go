// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

import (
	"errors"
	"strconv"
)

// Pagination defaults. `page` and `size` are query parameters with string
// defaults so an absent parameter is distinguishable from a malformed one.
const (
	DefaultPage = "1"
	DefaultSize = "10"
)

// ErrInvalidPagination is returned for non-numeric or non-positive page or
// size parameters. List handlers must reject the request before any query
// is issued.
var ErrInvalidPagination = errors.New("invalid pagination parameters")

// ParsePagination parses the page/size query parameters strictly: empty
// strings take the defaults, anything non-numeric or < 1 is an error.
func ParsePagination(pageStr, sizeStr string) (page, size int, err error) {
	if pageStr == "" {
		pageStr = DefaultPage
	}
	if sizeStr == "" {
		sizeStr = DefaultSize
	}
	page, err = strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		return 0, 0, ErrInvalidPagination
	}
	size, err = strconv.Atoi(sizeStr)
	if err != nil || size < 1 {
		return 0, 0, ErrInvalidPagination
	}
	return page, size, nil
}

// TotalPages computes ceil(totalItems / size) for pagination metadata.
func TotalPages(totalItems int64, size int) int {
	if size <= 0 {
		return 0
	}
	return int((totalItems + int64(size) - 1) / int64(size))
}

// AtoiDefault converts a string to an int using strconv.Atoi. If the string
// is empty or cannot be parsed as an integer, it returns the provided
// default value instead.
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}
