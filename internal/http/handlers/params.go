package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/bookclubapp/go-bookclub-backend/internal/auth"
	"github.com/bookclubapp/go-bookclub-backend/internal/http/middleware"
	"github.com/bookclubapp/go-bookclub-backend/internal/utils"
)

// identity returns the authenticated caller's claims when the auth
// middleware ran for this route.
func identity(c *gin.Context) (*auth.Claims, bool) {
	return middleware.IdentityFrom(c)
}

// pageParams parses the page/size query parameters with strict validation.
// A malformed value writes a 400 response and reports ok=false; callers
// must return immediately in that case.
func pageParams(c *gin.Context) (page, size int, ok bool) {
	page, size, err := utils.ParsePagination(
		c.DefaultQuery("page", utils.DefaultPage),
		c.DefaultQuery("size", utils.DefaultSize),
	)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return 0, 0, false
	}
	return page, size, true
}

// Validator binding tags cannot look inside Optional fields, so update
// handlers check their bounds with these helpers after binding. A null or
// absent field always passes.

// checkOptionalMax appends a field error when the optional string exceeds
// max runes.
func checkOptionalMax(errs []string, field string, o utils.Optional[string], max int) []string {
	if o.Valid && utf8.RuneCountInString(o.Value) > max {
		errs = append(errs, fmt.Sprintf("%s must be at most %d characters long", field, max))
	}
	return errs
}

// checkOptionalURL appends a field error when the optional string is not an
// absolute URL.
func checkOptionalURL(errs []string, field string, o utils.Optional[string]) []string {
	if !o.Valid {
		return errs
	}
	if u, err := url.Parse(o.Value); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Sprintf("%s must be a valid URL", field))
	}
	return errs
}

// includeParams splits the comma-separated include query parameter into
// relation names. Unknown names are rejected by the service layer, which
// knows each entity's relation set.
func includeParams(c *gin.Context) []string {
	raw := strings.TrimSpace(c.Query("include"))
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
