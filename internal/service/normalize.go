package service

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// markupRegexp matches HTML/XML tags pasted into the search box.
	markupRegexp = regexp.MustCompile(`<[^>]*>`)
	// controlRegexp matches ASCII control characters.
	controlRegexp = regexp.MustCompile(`[\x00-\x1f\x7f]+`)
	// spaceRegexp collapses whitespace runs.
	spaceRegexp = regexp.MustCompile(`\s+`)
)

// SanitizeTerm strips markup and control characters from raw search input and
// collapses whitespace.
func SanitizeTerm(raw string) string {
	s := markupRegexp.ReplaceAllString(raw, " ")
	s = controlRegexp.ReplaceAllString(s, " ")
	s = spaceRegexp.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Query is one normalized search/browse request.
type Query struct {
	Term       string `validate:"max=200"`
	CategoryID int64  `validate:"gte=0"`
	Page       int    `validate:"gte=1"`
}

// ParseQuery normalizes raw query parameters. Unparseable or negative
// category ids collapse to 0 (no category filter); page is clamped to 1.
func ParseQuery(search, category, page string) Query {
	return Query{
		Term:       SanitizeTerm(search),
		CategoryID: parseCategoryID(category),
		Page:       parsePage(page),
	}
}

// Empty reports whether the query carries neither search text nor a category.
func (q Query) Empty() bool {
	return q.Term == "" && q.CategoryID == 0
}

func parseCategoryID(raw string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}

func parsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
