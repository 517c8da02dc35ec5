package candidates

import (
	"net/url"
	"strconv"
	"strings"
)

// MaxPageSize caps the limit query parameter
const MaxPageSize = 100

// ParseParams reads search, governorate, party, gender, incumbent, page, and limit
// bad values never fail; they fall back to no constraint or the default
func ParseParams(v url.Values) (Criteria, Page) {
	c := Criteria{
		Search:      strings.TrimSpace(v.Get("search")),
		Governorate: strings.TrimSpace(v.Get("governorate")),
		Party:       strings.TrimSpace(v.Get("party")),
		Gender:      strings.TrimSpace(v.Get("gender")),
		Incumbent:   ParseIncumbent(v.Get("incumbent")),
	}
	p := Page{
		Number: positiveOr(v.Get("page"), 1),
		Size:   min(positiveOr(v.Get("limit"), DefaultPageSize), MaxPageSize),
	}
	return c, p
}

// ParseIncumbent maps the literal strings "true" and "false"; anything else is no constraint
func ParseIncumbent(s string) *bool {
	var b bool
	switch strings.TrimSpace(s) {
	case "true":
		b = true
	case "false":
		b = false
	default:
		return nil
	}
	return &b
}

func positiveOr(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return def
	}
	return n
}
