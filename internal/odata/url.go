package odata

import (
	"fmt"
	"regexp"
	"strings"
)

// Query describes one Products query against the catalogue.
type Query struct {
	Collection string
	Terms      SearchTerms
	// Top is the page size, capped at MaxBatchSize by URL(). A zero Top is
	// rendered as $top=0, which the catalogue answers with an empty page.
	Top int
	// Skip is the initial result offset.
	Skip int
	// ExpandAttributes requests $expand=Attributes so products carry their
	// metadata (productType, cloudCover, ...).
	ExpandAttributes bool
}

// URL renders the query as a Products URL under baseURL. The first page of a
// query passes includeCount so the response carries @odata.count; follow-up
// pages come from @odata.nextLink instead.
//
// Results are always ordered by ContentDate/Start ascending so pagination is
// stable across pages.
func (q Query) URL(baseURL string, includeCount bool) (string, error) {
	filter, err := BuildFilter(q.Collection, q.Terms)
	if err != nil {
		return "", err
	}

	top := q.Top
	if top > MaxBatchSize {
		top = MaxBatchSize
	}

	params := []string{
		"$filter=" + escapeFilter(filter),
		fmt.Sprintf("$top=%d", top),
		"$orderby=ContentDate/Start%20asc",
	}
	if q.Skip > 0 {
		params = append(params, fmt.Sprintf("$skip=%d", q.Skip))
	}
	if includeCount {
		params = append(params, "$count=true")
	}
	if q.ExpandAttributes {
		params = append(params, "$expand=Attributes")
	}

	return strings.TrimRight(baseURL, "/") + "/Products?" + strings.Join(params, "&"), nil
}

// escapeFilter percent-encodes a filter expression. Unlike
// url.QueryEscape it renders spaces as %20 and leaves '/' intact, matching
// the encoding the catalogue emits in its own nextLink URLs.
func escapeFilter(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9',
			c == '-', c == '_', c == '.', c == '~', c == '/':
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}

var countParam = regexp.MustCompile(`[&?](\$|%24)count=true`)

// StripCount removes $count=true from a URL so follow-up pages do not ask the
// server to recount the full result set.
func StripCount(u string) string {
	if loc := countParam.FindStringIndex(u); loc != nil {
		u = u[:loc[0]] + u[loc[1]:]
	}
	// If the first param was removed, the next '&' must become '?'
	if !strings.Contains(u, "?") && strings.Contains(u, "&") {
		u = strings.Replace(u, "&", "?", 1)
	}
	return u
}
