package feed

import (
	"net/url"
	"strings"

	"github.com/umputun/newsdesk/pkg/domain"
)

// DefaultBaseURL is the search endpoint of the Guardian content API
const DefaultBaseURL = "https://content.guardianapis.com/search"

// BuildQuery makes a fully qualified search URL for the given preferences.
// Parameters are appended in fixed order: show-tags, order-by, q, api-key. An empty search term is
// passed as "q=", the API treats it as match-all.
func BuildQuery(baseURL, searchTerm string, orderBy domain.OrderBy, apiKey string) string {
	params := [][2]string{
		{"show-tags", "contributor"},
		{"order-by", orderBy.String()},
		{"q", searchTerm},
		{"api-key", apiKey},
	}

	var b strings.Builder
	b.WriteString(baseURL)
	switch {
	case strings.HasSuffix(baseURL, "?"), strings.HasSuffix(baseURL, "&"):
	case strings.Contains(baseURL, "?"):
		b.WriteByte('&')
	default:
		b.WriteByte('?')
	}

	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p[0]))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p[1]))
	}
	return b.String()
}
