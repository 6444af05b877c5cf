package domain

import (
	"fmt"
	"strings"
)

// OrderBy is the sort mode accepted by the search API
type OrderBy string

// supported sort modes
const (
	OrderNewest    OrderBy = "newest"
	OrderOldest    OrderBy = "oldest"
	OrderRelevance OrderBy = "relevance"
)

// ParseOrderBy converts user input to OrderBy, empty input means OrderNewest
func ParseOrderBy(s string) (OrderBy, error) {
	switch OrderBy(strings.ToLower(strings.TrimSpace(s))) {
	case "", OrderNewest:
		return OrderNewest, nil
	case OrderOldest:
		return OrderOldest, nil
	case OrderRelevance:
		return OrderRelevance, nil
	}
	return "", fmt.Errorf("unknown order-by %q, expected newest, oldest or relevance", s)
}

// String returns the wire value of the sort mode
func (o OrderBy) String() string {
	return string(o)
}

// Settings holds user preferences used to build the search query
type Settings struct {
	SearchTerm string
	OrderBy    OrderBy
}

// DefaultSettings returns settings matching everything, newest first
func DefaultSettings() Settings {
	return Settings{SearchTerm: "", OrderBy: OrderNewest}
}

// WithDefaults fills in unset fields
func (s Settings) WithDefaults() Settings {
	if s.OrderBy == "" {
		s.OrderBy = OrderNewest
	}
	return s
}
