package product

import "strings"

// ListFilter is the request-scoped parameter bag for the catalog listing.
// PageIndex starts at 1; the transport layer clamps PageSize to [1,100].
type ListFilter struct {
	Categories  []string
	MinPrice    *int64
	MaxPrice    *int64
	Currency    string
	SearchQuery string
	SortBy      string
	SortOrder   string
	PageIndex   int
	PageSize    int
}

func (f *ListFilter) Offset() int { return (f.PageIndex - 1) * f.PageSize }

func (f *ListFilter) HasSearch() bool {
	return strings.TrimSpace(f.SearchQuery) != ""
}

func (f *ListFilter) HasPriceBounds() bool {
	return f.MinPrice != nil || f.MaxPrice != nil
}

// MatchesSearch reports whether the product matches the free-text query on
// name or article. Case folding happens here rather than in SQL: SQLite's
// NOCASE collation only folds ASCII, so Cyrillic data never matches a
// store-side lower().
func (p *Product) MatchesSearch(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Name), q) {
		return true
	}
	return p.Article != nil && strings.Contains(strings.ToLower(*p.Article), q)
}
