// Package pagination carries one page of results plus total-count metadata.
// Every derived field is a pure function of the four stored ones.
package pagination

type Page[T any] struct {
	PageIndex      int  `json:"pageIndex"`
	PageSize       int  `json:"pageSize"`
	Count          int  `json:"count"`
	Data           []T  `json:"data"`
	TotalPages     int  `json:"totalPages"`
	HasPrevious    bool `json:"hasPrevious"`
	HasNext        bool `json:"hasNext"`
	FirstItemIndex int  `json:"firstItemIndex"`
	LastItemIndex  int  `json:"lastItemIndex"`
}

func New[T any](pageIndex, pageSize, count int, data []T) *Page[T] {
	if data == nil {
		data = []T{}
	}
	totalPages := 0
	if pageSize > 0 {
		totalPages = (count + pageSize - 1) / pageSize
	}
	first := 0
	if count > 0 {
		first = (pageIndex-1)*pageSize + 1
	}
	last := pageIndex * pageSize
	if last > count {
		last = count
	}
	return &Page[T]{
		PageIndex:      pageIndex,
		PageSize:       pageSize,
		Count:          count,
		Data:           data,
		TotalPages:     totalPages,
		HasPrevious:    pageIndex > 1,
		HasNext:        pageIndex < totalPages,
		FirstItemIndex: first,
		LastItemIndex:  last,
	}
}

// Slice cuts the requested page out of the full result set. A page index
// beyond the end yields an empty page with the correct count.
func Slice[T any](items []T, pageIndex, pageSize int) *Page[T] {
	count := len(items)
	start := (pageIndex - 1) * pageSize
	if start > count {
		start = count
	}
	end := start + pageSize
	if end > count {
		end = count
	}
	return New(pageIndex, pageSize, count, items[start:end])
}
