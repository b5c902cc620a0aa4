package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_DerivedFields(t *testing.T) {
	tests := []struct {
		name           string
		pageIndex      int
		pageSize       int
		count          int
		wantTotalPages int
		wantHasPrev    bool
		wantHasNext    bool
		wantFirst      int
		wantLast       int
	}{
		{
			name:      "first page of three",
			pageIndex: 1, pageSize: 10, count: 25,
			wantTotalPages: 3, wantHasPrev: false, wantHasNext: true,
			wantFirst: 1, wantLast: 10,
		},
		{
			name:      "middle page",
			pageIndex: 2, pageSize: 10, count: 25,
			wantTotalPages: 3, wantHasPrev: true, wantHasNext: true,
			wantFirst: 11, wantLast: 20,
		},
		{
			name:      "last short page",
			pageIndex: 3, pageSize: 10, count: 25,
			wantTotalPages: 3, wantHasPrev: true, wantHasNext: false,
			wantFirst: 21, wantLast: 25,
		},
		{
			name:      "empty result",
			pageIndex: 1, pageSize: 10, count: 0,
			wantTotalPages: 0, wantHasPrev: false, wantHasNext: false,
			wantFirst: 0, wantLast: 0,
		},
		{
			name:      "exact fit",
			pageIndex: 2, pageSize: 5, count: 10,
			wantTotalPages: 2, wantHasPrev: true, wantHasNext: false,
			wantFirst: 6, wantLast: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New[int](tt.pageIndex, tt.pageSize, tt.count, nil)
			require.Equal(t, tt.wantTotalPages, p.TotalPages)
			require.Equal(t, tt.wantHasPrev, p.HasPrevious)
			require.Equal(t, tt.wantHasNext, p.HasNext)
			require.Equal(t, tt.wantFirst, p.FirstItemIndex)
			require.Equal(t, tt.wantLast, p.LastItemIndex)
			require.NotNil(t, p.Data, "nil data should be normalized to an empty slice")
		})
	}
}

func TestSlice_Pages(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}

	p1 := Slice(items, 1, 2)
	require.Equal(t, []string{"a", "b"}, p1.Data)
	require.Equal(t, 5, p1.Count)

	p3 := Slice(items, 3, 2)
	require.Equal(t, []string{"e"}, p3.Data)
	require.True(t, p3.HasPrevious)
	require.False(t, p3.HasNext)
}

func TestSlice_OutOfRangePage(t *testing.T) {
	items := []string{"a", "b", "c"}

	p := Slice(items, 7, 2)
	require.Empty(t, p.Data)
	require.Equal(t, 3, p.Count, "count stays correct for an out-of-range page")
	require.Equal(t, 2, p.TotalPages)
}

func TestSlice_Concatenation(t *testing.T) {
	items := make([]int, 17)
	for i := range items {
		items[i] = i
	}

	var got []int
	first := Slice(items, 1, 5)
	for page := 1; page <= first.TotalPages; page++ {
		got = append(got, Slice(items, page, 5).Data...)
	}
	require.Equal(t, items, got, "pages concatenate back to the full set with no gaps or duplicates")
}
