package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablekit/tablekit/internal/table"
)

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr error
	}{
		{"defaults valid", NewParams(), nil},
		{"page mode valid", Params{Page: 2, PageSize: 10}, nil},
		{"negative limit", Params{Limit: -1}, ErrNegativeLimit},
		{"limit too large", Params{Limit: MaxLimit + 1}, ErrLimitTooLarge},
		{"negative offset", Params{Offset: -1}, ErrNegativeOffset},
		{"negative page", Params{Page: -1}, ErrNegativePage},
		{"page-size too large", Params{Page: 1, PageSize: MaxPageSize + 1}, ErrPageSizeTooLarge},
		{"mixed modes", Params{Offset: 5, Page: 1, PageSize: 10}, ErrMixedPaginationModes},
		{"page-size without page", Params{PageSize: 10}, ErrPageSizeWithoutPage},
		{"page without page-size", Params{Page: 1}, ErrPageWithoutPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestApply_OffsetMode(t *testing.T) {
	items := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	t.Run("limit only", func(t *testing.T) {
		got := Apply(Params{Limit: 3}, items)
		assert.Equal(t, []int{0, 1, 2}, got)
	})

	t.Run("offset and limit", func(t *testing.T) {
		got := Apply(Params{Offset: 4, Limit: 3}, items)
		assert.Equal(t, []int{4, 5, 6}, got)
	})

	t.Run("offset beyond end", func(t *testing.T) {
		got := Apply(Params{Offset: 100, Limit: 3}, items)
		assert.Empty(t, got)
	})

	t.Run("zero limit returns rest", func(t *testing.T) {
		got := Apply(Params{Offset: 8}, items)
		assert.Equal(t, []int{8, 9}, got)
	})
}

func TestApply_PageMode(t *testing.T) {
	items := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	t.Run("first page", func(t *testing.T) {
		got := Apply(Params{Page: 1, PageSize: 4}, items)
		assert.Equal(t, []int{0, 1, 2, 3}, got)
	})

	t.Run("last partial page", func(t *testing.T) {
		got := Apply(Params{Page: 3, PageSize: 4}, items)
		assert.Equal(t, []int{8, 9}, got)
	})

	t.Run("page beyond end caps to last page", func(t *testing.T) {
		got := Apply(Params{Page: 99, PageSize: 4}, items)
		assert.Equal(t, []int{8, 9}, got)
	})
}

func TestApply_EmptyInput(t *testing.T) {
	assert.Empty(t, Apply(NewParams(), []int{}))
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		want    table.Sort
		wantErr bool
	}{
		{"empty is inactive", "", table.Sort{}, false},
		{"field only defaults asc", "age", table.Sort{Field: "age", Direction: table.SortAsc}, false},
		{"explicit desc", "age:desc", table.Sort{Field: "age", Direction: table.SortDesc}, false},
		{"case-insensitive order", "age:DESC", table.Sort{Field: "age", Direction: table.SortDesc}, false},
		{"whitespace trimmed", " age : asc ", table.Sort{Field: "age", Direction: table.SortAsc}, false},
		{"too many colons", "a:b:c", table.Sort{}, true},
		{"empty field", ":desc", table.Sort{}, true},
		{"bad order", "age:sideways", table.Sort{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSort(tt.expr)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewMeta(t *testing.T) {
	t.Run("page mode", func(t *testing.T) {
		meta := NewMeta(Params{Page: 2, PageSize: 10}, 35)
		assert.Equal(t, 2, meta.CurrentPage)
		assert.Equal(t, 4, meta.TotalPages)
		assert.Equal(t, 35, meta.TotalItems)
		assert.True(t, meta.HasPrevious)
		assert.True(t, meta.HasNext)
	})

	t.Run("offset mode derives page", func(t *testing.T) {
		meta := NewMeta(Params{Offset: 20, Limit: 10}, 35)
		assert.Equal(t, 3, meta.CurrentPage)
		assert.Equal(t, 4, meta.TotalPages)
	})

	t.Run("single page", func(t *testing.T) {
		meta := NewMeta(Params{Limit: 100}, 35)
		assert.Equal(t, 1, meta.CurrentPage)
		assert.Equal(t, 1, meta.TotalPages)
		assert.False(t, meta.HasPrevious)
		assert.False(t, meta.HasNext)
	})
}
