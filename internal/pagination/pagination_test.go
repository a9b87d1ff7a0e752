package pagination

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateRange(t *testing.T) {
	require.NoError(t, ValidateRange(0, 0))
	require.NoError(t, ValidateRange(10, 50))

	err := ValidateRange(-1, 10)
	require.True(t, errors.Is(err, ErrInvalidArgument))

	err = ValidateRange(0, -5)
	require.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestSliceOffsetWindow(t *testing.T) {
	rows := []int{5, 4, 3, 2, 1}

	require.Equal(t, []int{5, 4}, SliceOffset(rows, 0, 2))
	require.Equal(t, []int{3, 2}, SliceOffset(rows, 2, 2))
	require.Equal(t, []int{1}, SliceOffset(rows, 4, 10))
}

func TestSliceOffsetBeyondEnd(t *testing.T) {
	rows := []int{1, 2, 3}

	require.Empty(t, SliceOffset(rows, 5, 5))
	require.Empty(t, SliceOffset(rows, 3, 1))
	require.Empty(t, SliceOffset(rows, 0, 0))
}

// page.length must equal min(limit, total-offset) clamped at zero for every
// valid offset/limit pair.
func TestSliceOffsetLength(t *testing.T) {
	rows := make([]int, 7)
	for offset := int64(0); offset <= 9; offset++ {
		for limit := int64(0); limit <= 9; limit++ {
			want := int64(len(rows)) - offset
			if limit < want {
				want = limit
			}
			if want < 0 {
				want = 0
			}
			got := SliceOffset(rows, offset, limit)
			require.Len(t, got, int(want), "offset=%d limit=%d", offset, limit)
			require.LessOrEqual(t, int64(len(got)), limit)
		}
	}
}

func TestNewPaginatedNormalizesNilPage(t *testing.T) {
	p := NewPaginated[string](3, nil)
	require.NotNil(t, p.Page)
	require.Empty(t, p.Page)
	require.Equal(t, int64(3), p.TotalCount)
}

func TestNewCursorPageNormalizesNilPage(t *testing.T) {
	p := NewCursorPage[string](false, nil)
	require.NotNil(t, p.Page)
	require.False(t, p.HasNext)
}
