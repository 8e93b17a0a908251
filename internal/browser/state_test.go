package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewState_ApplyQueryResetsPage(t *testing.T) {
	all := append(countries("United States", "United Kingdom", "France"), numbered(30)...)
	v := NewViewState(all)

	require.True(t, v.GoToPage(2))
	assert.Equal(t, 2, v.Page())

	v.ApplyQuery("United")
	assert.Equal(t, 1, v.Page())
	assert.Equal(t, "United", v.Query())
	assert.Equal(t, 2, v.FilteredCount())
	assert.Equal(t, 33, v.FullCount())

	entries, _ := v.Current()
	assert.Equal(t, []string{"United States", "United Kingdom"}, entryNames(entries))

	v.ApplyQuery("")
	assert.Equal(t, v.FullCount(), v.FilteredCount())
}

func TestViewState_GoToPageRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name    string
		records int
		request int
		ok      bool
		want    int
	}{
		{"page zero", 20, 0, false, 1},
		{"negative", 20, -3, false, 1},
		{"past last", 20, 3, false, 1},
		{"last page", 20, 2, true, 2},
		{"empty list", 0, 1, false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewViewState(numbered(tt.records))
			assert.Equal(t, tt.ok, v.GoToPage(tt.request))
			assert.Equal(t, tt.want, v.Page())
		})
	}
}

func TestViewState_PageInvariant(t *testing.T) {
	v := NewViewState(numbered(50))
	for _, n := range []int{-1, 0, 1, 2, 3, 4, 5, 99} {
		v.GoToPage(n)
		max := TotalPages(v.FilteredCount())
		if max < 1 {
			max = 1
		}
		assert.GreaterOrEqual(t, v.Page(), 1)
		assert.LessOrEqual(t, v.Page(), max)
	}
}

func TestViewState_Record(t *testing.T) {
	v := NewViewState(countries("France", "Finland", "Germany"))
	v.ApplyQuery("f")

	c, err := v.Record(1)
	require.NoError(t, err)
	assert.Equal(t, "Finland", c.Name.Common)

	_, err = v.Record(2)
	assert.Error(t, err)
	_, err = v.Record(-1)
	assert.Error(t, err)
}
