package browser

import (
	"fmt"

	"github.com/AbdulWasayUl/go-country-browser/models"
)

// ViewState is everything one browser session knows about the grid.
// Not safe for concurrent use; a session mutates it from its own event loop.
type ViewState struct {
	all      []models.Country
	filtered []models.Country
	query    string
	page     int
}

// NewViewState starts on page 1 with the unfiltered list.
func NewViewState(all []models.Country) *ViewState {
	return &ViewState{
		all:      all,
		filtered: Filter(all, ""),
		page:     1,
	}
}

// ApplyQuery recomputes the filtered list and resets to page 1.
func (v *ViewState) ApplyQuery(query string) {
	v.query = query
	v.filtered = Filter(v.all, query)
	v.page = 1
}

// GoToPage moves to page n. Out-of-range requests are ignored and return false.
func (v *ViewState) GoToPage(n int) bool {
	if n < 1 || n > TotalPages(len(v.filtered)) {
		return false
	}
	v.page = n
	return true
}

// Current returns the entries and metadata of the current page.
func (v *ViewState) Current() ([]Entry, PageMeta) {
	return Paginate(v.filtered, v.page)
}

// Record looks up a record by its absolute index in the filtered list.
func (v *ViewState) Record(index int) (models.Country, error) {
	if index < 0 || index >= len(v.filtered) {
		return models.Country{}, fmt.Errorf("index %d out of range (%d records)", index, len(v.filtered))
	}
	return v.filtered[index], nil
}

func (v *ViewState) Page() int          { return v.page }
func (v *ViewState) Query() string      { return v.query }
func (v *ViewState) FullCount() int     { return len(v.all) }
func (v *ViewState) FilteredCount() int { return len(v.filtered) }
