// Package browser holds the country grid pipeline: filtering the dataset by a
// search query and slicing the result into fixed-size pages.
package browser

import (
	"strings"

	"github.com/AbdulWasayUl/go-country-browser/models"
)

const (
	// PageSize is the number of cards on one grid page.
	PageSize = 16
	// MaxWindow is the number of page buttons shown around the current page.
	MaxWindow = 5
)

// Entry is a record together with its absolute index in the filtered list.
type Entry struct {
	Index   int
	Country models.Country
}

// PageMeta describes the pagination controls for one rendered page.
type PageMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int   `json:"total"`
	TotalPages int   `json:"total_pages"`
	Window     []int `json:"window"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

// ShowControls reports whether the pagination nav should be rendered at all.
func (m PageMeta) ShowControls() bool {
	return m.Total > 0 && m.TotalPages > 1
}

// Filter returns the records whose common name contains query, case-insensitively.
// An empty or whitespace-only query yields a copy of the full list.
func Filter(all []models.Country, query string) []models.Country {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		out := make([]models.Country, len(all))
		copy(out, all)
		return out
	}

	out := make([]models.Country, 0, len(all))
	for _, c := range all {
		if strings.Contains(strings.ToLower(c.Name.Common), q) {
			out = append(out, c)
		}
	}
	return out
}

// TotalPages is ceil(n / PageSize).
func TotalPages(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + PageSize - 1) / PageSize
}

// Paginate returns the entries for page (1-based) and its control metadata.
// Out-of-range pages produce an empty slice.
func Paginate(list []models.Country, page int) ([]Entry, PageMeta) {
	total := len(list)
	totalPages := TotalPages(total)

	meta := PageMeta{
		Page:       page,
		PageSize:   PageSize,
		Total:      total,
		TotalPages: totalPages,
		Window:     PageWindow(page, totalPages),
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}

	start := (page - 1) * PageSize
	if page < 1 || start >= total {
		return nil, meta
	}
	end := start + PageSize
	if end > total {
		end = total
	}

	entries := make([]Entry, 0, end-start)
	for i := start; i < end; i++ {
		entries = append(entries, Entry{Index: i, Country: list[i]})
	}
	return entries, meta
}

// PageWindow returns at most MaxWindow page numbers centred on page and clamped
// to [1, totalPages].
func PageWindow(page, totalPages int) []int {
	if totalPages < 1 {
		return nil
	}
	start := page - MaxWindow/2
	if start < 1 {
		start = 1
	}
	end := start + MaxWindow - 1
	if end > totalPages {
		end = totalPages
	}
	if end-start+1 < MaxWindow {
		start = end - MaxWindow + 1
		if start < 1 {
			start = 1
		}
	}

	window := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		window = append(window, i)
	}
	return window
}
