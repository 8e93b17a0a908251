// Package render turns grid, modal and typewriter state into HTML fragments.
// All output goes through html/template, so record fields are escaped.
package render

import (
	"bytes"
	"html/template"
	"io"

	"github.com/AbdulWasayUl/go-country-browser/internal/browser"
	"github.com/AbdulWasayUl/go-country-browser/internal/modal"
	"github.com/AbdulWasayUl/go-country-browser/internal/typewriter"
	"github.com/AbdulWasayUl/go-country-browser/models"
)

const (
	NoResultsText = "No countries found matching your search."
	LoadErrorText = "Failed to load countries. Please try again later."
	LoadingText   = "Loading countries..."
)

var funcs = template.FuncMap{
	"prev": func(p int) int { return p - 1 },
	"next": func(p int) int { return p + 1 },
}

var (
	fragmentTmpl = template.Must(template.New("fragments").Funcs(funcs).Parse(fragments))
	pageTmpl     = template.Must(template.New("page").Parse(page))
)

func execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := fragmentTmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func message(class, text string) template.HTML {
	h, err := execute("message", struct{ Class, Text string }{class, text})
	if err != nil {
		// constant input, cannot fail
		panic(err)
	}
	return h
}

// Cards renders one card per entry. data-index carries the entry's absolute
// position in the filtered list.
func Cards(entries []browser.Entry) (template.HTML, error) {
	return execute("cards", entries)
}

// Pagination renders the page controls, or nothing when there is at most one page.
func Pagination(meta browser.PageMeta) (template.HTML, error) {
	return execute("pagination", meta)
}

// Grid renders the card region for one page: the cards, or the no-results message.
func Grid(entries []browser.Entry, meta browser.PageMeta) (template.HTML, error) {
	if meta.Total == 0 {
		return NoResults(), nil
	}
	return Cards(entries)
}

func NoResults() template.HTML { return message("no-results", NoResultsText) }
func LoadError() template.HTML { return message("error", LoadErrorText) }
func Loading() template.HTML   { return message("loading", LoadingText) }

// Modal renders the whole overlay. A closed overlay is still rendered, hidden.
func Modal(view modal.View, open bool) (template.HTML, error) {
	return execute("modal", struct {
		View modal.View
		Open bool
	}{view, open})
}

func Weather(s models.WeatherSummary) (template.HTML, error) {
	return execute("weather", s)
}

// Typewriter renders the current display text.
func Typewriter(text string) template.HTML {
	return template.HTML(template.HTMLEscapeString(text))
}

// PageData is the initial state baked into the full document.
type PageData struct {
	Title string
	Grid  template.HTML
	Nav   template.HTML
	Modal template.HTML
}

// Page renders the full document with both widgets and the client script.
func Page(w io.Writer, data PageData) error {
	if data.Title == "" {
		data.Title = "Country Browser"
	}
	if data.Modal == "" {
		m, err := Modal(modal.View{}, false)
		if err != nil {
			return err
		}
		data.Modal = m
	}
	return pageTmpl.Execute(w, struct {
		PageData
		MinSpeed, MaxSpeed int
	}{data, typewriter.MinSpeed, typewriter.MaxSpeed})
}
