// Package session runs one live browser tab: it owns the grid view state, the
// detail modal and the typewriter, and serializes every input, timer callback
// and weather result onto a single event loop.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AbdulWasayUl/go-country-browser/internal/browser"
	"github.com/AbdulWasayUl/go-country-browser/internal/catalog"
	"github.com/AbdulWasayUl/go-country-browser/internal/logger"
	"github.com/AbdulWasayUl/go-country-browser/internal/metrics"
	"github.com/AbdulWasayUl/go-country-browser/internal/modal"
	"github.com/AbdulWasayUl/go-country-browser/internal/render"
	"github.com/AbdulWasayUl/go-country-browser/internal/timer"
	"github.com/AbdulWasayUl/go-country-browser/internal/typewriter"
	"github.com/AbdulWasayUl/go-country-browser/models"
)

const (
	eventBuffer     = 32
	defaultDebounce = 300 * time.Millisecond
)

// ErrClosed is returned when posting to a session whose loop has exited.
var ErrClosed = errors.New("session closed")

// WeatherLookup resolves the weather summary shown for a selected country.
type WeatherLookup interface {
	Lookup(ctx context.Context, c models.Country) models.WeatherSummary
}

type Options struct {
	Catalog  *catalog.Catalog
	Weather  WeatherLookup
	Debounce time.Duration
	// Send delivers a fragment to the browser. Called from the loop only.
	Send func(Message)
}

type Session struct {
	ID string

	opts   Options
	events chan func()
	done   chan struct{}
	once   sync.Once

	ctx context.Context

	// owned by the loop
	view       *browser.ViewState
	query      string
	modal      *modal.Controller
	typer      *typewriter.Animator
	debounce   *timer.Debouncer
	generation uint64
}

func New(opts Options) *Session {
	if opts.Debounce <= 0 {
		opts.Debounce = defaultDebounce
	}
	s := &Session{
		ID:       uuid.NewString(),
		opts:     opts,
		events:   make(chan func(), eventBuffer),
		done:     make(chan struct{}),
		ctx:      context.Background(),
		modal:    modal.New(),
		debounce: timer.NewDebouncer(opts.Debounce),
	}
	s.typer = typewriter.New(typewriter.SurfaceFunc(s.pushTypewriter), func(fn func()) {
		_ = s.post(fn)
	})
	return s
}

// Run drives the event loop until ctx is cancelled or Close is called.
func (s *Session) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.ctx = ctx

	metrics.ActiveSessions.Inc()
	defer metrics.ActiveSessions.Dec()
	defer s.shutdown()

	logger.Debug("Session %s started", s.ID)
	s.attachCatalog()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case fn := <-s.events:
			fn()
		}
	}
}

// Close stops the loop. Safe to call more than once.
func (s *Session) Close() {
	s.once.Do(func() { close(s.done) })
}

// Done is closed once the session has stopped.
func (s *Session) Done() <-chan struct{} { return s.done }

func (s *Session) shutdown() {
	s.Close()
	s.debounce.Cancel()
	s.typer.Stop()
	logger.Debug("Session %s stopped", s.ID)
}

func (s *Session) post(fn func()) error {
	select {
	case <-s.done:
		return ErrClosed
	default:
	}
	select {
	case s.events <- fn:
		return nil
	case <-s.done:
		return ErrClosed
	}
}

// Handle decodes raw and queues it for the loop.
func (s *Session) Handle(raw []byte) error {
	ev, err := DecodeEvent(raw)
	if err != nil {
		metrics.SessionEvents.WithLabelValues("invalid", "rejected").Inc()
		return err
	}
	return s.post(func() { s.dispatch(ev) })
}

func (s *Session) dispatch(ev Event) {
	var ok bool
	switch ev.Type {
	case EventSearch:
		ok = s.onSearch(ev.Query)
	case EventPage:
		ok = s.onPage(ev.Page)
	case EventSelect:
		ok = s.onSelect(ev.Index)
	case EventClose:
		ok = s.onClose(ev.Trigger)
	case EventTypewriterText:
		s.typer.Submit(ev.Text)
		ok = true
	case EventTypewriterSpeed:
		ok = s.onSpeed(ev.Value)
	}

	outcome := "applied"
	if !ok {
		outcome = "ignored"
	}
	metrics.SessionEvents.WithLabelValues(ev.Type, outcome).Inc()
}

// attachCatalog renders the grid if the dataset is there, or a loading
// message followed by the grid once the first load settles.
func (s *Session) attachCatalog() {
	select {
	case <-s.opts.Catalog.Settled():
		s.syncCatalog()
		return
	default:
	}

	s.send(Message{Region: RegionGrid, HTML: string(render.Loading())})
	go func() {
		select {
		case <-s.opts.Catalog.Settled():
			_ = s.post(s.syncCatalog)
		case <-s.done:
		}
	}()
}

func (s *Session) syncCatalog() {
	snap := s.opts.Catalog.Snapshot()
	if snap.Status != catalog.Ready {
		s.send(Message{Region: RegionGrid, HTML: string(render.LoadError())})
		s.send(Message{Region: RegionNav})
		return
	}
	s.view = browser.NewViewState(snap.Countries)
	if s.query != "" {
		s.view.ApplyQuery(s.query)
	}
	s.pushGrid()
}

// onSearch applies query once input has been quiet for the debounce delay.
// A query typed before the dataset arrives is applied when it does.
func (s *Session) onSearch(query string) bool {
	s.debounce.Trigger(func() {
		_ = s.post(func() {
			s.query = query
			if s.view == nil {
				return
			}
			s.view.ApplyQuery(query)
			s.pushGrid()
		})
	})
	return true
}

func (s *Session) onPage(page int) bool {
	if s.view == nil || !s.view.GoToPage(page) {
		return false
	}
	s.pushGrid()
	return true
}

func (s *Session) onSelect(index int) bool {
	if s.view == nil {
		return false
	}
	country, err := s.view.Record(index)
	if err != nil {
		logger.Debug("Session %s: %v", s.ID, err)
		return false
	}

	s.generation++
	gen := s.generation

	view := s.modal.Open(country)
	s.pushModal(view, true)

	ctx := s.ctx
	go func() {
		summary := s.opts.Weather.Lookup(ctx, country)
		_ = s.post(func() {
			if gen != s.generation || !s.modal.IsOpen() {
				logger.Debug("Session %s: dropping stale weather for %s", s.ID, country.Name.Common)
				return
			}
			s.pushWeather(summary)
		})
	}()
	return true
}

func (s *Session) onClose(raw string) bool {
	trigger, ok := modal.ParseTrigger(raw)
	if !ok || !s.modal.Close(trigger) {
		return false
	}
	s.pushModal(s.modal.View(), false)
	return true
}

func (s *Session) onSpeed(value int) bool {
	if err := s.typer.SetSpeed(value); err != nil {
		logger.Debug("Session %s: %v", s.ID, err)
		return false
	}
	return true
}

func (s *Session) pushGrid() {
	entries, meta := s.view.Current()

	grid, err := render.Grid(entries, meta)
	if err != nil {
		logger.Error("Session %s: render grid: %v", s.ID, err)
		return
	}
	nav, err := render.Pagination(meta)
	if err != nil {
		logger.Error("Session %s: render pagination: %v", s.ID, err)
		return
	}
	s.send(Message{Region: RegionGrid, HTML: string(grid)})
	s.send(Message{Region: RegionNav, HTML: string(nav)})
}

func (s *Session) pushModal(view modal.View, open bool) {
	html, err := render.Modal(view, open)
	if err != nil {
		logger.Error("Session %s: render modal: %v", s.ID, err)
		return
	}
	s.send(Message{Region: RegionModal, HTML: string(html)})
}

func (s *Session) pushWeather(summary models.WeatherSummary) {
	html, err := render.Weather(summary)
	if err != nil {
		logger.Error("Session %s: render weather: %v", s.ID, err)
		return
	}
	s.send(Message{Region: RegionWeather, HTML: string(html)})
}

// pushTypewriter runs on the loop: Tick is posted there, and Submit is only
// called from dispatch.
func (s *Session) pushTypewriter(text string) {
	s.send(Message{Region: RegionTypewriter, HTML: string(render.Typewriter(text))})
}

func (s *Session) send(m Message) {
	if s.opts.Send != nil {
		s.opts.Send(m)
	}
}
