// Package typewriter animates a source string onto a display one character at a
// time, looping forever at a speed chosen by a slider.
package typewriter

import (
	"fmt"
	"sync"
	"time"

	"github.com/AbdulWasayUl/go-country-browser/internal/timer"
)

const (
	MinSpeed = 1
	MaxSpeed = 100

	baseInterval = time.Second
)

// Surface receives the full display text after every change.
type Surface interface {
	SetText(text string)
}

// SurfaceFunc adapts a function to Surface.
type SurfaceFunc func(text string)

func (f SurfaceFunc) SetText(text string) { f(text) }

// Animator holds the source text, cursor and display.
type Animator struct {
	surface Surface
	ticker  *timer.Repeater
	// post runs tick work on the owner's goroutine; nil means run inline.
	post func(func())

	mu      sync.Mutex
	source  []rune
	display []rune
	cursor  int
	speed   int
}

func New(surface Surface, post func(func())) *Animator {
	return &Animator{
		surface: surface,
		ticker:  timer.NewRepeater(),
		post:    post,
	}
}

// Interval converts a slider value into the tick interval.
func Interval(speed int) (time.Duration, error) {
	if speed < MinSpeed || speed > MaxSpeed {
		return 0, fmt.Errorf("speed %d out of range [%d, %d]", speed, MinSpeed, MaxSpeed)
	}
	return baseInterval / time.Duration(speed), nil
}

// Submit replaces the source text and clears the display. A running timer keeps
// running, so a tick already in flight still lands.
func (a *Animator) Submit(text string) {
	a.mu.Lock()
	a.source = []rune(text)
	a.display = a.display[:0]
	a.cursor = 0
	a.mu.Unlock()

	a.surface.SetText("")
}

// SetSpeed restarts the repeating timer at the interval for speed.
func (a *Animator) SetSpeed(speed int) error {
	interval, err := Interval(speed)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.speed = speed
	a.mu.Unlock()

	a.ticker.Start(interval, func() {
		if a.post == nil {
			a.Tick()
			return
		}
		a.post(a.Tick)
	})
	return nil
}

// Tick appends the next character. Once the cursor runs past the end the cycle
// restarts from an empty display.
func (a *Animator) Tick() {
	a.mu.Lock()
	if a.cursor < len(a.source) {
		a.display = append(a.display, a.source[a.cursor])
	}
	a.cursor++
	if a.cursor > len(a.source) {
		a.display = a.display[:0]
		a.cursor = 0
	}
	text := string(a.display)
	a.mu.Unlock()

	a.surface.SetText(text)
}

// Stop tears the timer down.
func (a *Animator) Stop() {
	a.ticker.Stop()
}

func (a *Animator) Running() bool { return a.ticker.Running() }

func (a *Animator) Speed() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.speed
}

func (a *Animator) Display() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return string(a.display)
}
