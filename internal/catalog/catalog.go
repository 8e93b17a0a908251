// Package catalog holds the most recently loaded country dataset.
package catalog

import (
	"sync"
	"time"

	"github.com/AbdulWasayUl/go-country-browser/models"
)

type Status int

const (
	Loading Status = iota
	Ready
	Failed
)

// Snapshot is an immutable view of the dataset at one point in time.
type Snapshot struct {
	Status    Status
	Countries []models.Country
	LoadedAt  time.Time
	Err       error
}

type Catalog struct {
	mu   sync.RWMutex
	snap Snapshot

	ready chan struct{}
	once  sync.Once
}

func New() *Catalog {
	return &Catalog{ready: make(chan struct{})}
}

// Store installs a freshly loaded list. Later loads replace earlier ones for new
// readers; existing snapshots keep the list they were handed.
func (c *Catalog) Store(countries []models.Country) {
	c.mu.Lock()
	c.snap = Snapshot{Status: Ready, Countries: countries, LoadedAt: time.Now()}
	c.mu.Unlock()
	c.once.Do(func() { close(c.ready) })
}

// Fail records a load failure. A previously loaded list stays available.
func (c *Catalog) Fail(err error) {
	c.mu.Lock()
	if c.snap.Status != Ready {
		c.snap = Snapshot{Status: Failed, Err: err}
	}
	c.mu.Unlock()
	c.once.Do(func() { close(c.ready) })
}

func (c *Catalog) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

// Settled is closed once the first load has either succeeded or failed.
func (c *Catalog) Settled() <-chan struct{} {
	return c.ready
}
