package channels

import (
	"context"
	"sync"

	"github.com/AbdulWasayUl/go-country-browser/models"
)

type Channels struct {
	DataRequest chan models.DataRequest
	WG          *sync.WaitGroup
}

func New() *Channels {
	const bufferSize = 16
	return &Channels{
		DataRequest: make(chan models.DataRequest, bufferSize),
		WG:          &sync.WaitGroup{},
	}
}

// Submit queues req and counts it against WG until a worker finishes it.
func (c *Channels) Submit(ctx context.Context, req models.DataRequest) error {
	c.WG.Add(1)
	select {
	case c.DataRequest <- req:
		return nil
	case <-ctx.Done():
		c.WG.Done()
		return ctx.Err()
	}
}
