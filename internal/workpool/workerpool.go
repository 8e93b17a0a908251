package workpool

import (
	"context"
	"time"

	"github.com/AbdulWasayUl/go-country-browser/internal/channels"
	"github.com/AbdulWasayUl/go-country-browser/internal/logger"
	"github.com/AbdulWasayUl/go-country-browser/models"
)

const requestTimeout = 30 * time.Second

type WorkerPool struct {
	WorkerCount int
	Channels    *channels.Channels
}

func New(channels *channels.Channels, workerCount int) *WorkerPool {
	return &WorkerPool{
		WorkerCount: workerCount,
		Channels:    channels,
	}
}

func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.WorkerCount; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	logger.Info("Worker %d started.", id)
	for req := range wp.Channels.DataRequest {
		wp.process(ctx, id, req)
	}
	logger.Info("Worker %d stopped.", id)
}

func (wp *WorkerPool) process(ctx context.Context, id int, req models.DataRequest) {
	defer wp.Channels.WG.Done()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("[%s] Worker %d panicked on %s: %v", req.Service, id, req.ID, r)
		}
	}()

	opCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	logger.Info("[%s] Worker %d processing request for ID: %s", req.Service, id, req.ID)

	// 1. Fetch Data
	data, err := req.FetchFunc(opCtx, req.ID)
	if err != nil {
		logger.Error("[%s] Worker %d failed to fetch data for %s: %v", req.Service, id, req.ID, err)
		return
	}

	// 2. Parse Data
	parsedData, err := req.ParseFunc(data)
	if err != nil {
		logger.Error("[%s] Worker %d failed to parse data for %s: %v", req.Service, id, req.ID, err)
		return
	}

	// 3. Store Data
	if err := req.StoreFunc(opCtx, parsedData); err != nil {
		logger.Error("[%s] Worker %d failed to store data for %s: %v", req.Service, id, req.ID, err)
		return
	}

	logger.Info("[%s] Worker %d successfully completed request for ID: %s", req.Service, id, req.ID)
}

func (wp *WorkerPool) Stop() {
	close(wp.Channels.DataRequest)
}
