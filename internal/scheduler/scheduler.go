package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/AbdulWasayUl/go-country-browser/internal/channels"
	"github.com/AbdulWasayUl/go-country-browser/internal/logger"
)

type SchedulableService interface {
	RunBatchJob(ctx context.Context, chans *channels.Channels) error
}

type Scheduler struct {
	Cron *gocron.Scheduler
	WG   *sync.WaitGroup
}

func New() (*Scheduler, error) {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		Cron: s,
		WG:   &sync.WaitGroup{},
	}, nil
}

// StartJob reloads every service each interval. The first run happens one
// interval from now; RunImmediateJob covers startup.
func (s *Scheduler) StartJob(ctx context.Context, interval time.Duration, chans *channels.Channels, services []SchedulableService) error {
	if interval <= 0 {
		logger.Info("Dataset refresh disabled.")
		return nil
	}

	_, err := s.Cron.Every(interval).WaitForSchedule().Do(func() {
		s.WG.Add(1)
		defer s.WG.Done()
		s.runAllJobs(ctx, chans, services)
	})
	if err != nil {
		logger.Error("Failed to schedule job: %v", err)
		return fmt.Errorf("schedule refresh every %s: %w", interval, err)
	}

	s.Cron.StartAsync()
	logger.Info("Dataset refresh scheduled every %s.", interval)
	return nil
}

func (s *Scheduler) runAllJobs(ctx context.Context, chans *channels.Channels, services []SchedulableService) {
	logger.Info("--- Dataset Load Started ---")
	defer logger.Info("--- Dataset Load Finished ---")

	for _, service := range services {
		if err := service.RunBatchJob(ctx, chans); err != nil {
			logger.Error("Error running batch job for service: %v", err)
		}
	}

	logger.Info("Waiting for all submitted jobs to complete...")
	chans.WG.Wait()
	logger.Info("All jobs completed.")
}

func (s *Scheduler) RunImmediateJob(ctx context.Context, chans *channels.Channels, services []SchedulableService) {
	s.WG.Add(1)
	defer s.WG.Done()

	logger.Info("--- Immediate Dataset Load ---")
	s.runAllJobs(ctx, chans, services)
}

// StartImmediateJob runs RunImmediateJob in the background. Stop waits for it.
func (s *Scheduler) StartImmediateJob(ctx context.Context, chans *channels.Channels, services []SchedulableService) {
	s.WG.Add(1)
	go func() {
		defer s.WG.Done()
		s.RunImmediateJob(ctx, chans, services)
	}()
}

// Stop halts future runs and waits for one in progress.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	s.WG.Wait()
}
