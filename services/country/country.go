package country

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/AbdulWasayUl/go-country-browser/internal/api"
	"github.com/AbdulWasayUl/go-country-browser/internal/catalog"
	"github.com/AbdulWasayUl/go-country-browser/internal/channels"
	"github.com/AbdulWasayUl/go-country-browser/internal/config"
	"github.com/AbdulWasayUl/go-country-browser/internal/logger"
	"github.com/AbdulWasayUl/go-country-browser/internal/metrics"
	"github.com/AbdulWasayUl/go-country-browser/models"
)

const (
	serviceName = "restcountries"
	datasetID   = "all"
)

type Service struct {
	Config  *config.Config
	Client  *api.Client
	Catalog *catalog.Catalog
	Diag    models.DiagnosticRecorder
}

func NewService(cfg *config.Config, cat *catalog.Catalog, diag models.DiagnosticRecorder) *Service {
	rlSettings := models.RateLimitSettings{
		MaxRequests: 20,
		PerDuration: time.Minute,
	}
	client := api.NewClient(rlSettings)

	if diag == nil {
		diag = models.NopRecorder{}
	}

	return &Service{
		Config:  cfg,
		Client:  client,
		Catalog: cat,
		Diag:    diag,
	}
}

func (s *Service) FetchData(ctx context.Context, id string) ([]byte, error) {
	u := fmt.Sprintf("%s/%s?fields=%s", s.Config.RestCountriesAPIBaseURL, url.PathEscape(id), datasetFields)
	body, err := s.Client.Do(ctx, u, map[string]string{"Accept": "application/json"})
	if err != nil {
		s.fail(ctx, "fetch", err)
		return nil, err
	}
	return body, nil
}

func (s *Service) ParseData(data []byte) (interface{}, error) {
	var resp RestCountriesAPIResponse

	if err := json.Unmarshal(data, &resp); err != nil {
		err = fmt.Errorf("failed to parse country data: %w", err)
		s.fail(context.Background(), "parse", err)
		return nil, err
	}

	if len(resp) == 0 {
		err := fmt.Errorf("empty response from API: %w", models.ErrEmptyResult)
		s.fail(context.Background(), "parse", err)
		return nil, err
	}

	return []models.Country(resp), nil
}

func (s *Service) StoreData(ctx context.Context, data interface{}) error {
	countries, ok := data.([]models.Country)
	if !ok {
		return fmt.Errorf("expected []models.Country, got %T", data)
	}

	s.Catalog.Store(countries)
	metrics.DatasetLoads.WithLabelValues("success").Inc()
	logger.Info("[%s] Loaded %d countries", serviceName, len(countries))
	return nil
}

// LoadRequest builds the worker-pool request that fetches, parses and installs the dataset.
func (s *Service) LoadRequest() models.DataRequest {
	return models.DataRequest{
		ID:        datasetID,
		Service:   serviceName,
		FetchFunc: s.FetchData,
		ParseFunc: s.ParseData,
		StoreFunc: s.StoreData,
	}
}

// RunBatchJob submits the dataset load to the worker pool.
func (s *Service) RunBatchJob(ctx context.Context, chans *channels.Channels) error {
	logger.Info("[%s] Submitting dataset load...", serviceName)

	return chans.Submit(ctx, s.LoadRequest())
}

func (s *Service) fail(ctx context.Context, op string, err error) {
	s.Catalog.Fail(err)
	metrics.DatasetLoads.WithLabelValues("failure").Inc()
	logger.Error("[%s] Dataset %s failed: %v", serviceName, op, err)
	s.Diag.Record(ctx, models.Diagnostic{
		ID:        uuid.NewString(),
		Component: serviceName,
		Operation: op,
		Subject:   datasetID,
		Kind:      models.KindOf(err),
		Detail:    err.Error(),
		At:        time.Now().UTC(),
	})
}
