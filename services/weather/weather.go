package weather

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/AbdulWasayUl/go-country-browser/internal/api"
	"github.com/AbdulWasayUl/go-country-browser/internal/config"
	"github.com/AbdulWasayUl/go-country-browser/internal/logger"
	"github.com/AbdulWasayUl/go-country-browser/internal/metrics"
	"github.com/AbdulWasayUl/go-country-browser/models"
)

const (
	component = "weather"

	textNoCapital      = "No capital city available"
	textNotAvailable   = "Weather data not available"
	textNoData         = "No weather data found"
	textErrorCity      = "Error loading weather data"
	textErrorCondition = "Please try again later"
)

type Service struct {
	Config *config.Config
	Client *api.Client
	Diag   models.DiagnosticRecorder
}

func NewService(cfg *config.Config, diag models.DiagnosticRecorder) *Service {
	rlSettings := models.RateLimitSettings{
		MaxRequests: 20,
		PerDuration: time.Second,
	}
	client := api.NewClient(rlSettings)

	if diag == nil {
		diag = models.NopRecorder{}
	}
	if cfg.AccuWeatherAPIKey == "" {
		logger.Warn("ACCUWEATHER_API_KEY is not set; weather lookups will show placeholders")
	}

	return &Service{
		Config: cfg,
		Client: client,
		Diag:   diag,
	}
}

// SearchLocation returns the first location matching city.
func (s *Service) SearchLocation(ctx context.Context, city string) (Location, error) {
	u := fmt.Sprintf("%s/locations/v1/cities/search?apikey=%s&q=%s",
		s.Config.AccuWeatherAPIBaseURL, url.QueryEscape(s.Config.AccuWeatherAPIKey), url.QueryEscape(city))

	var resp LocationSearchResponse
	if err := s.Client.GetJSON(ctx, u, &resp); err != nil {
		return Location{}, fmt.Errorf("location search for %q: %w", city, err)
	}
	if len(resp) == 0 || resp[0].Key == "" {
		return Location{}, fmt.Errorf("location search for %q: %w", city, models.ErrEmptyResult)
	}
	return resp[0], nil
}

// CurrentConditions returns the first observation for a location key.
func (s *Service) CurrentConditions(ctx context.Context, key string) (Conditions, error) {
	u := fmt.Sprintf("%s/currentconditions/v1/%s?apikey=%s",
		s.Config.AccuWeatherAPIBaseURL, url.PathEscape(key), url.QueryEscape(s.Config.AccuWeatherAPIKey))

	var resp CurrentConditionsResponse
	if err := s.Client.GetJSON(ctx, u, &resp); err != nil {
		return Conditions{}, fmt.Errorf("current conditions for %s: %w", key, err)
	}
	if len(resp) == 0 {
		return Conditions{}, fmt.Errorf("current conditions for %s: %w", key, models.ErrEmptyResult)
	}
	return resp[0], nil
}

// Lookup resolves the weather summary for the country's first capital.
// It never fails: every failure becomes a placeholder summary.
func (s *Service) Lookup(ctx context.Context, c models.Country) (summary models.WeatherSummary) {
	defer func() {
		if r := recover(); r != nil {
			s.record(ctx, "lookup", c.Name.Common, fmt.Errorf("panic: %v", r))
			summary = errorSummary()
		}
		metrics.WeatherLookups.WithLabelValues(string(summary.State)).Inc()
	}()

	l := &lookup{country: c}
	l.then(s.capital).
		then(func(l *lookup) { s.locate(ctx, l) }).
		then(func(l *lookup) { s.observe(ctx, l) })

	return *l.result
}

// lookup threads the dependent calls; the first step to set result ends the chain.
type lookup struct {
	country    models.Country
	capital    string
	location   Location
	conditions Conditions
	result     *models.WeatherSummary
}

func (l *lookup) then(step func(*lookup)) *lookup {
	if l.result != nil {
		return l
	}
	step(l)
	return l
}

func (l *lookup) finish(summary models.WeatherSummary) {
	l.result = &summary
}

func (s *Service) capital(l *lookup) {
	if len(l.country.Capital) == 0 || l.country.Capital[0] == "" {
		l.finish(models.WeatherSummary{
			City:      textNoCapital,
			Condition: textNotAvailable,
			State:     models.SummaryNoCapital,
		})
		return
	}
	l.capital = l.country.Capital[0]
}

func (s *Service) locate(ctx context.Context, l *lookup) {
	loc, err := s.SearchLocation(ctx, l.capital)
	if err != nil {
		s.record(ctx, "location_search", l.capital, err)
		l.finish(placeholder(l.capital, err))
		return
	}
	l.location = loc
}

func (s *Service) observe(ctx context.Context, l *lookup) {
	name := l.location.LocalizedName
	if name == "" {
		name = l.capital
	}

	cond, err := s.CurrentConditions(ctx, l.location.Key)
	if err != nil {
		s.record(ctx, "current_conditions", name, err)
		l.finish(placeholder(name, err))
		return
	}

	l.conditions = cond
	l.finish(models.WeatherSummary{
		City:         name,
		TemperatureC: cond.MetricValue(),
		Condition:    cond.WeatherText,
		State:        models.SummaryOK,
	})
}

// placeholder maps an expected failure to its display state; anything else is a generic error.
func placeholder(name string, err error) models.WeatherSummary {
	switch {
	case errors.Is(err, models.ErrEmptyResult):
		return models.WeatherSummary{
			City:      name + " (" + textNotAvailable + ")",
			Condition: textNoData,
			State:     models.SummaryNotFound,
		}
	case errors.Is(err, models.ErrNetworkFailure):
		return models.WeatherSummary{
			City:      name + " (" + textNotAvailable + ")",
			Condition: textNotAvailable,
			State:     models.SummaryUnavailable,
		}
	default:
		return errorSummary()
	}
}

func errorSummary() models.WeatherSummary {
	return models.WeatherSummary{
		City:      textErrorCity,
		Condition: textErrorCondition,
		State:     models.SummaryError,
	}
}

func (s *Service) record(ctx context.Context, op, subject string, err error) {
	logger.Error("[%s] %s failed for %q: %v", component, op, subject, err)
	s.Diag.Record(ctx, models.Diagnostic{
		ID:        uuid.NewString(),
		Component: component,
		Operation: op,
		Subject:   subject,
		Kind:      models.KindOf(err),
		Detail:    err.Error(),
		At:        time.Now().UTC(),
	})
}
