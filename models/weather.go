package models

import (
	"errors"
	"strconv"
	"time"
)

type SummaryState string

const (
	SummaryOK          SummaryState = "ok"
	SummaryNoCapital   SummaryState = "no_capital"
	SummaryNotFound    SummaryState = "not_found"
	SummaryUnavailable SummaryState = "unavailable"
	SummaryError       SummaryState = "error"
)

// WeatherSummary is the display record shown in the detail modal.
type WeatherSummary struct {
	City         string       `json:"city"`
	TemperatureC *float64     `json:"temperature_c,omitempty"`
	Condition    string       `json:"condition"`
	State        SummaryState `json:"state"`
}

// TemperatureText formats the temperature exactly as provided, or "--°C" when absent.
func (s WeatherSummary) TemperatureText() string {
	if s.TemperatureC == nil {
		return "--°C"
	}
	return strconv.FormatFloat(*s.TemperatureC, 'f', -1, 64) + "°C"
}

// Diagnostic is a developer-facing failure record.
type Diagnostic struct {
	ID        string    `bson:"_id" json:"id"`
	Component string    `bson:"component" json:"component"`
	Operation string    `bson:"operation" json:"operation"`
	Subject   string    `bson:"subject" json:"subject"`
	Kind      string    `bson:"kind" json:"kind"`
	Detail    string    `bson:"detail" json:"detail"`
	At        time.Time `bson:"at" json:"at"`
}

// KindOf classifies err for diagnostics.
func KindOf(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrNetworkFailure):
		return "network_failure"
	case errors.Is(err, ErrEmptyResult):
		return "empty_result"
	default:
		return "error"
	}
}
