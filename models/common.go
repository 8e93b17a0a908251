package models

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNetworkFailure covers non-success HTTP statuses and transport errors.
	ErrNetworkFailure = errors.New("network failure")
	// ErrEmptyResult means the upstream answered successfully with nothing usable.
	ErrEmptyResult = errors.New("empty result")
)

type DataRequest struct {
	ID        string
	Service   string
	FetchFunc func(ctx context.Context, id string) ([]byte, error)
	ParseFunc func([]byte) (interface{}, error)
	StoreFunc func(ctx context.Context, data interface{}) error
}

type RateLimitSettings struct {
	MaxRequests int
	PerDuration time.Duration
}

type Migration struct {
	Name string
	Func func(ctx context.Context, client *mongo.Client) error
}

// DiagnosticRecorder is the developer-facing log channel for failures.
type DiagnosticRecorder interface {
	Record(ctx context.Context, d Diagnostic)
}

// NopRecorder drops diagnostics.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, Diagnostic) {}
