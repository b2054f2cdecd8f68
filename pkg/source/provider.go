package source

import (
	"context"

	"fiveday-api/pkg/series"
)

// Provider acquires close series from an upstream data source.
type Provider interface {
	// Name identifies the provider in logs and config.
	Name() string
	// Closes returns the series for req, newest first. Implementations always
	// return a well-formed Result when err is nil, possibly with no points.
	Closes(ctx context.Context, req series.Request) (*series.Result, error)
}
