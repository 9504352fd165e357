package store

import (
	"context"
	"time"
)

// Store persists the history of query runs
type Store interface {
	Close() error

	SaveRun(ctx context.Context, r Run) error
	// GetRun returns internalerr.ErrNotFound for an unknown id.
	GetRun(ctx context.Context, id string) (Run, error)
	// ListRuns returns up to limit runs, newest first. limit <= 0 means all.
	ListRuns(ctx context.Context, limit int) ([]Run, error)
}

// Run is one evaluated batch of queries
type Run struct {
	ID        string // ULID, sorts by creation time
	Network   string
	CreatedAt time.Time
	Records   []Record
}

// Record is one answered query of a run
type Record struct {
	Position        int
	Query           string
	Algorithm       int
	Probability     float64
	Additions       int
	Multiplications int
}
