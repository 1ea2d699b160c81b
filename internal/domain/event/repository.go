package event

import (
	"context"
	"time"
)

// Repository exposes event persistence operations.
type Repository interface {
	List(ctx context.Context) ([]Event, error)
	GetByID(ctx context.Context, id string) (Event, bool, error)
	// NextFrom returns the earliest event at or after from, optionally restricted to one type.
	NextFrom(ctx context.Context, from time.Time, eventType Type) (Event, bool, error)
	// LastResultBefore returns the latest match before the instant that already has a result.
	LastResultBefore(ctx context.Context, before time.Time) (Event, bool, error)
	Create(ctx context.Context, item Event) error
	Update(ctx context.Context, item Event) error
	Delete(ctx context.Context, id string) error
}
