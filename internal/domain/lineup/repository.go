package lineup

import "context"

// Repository exposes lineup persistence operations.
type Repository interface {
	GetByEvent(ctx context.Context, eventID string) (MatchLineup, bool, error)
	Upsert(ctx context.Context, item MatchLineup) error
	DeleteByEvent(ctx context.Context, eventID string) error
}

// StartingPickRepository stores picker rows; Replace swaps the whole set for an event.
type StartingPickRepository interface {
	ListByEvent(ctx context.Context, eventID string) ([]StartingPick, error)
	Replace(ctx context.Context, eventID string, picks []StartingPick) error
	DeleteByEvent(ctx context.Context, eventID string) error
}
