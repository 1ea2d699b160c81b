package availability

import "context"

type Repository interface {
	ListByEvent(ctx context.Context, eventID string) ([]Availability, error)
	Upsert(ctx context.Context, item Availability) error
	DeleteByEvent(ctx context.Context, eventID string) error
}
