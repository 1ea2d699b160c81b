package playerstats

import "context"

type Repository interface {
	List(ctx context.Context) ([]Stats, error)
	GetByPlayerID(ctx context.Context, playerID string) (Stats, bool, error)
	Upsert(ctx context.Context, item Stats) error
	ResetAll(ctx context.Context) error
	DeleteByPlayerID(ctx context.Context, playerID string) error
}
