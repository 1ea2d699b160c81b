package player

import "context"

// Repository describes roster persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	GetByID(ctx context.Context, id string) (Player, bool, error)
	GetByIDs(ctx context.Context, ids []string) ([]Player, error)
	ListByParentIDs(ctx context.Context, parentIDs []string) ([]Player, error)
	Create(ctx context.Context, item Player) error
	Update(ctx context.Context, item Player) error
	Delete(ctx context.Context, id string) error
}
