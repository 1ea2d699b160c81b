package cache

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/teamtrack/internal/domain/event"
	"github.com/riskibarqy/teamtrack/internal/domain/player"
	"github.com/riskibarqy/teamtrack/internal/domain/profile"
	basecache "github.com/riskibarqy/teamtrack/internal/platform/cache"
)

const (
	playerPrefix  = "player:"
	profilePrefix = "profile:"
	eventPrefix   = "event:"
)

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	v, err := r.cache.GetOrLoad(ctx, playerPrefix+"list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, id string) (player.Player, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, playerPrefix+"id:"+id, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return cachedPlayerByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}

	cached, _ := v.(cachedPlayerByID)
	return cached.value, cached.exists, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, ids []string) ([]player.Player, error) {
	v, err := r.cache.GetOrLoad(ctx, playerPrefix+"ids:"+sortedKey(ids), func(ctx context.Context) (any, error) {
		items, err := r.next.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) ListByParentIDs(ctx context.Context, parentIDs []string) ([]player.Player, error) {
	v, err := r.cache.GetOrLoad(ctx, playerPrefix+"parents:"+sortedKey(parentIDs), func(ctx context.Context) (any, error) {
		items, err := r.next.ListByParentIDs(ctx, parentIDs)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) Create(ctx context.Context, item player.Player) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, playerPrefix)
	return nil
}

func (r *PlayerRepository) Update(ctx context.Context, item player.Player) error {
	if err := r.next.Update(ctx, item); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, playerPrefix)
	return nil
}

func (r *PlayerRepository) Delete(ctx context.Context, id string) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, playerPrefix)
	return nil
}

type cachedPlayerByID struct {
	value  player.Player
	exists bool
}

type ProfileRepository struct {
	next  profile.Repository
	cache *basecache.Store
}

func NewProfileRepository(next profile.Repository, cache *basecache.Store) *ProfileRepository {
	return &ProfileRepository{next: next, cache: cache}
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (profile.Profile, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, profilePrefix+"id:"+id, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return cachedProfileByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return profile.Profile{}, false, err
	}

	cached, _ := v.(cachedProfileByID)
	return cached.value, cached.exists, nil
}

func (r *ProfileRepository) GetByIDs(ctx context.Context, ids []string) ([]profile.Profile, error) {
	v, err := r.cache.GetOrLoad(ctx, profilePrefix+"ids:"+sortedKey(ids), func(ctx context.Context) (any, error) {
		items, err := r.next.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		return append([]profile.Profile(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]profile.Profile)
	return append([]profile.Profile(nil), items...), nil
}

func (r *ProfileRepository) List(ctx context.Context) ([]profile.Profile, error) {
	v, err := r.cache.GetOrLoad(ctx, profilePrefix+"list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]profile.Profile(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]profile.Profile)
	return append([]profile.Profile(nil), items...), nil
}

func (r *ProfileRepository) Create(ctx context.Context, item profile.Profile) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, profilePrefix)
	return nil
}

func (r *ProfileRepository) Update(ctx context.Context, item profile.Profile) error {
	if err := r.next.Update(ctx, item); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, profilePrefix)
	return nil
}

type cachedProfileByID struct {
	value  profile.Profile
	exists bool
}

// EventRepository caches lookups by id and the full calendar; time-based queries go straight through.
type EventRepository struct {
	next  event.Repository
	cache *basecache.Store
}

func NewEventRepository(next event.Repository, cache *basecache.Store) *EventRepository {
	return &EventRepository{next: next, cache: cache}
}

func (r *EventRepository) List(ctx context.Context) ([]event.Event, error) {
	v, err := r.cache.GetOrLoad(ctx, eventPrefix+"list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]event.Event(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]event.Event)
	return append([]event.Event(nil), items...), nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (event.Event, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, eventPrefix+"id:"+id, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return cachedEventByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return event.Event{}, false, err
	}

	cached, _ := v.(cachedEventByID)
	return cached.value, cached.exists, nil
}

func (r *EventRepository) NextFrom(ctx context.Context, from time.Time, eventType event.Type) (event.Event, bool, error) {
	return r.next.NextFrom(ctx, from, eventType)
}

func (r *EventRepository) LastResultBefore(ctx context.Context, before time.Time) (event.Event, bool, error) {
	return r.next.LastResultBefore(ctx, before)
}

func (r *EventRepository) Create(ctx context.Context, item event.Event) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, eventPrefix)
	return nil
}

func (r *EventRepository) Update(ctx context.Context, item event.Event) error {
	if err := r.next.Update(ctx, item); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, eventPrefix)
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, eventPrefix)
	return nil
}

type cachedEventByID struct {
	value  event.Event
	exists bool
}

func sortedKey(ids []string) string {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}
