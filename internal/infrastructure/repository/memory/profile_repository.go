package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/riskibarqy/teamtrack/internal/domain/profile"
)

type ProfileRepository struct {
	mu    sync.RWMutex
	items map[string]profile.Profile
}

func NewProfileRepository(items []profile.Profile) *ProfileRepository {
	index := make(map[string]profile.Profile, len(items))
	for _, item := range items {
		index[item.ID] = cloneProfile(item)
	}
	return &ProfileRepository{items: index}
}

func (r *ProfileRepository) GetByID(_ context.Context, id string) (profile.Profile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return profile.Profile{}, false, nil
	}
	return cloneProfile(item), true, nil
}

func (r *ProfileRepository) GetByIDs(_ context.Context, ids []string) ([]profile.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]profile.Profile, 0, len(ids))
	for _, id := range ids {
		item, ok := r.items[id]
		if !ok {
			continue
		}
		out = append(out, cloneProfile(item))
	}
	return out, nil
}

func (r *ProfileRepository) List(_ context.Context) ([]profile.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]profile.Profile, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, cloneProfile(item))
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].FullName) < strings.ToLower(out[j].FullName)
	})
	return out, nil
}

func (r *ProfileRepository) Create(_ context.Context, item profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return fmt.Errorf("profile already exists: %s", item.ID)
	}
	r.items[item.ID] = cloneProfile(item)
	return nil
}

func (r *ProfileRepository) Update(_ context.Context, item profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; !exists {
		return fmt.Errorf("profile not found: %s", item.ID)
	}
	r.items[item.ID] = cloneProfile(item)
	return nil
}

func cloneProfile(item profile.Profile) profile.Profile {
	copied := item
	copied.ParentOf = append([]string(nil), item.ParentOf...)
	if item.JerseyNumber != nil {
		v := *item.JerseyNumber
		copied.JerseyNumber = &v
	}
	return copied
}

type CredentialRepository struct {
	mu      sync.RWMutex
	byEmail map[string]profile.Credential
}

func NewCredentialRepository() *CredentialRepository {
	return &CredentialRepository{byEmail: make(map[string]profile.Credential)}
}

func (r *CredentialRepository) GetByEmail(_ context.Context, email string) (profile.Credential, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byEmail[strings.ToLower(email)]
	return item, ok, nil
}

func (r *CredentialRepository) Create(_ context.Context, item profile.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(item.Email)
	if _, exists := r.byEmail[key]; exists {
		return fmt.Errorf("%w: %s", profile.ErrEmailTaken, item.Email)
	}
	r.byEmail[key] = item
	return nil
}

func (r *CredentialRepository) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, item := range r.byEmail {
		if item.UserID == userID {
			delete(r.byEmail, key)
		}
	}
	return nil
}
