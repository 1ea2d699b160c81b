package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/teamtrack/internal/domain/notification"
	"github.com/riskibarqy/teamtrack/internal/domain/profile"
)

// Notifier fans in-app notifications out to team members. An empty exceptUserID reaches every profile.
type Notifier interface {
	NotifyAllExcept(ctx context.Context, exceptUserID string, kind notification.Type, title, message string) error
}

func loadActor(ctx context.Context, profiles profile.Repository, userID string) (profile.Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return profile.Profile{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}

	actor, exists, err := profiles.GetByID(ctx, userID)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("get actor profile: %w", err)
	}
	if !exists {
		return profile.Profile{}, fmt.Errorf("%w: profile not found for user=%s", ErrUnauthorized, userID)
	}
	return actor, nil
}

func requireManager(ctx context.Context, profiles profile.Repository, userID, action string) (profile.Profile, error) {
	actor, err := loadActor(ctx, profiles, userID)
	if err != nil {
		return profile.Profile{}, err
	}
	if !actor.IsManager() {
		return profile.Profile{}, fmt.Errorf("%w: only managers can %s", ErrForbidden, action)
	}
	return actor, nil
}

func intPtr(v int) *int {
	return &v
}
