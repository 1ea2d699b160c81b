package usecase

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/teamtrack/internal/domain/media"
	"github.com/riskibarqy/teamtrack/internal/domain/player"
	"github.com/riskibarqy/teamtrack/internal/domain/profile"
	"github.com/riskibarqy/teamtrack/internal/platform/logging"
)

type UpdateProfileInput struct {
	FullName     string
	TeamName     string
	Position     string
	JerseyNumber *int
}

type ProfileService struct {
	profiles profile.Repository
	players  player.Repository
	storage  media.Storage
	logger   *logging.Logger
	clock    clockwork.Clock
}

func NewProfileService(
	profiles profile.Repository,
	players player.Repository,
	storage media.Storage,
	logger *logging.Logger,
	clock clockwork.Clock,
) *ProfileService {
	if logger == nil {
		logger = logging.Default()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &ProfileService{
		profiles: profiles,
		players:  players,
		storage:  storage,
		logger:   logger,
		clock:    clock,
	}
}

func (s *ProfileService) GetMe(ctx context.Context, userID string) (profile.Profile, error) {
	return loadActor(ctx, s.profiles, userID)
}

func (s *ProfileService) Get(ctx context.Context, profileID string) (profile.Profile, error) {
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return profile.Profile{}, fmt.Errorf("%w: profile id is required", ErrInvalidInput)
	}

	item, exists, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	if !exists {
		return profile.Profile{}, fmt.Errorf("%w: profile=%s", ErrNotFound, profileID)
	}
	return item, nil
}

func (s *ProfileService) UpdateMe(ctx context.Context, userID string, input UpdateProfileInput) (profile.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.UpdateMe", actorAttr(userID))
	defer span.End()

	item, err := loadActor(ctx, s.profiles, userID)
	if err != nil {
		return profile.Profile{}, err
	}

	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		return profile.Profile{}, fmt.Errorf("%w: full name is required", ErrInvalidInput)
	}
	if input.JerseyNumber != nil && (*input.JerseyNumber < 1 || *input.JerseyNumber > 99) {
		return profile.Profile{}, fmt.Errorf("%w: jersey number must be between 1 and 99", ErrInvalidInput)
	}

	item.FullName = fullName
	item.TeamName = strings.TrimSpace(input.TeamName)
	item.Position = strings.TrimSpace(input.Position)
	item.JerseyNumber = input.JerseyNumber
	item.UpdatedAt = s.clock.Now().UTC()

	if err := s.profiles.Update(ctx, item); err != nil {
		return profile.Profile{}, fmt.Errorf("update profile: %w", err)
	}
	return item, nil
}

// UploadAvatar stores a new picture and drops the previous object.
func (s *ProfileService) UploadAvatar(ctx context.Context, userID string, input UploadInput) (profile.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.UploadAvatar", actorAttr(userID))
	defer span.End()

	item, err := loadActor(ctx, s.profiles, userID)
	if err != nil {
		return profile.Profile{}, err
	}
	if input.Body == nil {
		return profile.Profile{}, fmt.Errorf("%w: file is required", ErrInvalidInput)
	}

	kind, err := media.ClassifyMIME(input.ContentType)
	if err != nil || kind != media.FileTypeImage {
		return profile.Profile{}, fmt.Errorf("%w: Please select an image file", ErrInvalidInput)
	}
	if input.Size > media.MaxFileSize {
		return profile.Profile{}, fmt.Errorf("%w: file must be at most 100MB", ErrInvalidInput)
	}

	now := s.clock.Now().UTC()
	objectPath := fmt.Sprintf("%s/avatar-%d.%s", item.ID, now.UnixMilli(), media.Extension(input.FileName, input.ContentType))
	if _, err := s.storage.Put(ctx, media.BucketAvatars, objectPath, input.ContentType, &limitedReader{r: input.Body, n: media.MaxFileSize}); err != nil {
		_ = s.storage.Remove(ctx, media.BucketAvatars, objectPath)
		return profile.Profile{}, fmt.Errorf("store avatar: %w", err)
	}

	previous := item.AvatarPath
	item.AvatarPath = objectPath
	item.AvatarURL = s.storage.PublicURL(media.BucketAvatars, objectPath)
	item.UpdatedAt = now
	if err := s.profiles.Update(ctx, item); err != nil {
		return profile.Profile{}, fmt.Errorf("update profile avatar: %w", err)
	}

	if previous != "" && previous != objectPath {
		if err := s.storage.Remove(ctx, media.BucketAvatars, previous); err != nil {
			s.logger.WarnContext(ctx, "remove previous avatar failed", "user_id", item.ID, "path", previous, "error", err)
		}
	}
	return item, nil
}

// LinkPlayer makes the calling parent the guardian of a roster player.
func (s *ProfileService) LinkPlayer(ctx context.Context, userID, playerID string) (profile.Profile, error) {
	parent, target, err := s.parentAndPlayer(ctx, userID, playerID)
	if err != nil {
		return profile.Profile{}, err
	}
	if target.ParentID != "" && target.ParentID != parent.ID {
		return profile.Profile{}, fmt.Errorf("%w: player is already linked to another parent", ErrConflict)
	}

	now := s.clock.Now().UTC()
	if target.ParentID != parent.ID {
		target.ParentID = parent.ID
		target.UpdatedAt = now
		if err := s.players.Update(ctx, target); err != nil {
			return profile.Profile{}, fmt.Errorf("link player: %w", err)
		}
	}

	if !slices.Contains(parent.ParentOf, target.ID) {
		parent.ParentOf = append(slices.Clone(parent.ParentOf), target.ID)
		parent.UpdatedAt = now
		if err := s.profiles.Update(ctx, parent); err != nil {
			return profile.Profile{}, fmt.Errorf("update parent profile: %w", err)
		}
	}
	return parent, nil
}

func (s *ProfileService) UnlinkPlayer(ctx context.Context, userID, playerID string) (profile.Profile, error) {
	parent, target, err := s.parentAndPlayer(ctx, userID, playerID)
	if err != nil {
		return profile.Profile{}, err
	}
	if target.ParentID != parent.ID {
		return profile.Profile{}, fmt.Errorf("%w: player is not linked to you", ErrForbidden)
	}

	now := s.clock.Now().UTC()
	target.ParentID = ""
	target.UpdatedAt = now
	if err := s.players.Update(ctx, target); err != nil {
		return profile.Profile{}, fmt.Errorf("unlink player: %w", err)
	}

	parent.ParentOf = slices.DeleteFunc(slices.Clone(parent.ParentOf), func(id string) bool { return id == target.ID })
	parent.UpdatedAt = now
	if err := s.profiles.Update(ctx, parent); err != nil {
		return profile.Profile{}, fmt.Errorf("update parent profile: %w", err)
	}
	return parent, nil
}

func (s *ProfileService) ListMyChildren(ctx context.Context, userID string) ([]player.Player, error) {
	actor, err := loadActor(ctx, s.profiles, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.players.ListByParentIDs(ctx, []string{actor.ID})
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	sort.SliceStable(items, func(i, j int) bool { return player.Less(items[i], items[j]) })
	return items, nil
}

func (s *ProfileService) parentAndPlayer(ctx context.Context, userID, playerID string) (profile.Profile, player.Player, error) {
	parent, err := loadActor(ctx, s.profiles, userID)
	if err != nil {
		return profile.Profile{}, player.Player{}, err
	}
	if !parent.IsParent() {
		return profile.Profile{}, player.Player{}, fmt.Errorf("%w: only parents can link players", ErrForbidden)
	}

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return profile.Profile{}, player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	target, exists, err := s.players.GetByID(ctx, playerID)
	if err != nil {
		return profile.Profile{}, player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return profile.Profile{}, player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	return parent, target, nil
}
