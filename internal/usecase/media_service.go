package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/teamtrack/internal/domain/media"
	"github.com/riskibarqy/teamtrack/internal/domain/profile"
	idgen "github.com/riskibarqy/teamtrack/internal/platform/id"
	"github.com/riskibarqy/teamtrack/internal/platform/logging"
)

var errUploadTooLarge = errors.New("upload exceeds size limit")

type UploadInput struct {
	FileName    string
	ContentType string
	Size        int64
	Caption     string
	Body        io.Reader
}

type MediaService struct {
	files    media.Repository
	storage  media.Storage
	profiles profile.Repository
	idGen    idgen.Generator
	logger   *logging.Logger
	clock    clockwork.Clock
}

func NewMediaService(
	files media.Repository,
	storage media.Storage,
	profiles profile.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
	clock clockwork.Clock,
) *MediaService {
	if logger == nil {
		logger = logging.Default()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &MediaService{
		files:    files,
		storage:  storage,
		profiles: profiles,
		idGen:    idGen,
		logger:   logger,
		clock:    clock,
	}
}

// List returns uploads newest first, optionally narrowed to one kind.
func (s *MediaService) List(ctx context.Context, filter string) ([]media.File, error) {
	kind, filtered, err := media.ParseFileType(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	items, err := s.files.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list media files: %w", err)
	}
	if !filtered {
		return items, nil
	}

	out := make([]media.File, 0, len(items))
	for _, item := range items {
		if item.FileType == kind {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *MediaService) Upload(ctx context.Context, userID string, input UploadInput) (media.File, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MediaService.Upload", actorAttr(userID))
	defer span.End()

	actor, err := loadActor(ctx, s.profiles, userID)
	if err != nil {
		return media.File{}, err
	}
	if input.Body == nil {
		return media.File{}, fmt.Errorf("%w: file is required", ErrInvalidInput)
	}

	kind, err := media.ClassifyMIME(input.ContentType)
	if err != nil {
		return media.File{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if input.Size > media.MaxFileSize {
		return media.File{}, fmt.Errorf("%w: file must be at most 100MB", ErrInvalidInput)
	}

	now := s.clock.Now().UTC()
	suffix, err := s.idGen.NewID()
	if err != nil {
		return media.File{}, fmt.Errorf("generate object suffix: %w", err)
	}
	objectPath := fmt.Sprintf("%s/%d-%s.%s", actor.ID, now.UnixMilli(), shortSuffix(suffix), media.Extension(input.FileName, input.ContentType))

	written, err := s.storage.Put(ctx, media.BucketMedia, objectPath, input.ContentType, &limitedReader{r: input.Body, n: media.MaxFileSize})
	if err != nil {
		_ = s.storage.Remove(ctx, media.BucketMedia, objectPath)
		if errors.Is(err, errUploadTooLarge) {
			return media.File{}, fmt.Errorf("%w: file must be at most 100MB", ErrInvalidInput)
		}
		if errors.Is(err, media.ErrInvalidObjectPath) {
			return media.File{}, classifyStorageError(err)
		}
		return media.File{}, fmt.Errorf("store media object: %w", err)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return media.File{}, fmt.Errorf("generate media id: %w", err)
	}
	item := media.File{
		ID:        id,
		UserID:    actor.ID,
		FileURL:   s.storage.PublicURL(media.BucketMedia, objectPath),
		FilePath:  objectPath,
		FileName:  strings.TrimSpace(input.FileName),
		FileType:  kind,
		FileSize:  written,
		MimeType:  input.ContentType,
		Caption:   strings.TrimSpace(input.Caption),
		CreatedAt: now,
	}
	if err := s.files.Create(ctx, item); err != nil {
		if rmErr := s.storage.Remove(ctx, media.BucketMedia, objectPath); rmErr != nil {
			s.logger.WarnContext(ctx, "remove orphaned media object failed", "path", objectPath, "error", rmErr)
		}
		return media.File{}, fmt.Errorf("create media file: %w", err)
	}

	return item, nil
}

// Delete removes an upload; only the uploader may do so.
func (s *MediaService) Delete(ctx context.Context, userID, fileID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MediaService.Delete", actorAttr(userID))
	defer span.End()

	fileID = strings.TrimSpace(fileID)
	item, exists, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		return fmt.Errorf("get media file: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: media=%s", ErrNotFound, fileID)
	}
	if item.UserID != strings.TrimSpace(userID) {
		return fmt.Errorf("%w: You can only delete your own uploads", ErrForbidden)
	}

	if err := s.storage.Remove(ctx, media.BucketMedia, item.FilePath); err != nil {
		return fmt.Errorf("remove media object: %w", err)
	}
	if err := s.files.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("delete media file: %w", err)
	}
	return nil
}

// Open streams a stored object; the caller closes the body.
func (s *MediaService) Open(ctx context.Context, bucket, objectPath string) (media.Object, error) {
	if bucket != media.BucketMedia && bucket != media.BucketAvatars {
		return media.Object{}, fmt.Errorf("%w: bucket=%s", ErrNotFound, bucket)
	}
	objectPath = strings.TrimSpace(objectPath)
	if objectPath == "" || strings.Contains(objectPath, "..") {
		return media.Object{}, fmt.Errorf("%w: invalid object path", ErrInvalidInput)
	}

	obj, err := s.storage.Open(ctx, bucket, objectPath)
	if err != nil {
		return media.Object{}, classifyStorageError(err)
	}
	return obj, nil
}

func classifyStorageError(err error) error {
	switch {
	case errors.Is(err, media.ErrObjectNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, media.ErrInvalidObjectPath):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		return fmt.Errorf("open media object: %w", err)
	}
}

// limitedReader fails instead of truncating once more than n bytes are read.
type limitedReader struct {
	r io.Reader
	n int64
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.n < 0 {
		return 0, errUploadTooLarge
	}
	if int64(len(p)) > l.n+1 {
		p = p[:l.n+1]
	}
	n, err := l.r.Read(p)
	l.n -= int64(n)
	if l.n < 0 {
		return n, errUploadTooLarge
	}
	return n, err
}

func shortSuffix(id string) string {
	id = strings.ReplaceAll(id, "-", "")
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
