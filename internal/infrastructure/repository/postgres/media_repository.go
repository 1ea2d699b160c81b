package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/teamtrack/internal/domain/media"
	qb "github.com/riskibarqy/teamtrack/internal/platform/querybuilder"
)

type MediaRepository struct {
	db *sqlx.DB
}

func NewMediaRepository(db *sqlx.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

func (r *MediaRepository) List(ctx context.Context) ([]media.File, error) {
	query, args, err := qb.Select("*").From("media_files").
		OrderBy("created_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list media files query: %w", err)
	}

	var rows []mediaFileTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list media files: %w", err)
	}

	out := make([]media.File, 0, len(rows))
	for _, row := range rows {
		out = append(out, mediaFileFromRow(row))
	}
	return out, nil
}

func (r *MediaRepository) GetByID(ctx context.Context, id string) (media.File, bool, error) {
	query, args, err := qb.Select("*").From("media_files").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return media.File{}, false, fmt.Errorf("build get media file query: %w", err)
	}

	var row mediaFileTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return media.File{}, false, nil
		}
		return media.File{}, false, fmt.Errorf("get media file: %w", err)
	}
	return mediaFileFromRow(row), true, nil
}

func (r *MediaRepository) Create(ctx context.Context, item media.File) error {
	query, args, err := qb.InsertModel("media_files", mediaFileTableModel{
		ID:        item.ID,
		UserID:    item.UserID,
		FileURL:   item.FileURL,
		FilePath:  item.FilePath,
		FileName:  item.FileName,
		FileType:  string(item.FileType),
		FileSize:  item.FileSize,
		MimeType:  item.MimeType,
		Caption:   item.Caption,
		CreatedAt: item.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert media file query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert media file: %w", err)
	}
	return nil
}

func (r *MediaRepository) Delete(ctx context.Context, id string) error {
	query, args, err := qb.DeleteFrom("media_files").Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete media file query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete media file: %w", err)
	}
	return nil
}
