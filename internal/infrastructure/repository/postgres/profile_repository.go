package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/teamtrack/internal/domain/profile"
	qb "github.com/riskibarqy/teamtrack/internal/platform/querybuilder"
)

type ProfileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (profile.Profile, bool, error) {
	query, args, err := qb.Select("*").From("profiles").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return profile.Profile{}, false, fmt.Errorf("build get profile query: %w", err)
	}

	var row profileTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return profile.Profile{}, false, nil
		}
		return profile.Profile{}, false, fmt.Errorf("get profile: %w", err)
	}
	return profileFromRow(row), true, nil
}

func (r *ProfileRepository) GetByIDs(ctx context.Context, ids []string) ([]profile.Profile, error) {
	if len(ids) == 0 {
		return []profile.Profile{}, nil
	}

	query, args, err := qb.Select("*").From("profiles").
		Where(qb.InStrings("id", ids)).
		OrderBy("full_name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select profiles by ids query: %w", err)
	}
	return r.selectProfiles(ctx, query, args)
}

func (r *ProfileRepository) List(ctx context.Context) ([]profile.Profile, error) {
	query, args, err := qb.Select("*").From("profiles").
		OrderBy("full_name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list profiles query: %w", err)
	}
	return r.selectProfiles(ctx, query, args)
}

func (r *ProfileRepository) Create(ctx context.Context, item profile.Profile) error {
	query, args, err := qb.InsertModel("profiles", profileToRow(item), "")
	if err != nil {
		return fmt.Errorf("build insert profile query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) Update(ctx context.Context, item profile.Profile) error {
	parentOf := pq.StringArray(item.ParentOf)
	if parentOf == nil {
		parentOf = pq.StringArray{}
	}

	query, args, err := qb.Update("profiles").
		Set("full_name", item.FullName).
		Set("team_name", item.TeamName).
		Set("position", item.Position).
		Set("jersey_number", item.JerseyNumber).
		Set("avatar_url", item.AvatarURL).
		Set("avatar_path", item.AvatarPath).
		Set("parent_of", parentOf).
		Set("updated_at", item.UpdatedAt).
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update profile query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update profile: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update profile: not found")
	}
	return nil
}

func (r *ProfileRepository) selectProfiles(ctx context.Context, query string, args []any) ([]profile.Profile, error) {
	var rows []profileTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select profiles: %w", err)
	}

	out := make([]profile.Profile, 0, len(rows))
	for _, row := range rows {
		out = append(out, profileFromRow(row))
	}
	return out, nil
}

type CredentialRepository struct {
	db *sqlx.DB
}

func NewCredentialRepository(db *sqlx.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

func (r *CredentialRepository) GetByEmail(ctx context.Context, email string) (profile.Credential, bool, error) {
	query, args, err := qb.Select("*").From("credentials").
		Where(qb.Expr("lower(email) = lower(?)", email)).
		ToSQL()
	if err != nil {
		return profile.Credential{}, false, fmt.Errorf("build get credential query: %w", err)
	}

	var row credentialTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return profile.Credential{}, false, nil
		}
		return profile.Credential{}, false, fmt.Errorf("get credential: %w", err)
	}
	return profile.Credential{
		UserID:       row.UserID,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
	}, true, nil
}

func (r *CredentialRepository) Create(ctx context.Context, item profile.Credential) error {
	query, args, err := qb.InsertModel("credentials", credentialTableModel{
		UserID:       item.UserID,
		Email:        item.Email,
		PasswordHash: item.PasswordHash,
		CreatedAt:    item.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert credential query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", profile.ErrEmailTaken, item.Email)
		}
		return fmt.Errorf("insert credential: %w", err)
	}
	return nil
}

func (r *CredentialRepository) Delete(ctx context.Context, userID string) error {
	query, args, err := qb.DeleteFrom("credentials").Where(qb.Eq("user_id", userID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete credential query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	return nil
}
