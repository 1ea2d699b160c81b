package postgres

import (
	"time"

	"github.com/lib/pq"
	"github.com/riskibarqy/teamtrack/internal/domain/profile"
)

type profileTableModel struct {
	ID           string         `db:"id"`
	Email        string         `db:"email"`
	FullName     string         `db:"full_name"`
	Role         string         `db:"role"`
	TeamName     string         `db:"team_name"`
	Position     string         `db:"position"`
	JerseyNumber *int           `db:"jersey_number"`
	AvatarURL    string         `db:"avatar_url"`
	AvatarPath   string         `db:"avatar_path"`
	ParentOf     pq.StringArray `db:"parent_of"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func profileFromRow(row profileTableModel) profile.Profile {
	return profile.Profile{
		ID:           row.ID,
		Email:        row.Email,
		FullName:     row.FullName,
		Role:         profile.Role(row.Role),
		TeamName:     row.TeamName,
		Position:     row.Position,
		JerseyNumber: row.JerseyNumber,
		AvatarURL:    row.AvatarURL,
		AvatarPath:   row.AvatarPath,
		ParentOf:     append([]string(nil), row.ParentOf...),
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func profileToRow(item profile.Profile) profileTableModel {
	parentOf := pq.StringArray(item.ParentOf)
	if parentOf == nil {
		parentOf = pq.StringArray{}
	}
	return profileTableModel{
		ID:           item.ID,
		Email:        item.Email,
		FullName:     item.FullName,
		Role:         string(item.Role),
		TeamName:     item.TeamName,
		Position:     item.Position,
		JerseyNumber: item.JerseyNumber,
		AvatarURL:    item.AvatarURL,
		AvatarPath:   item.AvatarPath,
		ParentOf:     parentOf,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}

type credentialTableModel struct {
	UserID       string    `db:"user_id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}
