package profile

import (
	"fmt"
	"strings"
	"time"
)

// Role decides what a profile may change in the team space.
type Role string

const (
	RoleManager Role = "manager"
	RolePlayer  Role = "player"
	RoleParent  Role = "parent"
)

func ParseRole(v string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(v))) {
	case "":
		return RolePlayer, nil
	case RoleManager:
		return RoleManager, nil
	case RolePlayer:
		return RolePlayer, nil
	case RoleParent:
		return RoleParent, nil
	default:
		return "", fmt.Errorf("invalid role: %s", v)
	}
}

// Profile is the public identity of a signed-up user.
type Profile struct {
	ID           string
	Email        string
	FullName     string
	Role         Role
	TeamName     string
	Position     string
	JerseyNumber *int
	AvatarURL    string
	AvatarPath   string
	ParentOf     []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (p Profile) IsManager() bool {
	return p.Role == RoleManager
}

func (p Profile) IsParent() bool {
	return p.Role == RoleParent
}

// DisplayName falls back to the email local part when no name is set.
func (p Profile) DisplayName() string {
	if name := strings.TrimSpace(p.FullName); name != "" {
		return name
	}
	local, _, _ := strings.Cut(p.Email, "@")
	return local
}

// Credential is the login secret stored next to a profile.
type Credential struct {
	UserID       string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
