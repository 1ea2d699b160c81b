package player

import (
	"fmt"
	"strings"
	"time"
)

// Player is one entry of the squad roster.
type Player struct {
	ID           string
	FullName     string
	Position     string
	JerseyNumber *int
	AvatarURL    string
	ParentID     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("player id is required")
	}
	if strings.TrimSpace(p.FullName) == "" {
		return fmt.Errorf("player name is required")
	}
	if p.JerseyNumber != nil && (*p.JerseyNumber < 1 || *p.JerseyNumber > 99) {
		return fmt.Errorf("jersey number must be between 1 and 99")
	}
	return nil
}

// Less orders by jersey number ascending with unnumbered players last, then by name.
func Less(a, b Player) bool {
	switch {
	case a.JerseyNumber != nil && b.JerseyNumber == nil:
		return true
	case a.JerseyNumber == nil && b.JerseyNumber != nil:
		return false
	case a.JerseyNumber != nil && b.JerseyNumber != nil && *a.JerseyNumber != *b.JerseyNumber:
		return *a.JerseyNumber < *b.JerseyNumber
	}
	return strings.ToLower(a.FullName) < strings.ToLower(b.FullName)
}
