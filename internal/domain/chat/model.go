package chat

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const MaxContentLength = 2000

// Message is a team chat line.
type Message struct {
	ID        string
	UserID    string
	Content   string
	CreatedAt time.Time
}

type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

func ParsePriority(v string) (Priority, error) {
	switch Priority(strings.ToLower(strings.TrimSpace(v))) {
	case PriorityNormal, "":
		return PriorityNormal, nil
	case PriorityHigh:
		return PriorityHigh, nil
	default:
		return "", fmt.Errorf("invalid priority: %s", v)
	}
}

// Announcement is a manager broadcast to the whole team.
type Announcement struct {
	ID        string
	UserID    string
	Title     string
	Content   string
	Priority  Priority
	CreatedAt time.Time
}

func ValidateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("content is required")
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return fmt.Errorf("content must be at most %d characters", MaxContentLength)
	}
	return nil
}
