package notification

import (
	"fmt"
	"strings"
	"time"
)

type Type string

const (
	TypeEvent        Type = "event"
	TypeLineup       Type = "lineup"
	TypeMessage      Type = "message"
	TypeAnnouncement Type = "announcement"
	TypeOther        Type = "other"
)

func ParseType(v string) (Type, error) {
	switch Type(strings.ToLower(strings.TrimSpace(v))) {
	case TypeEvent:
		return TypeEvent, nil
	case TypeLineup:
		return TypeLineup, nil
	case TypeMessage:
		return TypeMessage, nil
	case TypeAnnouncement:
		return TypeAnnouncement, nil
	case TypeOther:
		return TypeOther, nil
	default:
		return "", fmt.Errorf("invalid notification type: %s", v)
	}
}

// Notification is an in-app alert for one user.
type Notification struct {
	ID        string
	UserID    string
	Type      Type
	Title     string
	Message   string
	IsRead    bool
	CreatedAt time.Time
}
