package availability

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusAvailable   Status = "available"
	StatusUnavailable Status = "unavailable"
	StatusMaybe       Status = "maybe"
)

func ParseStatus(v string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(v))) {
	case StatusAvailable:
		return StatusAvailable, nil
	case StatusUnavailable:
		return StatusUnavailable, nil
	case StatusMaybe:
		return StatusMaybe, nil
	default:
		return "", fmt.Errorf("invalid availability status: %s", v)
	}
}

// Availability is one user's answer for one event.
type Availability struct {
	EventID   string
	UserID    string
	Status    Status
	Note      string
	UpdatedAt time.Time
}

// Summary counts answers for an event.
type Summary struct {
	Available int
	Total     int
}

func Summarize(items []Availability) Summary {
	out := Summary{Total: len(items)}
	for _, item := range items {
		if item.Status == StatusAvailable {
			out.Available++
		}
	}
	return out
}
