package formation

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownFormation   = errors.New("unknown formation")
	ErrFormationFull      = errors.New("formation is full")
	ErrWrongPlayerCount   = errors.New("wrong number of players for formation")
	ErrDuplicatePlayer    = errors.New("duplicate player in lineup")
	ErrStartingPicksLimit = errors.New("starting picks limit exceeded")
)

// MaxStartingPicks caps the quick starting-eleven picker.
const MaxStartingPicks = 11

// Slot is a pitch coordinate in percent: X left to right, Y from the opponent goal (0) to ours (100).
type Slot struct {
	X float64
	Y float64
}

type Formation struct {
	Name  string
	Slots []Slot
}

func (f Formation) Capacity() int {
	return len(f.Slots)
}

const DefaultName = "2-3-1"

var formations = []Formation{
	{Name: "2-3-1", Slots: []Slot{{50, 90}, {30, 70}, {70, 70}, {20, 45}, {50, 40}, {80, 45}, {50, 15}}},
	{Name: "1-3-2-1", Slots: []Slot{{50, 90}, {20, 70}, {50, 75}, {80, 70}, {35, 45}, {65, 45}, {50, 15}}},
	{Name: "3-2-1", Slots: []Slot{{50, 90}, {20, 65}, {50, 65}, {80, 65}, {35, 40}, {65, 40}, {50, 15}}},
	{Name: "2-1-2-1", Slots: []Slot{{50, 90}, {30, 70}, {70, 70}, {50, 52}, {30, 35}, {70, 35}, {50, 15}}},
	{Name: "1-2-3-1", Slots: []Slot{{50, 90}, {50, 72}, {35, 55}, {65, 55}, {25, 30}, {50, 25}, {75, 30}, {50, 10}}},
}

// All returns the formation table in declaration order.
func All() []Formation {
	out := make([]Formation, 0, len(formations))
	for _, f := range formations {
		out = append(out, clone(f))
	}
	return out
}

func Names() []string {
	out := make([]string, 0, len(formations))
	for _, f := range formations {
		out = append(out, f.Name)
	}
	return out
}

func Lookup(name string) (Formation, error) {
	key := strings.TrimSpace(name)
	for _, f := range formations {
		if f.Name == key {
			return clone(f), nil
		}
	}
	return Formation{}, fmt.Errorf("%w: %q", ErrUnknownFormation, name)
}

func Default() Formation {
	f, _ := Lookup(DefaultName)
	return f
}

func clone(f Formation) Formation {
	return Formation{Name: f.Name, Slots: append([]Slot(nil), f.Slots...)}
}
