package formation

import "fmt"

// Placement binds a player to a formation slot.
type Placement struct {
	PlayerID string
	Slot     Slot
}

// Assign zips players onto slots in index order; players past the slot count are ignored.
func Assign(f Formation, playerIDs []string) []Placement {
	n := len(playerIDs)
	if n > f.Capacity() {
		n = f.Capacity()
	}
	out := make([]Placement, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Placement{PlayerID: playerIDs[i], Slot: f.Slots[i]})
	}
	return out
}

// ValidateStarters requires exactly one distinct player per slot.
func ValidateStarters(f Formation, playerIDs []string) error {
	if len(playerIDs) != f.Capacity() {
		return fmt.Errorf("%w: Please select %d players for this formation", ErrWrongPlayerCount, f.Capacity())
	}
	return ensureDistinct(playerIDs)
}

// ValidateStartingPicks bounds the quick picker at MaxStartingPicks distinct players.
func ValidateStartingPicks(playerIDs []string) error {
	if len(playerIDs) > MaxStartingPicks {
		return fmt.Errorf("%w: at most %d starting players", ErrStartingPicksLimit, MaxStartingPicks)
	}
	return ensureDistinct(playerIDs)
}

func ensureDistinct(playerIDs []string) error {
	seen := make(map[string]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		if id == "" {
			return fmt.Errorf("player id is required")
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicatePlayer, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// Selection tracks picked players against a formation's capacity.
type Selection struct {
	formation Formation
	ids       []string
}

func NewSelection(f Formation, initial ...string) (*Selection, error) {
	s := &Selection{formation: f}
	for _, id := range initial {
		if s.Contains(id) {
			continue
		}
		if _, err := s.Toggle(id); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Selection) Contains(playerID string) bool {
	for _, id := range s.ids {
		if id == playerID {
			return true
		}
	}
	return false
}

// Toggle removes a selected player or adds an unselected one while below capacity.
// It reports whether the player is selected afterwards.
func (s *Selection) Toggle(playerID string) (bool, error) {
	for i, id := range s.ids {
		if id == playerID {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return false, nil
		}
	}
	if len(s.ids) >= s.formation.Capacity() {
		return false, fmt.Errorf("%w: This formation allows %d players", ErrFormationFull, s.formation.Capacity())
	}
	s.ids = append(s.ids, playerID)
	return true, nil
}

// SwitchFormation keeps the first picks that still fit the new formation.
func (s *Selection) SwitchFormation(f Formation) {
	s.formation = f
	if len(s.ids) > f.Capacity() {
		s.ids = s.ids[:f.Capacity()]
	}
}

func (s *Selection) IDs() []string {
	return append([]string(nil), s.ids...)
}

func (s *Selection) Placements() []Placement {
	return Assign(s.formation, s.ids)
}
