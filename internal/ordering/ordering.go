// Package ordering keeps the positions of columns within a board and cards
// within a column dense: after every operation a scope of N members holds
// exactly the positions 0..N-1.
//
// The functions are pure. Callers read the current members of a scope inside
// a transaction, ask this package for the new positions, and persist the
// returned placements in that same transaction.
package ordering

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
)

var (
	// ErrInvalidPosition is returned when a target position lies outside the
	// bounds allowed by the scope.
	ErrInvalidPosition = errors.New("position out of range")

	// ErrNotDense is returned by Check when a scope has gaps or duplicates.
	ErrNotDense = errors.New("positions are not dense")
)

// Member is one positioned entity of a scope.
type Member struct {
	ID       uuid.UUID
	Position int
}

// Placement is a position that must be written back for a member.
type Placement struct {
	ID       uuid.UUID
	Position int
}

// Append returns the position of a member appended to the scope.
func Append(members []Member) int {
	return len(members)
}

// AppendAll appends ids, in order, after the existing members.
func AppendAll(members []Member, ids []uuid.UUID) []Placement {
	next := Append(members)
	placements := make([]Placement, len(ids))
	for i, id := range ids {
		placements[i] = Placement{ID: id, Position: next + i}
	}
	return placements
}

// CloseGap renumbers the members left after the member at removed was
// deleted. Only members whose position changes are returned.
func CloseGap(remaining []Member, removed int) []Placement {
	var placements []Placement
	for _, m := range remaining {
		if m.Position > removed {
			placements = append(placements, Placement{ID: m.ID, Position: m.Position - 1})
		}
	}
	sortPlacements(placements)
	return placements
}

// Reorder moves a member inside its own scope. others holds every member of
// the scope except the moved one. Members between the old and the new slot
// shift by one; everything else is left alone. When from == to the moved
// member is returned unchanged and nothing else is touched.
func Reorder(others []Member, moved uuid.UUID, from, to int) ([]Placement, error) {
	size := len(others) + 1
	if to < 0 || to >= size {
		return nil, fmt.Errorf("%w: %d not in [0, %d]", ErrInvalidPosition, to, size-1)
	}
	if from < 0 || from >= size {
		return nil, fmt.Errorf("%w: current position %d not in [0, %d]", ErrInvalidPosition, from, size-1)
	}
	if from == to {
		return []Placement{{ID: moved, Position: to}}, nil
	}

	placements := make([]Placement, 0, abs(to-from)+1)
	for _, m := range others {
		switch {
		case to < from && m.Position >= to && m.Position < from:
			placements = append(placements, Placement{ID: m.ID, Position: m.Position + 1})
		case to > from && m.Position > from && m.Position <= to:
			placements = append(placements, Placement{ID: m.ID, Position: m.Position - 1})
		}
	}
	placements = append(placements, Placement{ID: moved, Position: to})
	sortPlacements(placements)
	return placements, nil
}

// MoveAcross moves a member from one scope into another. source holds the
// members left in the old scope after removal, target the members of the new
// scope before insertion. to may equal len(target), which appends.
func MoveAcross(source, target []Member, moved uuid.UUID, from, to int) ([]Placement, error) {
	if to < 0 || to > len(target) {
		return nil, fmt.Errorf("%w: %d not in [0, %d]", ErrInvalidPosition, to, len(target))
	}

	placements := CloseGap(source, from)
	for _, m := range target {
		if m.Position >= to {
			placements = append(placements, Placement{ID: m.ID, Position: m.Position + 1})
		}
	}
	return append(placements, Placement{ID: moved, Position: to}), nil
}

// ReorderScopes assigns position = index to every id. The caller guarantees
// ids is the complete sibling set of a single parent.
func ReorderScopes(ids []uuid.UUID) []Placement {
	placements := make([]Placement, len(ids))
	for i, id := range ids {
		placements[i] = Placement{ID: id, Position: i}
	}
	return placements
}

// Apply returns members with placements written over their positions,
// sorted by the resulting position. Placements for unknown ids are ignored.
func Apply(members []Member, placements []Placement) []Member {
	next := make(map[uuid.UUID]int, len(placements))
	for _, p := range placements {
		next[p.ID] = p.Position
	}
	out := make([]Member, len(members))
	for i, m := range members {
		if pos, ok := next[m.ID]; ok {
			m.Position = pos
		}
		out[i] = m
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// Dense reports whether the positions of members are exactly 0..N-1.
func Dense(members []Member) bool {
	seen := make([]bool, len(members))
	for _, m := range members {
		if m.Position < 0 || m.Position >= len(members) || seen[m.Position] {
			return false
		}
		seen[m.Position] = true
	}
	return true
}

// Check is Dense as an error.
func Check(members []Member) error {
	if !Dense(members) {
		return ErrNotDense
	}
	return nil
}

func sortPlacements(placements []Placement) {
	sort.Slice(placements, func(i, j int) bool { return placements[i].Position < placements[j].Position })
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
