// Package taxonomy models the fixed three-level societal benefit taxonomy:
// areas, their subareas, and the key objectives of each subarea.
package taxonomy

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"
)

// MaxIDLength is the width of every taxonomy id column.
const MaxIDLength = 256

// Taxonomy validation errors.
var (
	ErrEmptyID       = errors.New("taxonomy id cannot be empty")
	ErrIDTooLong     = errors.New("taxonomy id exceeds maximum length")
	ErrDuplicateID   = errors.New("duplicate taxonomy id")
	ErrUnknownParent = errors.New("taxonomy parent does not exist")
)

// Area is a top-level societal benefit area.
type Area struct {
	id string
}

// NewArea creates an Area.
func NewArea(id string) Area { return Area{id: id} }

// ID returns the area id.
func (a Area) ID() string { return a.id }

// SubArea belongs to exactly one Area.
type SubArea struct {
	id     string
	areaID string
}

// NewSubArea creates a SubArea under the given area.
func NewSubArea(id, areaID string) SubArea { return SubArea{id: id, areaID: areaID} }

// ID returns the subarea id.
func (s SubArea) ID() string { return s.id }

// AreaID returns the parent area id.
func (s SubArea) AreaID() string { return s.areaID }

// KeyObjective belongs to exactly one SubArea.
type KeyObjective struct {
	id        string
	subAreaID string
}

// NewKeyObjective creates a KeyObjective under the given subarea.
func NewKeyObjective(id, subAreaID string) KeyObjective {
	return KeyObjective{id: id, subAreaID: subAreaID}
}

// ID returns the key objective id.
func (k KeyObjective) ID() string { return k.id }

// SubAreaID returns the parent subarea id.
func (k KeyObjective) SubAreaID() string { return k.subAreaID }

// Tree is a validated taxonomy. Every subarea references a present area and
// every key objective references a present subarea.
type Tree struct {
	areas         []Area
	subAreas      []SubArea
	keyObjectives []KeyObjective
}

// NewTree validates the three levels and returns them as a Tree.
func NewTree(areas []Area, subAreas []SubArea, keyObjectives []KeyObjective) (Tree, error) {
	areaIDs := make(map[string]struct{}, len(areas))
	for _, a := range areas {
		if err := checkID("area", a.id, areaIDs); err != nil {
			return Tree{}, err
		}
	}

	subAreaIDs := make(map[string]struct{}, len(subAreas))
	for _, s := range subAreas {
		if err := checkID("subarea", s.id, subAreaIDs); err != nil {
			return Tree{}, err
		}
		if _, ok := areaIDs[s.areaID]; !ok {
			return Tree{}, fmt.Errorf("%w: subarea %q references area %q", ErrUnknownParent, s.id, s.areaID)
		}
	}

	objectiveIDs := make(map[string]struct{}, len(keyObjectives))
	for _, k := range keyObjectives {
		if err := checkID("key objective", k.id, objectiveIDs); err != nil {
			return Tree{}, err
		}
		if _, ok := subAreaIDs[k.subAreaID]; !ok {
			return Tree{}, fmt.Errorf("%w: key objective %q references subarea %q", ErrUnknownParent, k.id, k.subAreaID)
		}
	}

	return Tree{
		areas:         append([]Area(nil), areas...),
		subAreas:      append([]SubArea(nil), subAreas...),
		keyObjectives: append([]KeyObjective(nil), keyObjectives...),
	}, nil
}

func checkID(level, id string, seen map[string]struct{}) error {
	if id == "" {
		return fmt.Errorf("%w: %s", ErrEmptyID, level)
	}
	if utf8.RuneCountInString(id) > MaxIDLength {
		return fmt.Errorf("%w: %s %q", ErrIDTooLong, level, id)
	}
	if _, ok := seen[id]; ok {
		return fmt.Errorf("%w: %s %q", ErrDuplicateID, level, id)
	}
	seen[id] = struct{}{}
	return nil
}

// Areas returns the areas.
func (t Tree) Areas() []Area { return append([]Area(nil), t.areas...) }

// SubAreas returns the subareas.
func (t Tree) SubAreas() []SubArea { return append([]SubArea(nil), t.subAreas...) }

// KeyObjectives returns the key objectives.
func (t Tree) KeyObjectives() []KeyObjective {
	return append([]KeyObjective(nil), t.keyObjectives...)
}

// IsEmpty reports whether the tree has no areas.
func (t Tree) IsEmpty() bool { return len(t.areas) == 0 }

// SubAreasOf returns the subareas of the given area.
func (t Tree) SubAreasOf(areaID string) []SubArea {
	var out []SubArea
	for _, s := range t.subAreas {
		if s.areaID == areaID {
			out = append(out, s)
		}
	}
	return out
}

// KeyObjectivesOf returns the key objectives of the given subarea.
func (t Tree) KeyObjectivesOf(subAreaID string) []KeyObjective {
	var out []KeyObjective
	for _, k := range t.keyObjectives {
		if k.subAreaID == subAreaID {
			out = append(out, k)
		}
	}
	return out
}

// Store persists the taxonomy. Saves are idempotent.
type Store interface {
	SaveAreas(ctx context.Context, areas []Area) error
	SaveSubAreas(ctx context.Context, subAreas []SubArea) error
	SaveKeyObjectives(ctx context.Context, keyObjectives []KeyObjective) error
	AreaExists(ctx context.Context, id string) (bool, error)
	Tree(ctx context.Context) (Tree, error)
}
