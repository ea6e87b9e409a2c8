package position

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Position is a named fantasy position. Provider ids are looked up through a Registry.
type Position string

const (
	QB   Position = "QB"
	RB   Position = "RB"
	WR   Position = "WR"
	TE   Position = "TE"
	FLEX Position = "FLEX"
	K    Position = "K"
	DST  Position = "DST"
)

var ErrUnknownPosition = errors.New("unknown position")

// IDs holds the provider numeric ids for a position.
// PositionID is the default position id carried on players and ratings;
// SlotID is the lineup slot id used in position filters.
type IDs struct {
	PositionID int
	SlotID     int
}

// Registry resolves named positions to provider ids. A Registry is never mutated after
// construction; Merge returns a new one.
type Registry struct {
	ids    map[Position]IDs
	groups map[Position][]Position
}

func DefaultRegistry() *Registry {
	return &Registry{
		ids: map[Position]IDs{
			QB:   {PositionID: 1, SlotID: 0},
			RB:   {PositionID: 2, SlotID: 2},
			WR:   {PositionID: 3, SlotID: 4},
			TE:   {PositionID: 4, SlotID: 6},
			K:    {PositionID: 5, SlotID: 17},
			DST:  {PositionID: 16, SlotID: 16},
			FLEX: {PositionID: 0, SlotID: 23},
		},
		groups: map[Position][]Position{
			FLEX: SkillPositions(),
		},
	}
}

// SkillPositions is the default running back / receiver / tight end grouping.
func SkillPositions() []Position {
	return []Position{RB, WR, TE}
}

func Parse(raw string) (Position, error) {
	value := strings.ToUpper(strings.TrimSpace(raw))
	switch value {
	case "D/ST", "DEF", "D":
		return DST, nil
	case string(QB), string(RB), string(WR), string(TE), string(FLEX), string(K), string(DST):
		return Position(value), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPosition, raw)
	}
}

func ParseList(raw []string) ([]Position, error) {
	out := make([]Position, 0, len(raw))
	for _, item := range raw {
		if strings.TrimSpace(item) == "" {
			continue
		}
		p, err := Parse(item)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *Registry) Lookup(p Position) (IDs, bool) {
	ids, ok := r.ids[p]
	return ids, ok
}

// SlotIDs returns the filter slot ids for the given positions, deduplicated and sorted.
func (r *Registry) SlotIDs(positions []Position) []int {
	seen := make(map[int]struct{}, len(positions))
	out := make([]int, 0, len(positions))
	for _, p := range positions {
		ids, ok := r.ids[p]
		if !ok {
			continue
		}
		if _, dup := seen[ids.SlotID]; dup {
			continue
		}
		seen[ids.SlotID] = struct{}{}
		out = append(out, ids.SlotID)
	}
	sort.Ints(out)
	return out
}

// Expand replaces group positions with their members, keeping first-seen order.
func (r *Registry) Expand(positions []Position) []Position {
	seen := make(map[Position]struct{}, len(positions))
	out := make([]Position, 0, len(positions))
	add := func(p Position) {
		if _, dup := seen[p]; dup {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	for _, p := range positions {
		if members, ok := r.groups[p]; ok {
			for _, m := range members {
				add(m)
			}
			continue
		}
		add(p)
	}
	return out
}

// ByPositionID finds the named position for a provider default position id.
func (r *Registry) ByPositionID(id int) (Position, bool) {
	for p, ids := range r.ids {
		if _, group := r.groups[p]; group {
			continue
		}
		if ids.PositionID == id {
			return p, true
		}
	}
	return "", false
}

// Merge overlays provider-resolved position ids on top of r. Unknown abbreviations are ignored.
func (r *Registry) Merge(resolved map[string]int) *Registry {
	next := &Registry{
		ids:    make(map[Position]IDs, len(r.ids)),
		groups: make(map[Position][]Position, len(r.groups)),
	}
	for p, ids := range r.ids {
		next.ids[p] = ids
	}
	for p, members := range r.groups {
		next.groups[p] = append([]Position(nil), members...)
	}
	for abbrev, id := range resolved {
		p, err := Parse(abbrev)
		if err != nil || id <= 0 {
			continue
		}
		if _, group := next.groups[p]; group {
			continue
		}
		ids := next.ids[p]
		ids.PositionID = id
		next.ids[p] = ids
	}
	return next
}

// Entries lists every registered position in a stable order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.ids))
	for p, ids := range r.ids {
		out = append(out, Entry{Position: p, IDs: ids, Members: append([]Position(nil), r.groups[p]...)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

type Entry struct {
	Position Position
	IDs      IDs
	Members  []Position
}
