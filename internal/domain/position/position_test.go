package position

import (
	"errors"
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		raw     string
		want    Position
		wantErr bool
	}{
		{raw: "rb", want: RB},
		{raw: " QB ", want: QB},
		{raw: "D/ST", want: DST},
		{raw: "flex", want: FLEX},
		{raw: "LB", wantErr: true},
	}

	for _, tc := range tests {
		got, err := Parse(tc.raw)
		if tc.wantErr {
			if !errors.Is(err, ErrUnknownPosition) {
				t.Fatalf("Parse(%q) expected ErrUnknownPosition, got %v", tc.raw, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("Parse(%q)=%s want %s", tc.raw, got, tc.want)
		}
	}
}

func TestRegistry_ExpandAndSlotIDs(t *testing.T) {
	r := DefaultRegistry()

	got := r.Expand([]Position{FLEX, RB, QB})
	want := []Position{RB, WR, TE, QB}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Expand=%v want %v", got, want)
	}

	slots := r.SlotIDs([]Position{WR, RB, RB})
	if !reflect.DeepEqual(slots, []int{2, 4}) {
		t.Fatalf("SlotIDs=%v want [2 4]", slots)
	}
}

func TestRegistry_MergeKeepsOriginal(t *testing.T) {
	base := DefaultRegistry()
	merged := base.Merge(map[string]int{"RB": 42, "FLEX": 99, "LB": 7})

	ids, _ := merged.Lookup(RB)
	if ids.PositionID != 42 || ids.SlotID != 2 {
		t.Fatalf("unexpected merged RB ids: %+v", ids)
	}
	if flex, _ := merged.Lookup(FLEX); flex.PositionID != 0 {
		t.Fatalf("group position must not take a provider id, got %+v", flex)
	}
	if orig, _ := base.Lookup(RB); orig.PositionID != 2 {
		t.Fatalf("merge mutated base registry: %+v", orig)
	}
	if p, ok := merged.ByPositionID(42); !ok || p != RB {
		t.Fatalf("ByPositionID(42)=%s,%v", p, ok)
	}
}
