package topscorers

import (
	"errors"
	"fmt"
	"sort"

	"github.com/riskibarqy/fantasy-stats/internal/domain/playerstats"
	"github.com/riskibarqy/fantasy-stats/internal/domain/position"
)

const (
	DefaultLimit = 50
	// Unbounded disables truncation. Any negative limit behaves the same.
	Unbounded = -1
	// MaxPeriods caps how many scoring periods one query may span.
	MaxPeriods = 25
)

var ErrTooManyPeriods = errors.New("too many scoring periods")

// QueryParams is the caller-facing input for NewQuery.
type QueryParams struct {
	Season    int
	SplitType playerstats.SplitType
	Sources   []playerstats.Source
	Periods   []int
	Positions []position.Position
	Limit     int
}

// Query is the immutable request configuration handed to the data source and the aggregator.
// Build it with NewQuery; accessors return copies.
type Query struct {
	season    int
	splitType playerstats.SplitType
	sources   []playerstats.Source
	periods   []int
	positions []position.Position
	limit     int
}

func NewQuery(p QueryParams) Query {
	q := Query{
		season:    p.Season,
		splitType: p.SplitType,
		limit:     p.Limit,
	}
	if q.limit == 0 {
		q.limit = DefaultLimit
	}

	q.sources = normalizeSources(p.Sources)
	q.periods = normalizePeriods(p.Periods)

	seen := make(map[position.Position]struct{}, len(p.Positions))
	for _, pos := range p.Positions {
		if pos == "" {
			continue
		}
		if _, dup := seen[pos]; dup {
			continue
		}
		seen[pos] = struct{}{}
		q.positions = append(q.positions, pos)
	}

	return q
}

func (q Query) Season() int                      { return q.season }
func (q Query) SplitType() playerstats.SplitType { return q.splitType }
func (q Query) Limit() int                       { return q.limit }

func (q Query) Sources() []playerstats.Source {
	return append([]playerstats.Source(nil), q.sources...)
}

// Periods returns the requested scoring periods in ascending order.
func (q Query) Periods() []int {
	return append([]int(nil), q.periods...)
}

func (q Query) Positions() []position.Position {
	return append([]position.Position(nil), q.positions...)
}

// Empty reports whether the selection cannot match anything. Season totals are not
// windowed, so only weekly queries need periods.
func (q Query) Empty() bool {
	if len(q.positions) == 0 {
		return true
	}
	return q.splitType == playerstats.SplitWeekly && len(q.periods) == 0
}

// WithPositions returns a copy of q restricted to positions.
func (q Query) WithPositions(positions ...position.Position) Query {
	return NewQuery(QueryParams{
		Season:    q.season,
		SplitType: q.splitType,
		Sources:   q.sources,
		Periods:   q.periods,
		Positions: positions,
		Limit:     q.limit,
	})
}

func normalizeSources(sources []playerstats.Source) []playerstats.Source {
	if len(sources) == 0 {
		return []playerstats.Source{playerstats.SourceActual, playerstats.SourceProjected}
	}
	seen := make(map[playerstats.Source]struct{}, len(sources))
	out := make([]playerstats.Source, 0, len(sources))
	for _, s := range sources {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func normalizePeriods(periods []int) []int {
	seen := make(map[int]struct{}, len(periods))
	out := make([]int, 0, len(periods))
	for _, p := range periods {
		if p <= 0 {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

// PeriodRange lists the periods from start to end inclusive. An inverted range is empty;
// a range wider than MaxPeriods is rejected before anything is allocated.
func PeriodRange(start, end int) ([]int, error) {
	if start > end {
		return nil, nil
	}
	if uint64(end)-uint64(start) >= MaxPeriods {
		return nil, fmt.Errorf("%w: %d-%d exceeds %d", ErrTooManyPeriods, start, end, MaxPeriods)
	}
	out := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		out = append(out, p)
	}
	return out, nil
}
