package playerstats

// Source identifies which stat stream a record belongs to.
type Source int

const (
	SourceActual    Source = 0
	SourceProjected Source = 1
)

func (s Source) String() string {
	switch s {
	case SourceActual:
		return "actual"
	case SourceProjected:
		return "projected"
	default:
		return "unknown"
	}
}

// SplitType is the provider's stat window granularity.
type SplitType int

const (
	SplitTotal  SplitType = 0
	SplitWeekly SplitType = 1
)

// StatRecord is one provider stat line for a player. Records are never mutated once built.
type StatRecord struct {
	Source       Source
	SplitType    SplitType
	TeamID       int64
	PeriodID     int
	AppliedTotal float64
	Metrics      map[string]float64
}

type Player struct {
	ID         int64
	Name       string
	PositionID int
	TeamID     int64
	Stats      []StatRecord
}

// CombinedStat is the reduction of several StatRecords.
type CombinedStat struct {
	AppliedTotal float64
	Metrics      map[string]float64
}
