package topscorers

import (
	"github.com/riskibarqy/fantasy-stats/internal/domain/opponent"
	"github.com/riskibarqy/fantasy-stats/internal/domain/playerstats"
	"github.com/riskibarqy/fantasy-stats/internal/domain/schedule"
)

// OpponentEntry is the opponent faced in a single period.
type OpponentEntry struct {
	PeriodID int
	Game     schedule.GameRef
	Rating   opponent.Rating
}

// AggregatedPlayer is one player's combined view over a period window.
type AggregatedPlayer struct {
	PlayerID          int64
	Name              string
	PositionID        int
	TeamID            int64
	CombinedActual    playerstats.CombinedStat
	CombinedProjected playerstats.CombinedStat
	// CombinedOpponent is the mean opponent rating over the window, not a sum.
	CombinedOpponent opponent.Rating
	Opponents        []OpponentEntry
}
