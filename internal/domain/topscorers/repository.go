package topscorers

import (
	"context"

	"github.com/riskibarqy/fantasy-stats/internal/domain/opponent"
	"github.com/riskibarqy/fantasy-stats/internal/domain/playerstats"
	"github.com/riskibarqy/fantasy-stats/internal/domain/schedule"
)

// DataSource supplies the raw inputs for aggregation.
type DataSource interface {
	// FetchPlayers returns players already filtered by the query's positions and periods.
	// No matches is an empty list, not an error.
	FetchPlayers(ctx context.Context, q Query) ([]playerstats.Player, error)
	FetchSchedule(ctx context.Context, season int) (schedule.Schedule, error)
	// FetchOpponentRatings returns a nil table for seasons without ratings.
	FetchOpponentRatings(ctx context.Context, season int) (opponent.Table, error)
}
