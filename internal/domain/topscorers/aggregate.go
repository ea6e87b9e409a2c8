package topscorers

import (
	"sort"

	"github.com/riskibarqy/fantasy-stats/internal/domain/opponent"
	"github.com/riskibarqy/fantasy-stats/internal/domain/playerstats"
	"github.com/riskibarqy/fantasy-stats/internal/domain/schedule"
)

// Aggregate combines a player's stats over q's periods and attaches the mean difficulty of
// the opponents faced. One period and many periods take the same path and produce the same shape.
func Aggregate(player playerstats.Player, q Query, sched schedule.Schedule, ratings opponent.Table) (AggregatedPlayer, error) {
	window := player.Stats
	if q.splitType == playerstats.SplitWeekly {
		window = playerstats.WithinPeriods(player.Stats, q.periods)
	}
	actual := playerstats.Select(window, playerstats.SourceActual, q.splitType)
	projected := playerstats.Select(window, playerstats.SourceProjected, q.splitType)

	out := AggregatedPlayer{
		PlayerID:          player.ID,
		Name:              player.Name,
		PositionID:        player.PositionID,
		TeamID:            player.TeamID,
		CombinedActual:    playerstats.Reduce(actual),
		CombinedProjected: playerstats.Reduce(projected),
		Opponents:         make([]OpponentEntry, 0, len(q.periods)),
	}

	actualByPeriod := playerstats.ByPeriod(actual)
	for _, periodID := range q.periods {
		record, played := actualByPeriod[periodID]
		if !played {
			continue
		}

		game, err := sched.ResolveGame(record.TeamID, periodID)
		if err != nil {
			return AggregatedPlayer{}, err
		}
		rating, err := opponent.Resolve(q.season, player.PositionID, game, ratings)
		if err != nil {
			return AggregatedPlayer{}, err
		}
		out.Opponents = append(out.Opponents, OpponentEntry{PeriodID: periodID, Game: game, Rating: rating})
	}

	faced := make([]opponent.Rating, 0, len(out.Opponents))
	for _, entry := range out.Opponents {
		faced = append(faced, entry.Rating)
	}
	out.CombinedOpponent = opponent.Mean(faced)

	return out, nil
}

// Rank orders players by combined actual total, highest first, keeping input order on ties,
// and keeps at most limit entries. A negative limit keeps everything. players is not modified.
func Rank(players []AggregatedPlayer, limit int) []AggregatedPlayer {
	out := make([]AggregatedPlayer, len(players))
	copy(out, players)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CombinedActual.AppliedTotal > out[j].CombinedActual.AppliedTotal
	})

	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
