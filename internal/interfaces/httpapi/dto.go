package httpapi

import (
	"github.com/riskibarqy/fantasy-stats/internal/domain/playerstats"
	"github.com/riskibarqy/fantasy-stats/internal/domain/position"
	"github.com/riskibarqy/fantasy-stats/internal/domain/topscorers"
)

type PositionDTO struct {
	Position   string   `json:"position"`
	PositionID int      `json:"positionId"`
	SlotID     int      `json:"slotId"`
	Members    []string `json:"members,omitempty"`
}

type CombinedStatDTO struct {
	AppliedTotal float64            `json:"appliedTotal"`
	Metrics      map[string]float64 `json:"metrics"`
}

type RatingDTO struct {
	Average float64 `json:"average"`
	Rank    float64 `json:"rank"`
}

type OpponentDTO struct {
	ScoringPeriodID int       `json:"scoringPeriodId"`
	GameID          int64     `json:"gameId,omitempty"`
	OpponentTeamID  int64     `json:"opponentTeamId,omitempty"`
	Location        string    `json:"location"`
	Rating          RatingDTO `json:"rating"`
}

type TopScorerDTO struct {
	Rank              int             `json:"rank"`
	PlayerID          int64           `json:"playerId"`
	Name              string          `json:"name"`
	PositionID        int             `json:"positionId"`
	Position          string          `json:"position,omitempty"`
	TeamID            int64           `json:"teamId"`
	CombinedActual    CombinedStatDTO `json:"combinedActual"`
	CombinedProjected CombinedStatDTO `json:"combinedProjected"`
	CombinedOpponent  RatingDTO       `json:"combinedOpponent"`
	Opponents         []OpponentDTO   `json:"opponents"`
}

type TopScorerBoardDTO struct {
	Season    int            `json:"season"`
	Split     string         `json:"split"`
	Periods   []int          `json:"scoringPeriods,omitempty"`
	Positions []string       `json:"positions"`
	Items     []TopScorerDTO `json:"items"`
}

type TopScorerBoardsDTO struct {
	Season  int                       `json:"season"`
	Split   string                    `json:"split"`
	Periods []int                     `json:"scoringPeriods,omitempty"`
	Boards  map[string][]TopScorerDTO `json:"boards"`
}

func positionToDTO(entry position.Entry) PositionDTO {
	members := make([]string, 0, len(entry.Members))
	for _, m := range entry.Members {
		members = append(members, string(m))
	}
	return PositionDTO{
		Position:   string(entry.Position),
		PositionID: entry.IDs.PositionID,
		SlotID:     entry.IDs.SlotID,
		Members:    members,
	}
}

func topScorersToDTO(players []topscorers.AggregatedPlayer, registry *position.Registry) []TopScorerDTO {
	items := make([]TopScorerDTO, 0, len(players))
	for i, p := range players {
		item := TopScorerDTO{
			Rank:              i + 1,
			PlayerID:          p.PlayerID,
			Name:              p.Name,
			PositionID:        p.PositionID,
			TeamID:            p.TeamID,
			CombinedActual:    combinedStatToDTO(p.CombinedActual),
			CombinedProjected: combinedStatToDTO(p.CombinedProjected),
			CombinedOpponent:  RatingDTO{Average: p.CombinedOpponent.Average, Rank: p.CombinedOpponent.Rank},
			Opponents:         make([]OpponentDTO, 0, len(p.Opponents)),
		}
		if pos, ok := registry.ByPositionID(p.PositionID); ok {
			item.Position = string(pos)
		}
		for _, o := range p.Opponents {
			item.Opponents = append(item.Opponents, OpponentDTO{
				ScoringPeriodID: o.PeriodID,
				GameID:          o.Game.GameID,
				OpponentTeamID:  o.Game.OpponentTeamID,
				Location:        string(o.Game.Location),
				Rating:          RatingDTO{Average: o.Rating.Average, Rank: o.Rating.Rank},
			})
		}
		items = append(items, item)
	}
	return items
}

func combinedStatToDTO(stat playerstats.CombinedStat) CombinedStatDTO {
	metrics := stat.Metrics
	if metrics == nil {
		metrics = map[string]float64{}
	}
	return CombinedStatDTO{AppliedTotal: stat.AppliedTotal, Metrics: metrics}
}

func splitName(split playerstats.SplitType) string {
	if split == playerstats.SplitTotal {
		return "total"
	}
	return "weekly"
}

func positionNames(positions []position.Position) []string {
	out := make([]string, 0, len(positions))
	for _, p := range positions {
		out = append(out, string(p))
	}
	return out
}
