package espn

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/fantasy-stats/internal/domain/playerstats"
	"github.com/riskibarqy/fantasy-stats/internal/domain/topscorers"
	"github.com/riskibarqy/fantasy-stats/internal/usecase"
)

// FetchPlayers loads the player pool with stat lines for q's periods, sources and split type.
// Ranking happens downstream, so the filter asks for a full page rather than q's limit.
func (c *Client) FetchPlayers(ctx context.Context, q topscorers.Query) ([]playerstats.Player, error) {
	if q.Season() <= 0 {
		return nil, fmt.Errorf("%w: season must be greater than zero", usecase.ErrInvalidInput)
	}
	if q.Empty() {
		return []playerstats.Player{}, nil
	}

	filter, err := c.playerFilter(q)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("view", "kona_player_info")

	var envelope playersEnvelope
	if err := c.getJSON(ctx, request{path: c.leagueDefaultsPath(q.Season()), query: query, filter: filter}, &envelope); err != nil {
		return nil, crerr.Wrapf(err, "fetch players season=%d", q.Season())
	}
	return mapPlayers(envelope.Players), nil
}

func (c *Client) playerFilter(q topscorers.Query) ([]byte, error) {
	slots := c.positions.SlotIDs(q.Positions())
	if len(slots) == 0 {
		return nil, fmt.Errorf("%w: no filter slots for positions %v", usecase.ErrInvalidInput, q.Positions())
	}

	sources := make([]int, 0, len(q.Sources()))
	for _, source := range q.Sources() {
		sources = append(sources, int(source))
	}

	body := playerFilterBody{
		FilterSlotIDs:                  &filterValue[[]int]{Value: slots},
		FilterStatsForSourceIDs:        &filterValue[[]int]{Value: sources},
		FilterStatsForSplitTypeIDs:     &filterValue[[]int]{Value: []int{int(q.SplitType())}},
		FilterStatsForExternalIDs:      &filterValue[[]int]{Value: []int{q.Season()}},
		FilterStatsForScoringPeriodIDs: &filterValue[[]int]{Value: q.Periods()},
		SortAppliedStatTotal: &sortSpec{
			SortAsc:      false,
			SortPriority: 1,
			Value:        fmt.Sprintf("%d%d%d", int(playerstats.SourceActual), int(q.SplitType()), q.Season()),
		},
		Limit: c.pageLimit,
	}
	if q.SplitType() == playerstats.SplitTotal {
		body.FilterStatsForScoringPeriodIDs = nil
	}

	raw, err := sonic.Marshal(playerFilter{Players: body})
	if err != nil {
		return nil, crerr.Wrap(err, "encode player filter")
	}
	return raw, nil
}

func mapPlayers(entries []playerPoolEntry) []playerstats.Player {
	out := make([]playerstats.Player, 0, len(entries))
	for _, entry := range entries {
		detail := entry.Player
		id := detail.ID
		if id == 0 {
			id = entry.ID
		}
		if id == 0 {
			continue
		}

		stats := make([]playerstats.StatRecord, 0, len(detail.Stats))
		for _, line := range detail.Stats {
			stats = append(stats, playerstats.StatRecord{
				Source:       playerstats.Source(line.StatSourceID),
				SplitType:    playerstats.SplitType(line.StatSplitTypeID),
				TeamID:       line.ProTeamID,
				PeriodID:     line.ScoringPeriodID,
				AppliedTotal: line.AppliedTotal,
				Metrics:      copyMetrics(line.AppliedStats),
			})
		}

		out = append(out, playerstats.Player{
			ID:         id,
			Name:       strings.TrimSpace(detail.FullName),
			PositionID: detail.DefaultPositionID,
			TeamID:     detail.ProTeamID,
			Stats:      stats,
		})
	}
	return out
}

func copyMetrics(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
