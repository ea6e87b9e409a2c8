package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/fantasy-stats/internal/domain/opponent"
	"github.com/riskibarqy/fantasy-stats/internal/domain/playerstats"
	"github.com/riskibarqy/fantasy-stats/internal/domain/position"
	"github.com/riskibarqy/fantasy-stats/internal/domain/schedule"
	"github.com/riskibarqy/fantasy-stats/internal/domain/topscorers"
)

// Season is everything the aggregator needs for one season.
type Season struct {
	Players  []playerstats.Player
	Schedule schedule.Schedule
	Ratings  opponent.Table
}

// DataSource serves seeded seasons from memory. It filters stat lines the way the
// provider does so results match a live source for the same data.
type DataSource struct {
	mu        sync.RWMutex
	seasons   map[int]Season
	positions *position.Registry
}

func NewDataSource(seasons map[int]Season, positions *position.Registry) *DataSource {
	if positions == nil {
		positions = position.DefaultRegistry()
	}
	copied := make(map[int]Season, len(seasons))
	for id, s := range seasons {
		copied[id] = s
	}
	return &DataSource{seasons: copied, positions: positions}
}

// PutSeason replaces the data for one season.
func (d *DataSource) PutSeason(id int, season Season) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seasons[id] = season
}

func (d *DataSource) FetchPlayers(_ context.Context, q topscorers.Query) ([]playerstats.Player, error) {
	d.mu.RLock()
	season, ok := d.seasons[q.Season()]
	d.mu.RUnlock()
	if !ok || q.Empty() {
		return []playerstats.Player{}, nil
	}

	positionIDs := make(map[int]struct{})
	for _, p := range d.positions.Expand(q.Positions()) {
		if ids, ok := d.positions.Lookup(p); ok {
			positionIDs[ids.PositionID] = struct{}{}
		}
	}
	sources := make(map[playerstats.Source]struct{})
	for _, s := range q.Sources() {
		sources[s] = struct{}{}
	}
	periods := make(map[int]struct{})
	for _, p := range q.Periods() {
		periods[p] = struct{}{}
	}

	out := make([]playerstats.Player, 0, len(season.Players))
	for _, player := range season.Players {
		if _, ok := positionIDs[player.PositionID]; !ok {
			continue
		}

		stats := make([]playerstats.StatRecord, 0, len(player.Stats))
		for _, record := range player.Stats {
			if _, ok := sources[record.Source]; !ok || record.SplitType != q.SplitType() {
				continue
			}
			if q.SplitType() == playerstats.SplitWeekly {
				if _, ok := periods[record.PeriodID]; !ok {
					continue
				}
			}
			stats = append(stats, record)
		}

		copied := player
		copied.Stats = stats
		out = append(out, copied)
	}
	return out, nil
}

func (d *DataSource) FetchSchedule(_ context.Context, season int) (schedule.Schedule, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	s, ok := d.seasons[season]
	if !ok || s.Schedule == nil {
		return schedule.Schedule{}, nil
	}
	return s.Schedule, nil
}

func (d *DataSource) FetchOpponentRatings(_ context.Context, season int) (opponent.Table, error) {
	if !opponent.Available(season) {
		return nil, nil
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	s, ok := d.seasons[season]
	if !ok || s.Ratings == nil {
		return opponent.Table{}, nil
	}
	return s.Ratings, nil
}
