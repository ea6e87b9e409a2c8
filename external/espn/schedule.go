package espn

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/fantasy-stats/internal/domain/schedule"
	"github.com/riskibarqy/fantasy-stats/internal/usecase"
)

// FetchSchedule loads every pro team's games for season. Teams appear even when their
// schedule is empty, so a missing team downstream means bad data rather than a bye.
func (c *Client) FetchSchedule(ctx context.Context, season int) (schedule.Schedule, error) {
	if season <= 0 {
		return nil, fmt.Errorf("%w: season must be greater than zero", usecase.ErrInvalidInput)
	}

	query := url.Values{}
	query.Set("view", "proTeamSchedules_wl")

	var envelope proTeamScheduleEnvelope
	if err := c.getJSON(ctx, request{path: c.seasonPath(season, ""), query: query}, &envelope); err != nil {
		return nil, crerr.Wrapf(err, "fetch pro team schedules season=%d", season)
	}
	return mapSchedule(envelope.Settings.ProTeams)
}

func mapSchedule(teams []proTeam) (schedule.Schedule, error) {
	out := schedule.Schedule{}
	seen := make(map[int64]struct{}, 64)
	for _, team := range teams {
		if team.ID == 0 {
			// free agents
			continue
		}
		out.AddTeam(team.ID)
		for rawPeriod, games := range team.ProGamesByScoringPeriod {
			periodID, err := strconv.Atoi(rawPeriod)
			if err != nil || periodID <= 0 {
				return nil, fmt.Errorf("%w: team_id=%d scoring period %q", schedule.ErrMalformedGame, team.ID, rawPeriod)
			}
			for _, game := range games {
				if _, dup := seen[game.ID]; dup && game.ID != 0 {
					continue
				}
				seen[game.ID] = struct{}{}

				var date time.Time
				if game.Date > 0 {
					date = time.UnixMilli(game.Date).UTC()
				}
				out.Add(periodID, schedule.Game{
					ID:         game.ID,
					HomeTeamID: game.HomeProTeamID,
					AwayTeamID: game.AwayProTeamID,
					Date:       date,
				})
			}
		}
	}
	return out, nil
}
