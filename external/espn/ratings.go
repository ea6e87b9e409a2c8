package espn

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/fantasy-stats/internal/domain/opponent"
	"github.com/riskibarqy/fantasy-stats/internal/usecase"
)

// FetchOpponentRatings loads positional ratings against each pro team. Seasons before
// opponent.RatingsCutoffSeason have none and return a nil table without a request.
func (c *Client) FetchOpponentRatings(ctx context.Context, season int) (opponent.Table, error) {
	if season <= 0 {
		return nil, fmt.Errorf("%w: season must be greater than zero", usecase.ErrInvalidInput)
	}
	if !opponent.Available(season) {
		return nil, nil
	}

	query := url.Values{}
	query["view"] = []string{"kona_player_info", "mPositionalRatingsStats"}

	// Only the ratings node is needed; ask for an empty player page.
	filter, err := sonic.Marshal(playerFilter{Players: playerFilterBody{Limit: 1}})
	if err != nil {
		return nil, crerr.Wrap(err, "encode ratings filter")
	}

	var envelope playersEnvelope
	if err := c.getJSON(ctx, request{path: c.leagueDefaultsPath(season), query: query, filter: filter}, &envelope); err != nil {
		return nil, crerr.Wrapf(err, "fetch positional ratings season=%d", season)
	}
	if envelope.PositionAgainstOpponent == nil {
		return nil, fmt.Errorf("%w: season=%d response has no positional ratings", opponent.ErrRatingNotFound, season)
	}
	return mapRatings(envelope.PositionAgainstOpponent.PositionalRatings)
}

func mapRatings(raw map[string]positionalRating) (opponent.Table, error) {
	table := opponent.Table{}
	for rawPosition, byPosition := range raw {
		positionID, err := strconv.Atoi(rawPosition)
		if err != nil {
			return nil, fmt.Errorf("%w: position key %q", opponent.ErrRatingNotFound, rawPosition)
		}
		for rawTeam, ranking := range byPosition.RatingsByOpponent {
			teamID, err := strconv.ParseInt(rawTeam, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: position_id=%d opponent key %q", opponent.ErrRatingNotFound, positionID, rawTeam)
			}
			table.Set(positionID, teamID, opponent.Rating{Average: ranking.Average, Rank: ranking.Rank})
		}
	}
	return table, nil
}
