package opponent

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/fantasy-stats/internal/domain/schedule"
)

// RatingsCutoffSeason is the first season the provider publishes positional ratings for.
const RatingsCutoffSeason = 2019

var ErrRatingNotFound = errors.New("positional rating not found")

// Rating is how hard an opponent is for a position: average points allowed and rank.
type Rating struct {
	Average float64
	Rank    float64
}

// Neutral is used for byes and seasons without ratings.
var Neutral = Rating{}

// Table indexes ratings by position id, then opposing team id. A nil Table means the
// provider has no ratings for the season.
type Table map[int]map[int64]Rating

func (t Table) Set(positionID int, teamID int64, rating Rating) {
	if _, ok := t[positionID]; !ok {
		t[positionID] = make(map[int64]Rating)
	}
	t[positionID][teamID] = rating
}

func Available(season int) bool {
	return season >= RatingsCutoffSeason
}

// Resolve returns the rating of game's opponent for positionID. Pre-cutoff seasons and byes
// are neutral; a missing entry otherwise is an upstream data error.
func Resolve(season, positionID int, game schedule.GameRef, table Table) (Rating, error) {
	if !Available(season) || game.IsBye() {
		return Neutral, nil
	}

	byTeam, ok := table[positionID]
	if !ok {
		return Rating{}, fmt.Errorf("%w: season=%d position_id=%d", ErrRatingNotFound, season, positionID)
	}
	rating, ok := byTeam[game.OpponentTeamID]
	if !ok {
		return Rating{}, fmt.Errorf("%w: season=%d position_id=%d opponent_team_id=%d", ErrRatingNotFound, season, positionID, game.OpponentTeamID)
	}
	return rating, nil
}

// Mean averages ratings element-wise. No ratings gives Neutral.
func Mean(ratings []Rating) Rating {
	if len(ratings) == 0 {
		return Neutral
	}
	var sum Rating
	for _, r := range ratings {
		sum.Average += r.Average
		sum.Rank += r.Rank
	}
	n := float64(len(ratings))
	return Rating{Average: sum.Average / n, Rank: sum.Rank / n}
}
