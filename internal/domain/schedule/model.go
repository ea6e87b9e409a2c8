package schedule

import (
	"errors"
	"time"
)

var (
	ErrTeamNotFound  = errors.New("team missing from schedule")
	ErrMalformedGame = errors.New("scheduled game does not include team")
)

// Location is the side a team plays on for a resolved game.
type Location string

const (
	LocationHome Location = "home"
	LocationAway Location = "away"
	LocationBye  Location = "bye"
)

// Game is one pro game as listed in the season schedule.
type Game struct {
	ID         int64
	HomeTeamID int64
	AwayTeamID int64
	Date       time.Time
}

// Schedule maps team id -> scoring period id -> games for that period.
// A team with no games in a period is on bye.
type Schedule map[int64]map[int][]Game

// GameRef is a team's game for one period, seen from that team's side.
type GameRef struct {
	GameID         int64
	OpponentTeamID int64
	Location       Location
}

// ByeWeek is returned when a team has no game in the period.
var ByeWeek = GameRef{Location: LocationBye}

func (g GameRef) IsBye() bool {
	return g.Location == LocationBye
}
