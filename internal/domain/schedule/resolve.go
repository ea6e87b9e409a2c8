package schedule

import "fmt"

// ResolveGame returns the game teamID plays in periodID. An unassigned team (0) or a period
// without games resolves to ByeWeek. When the provider lists more than one game for the
// period the first one is used.
func (s Schedule) ResolveGame(teamID int64, periodID int) (GameRef, error) {
	if teamID == 0 {
		return ByeWeek, nil
	}

	periods, ok := s[teamID]
	if !ok {
		return GameRef{}, fmt.Errorf("%w: team_id=%d", ErrTeamNotFound, teamID)
	}

	games := periods[periodID]
	if len(games) == 0 {
		return ByeWeek, nil
	}

	game := games[0]
	switch teamID {
	case game.AwayTeamID:
		return GameRef{GameID: game.ID, OpponentTeamID: game.HomeTeamID, Location: LocationAway}, nil
	case game.HomeTeamID:
		return GameRef{GameID: game.ID, OpponentTeamID: game.AwayTeamID, Location: LocationHome}, nil
	default:
		return GameRef{}, fmt.Errorf("%w: team_id=%d period_id=%d game_id=%d", ErrMalformedGame, teamID, periodID, game.ID)
	}
}

// Add appends a game under both participating teams. Used by data sources while building a schedule.
func (s Schedule) Add(periodID int, game Game) {
	for _, teamID := range []int64{game.HomeTeamID, game.AwayTeamID} {
		if teamID == 0 {
			continue
		}
		s.AddTeam(teamID)
		s[teamID][periodID] = append(s[teamID][periodID], game)
	}
}

// AddTeam registers a team with no games yet, so that its byes resolve instead of erroring.
func (s Schedule) AddTeam(teamID int64) {
	if _, ok := s[teamID]; !ok {
		s[teamID] = make(map[int][]Game)
	}
}
