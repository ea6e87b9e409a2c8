package schedule

import (
	"errors"
	"testing"
)

func testSchedule() Schedule {
	s := Schedule{}
	s.Add(1, Game{ID: 101, HomeTeamID: 10, AwayTeamID: 20})
	s.Add(2, Game{ID: 201, HomeTeamID: 30, AwayTeamID: 10})
	s.AddTeam(40)
	return s
}

func TestResolveGame(t *testing.T) {
	s := testSchedule()

	tests := []struct {
		name     string
		teamID   int64
		periodID int
		want     GameRef
	}{
		{name: "home side", teamID: 10, periodID: 1, want: GameRef{GameID: 101, OpponentTeamID: 20, Location: LocationHome}},
		{name: "away side", teamID: 10, periodID: 2, want: GameRef{GameID: 201, OpponentTeamID: 30, Location: LocationAway}},
		{name: "opponent view", teamID: 20, periodID: 1, want: GameRef{GameID: 101, OpponentTeamID: 10, Location: LocationAway}},
		{name: "bye period", teamID: 20, periodID: 2, want: ByeWeek},
		{name: "team without games", teamID: 40, periodID: 1, want: ByeWeek},
		{name: "unassigned team", teamID: 0, periodID: 1, want: ByeWeek},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.ResolveGame(tc.teamID, tc.periodID)
			if err != nil {
				t.Fatalf("ResolveGame error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("ResolveGame=%+v want %+v", got, tc.want)
			}
		})
	}
}

func TestResolveGame_UnknownTeamIsUpstreamError(t *testing.T) {
	_, err := testSchedule().ResolveGame(99, 1)
	if !errors.Is(err, ErrTeamNotFound) {
		t.Fatalf("expected ErrTeamNotFound, got %v", err)
	}
}

func TestResolveGame_FirstGameWins(t *testing.T) {
	s := Schedule{}
	s.Add(5, Game{ID: 1, HomeTeamID: 10, AwayTeamID: 20})
	s.Add(5, Game{ID: 2, HomeTeamID: 30, AwayTeamID: 10})

	got, err := s.ResolveGame(10, 5)
	if err != nil {
		t.Fatalf("ResolveGame error: %v", err)
	}
	if got.GameID != 1 || got.OpponentTeamID != 20 {
		t.Fatalf("expected first listed game, got %+v", got)
	}
}

func TestResolveGame_GameWithoutTeam(t *testing.T) {
	s := Schedule{10: {1: {{ID: 7, HomeTeamID: 30, AwayTeamID: 40}}}}

	_, err := s.ResolveGame(10, 1)
	if !errors.Is(err, ErrMalformedGame) {
		t.Fatalf("expected ErrMalformedGame, got %v", err)
	}
}
