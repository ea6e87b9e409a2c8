package opponent

import (
	"errors"
	"testing"

	"github.com/riskibarqy/fantasy-stats/internal/domain/schedule"
)

func TestResolve(t *testing.T) {
	table := Table{}
	table.Set(2, 20, Rating{Average: 18.4, Rank: 7})
	game := schedule.GameRef{GameID: 1, OpponentTeamID: 20, Location: schedule.LocationHome}

	tests := []struct {
		name    string
		season  int
		game    schedule.GameRef
		table   Table
		want    Rating
		wantErr error
	}{
		{name: "rated opponent", season: 2021, game: game, table: table, want: Rating{Average: 18.4, Rank: 7}},
		{name: "bye week", season: 2021, game: schedule.ByeWeek, table: table, want: Neutral},
		{name: "pre cutoff ignores supplied table", season: 2018, game: game, table: table, want: Neutral},
		{name: "pre cutoff without table", season: 2015, game: game, table: nil, want: Neutral},
		{name: "missing opponent", season: 2021, game: schedule.GameRef{OpponentTeamID: 99, Location: schedule.LocationAway}, table: table, wantErr: ErrRatingNotFound},
		{name: "missing table", season: 2021, game: game, table: nil, wantErr: ErrRatingNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Resolve(tc.season, 2, tc.game, tc.table)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("Resolve=%+v want %+v", got, tc.want)
			}
		})
	}
}

func TestMean_AveragesNotSums(t *testing.T) {
	got := Mean([]Rating{{Average: 10, Rank: 5}, {Average: 20, Rank: 15}})
	if got != (Rating{Average: 15, Rank: 10}) {
		t.Fatalf("Mean=%+v want {15 10}", got)
	}
	if Mean(nil) != Neutral {
		t.Fatalf("Mean of nothing should be neutral")
	}
}
