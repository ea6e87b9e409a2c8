package topscorers

import (
	"errors"
	"reflect"
	"testing"

	"github.com/riskibarqy/fantasy-stats/internal/domain/opponent"
	"github.com/riskibarqy/fantasy-stats/internal/domain/playerstats"
	"github.com/riskibarqy/fantasy-stats/internal/domain/position"
	"github.com/riskibarqy/fantasy-stats/internal/domain/schedule"
)

const (
	rbPositionID = 2
	teamA        = int64(10)
	teamB        = int64(11)
	oppOne       = int64(20)
	oppTwo       = int64(21)
	oppThree     = int64(22)
)

func weekly(source playerstats.Source, teamID int64, period int, total float64, metrics map[string]float64) playerstats.StatRecord {
	return playerstats.StatRecord{
		Source:       source,
		SplitType:    playerstats.SplitWeekly,
		TeamID:       teamID,
		PeriodID:     period,
		AppliedTotal: total,
		Metrics:      metrics,
	}
}

func rbQuery(season int, periods ...int) Query {
	return NewQuery(QueryParams{
		Season:    season,
		SplitType: playerstats.SplitWeekly,
		Periods:   periods,
		Positions: []position.Position{position.RB},
	})
}

func fixtureSchedule() schedule.Schedule {
	s := schedule.Schedule{}
	s.Add(1, schedule.Game{ID: 1, HomeTeamID: teamA, AwayTeamID: oppOne})
	s.Add(2, schedule.Game{ID: 2, HomeTeamID: oppTwo, AwayTeamID: teamA})
	s.Add(1, schedule.Game{ID: 3, HomeTeamID: oppThree, AwayTeamID: teamB})
	s.Add(2, schedule.Game{ID: 4, HomeTeamID: teamB, AwayTeamID: oppThree})
	return s
}

func fixtureRatings() opponent.Table {
	t := opponent.Table{}
	t.Set(rbPositionID, oppOne, opponent.Rating{Average: 5, Rank: 2})
	t.Set(rbPositionID, oppTwo, opponent.Rating{Average: 7, Rank: 4})
	t.Set(rbPositionID, oppThree, opponent.Rating{Average: 3, Rank: 1})
	return t
}

func TestAggregate_EndToEndScenario(t *testing.T) {
	a := playerstats.Player{
		ID: 1, Name: "Player A", PositionID: rbPositionID, TeamID: teamA,
		Stats: []playerstats.StatRecord{
			weekly(playerstats.SourceActual, teamA, 1, 12, map[string]float64{"24": 80}),
			weekly(playerstats.SourceActual, teamA, 2, 8, map[string]float64{"24": 40, "25": 1}),
			weekly(playerstats.SourceProjected, teamA, 1, 10, nil),
		},
	}
	b := playerstats.Player{
		ID: 2, Name: "Player B", PositionID: rbPositionID, TeamID: teamB,
		Stats: []playerstats.StatRecord{
			weekly(playerstats.SourceActual, teamB, 1, 9, nil),
			weekly(playerstats.SourceActual, teamB, 2, 9, nil),
		},
	}
	q := rbQuery(2021, 1, 2)

	var aggregated []AggregatedPlayer
	for _, p := range []playerstats.Player{b, a} {
		got, err := Aggregate(p, q, fixtureSchedule(), fixtureRatings())
		if err != nil {
			t.Fatalf("Aggregate(%s) error: %v", p.Name, err)
		}
		aggregated = append(aggregated, got)
	}

	ranked := Rank(aggregated, DefaultLimit)
	if len(ranked) != 2 || ranked[0].PlayerID != 1 || ranked[1].PlayerID != 2 {
		t.Fatalf("unexpected ranking: %+v", ranked)
	}

	gotA, gotB := ranked[0], ranked[1]
	if gotA.CombinedActual.AppliedTotal != 20 || gotB.CombinedActual.AppliedTotal != 18 {
		t.Fatalf("unexpected totals: A=%v B=%v", gotA.CombinedActual.AppliedTotal, gotB.CombinedActual.AppliedTotal)
	}
	if gotA.CombinedOpponent != (opponent.Rating{Average: 6, Rank: 3}) {
		t.Fatalf("unexpected A opponent: %+v", gotA.CombinedOpponent)
	}
	if gotB.CombinedOpponent != (opponent.Rating{Average: 3, Rank: 1}) {
		t.Fatalf("unexpected B opponent: %+v", gotB.CombinedOpponent)
	}
	if !reflect.DeepEqual(gotA.CombinedActual.Metrics, map[string]float64{"24": 120, "25": 1}) {
		t.Fatalf("unexpected A metrics: %v", gotA.CombinedActual.Metrics)
	}
	if gotA.CombinedProjected.AppliedTotal != 10 {
		t.Fatalf("unexpected A projected total: %v", gotA.CombinedProjected.AppliedTotal)
	}
	if gotB.CombinedProjected.AppliedTotal != 0 {
		t.Fatalf("B has no projections, expected zero default, got %v", gotB.CombinedProjected.AppliedTotal)
	}
}

func TestAggregate_OpponentIsAveragedNotSummed(t *testing.T) {
	s := schedule.Schedule{}
	s.Add(1, schedule.Game{ID: 1, HomeTeamID: teamA, AwayTeamID: oppOne})
	s.Add(2, schedule.Game{ID: 2, HomeTeamID: teamA, AwayTeamID: oppTwo})
	ratings := opponent.Table{}
	ratings.Set(rbPositionID, oppOne, opponent.Rating{Average: 10, Rank: 5})
	ratings.Set(rbPositionID, oppTwo, opponent.Rating{Average: 20, Rank: 15})

	p := playerstats.Player{ID: 1, PositionID: rbPositionID, Stats: []playerstats.StatRecord{
		weekly(playerstats.SourceActual, teamA, 1, 1, nil),
		weekly(playerstats.SourceActual, teamA, 2, 1, nil),
	}}

	got, err := Aggregate(p, rbQuery(2022, 1, 2), s, ratings)
	if err != nil {
		t.Fatalf("Aggregate error: %v", err)
	}
	if got.CombinedOpponent != (opponent.Rating{Average: 15, Rank: 10}) {
		t.Fatalf("CombinedOpponent=%+v want {15 10}", got.CombinedOpponent)
	}
}

func TestAggregate_ByeWeekContributesNeutralEntry(t *testing.T) {
	s := schedule.Schedule{}
	s.Add(1, schedule.Game{ID: 1, HomeTeamID: teamA, AwayTeamID: oppOne})
	ratings := opponent.Table{}
	ratings.Set(rbPositionID, oppOne, opponent.Rating{Average: 10, Rank: 8})

	p := playerstats.Player{ID: 1, PositionID: rbPositionID, Stats: []playerstats.StatRecord{
		weekly(playerstats.SourceActual, teamA, 1, 4, nil),
		weekly(playerstats.SourceActual, teamA, 2, 0, nil),
	}}

	got, err := Aggregate(p, rbQuery(2021, 1, 2), s, ratings)
	if err != nil {
		t.Fatalf("Aggregate error: %v", err)
	}
	if len(got.Opponents) != 2 || !got.Opponents[1].Game.IsBye() || got.Opponents[1].Rating != opponent.Neutral {
		t.Fatalf("expected neutral bye entry for period 2, got %+v", got.Opponents)
	}
	if got.CombinedOpponent != (opponent.Rating{Average: 5, Rank: 4}) {
		t.Fatalf("CombinedOpponent=%+v want {5 4}", got.CombinedOpponent)
	}
}

func TestAggregate_PreCutoffSeasonIsNeutral(t *testing.T) {
	p := playerstats.Player{ID: 1, PositionID: rbPositionID, Stats: []playerstats.StatRecord{
		weekly(playerstats.SourceActual, teamA, 1, 12, nil),
		weekly(playerstats.SourceActual, teamA, 2, 8, nil),
	}}

	got, err := Aggregate(p, rbQuery(2018, 1, 2), fixtureSchedule(), fixtureRatings())
	if err != nil {
		t.Fatalf("Aggregate error: %v", err)
	}
	if got.CombinedOpponent != opponent.Neutral {
		t.Fatalf("expected neutral opponent for 2018, got %+v", got.CombinedOpponent)
	}
	if got.CombinedActual.AppliedTotal != 20 {
		t.Fatalf("stats must still accumulate pre-cutoff, got %v", got.CombinedActual.AppliedTotal)
	}
}

func TestAggregate_NoPeriodsInRangeIsNeutral(t *testing.T) {
	p := playerstats.Player{ID: 1, PositionID: rbPositionID, Stats: []playerstats.StatRecord{
		weekly(playerstats.SourceActual, teamA, 7, 30, nil),
	}}

	got, err := Aggregate(p, rbQuery(2021, 1, 2), fixtureSchedule(), fixtureRatings())
	if err != nil {
		t.Fatalf("Aggregate error: %v", err)
	}
	if got.CombinedActual.AppliedTotal != 0 || got.CombinedOpponent != opponent.Neutral || len(got.Opponents) != 0 {
		t.Fatalf("expected empty aggregation, got %+v", got)
	}
	if got.CombinedActual.Metrics == nil || got.Opponents == nil {
		t.Fatalf("empty aggregation must keep the same field layout: %+v", got)
	}
}

func TestAggregate_SinglePeriodSharesShape(t *testing.T) {
	p := playerstats.Player{ID: 1, PositionID: rbPositionID, Stats: []playerstats.StatRecord{
		weekly(playerstats.SourceActual, teamA, 1, 12, map[string]float64{"24": 80}),
		weekly(playerstats.SourceActual, teamA, 2, 8, map[string]float64{"24": 40}),
	}}

	single, err := Aggregate(p, rbQuery(2021, 1), fixtureSchedule(), fixtureRatings())
	if err != nil {
		t.Fatalf("Aggregate single error: %v", err)
	}
	if single.CombinedActual.AppliedTotal != 12 || single.CombinedOpponent != (opponent.Rating{Average: 5, Rank: 2}) {
		t.Fatalf("unexpected single-period result: %+v", single)
	}
	if len(single.Opponents) != 1 || single.Opponents[0].Game.Location != schedule.LocationHome {
		t.Fatalf("unexpected single-period opponents: %+v", single.Opponents)
	}
}

func TestAggregate_PropagatesUpstreamErrors(t *testing.T) {
	unknownTeam := playerstats.Player{ID: 1, PositionID: rbPositionID, Stats: []playerstats.StatRecord{
		weekly(playerstats.SourceActual, 999, 1, 12, nil),
	}}
	if _, err := Aggregate(unknownTeam, rbQuery(2021, 1), fixtureSchedule(), fixtureRatings()); !errors.Is(err, schedule.ErrTeamNotFound) {
		t.Fatalf("expected ErrTeamNotFound, got %v", err)
	}

	unrated := playerstats.Player{ID: 2, PositionID: 5, Stats: []playerstats.StatRecord{
		weekly(playerstats.SourceActual, teamA, 1, 12, nil),
	}}
	if _, err := Aggregate(unrated, rbQuery(2021, 1), fixtureSchedule(), fixtureRatings()); !errors.Is(err, opponent.ErrRatingNotFound) {
		t.Fatalf("expected ErrRatingNotFound, got %v", err)
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	p := playerstats.Player{ID: 1, PositionID: rbPositionID, Stats: []playerstats.StatRecord{
		weekly(playerstats.SourceActual, teamA, 1, 12.1, map[string]float64{"24": 80}),
		weekly(playerstats.SourceActual, teamA, 2, 8.3, map[string]float64{"24": 40}),
		weekly(playerstats.SourceProjected, teamA, 2, 9.9, map[string]float64{"24": 70}),
	}}
	q := rbQuery(2021, 1, 2)

	first, err := Aggregate(p, q, fixtureSchedule(), fixtureRatings())
	if err != nil {
		t.Fatalf("first Aggregate error: %v", err)
	}
	second, err := Aggregate(p, q, fixtureSchedule(), fixtureRatings())
	if err != nil {
		t.Fatalf("second Aggregate error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Aggregate is not idempotent:\nfirst=%+v\nsecond=%+v", first, second)
	}
}

func TestAggregate_SeasonTotalIgnoresPeriods(t *testing.T) {
	p := playerstats.Player{ID: 1, PositionID: rbPositionID, Stats: []playerstats.StatRecord{
		{Source: playerstats.SourceActual, SplitType: playerstats.SplitTotal, TeamID: teamA, AppliedTotal: 210},
		{Source: playerstats.SourceProjected, SplitType: playerstats.SplitTotal, TeamID: teamA, AppliedTotal: 190},
		weekly(playerstats.SourceActual, teamA, 1, 12, nil),
	}}
	q := NewQuery(QueryParams{Season: 2021, SplitType: playerstats.SplitTotal, Positions: []position.Position{position.RB}})

	got, err := Aggregate(p, q, fixtureSchedule(), fixtureRatings())
	if err != nil {
		t.Fatalf("Aggregate error: %v", err)
	}
	if got.CombinedActual.AppliedTotal != 210 || got.CombinedProjected.AppliedTotal != 190 {
		t.Fatalf("unexpected season totals: %+v", got)
	}
	if len(got.Opponents) != 0 || got.CombinedOpponent != opponent.Neutral {
		t.Fatalf("season totals carry no per-period opponents: %+v", got.Opponents)
	}
}
