package memory

import (
	"fmt"
	"io"
	"os"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/fantasy-stats/internal/domain/opponent"
	"github.com/riskibarqy/fantasy-stats/internal/domain/playerstats"
	"github.com/riskibarqy/fantasy-stats/internal/domain/schedule"
)

var seedJSON = sonic.ConfigStd

// SeedFile is the on-disk layout accepted by LoadSeedFile.
type SeedFile struct {
	Seasons []SeedSeason `json:"seasons"`
}

type SeedSeason struct {
	Season  int          `json:"season"`
	Teams   []int64      `json:"teams"`
	Games   []SeedGame   `json:"games"`
	Players []SeedPlayer `json:"players"`
	Ratings []SeedRating `json:"ratings"`
}

type SeedGame struct {
	ID         int64     `json:"id"`
	PeriodID   int       `json:"periodId"`
	HomeTeamID int64     `json:"homeTeamId"`
	AwayTeamID int64     `json:"awayTeamId"`
	Date       time.Time `json:"date"`
}

type SeedPlayer struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	PositionID int        `json:"positionId"`
	TeamID     int64      `json:"teamId"`
	Stats      []SeedStat `json:"stats"`
}

type SeedStat struct {
	Source       int                `json:"source"`
	Split        int                `json:"split"`
	TeamID       int64              `json:"teamId"`
	PeriodID     int                `json:"periodId"`
	AppliedTotal float64            `json:"appliedTotal"`
	Metrics      map[string]float64 `json:"metrics"`
}

type SeedRating struct {
	PositionID int     `json:"positionId"`
	TeamID     int64   `json:"teamId"`
	Average    float64 `json:"average"`
	Rank       float64 `json:"rank"`
}

func LoadSeedFile(path string) (map[int]Season, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	return DecodeSeed(f)
}

func DecodeSeed(r io.Reader) (map[int]Season, error) {
	var file SeedFile
	if err := seedJSON.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	return file.Build()
}

// Build converts the file layout into domain seasons.
func (f SeedFile) Build() (map[int]Season, error) {
	out := make(map[int]Season, len(f.Seasons))
	for _, raw := range f.Seasons {
		if raw.Season <= 0 {
			return nil, fmt.Errorf("seed season must be > 0, got %d", raw.Season)
		}
		if _, dup := out[raw.Season]; dup {
			return nil, fmt.Errorf("seed season %d listed twice", raw.Season)
		}

		sched := schedule.Schedule{}
		for _, teamID := range raw.Teams {
			sched.AddTeam(teamID)
		}
		for _, g := range raw.Games {
			if g.PeriodID <= 0 {
				return nil, fmt.Errorf("season %d game %d: period must be > 0", raw.Season, g.ID)
			}
			sched.Add(g.PeriodID, schedule.Game{ID: g.ID, HomeTeamID: g.HomeTeamID, AwayTeamID: g.AwayTeamID, Date: g.Date})
		}

		var ratings opponent.Table
		if len(raw.Ratings) > 0 {
			ratings = opponent.Table{}
			for _, r := range raw.Ratings {
				ratings.Set(r.PositionID, r.TeamID, opponent.Rating{Average: r.Average, Rank: r.Rank})
			}
		}

		players := make([]playerstats.Player, 0, len(raw.Players))
		for _, p := range raw.Players {
			stats := make([]playerstats.StatRecord, 0, len(p.Stats))
			for _, s := range p.Stats {
				metrics := s.Metrics
				if metrics == nil {
					metrics = map[string]float64{}
				}
				stats = append(stats, playerstats.StatRecord{
					Source:       playerstats.Source(s.Source),
					SplitType:    playerstats.SplitType(s.Split),
					TeamID:       s.TeamID,
					PeriodID:     s.PeriodID,
					AppliedTotal: s.AppliedTotal,
					Metrics:      metrics,
				})
			}
			players = append(players, playerstats.Player{
				ID:         p.ID,
				Name:       p.Name,
				PositionID: p.PositionID,
				TeamID:     p.TeamID,
				Stats:      stats,
			})
		}

		out[raw.Season] = Season{Players: players, Schedule: sched, Ratings: ratings}
	}
	return out, nil
}

const (
	teamARI = int64(22)
	teamDEN = int64(7)
	teamLAR = int64(14)
	teamTEN = int64(10)
	teamSF  = int64(25)
	teamKC  = int64(12)
)

// SeedSeasons is a small built-in dataset for local runs: weeks 1-3 of 2021 with ratings,
// and week 1 of 2018 without.
func SeedSeasons() map[int]Season {
	return map[int]Season{
		2021: seed2021(),
		2018: seed2018(),
	}
}

func seed2021() Season {
	sched := schedule.Schedule{}
	for _, team := range []int64{teamARI, teamDEN, teamLAR, teamTEN, teamSF, teamKC} {
		sched.AddTeam(team)
	}
	kickoff := time.Date(2021, 9, 12, 17, 0, 0, 0, time.UTC)
	sched.Add(1, schedule.Game{ID: 401326301, HomeTeamID: teamTEN, AwayTeamID: teamARI, Date: kickoff})
	sched.Add(1, schedule.Game{ID: 401326302, HomeTeamID: teamLAR, AwayTeamID: teamSF, Date: kickoff})
	sched.Add(2, schedule.Game{ID: 401326321, HomeTeamID: teamSF, AwayTeamID: teamTEN, Date: kickoff.AddDate(0, 0, 7)})
	sched.Add(2, schedule.Game{ID: 401326322, HomeTeamID: teamKC, AwayTeamID: teamARI, Date: kickoff.AddDate(0, 0, 7)})
	sched.Add(2, schedule.Game{ID: 401326323, HomeTeamID: teamLAR, AwayTeamID: teamDEN, Date: kickoff.AddDate(0, 0, 7)})
	sched.Add(3, schedule.Game{ID: 401326341, HomeTeamID: teamTEN, AwayTeamID: teamKC, Date: kickoff.AddDate(0, 0, 14)})
	sched.Add(3, schedule.Game{ID: 401326342, HomeTeamID: teamDEN, AwayTeamID: teamLAR, Date: kickoff.AddDate(0, 0, 14)})

	ratings := opponent.Table{}
	for _, r := range []struct {
		positionID int
		teamID     int64
		avg, rank  float64
	}{
		{2, teamARI, 21.5, 28}, {2, teamSF, 12.3, 4}, {2, teamKC, 18.9, 22}, {2, teamTEN, 16.1, 15}, {2, teamLAR, 13.4, 7}, {2, teamDEN, 14.8, 11},
		{3, teamARI, 34.2, 20}, {3, teamSF, 29.7, 12}, {3, teamKC, 38.1, 30}, {3, teamTEN, 36.6, 27}, {3, teamLAR, 27.9, 9}, {3, teamDEN, 30.4, 14},
		{4, teamARI, 9.8, 24}, {4, teamSF, 6.1, 3}, {4, teamKC, 8.7, 19}, {4, teamTEN, 7.9, 16}, {4, teamLAR, 6.9, 8}, {4, teamDEN, 7.2, 12},
		{1, teamARI, 19.0, 18}, {1, teamSF, 15.2, 6}, {1, teamKC, 21.7, 26}, {1, teamTEN, 20.3, 23}, {1, teamLAR, 16.8, 10}, {1, teamDEN, 17.5, 13},
	} {
		ratings.Set(r.positionID, r.teamID, opponent.Rating{Average: r.avg, Rank: r.rank})
	}

	return Season{
		Schedule: sched,
		Ratings:  ratings,
		Players: []playerstats.Player{
			seedPlayer(3043078, "Derrick Henry", 2, teamTEN, []float64{12.3, 26.2, 28.2}, []float64{19.4, 18.9, 20.1}),
			seedPlayer(3116593, "Deebo Samuel", 3, teamSF, []float64{23.9, 19.3, 0}, []float64{13.2, 14.0, 0}),
			seedPlayer(3054850, "Cooper Kupp", 3, teamLAR, []float64{16.8, 24.3, 40.6}, []float64{15.1, 16.4, 16.9}),
			seedPlayer(3916387, "Kyler Murray", 1, teamARI, []float64{34.5, 28.4, 0}, []float64{22.4, 23.0, 0}),
			seedPlayer(2577417, "Travis Kelce", 4, teamKC, []float64{0, 18.9, 10.4}, []float64{0, 15.5, 15.2}),
		},
	}
}

func seed2018() Season {
	sched := schedule.Schedule{}
	sched.Add(1, schedule.Game{ID: 401030701, HomeTeamID: teamARI, AwayTeamID: teamTEN})
	return Season{
		Schedule: sched,
		Players: []playerstats.Player{
			seedPlayer(3043078, "Derrick Henry", 2, teamTEN, []float64{4.6}, []float64{11.0}),
		},
	}
}

// seedPlayer builds weekly lines starting at week 1. A zero actual total means the player
// has no line that week.
func seedPlayer(id int64, name string, positionID int, teamID int64, actual, projected []float64) playerstats.Player {
	stats := make([]playerstats.StatRecord, 0, len(actual)+len(projected))
	for i, total := range actual {
		if total == 0 {
			continue
		}
		stats = append(stats, playerstats.StatRecord{
			Source: playerstats.SourceActual, SplitType: playerstats.SplitWeekly,
			TeamID: teamID, PeriodID: i + 1, AppliedTotal: total,
			Metrics: map[string]float64{"appliedPoints": total},
		})
	}
	for i, total := range projected {
		if total == 0 {
			continue
		}
		stats = append(stats, playerstats.StatRecord{
			Source: playerstats.SourceProjected, SplitType: playerstats.SplitWeekly,
			TeamID: teamID, PeriodID: i + 1, AppliedTotal: total,
			Metrics: map[string]float64{"appliedPoints": total},
		})
	}
	return playerstats.Player{ID: id, Name: name, PositionID: positionID, TeamID: teamID, Stats: stats}
}
