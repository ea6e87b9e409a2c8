package espn

type playersEnvelope struct {
	Players                 []playerPoolEntry        `json:"players"`
	PositionAgainstOpponent *positionAgainstOpponent `json:"positionAgainstOpponent"`
}

type playerPoolEntry struct {
	ID     int64        `json:"id"`
	Player playerDetail `json:"player"`
}

type playerDetail struct {
	ID                int64      `json:"id"`
	FullName          string     `json:"fullName"`
	DefaultPositionID int        `json:"defaultPositionId"`
	ProTeamID         int64      `json:"proTeamId"`
	Stats             []statLine `json:"stats"`
}

type statLine struct {
	ID              string             `json:"id"`
	SeasonID        int                `json:"seasonId"`
	ProTeamID       int64              `json:"proTeamId"`
	ScoringPeriodID int                `json:"scoringPeriodId"`
	StatSourceID    int                `json:"statSourceId"`
	StatSplitTypeID int                `json:"statSplitTypeId"`
	AppliedTotal    float64            `json:"appliedTotal"`
	AppliedStats    map[string]float64 `json:"appliedStats"`
}

type positionAgainstOpponent struct {
	PositionalRatings map[string]positionalRating `json:"positionalRatings"`
}

type positionalRating struct {
	RatingsByOpponent map[string]opponentRanking `json:"ratingsByOpponent"`
}

type opponentRanking struct {
	Average float64 `json:"average"`
	Rank    float64 `json:"rank"`
}

type proTeamScheduleEnvelope struct {
	Settings struct {
		ProTeams []proTeam `json:"proTeams"`
	} `json:"settings"`
}

type proTeam struct {
	ID                      int64                `json:"id"`
	Abbrev                  string               `json:"abbrev"`
	ByeWeek                 int                  `json:"byeWeek"`
	ProGamesByScoringPeriod map[string][]proGame `json:"proGamesByScoringPeriod"`
}

type proGame struct {
	ID            int64 `json:"id"`
	Date          int64 `json:"date"`
	HomeProTeamID int64 `json:"homeProTeamId"`
	AwayProTeamID int64 `json:"awayProTeamId"`
}

// playerFilter is the X-Fantasy-Filter document for the player pool views.
type playerFilter struct {
	Players playerFilterBody `json:"players"`
}

type playerFilterBody struct {
	FilterSlotIDs                  *filterValue[[]int] `json:"filterSlotIds,omitempty"`
	FilterStatsForSourceIDs        *filterValue[[]int] `json:"filterStatsForSourceIds,omitempty"`
	FilterStatsForSplitTypeIDs     *filterValue[[]int] `json:"filterStatsForSplitTypeIds,omitempty"`
	FilterStatsForExternalIDs      *filterValue[[]int] `json:"filterStatsForExternalIds,omitempty"`
	FilterStatsForScoringPeriodIDs *filterValue[[]int] `json:"filterStatsForScoringPeriodIds,omitempty"`
	SortAppliedStatTotal           *sortSpec           `json:"sortAppliedStatTotal,omitempty"`
	Limit                          int                 `json:"limit,omitempty"`
}

type filterValue[T any] struct {
	Value T `json:"value"`
}

type sortSpec struct {
	SortAsc      bool   `json:"sortAsc"`
	SortPriority int    `json:"sortPriority"`
	Value        string `json:"value"`
}
