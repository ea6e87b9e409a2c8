package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/iter"
	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/fantasy-stats/internal/domain/opponent"
	"github.com/riskibarqy/fantasy-stats/internal/domain/playerstats"
	"github.com/riskibarqy/fantasy-stats/internal/domain/position"
	"github.com/riskibarqy/fantasy-stats/internal/domain/schedule"
	"github.com/riskibarqy/fantasy-stats/internal/domain/topscorers"
	"github.com/riskibarqy/fantasy-stats/internal/platform/logging"
)

const defaultTopScoreWorkers = 4

// TopScoreRequest is the caller-facing input for a top scorer board.
type TopScoreRequest struct {
	Season    int
	SplitType playerstats.SplitType
	Periods   []int
	Positions []position.Position
	Limit     int
}

type TopScoreService struct {
	source       topscorers.DataSource
	positions    *position.Registry
	logger       *logging.Logger
	defaultLimit int
	maxWorkers   int
	now          func() time.Time
}

type TopScoreServiceOption func(*TopScoreService)

func WithDefaultLimit(limit int) TopScoreServiceOption {
	return func(s *TopScoreService) {
		if limit != 0 {
			s.defaultLimit = limit
		}
	}
}

func WithMaxWorkers(workers int) TopScoreServiceOption {
	return func(s *TopScoreService) {
		if workers > 0 {
			s.maxWorkers = workers
		}
	}
}

func NewTopScoreService(
	source topscorers.DataSource,
	positions *position.Registry,
	logger *logging.Logger,
	opts ...TopScoreServiceOption,
) *TopScoreService {
	if positions == nil {
		positions = position.DefaultRegistry()
	}
	if logger == nil {
		logger = logging.Default()
	}

	s := &TopScoreService{
		source:       source,
		positions:    positions,
		logger:       logger,
		defaultLimit: topscorers.DefaultLimit,
		maxWorkers:   defaultTopScoreWorkers,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Positions returns the registry used to validate and translate positions.
func (s *TopScoreService) Positions() *position.Registry {
	return s.positions
}

// GetTopScorers aggregates every player matching req over req.Periods and returns them
// ranked by combined actual points.
func (s *TopScoreService) GetTopScorers(ctx context.Context, req TopScoreRequest) ([]topscorers.AggregatedPlayer, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TopScoreService.GetTopScorers")
	defer span.End()

	q, err := s.buildQuery(req)
	if err != nil {
		return nil, err
	}
	return s.topScorers(ctx, q)
}

// GetTopScorersForPeriod is the single scoring period board for one position.
func (s *TopScoreService) GetTopScorersForPeriod(ctx context.Context, season, periodID int, pos position.Position, limit int) ([]topscorers.AggregatedPlayer, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TopScoreService.GetTopScorersForPeriod")
	defer span.End()

	if periodID <= 0 {
		return nil, fmt.Errorf("%w: scoring period must be > 0", ErrInvalidInput)
	}
	return s.GetTopScorers(ctx, TopScoreRequest{
		Season:    season,
		SplitType: playerstats.SplitWeekly,
		Periods:   []int{periodID},
		Positions: []position.Position{pos},
		Limit:     limit,
	})
}

// GetTopScorersForRange is the inclusive week range board for one position.
func (s *TopScoreService) GetTopScorersForRange(ctx context.Context, season, startWeek, endWeek int, pos position.Position, limit int) ([]topscorers.AggregatedPlayer, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TopScoreService.GetTopScorersForRange")
	defer span.End()

	if startWeek <= 0 {
		return nil, fmt.Errorf("%w: start week must be > 0", ErrInvalidInput)
	}
	if startWeek > endWeek {
		return nil, fmt.Errorf("%w: start week %d is after end week %d", ErrInvalidInput, startWeek, endWeek)
	}
	periods, err := topscorers.PeriodRange(startWeek, endWeek)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return s.GetTopScorers(ctx, TopScoreRequest{
		Season:    season,
		SplitType: playerstats.SplitWeekly,
		Periods:   periods,
		Positions: []position.Position{pos},
		Limit:     limit,
	})
}

// ListTopScorersByPosition builds one independent board per requested position.
func (s *TopScoreService) ListTopScorersByPosition(ctx context.Context, req TopScoreRequest) (map[position.Position][]topscorers.AggregatedPlayer, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TopScoreService.ListTopScorersByPosition")
	defer span.End()

	q, err := s.buildQuery(req)
	if err != nil {
		return nil, err
	}

	positions := q.Positions()
	out := make(map[position.Position][]topscorers.AggregatedPlayer, len(positions))
	if q.Empty() {
		return out, nil
	}

	workers := min(s.maxWorkers, len(positions))
	workerPool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create top scorer worker pool: %w", err)
	}
	defer workerPool.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for _, pos := range positions {
		pos := pos
		wg.Add(1)
		submitErr := workerPool.Submit(func() {
			defer wg.Done()
			board, err := s.topScorers(ctx, q.WithPositions(pos))

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = crerr.Wrapf(err, "position %s", pos)
				}
				return
			}
			out[pos] = board
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = fmt.Errorf("submit %s board: %w", pos, submitErr)
			}
			mu.Unlock()
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

func (s *TopScoreService) buildQuery(req TopScoreRequest) (topscorers.Query, error) {
	if req.Season <= 0 {
		return topscorers.Query{}, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}
	if req.SplitType != playerstats.SplitTotal && req.SplitType != playerstats.SplitWeekly {
		return topscorers.Query{}, fmt.Errorf("%w: unsupported split type %d", ErrInvalidInput, req.SplitType)
	}
	if len(req.Periods) > topscorers.MaxPeriods {
		return topscorers.Query{}, fmt.Errorf("%w: %w: got %d, max %d", ErrInvalidInput, topscorers.ErrTooManyPeriods, len(req.Periods), topscorers.MaxPeriods)
	}
	for _, pos := range req.Positions {
		if _, ok := s.positions.Lookup(pos); !ok {
			return topscorers.Query{}, fmt.Errorf("%w: %w %q", ErrInvalidInput, position.ErrUnknownPosition, pos)
		}
	}

	limit := req.Limit
	if limit == 0 {
		limit = s.defaultLimit
	}
	return topscorers.NewQuery(topscorers.QueryParams{
		Season:    req.Season,
		SplitType: req.SplitType,
		Periods:   req.Periods,
		Positions: req.Positions,
		Limit:     limit,
	}), nil
}

type topScoreInputs struct {
	players  []playerstats.Player
	schedule schedule.Schedule
	ratings  opponent.Table
}

func (s *TopScoreService) topScorers(ctx context.Context, q topscorers.Query) ([]topscorers.AggregatedPlayer, error) {
	if q.Empty() {
		return []topscorers.AggregatedPlayer{}, nil
	}

	startedAt := s.now()
	in, err := s.fetchInputs(ctx, q)
	if err != nil {
		s.logger.WarnContext(ctx, "top scorer inputs unavailable",
			"season", q.Season(),
			"positions", q.Positions(),
			"error", err,
		)
		return nil, err
	}

	mapper := iter.Mapper[playerstats.Player, topscorers.AggregatedPlayer]{MaxGoroutines: s.maxWorkers}
	aggregated, err := mapper.MapErr(in.players, func(player *playerstats.Player) (topscorers.AggregatedPlayer, error) {
		agg, err := topscorers.Aggregate(*player, q, in.schedule, in.ratings)
		if err != nil {
			return topscorers.AggregatedPlayer{}, crerr.Wrapf(err, "aggregate player %d", player.ID)
		}
		return agg, nil
	})
	if err != nil {
		return nil, crerr.Mark(err, ErrUpstreamData)
	}

	ranked := topscorers.Rank(aggregated, q.Limit())
	s.logger.DebugContext(ctx, "top scorers ranked",
		"season", q.Season(),
		"periods", q.Periods(),
		"positions", q.Positions(),
		"candidates", len(in.players),
		"returned", len(ranked),
		"duration", s.now().Sub(startedAt),
	)
	return ranked, nil
}

// fetchInputs loads players, schedule and, when the season has them, positional ratings
// concurrently. The first failure cancels the others.
func (s *TopScoreService) fetchInputs(ctx context.Context, q topscorers.Query) (topScoreInputs, error) {
	var in topScoreInputs

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		players, err := s.source.FetchPlayers(ctx, q)
		if err != nil {
			return classifyFetchError(err, "fetch players")
		}
		in.players = players
		return nil
	})
	p.Go(func(ctx context.Context) error {
		sched, err := s.source.FetchSchedule(ctx, q.Season())
		if err != nil {
			return classifyFetchError(err, "fetch schedule")
		}
		in.schedule = sched
		return nil
	})
	if opponent.Available(q.Season()) {
		p.Go(func(ctx context.Context) error {
			ratings, err := s.source.FetchOpponentRatings(ctx, q.Season())
			if err != nil {
				return classifyFetchError(err, "fetch opponent ratings")
			}
			in.ratings = ratings
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return topScoreInputs{}, err
	}
	return in, nil
}

// classifyFetchError keeps availability and cancellation errors as they are and marks
// everything else as bad upstream data.
func classifyFetchError(err error, op string) error {
	wrapped := crerr.Wrap(err, op)
	if crerr.IsAny(err, ErrDependencyUnavailable, ErrInvalidInput, context.Canceled, context.DeadlineExceeded) {
		return wrapped
	}
	return crerr.Mark(wrapped, ErrUpstreamData)
}
