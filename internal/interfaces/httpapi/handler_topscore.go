package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/riskibarqy/fantasy-stats/internal/domain/playerstats"
	"github.com/riskibarqy/fantasy-stats/internal/domain/position"
	"github.com/riskibarqy/fantasy-stats/internal/domain/topscorers"
	"github.com/riskibarqy/fantasy-stats/internal/usecase"
)

type topScorersParams struct {
	SeasonID  int      `validate:"gt=0"`
	Split     string   `validate:"oneof=weekly total"`
	Periods   []int    `validate:"omitempty,max=25,dive,gt=0"`
	Positions []string `validate:"required,min=1,dive,required"`
	Limit     int      `validate:"gte=-1"`
}

type periodBoardParams struct {
	SeasonID int    `validate:"gt=0"`
	PeriodID int    `validate:"gt=0"`
	Position string `validate:"required"`
	Limit    int    `validate:"gte=-1"`
}

type rangeBoardParams struct {
	SeasonID  int    `validate:"gt=0"`
	StartWeek int    `validate:"gt=0"`
	EndWeek   int    `validate:"gtefield=StartWeek"`
	Position  string `validate:"required"`
	Limit     int    `validate:"gte=-1"`
}

func (h *Handler) GetTopScorers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTopScorers")
	defer span.End()

	req, err := h.bindTopScorers(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	players, err := h.topScoreService.GetTopScorers(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "get top scorers failed", "season", req.Season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, TopScorerBoardDTO{
		Season:    req.Season,
		Split:     splitName(req.SplitType),
		Periods:   req.Periods,
		Positions: positionNames(req.Positions),
		Items:     topScorersToDTO(players, h.topScoreService.Positions()),
	})
}

func (h *Handler) ListTopScorersByPosition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTopScorersByPosition")
	defer span.End()

	req, err := h.bindTopScorers(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	boards, err := h.topScoreService.ListTopScorersByPosition(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "list top scorers by position failed", "season", req.Season, "error", err)
		writeError(ctx, w, err)
		return
	}

	registry := h.topScoreService.Positions()
	res := TopScorerBoardsDTO{
		Season:  req.Season,
		Split:   splitName(req.SplitType),
		Periods: req.Periods,
		Boards:  make(map[string][]TopScorerDTO, len(boards)),
	}
	for pos, players := range boards {
		res.Boards[string(pos)] = topScorersToDTO(players, registry)
	}

	writeSuccess(ctx, w, http.StatusOK, res)
}

func (h *Handler) GetTopScorersForPeriod(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTopScorersForPeriod")
	defer span.End()

	var (
		params periodBoardParams
		err    error
	)
	params.SeasonID, err = parseIntParam("seasonID", r.PathValue("seasonID"))
	if err == nil {
		params.PeriodID, err = parseIntParam("periodID", r.PathValue("periodID"))
	}
	if err == nil {
		params.Limit, err = parseLimit(r.URL.Query())
	}
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	params.Position = r.PathValue("position")
	if err := h.validateRequest(ctx, &params); err != nil {
		writeError(ctx, w, err)
		return
	}
	pos, err := parsePosition(params.Position)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	players, err := h.topScoreService.GetTopScorersForPeriod(ctx, params.SeasonID, params.PeriodID, pos, params.Limit)
	if err != nil {
		h.logger.WarnContext(ctx, "get period top scorers failed",
			"season", params.SeasonID,
			"scoring_period", params.PeriodID,
			"position", pos,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, TopScorerBoardDTO{
		Season:    params.SeasonID,
		Split:     splitName(playerstats.SplitWeekly),
		Periods:   []int{params.PeriodID},
		Positions: []string{string(pos)},
		Items:     topScorersToDTO(players, h.topScoreService.Positions()),
	})
}

func (h *Handler) GetTopScorersForRange(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTopScorersForRange")
	defer span.End()

	var (
		params rangeBoardParams
		err    error
	)
	params.SeasonID, err = parseIntParam("seasonID", r.PathValue("seasonID"))
	if err == nil {
		params.StartWeek, err = parseIntParam("startWeek", r.PathValue("startWeek"))
	}
	if err == nil {
		params.EndWeek, err = parseIntParam("endWeek", r.PathValue("endWeek"))
	}
	if err == nil {
		params.Limit, err = parseLimit(r.URL.Query())
	}
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	params.Position = r.PathValue("position")
	if err := h.validateRequest(ctx, &params); err != nil {
		writeError(ctx, w, err)
		return
	}
	pos, err := parsePosition(params.Position)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	periods, err := topscorers.PeriodRange(params.StartWeek, params.EndWeek)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %w", usecase.ErrInvalidInput, err))
		return
	}

	players, err := h.topScoreService.GetTopScorersForRange(ctx, params.SeasonID, params.StartWeek, params.EndWeek, pos, params.Limit)
	if err != nil {
		h.logger.WarnContext(ctx, "get range top scorers failed",
			"season", params.SeasonID,
			"start_week", params.StartWeek,
			"end_week", params.EndWeek,
			"position", pos,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, TopScorerBoardDTO{
		Season:    params.SeasonID,
		Split:     splitName(playerstats.SplitWeekly),
		Periods:   periods,
		Positions: []string{string(pos)},
		Items:     topScorersToDTO(players, h.topScoreService.Positions()),
	})
}

func (h *Handler) bindTopScorers(ctx context.Context, r *http.Request) (usecase.TopScoreRequest, error) {
	ctx, span := startSpan(ctx, "httpapi.Handler.bindTopScorers")
	defer span.End()

	query := r.URL.Query()
	params := topScorersParams{
		Split:     strings.ToLower(strings.TrimSpace(query.Get("split"))),
		Positions: splitCSV(query["positions"]),
	}
	if params.Split == "" {
		params.Split = "weekly"
	}

	var err error
	if params.SeasonID, err = parseIntParam("seasonID", r.PathValue("seasonID")); err != nil {
		return usecase.TopScoreRequest{}, err
	}
	if params.Periods, err = parsePeriods(query["periods"]); err != nil {
		return usecase.TopScoreRequest{}, err
	}
	if params.Limit, err = parseLimit(query); err != nil {
		return usecase.TopScoreRequest{}, err
	}
	if err := h.validateRequest(ctx, &params); err != nil {
		return usecase.TopScoreRequest{}, err
	}

	positions, err := position.ParseList(params.Positions)
	if err != nil {
		return usecase.TopScoreRequest{}, fmt.Errorf("%w: %w", usecase.ErrInvalidInput, err)
	}

	split := playerstats.SplitWeekly
	if params.Split == "total" {
		split = playerstats.SplitTotal
	}
	return usecase.TopScoreRequest{
		Season:    params.SeasonID,
		SplitType: split,
		Periods:   params.Periods,
		Positions: positions,
		Limit:     params.Limit,
	}, nil
}

func parsePosition(raw string) (position.Position, error) {
	pos, err := position.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", usecase.ErrInvalidInput, err)
	}
	return pos, nil
}

func parseIntParam(name, raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return value, nil
}

func parseLimit(query url.Values) (int, error) {
	raw := strings.TrimSpace(query.Get("limit"))
	if raw == "" {
		return 0, nil
	}
	return parseIntParam("limit", raw)
}

// parsePeriods accepts repeated or comma separated ids and inclusive ranges such as "1-4".
// Each range is bounded by topscorers.MaxPeriods before it is expanded.
func parsePeriods(values []string) ([]int, error) {
	var out []int
	for _, item := range splitCSV(values) {
		if len(out) > topscorers.MaxPeriods {
			return nil, fmt.Errorf("%w: %w: max %d", usecase.ErrInvalidInput, topscorers.ErrTooManyPeriods, topscorers.MaxPeriods)
		}
		start, end, isRange := strings.Cut(item, "-")
		if !isRange {
			id, err := parseIntParam("periods", item)
			if err != nil {
				return nil, err
			}
			out = append(out, id)
			continue
		}

		from, err := parseIntParam("periods", start)
		if err != nil {
			return nil, err
		}
		to, err := parseIntParam("periods", end)
		if err != nil {
			return nil, err
		}
		if from > to {
			return nil, fmt.Errorf("%w: period range %q is inverted", usecase.ErrInvalidInput, item)
		}
		span, err := topscorers.PeriodRange(from, to)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", usecase.ErrInvalidInput, err)
		}
		out = append(out, span...)
	}
	return out, nil
}

func splitCSV(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
