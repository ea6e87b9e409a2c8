package espn

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"
	"golang.org/x/sync/singleflight"

	"github.com/riskibarqy/fantasy-stats/internal/domain/position"
	"github.com/riskibarqy/fantasy-stats/internal/platform/logging"
	"github.com/riskibarqy/fantasy-stats/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-stats/internal/usecase"
)

const (
	defaultBaseURL      = "https://fantasy.espn.com/apis/v3/games"
	defaultGame         = "ffl"
	defaultScoringType  = 3
	defaultPageLimit    = 1000
	defaultConstantsURL = "https://fantasy.espn.com/football/boxscore"
	maxResponseBytes    = 16 << 20
	filterHeader        = "X-Fantasy-Filter"
)

var (
	errESPNTransient = crerr.New("espn transient failure")
	cookieRegex      = regexp.MustCompile(`(espn_s2|SWID)=[^;\s"']+`)
)

type ClientConfig struct {
	HTTPClient     *fasthttp.Client
	BaseURL        string
	Game           string
	ScoringType    int
	ESPNS2         string
	SWID           string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	PageLimit      int
	ConstantsURL   string
	Positions      *position.Registry
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads player stats, pro schedules and positional ratings from the ESPN fantasy API.
// It implements topscorers.DataSource.
type Client struct {
	httpClient   *fasthttp.Client
	baseURL      string
	scoringType  int
	espnS2       string
	swid         string
	timeout      time.Duration
	maxRetries   int
	retryBackoff time.Duration
	pageLimit    int
	constantsURL string
	positions    *position.Registry
	logger       *logging.Logger
	breaker      *resilience.CircuitBreaker
	flight       singleflight.Group
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                "fantasy-stats",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxResponseBytes,
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	game := strings.TrimSpace(cfg.Game)
	if game == "" {
		game = defaultGame
	}
	scoringType := cfg.ScoringType
	if scoringType <= 0 {
		scoringType = defaultScoringType
	}
	pageLimit := cfg.PageLimit
	if pageLimit <= 0 {
		pageLimit = defaultPageLimit
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = time.Second
	}
	constantsURL := strings.TrimSpace(cfg.ConstantsURL)
	if constantsURL == "" {
		constantsURL = defaultConstantsURL
	}
	positions := cfg.Positions
	if positions == nil {
		positions = position.DefaultRegistry()
	}

	return &Client{
		httpClient:   httpClient,
		baseURL:      baseURL + "/" + game,
		scoringType:  scoringType,
		espnS2:       strings.TrimSpace(cfg.ESPNS2),
		swid:         strings.TrimSpace(cfg.SWID),
		timeout:      timeout,
		maxRetries:   max(cfg.MaxRetries, 0),
		retryBackoff: backoff,
		pageLimit:    pageLimit,
		constantsURL: constantsURL,
		positions:    positions,
		logger:       logger,
		breaker:      resilience.NewCircuitBreaker(cfg.CircuitBreaker),
	}
}

// SetPositions swaps the registry used to translate positions into filter slot ids.
func (c *Client) SetPositions(positions *position.Registry) {
	if positions != nil {
		c.positions = positions
	}
}

type request struct {
	path   string
	query  url.Values
	filter []byte
	accept string
}

func (r request) key() string {
	return r.path + "?" + r.query.Encode() + "#" + string(r.filter)
}

func (c *Client) seasonPath(season int, suffix string) string {
	return fmt.Sprintf("%s/seasons/%d%s", c.baseURL, season, suffix)
}

func (c *Client) leagueDefaultsPath(season int) string {
	return c.seasonPath(season, fmt.Sprintf("/segments/0/leaguedefaults/%d", c.scoringType))
}

// getJSON issues req through the breaker and decodes the body into target.
func (c *Client) getJSON(ctx context.Context, req request, target any) error {
	req.accept = "application/json"
	raw, err := c.get(ctx, req)
	if err != nil {
		return err
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrapf(err, "decode espn payload path=%s", redactURL(req.path))
	}
	return nil
}

func (c *Client) get(ctx context.Context, req request) ([]byte, error) {
	fullURL := req.path
	if encoded := req.query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	// The shared fetch outlives any single caller; each caller waits on its own ctx.
	ch := c.flight.DoChan(req.key(), func() (any, error) {
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.flightTimeout())
		defer cancel()

		var raw []byte
		doErr := c.breaker.Do(func() error {
			var reqErr error
			raw, reqErr = c.executeRequest(flightCtx, fullURL, req)
			return reqErr
		}, isCircuitFailure)
		return raw, doErr
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	out, err := res.Val, res.Err
	if err != nil {
		if crerr.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "espn circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: espn fantasy api is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		return nil, err
	}
	if res.Shared {
		c.logger.DebugContext(ctx, "espn request deduplicated", "url", redactURL(fullURL))
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}
	return raw, nil
}

// flightTimeout bounds one shared fetch: every attempt at c.timeout plus the linear backoff between them.
func (c *Client) flightTimeout() time.Duration {
	retries := time.Duration(c.maxRetries)
	return c.timeout*(retries+1) + c.retryBackoff*retries*(retries+1)/2
}

func (c *Client) executeRequest(ctx context.Context, fullURL string, in request) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, status, err := c.do(ctx, fullURL, in)
		switch {
		case err != nil:
			lastErr = fmt.Errorf("%w: send request: %s", errESPNTransient, c.redact(err.Error()))
		case status >= 200 && status < 300:
			return raw, nil
		case isRetryableStatus(status):
			lastErr = fmt.Errorf("%w: espn status=%d body=%s", errESPNTransient, status, c.redact(abbreviateBody(raw)))
		default:
			return nil, fmt.Errorf("espn status=%d body=%s", status, c.redact(abbreviateBody(raw)))
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * c.retryBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("espn request failed")
	}
	c.logger.WarnContext(ctx, "espn request failed", "url", redactURL(fullURL), "attempts", c.maxRetries+1, "error", lastErr)
	return nil, lastErr
}

func (c *Client) do(ctx context.Context, fullURL string, in request) ([]byte, int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, in.accept)
	if c.espnS2 != "" && c.swid != "" {
		req.Header.SetCookie("espn_s2", c.espnS2)
		req.Header.SetCookie("SWID", c.swid)
	}
	if len(in.filter) > 0 {
		req.Header.SetBytesV(filterHeader, in.filter)
	}

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := c.httpClient.DoDeadline(req, resp, deadline); err != nil {
		return nil, 0, err
	}

	body := append([]byte(nil), resp.Body()...)
	return body, resp.StatusCode(), nil
}

func (c *Client) redact(value string) string {
	for _, secret := range []string{c.espnS2, c.swid} {
		if secret != "" {
			value = strings.ReplaceAll(value, secret, "REDACTED")
		}
	}
	return cookieRegex.ReplaceAllString(value, "$1=REDACTED")
}

func isCircuitFailure(err error) bool {
	return crerr.Is(err, errESPNTransient)
}

func isRetryableStatus(code int) bool {
	return code == fasthttp.StatusTooManyRequests || code >= fasthttp.StatusInternalServerError
}

func redactURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	parsed.User = nil
	return parsed.String()
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
