package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/fantasy-stats/external/espn"
	"github.com/riskibarqy/fantasy-stats/internal/config"
	"github.com/riskibarqy/fantasy-stats/internal/domain/position"
	"github.com/riskibarqy/fantasy-stats/internal/domain/topscorers"
	"github.com/riskibarqy/fantasy-stats/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-stats/internal/interfaces/httpapi"
	"github.com/riskibarqy/fantasy-stats/internal/platform/logging"
	"github.com/riskibarqy/fantasy-stats/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-stats/internal/usecase"
)

func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	source, positions, err := newDataSource(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	topScoreSvc := usecase.NewTopScoreService(source, positions, logger.Named("usecase"),
		usecase.WithDefaultLimit(cfg.TopScorersDefaultLimit),
		usecase.WithMaxWorkers(cfg.TopScorersMaxWorkers),
	)

	handler := httpapi.NewHandler(topScoreSvc, logger.Named("httpapi"))
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func newDataSource(ctx context.Context, cfg config.Config, logger *logging.Logger) (topscorers.DataSource, *position.Registry, error) {
	positions := position.DefaultRegistry()

	switch cfg.DataSource {
	case config.DataSourceMemory:
		seasons := memory.SeedSeasons()
		if cfg.MemorySeedPath != "" {
			loaded, err := memory.LoadSeedFile(cfg.MemorySeedPath)
			if err != nil {
				return nil, nil, fmt.Errorf("load memory seed: %w", err)
			}
			seasons = loaded
		}
		logger.Info("using memory data source", "seasons", len(seasons), "seed_path", cfg.MemorySeedPath)
		return memory.NewDataSource(seasons, positions), positions, nil

	case config.DataSourceESPN:
		client := espn.NewClient(espn.ClientConfig{
			BaseURL:      cfg.ESPNBaseURL,
			Game:         cfg.ESPNGame,
			ScoringType:  cfg.ESPNScoringType,
			ESPNS2:       cfg.ESPNS2,
			SWID:         cfg.ESPNSWID,
			Timeout:      cfg.ESPNTimeout,
			MaxRetries:   cfg.ESPNMaxRetries,
			PageLimit:    cfg.ESPNPageLimit,
			ConstantsURL: cfg.ESPNConstantsURL,
			Positions:    positions,
			Logger:       logger.Named("espn"),
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.ESPNCircuitEnabled,
				FailureThreshold: cfg.ESPNCircuitFailureCount,
				OpenTimeout:      cfg.ESPNCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.ESPNCircuitHalfOpenMaxReq,
			},
		})

		if cfg.ESPNConstantsScrapeEnabled {
			constants, err := client.FetchConstants(ctx)
			if err != nil {
				logger.Warn("espn constants scrape failed, keeping built-in positions", "error", err)
			} else {
				positions = constants.Registry(positions)
				client.SetPositions(positions)
				logger.Info("espn positions resolved from constants page", "positions", len(constants.Positions))
			}
		}
		return client, positions, nil

	default:
		return nil, nil, fmt.Errorf("unsupported data source %q", cfg.DataSource)
	}
}
