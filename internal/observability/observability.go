package observability

import (
	"context"
	"errors"

	"github.com/riskibarqy/fantasy-stats/internal/config"
	"github.com/riskibarqy/fantasy-stats/internal/platform/logging"
)

// Setup starts tracing and profiling. The returned shutdown flushes both and is safe to
// call when neither is enabled.
func Setup(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	stopTracing, err := InitUptrace(cfg, logger)
	if err != nil {
		return nil, err
	}

	stopProfiling, err := InitPyroscope(cfg, logger)
	if err != nil {
		_ = stopTracing(context.Background())
		return nil, err
	}

	return func(ctx context.Context) error {
		return errors.Join(stopProfiling(), stopTracing(ctx))
	}, nil
}
