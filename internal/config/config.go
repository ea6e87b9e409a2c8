package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-stats/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	DataSourceESPN   = "espn"
	DataSourceMemory = "memory"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	ShutdownTimeout    time.Duration
	CORSAllowedOrigins []string
	LogLevel           logging.Level
	SwaggerEnabled     bool

	DataSource     string
	MemorySeedPath string

	ESPNBaseURL                string
	ESPNGame                   string
	ESPNScoringType            int
	ESPNS2                     string
	ESPNSWID                   string
	ESPNTimeout                time.Duration
	ESPNMaxRetries             int
	ESPNPageLimit              int
	ESPNConstantsScrapeEnabled bool
	ESPNConstantsURL           string
	ESPNCircuitEnabled         bool
	ESPNCircuitFailureCount    int
	ESPNCircuitOpenTimeout     time.Duration
	ESPNCircuitHalfOpenMaxReq  int

	TopScorersDefaultLimit int
	TopScorersMaxWorkers   int

	UptraceEnabled     bool
	UptraceDSN         string
	UptraceLogsEnabled bool

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("APP_SERVICE_NAME", "fantasy-stats-api"),
		ServiceVersion:     getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:           getEnv("APP_HTTP_ADDR", ":8080"),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:           parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		MemorySeedPath:     strings.TrimSpace(getEnv("MEMORY_SEED_PATH", "")),
		ESPNBaseURL:        strings.TrimSpace(getEnv("ESPN_BASE_URL", "https://fantasy.espn.com/apis/v3/games")),
		ESPNS2:             strings.TrimSpace(getEnv("ESPN_S2", "")),
		ESPNSWID:           strings.TrimSpace(getEnv("ESPN_SWID", "")),
		ESPNConstantsURL:   strings.TrimSpace(getEnv("ESPN_CONSTANTS_URL", "https://fantasy.espn.com/football/boxscore")),
		PyroscopeAuthToken: strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}
	if cfg.SwaggerEnabled, err = getEnvAsBool("SWAGGER_ENABLED", swaggerDefault); err != nil {
		return Config{}, err
	}

	if cfg.ReadTimeout, err = getEnvAsDuration("APP_READ_TIMEOUT", "10s"); err != nil {
		return Config{}, err
	}
	if cfg.WriteTimeout, err = getEnvAsDuration("APP_WRITE_TIMEOUT", "30s"); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = getEnvAsDuration("APP_SHUTDOWN_TIMEOUT", "10s"); err != nil {
		return Config{}, err
	}

	cfg.DataSource = strings.ToLower(strings.TrimSpace(getEnv("DATA_SOURCE", DataSourceESPN)))
	switch cfg.DataSource {
	case DataSourceESPN, DataSourceMemory:
	default:
		return Config{}, fmt.Errorf("invalid DATA_SOURCE %q: valid values are %s, %s", cfg.DataSource, DataSourceESPN, DataSourceMemory)
	}

	if err := loadESPN(&cfg); err != nil {
		return Config{}, err
	}

	if cfg.TopScorersDefaultLimit, err = getEnvAsInt("TOPSCORERS_DEFAULT_LIMIT", 50); err != nil {
		return Config{}, fmt.Errorf("parse TOPSCORERS_DEFAULT_LIMIT: %w", err)
	}
	if cfg.TopScorersDefaultLimit == 0 {
		return Config{}, fmt.Errorf("TOPSCORERS_DEFAULT_LIMIT must be != 0, use -1 for unbounded")
	}
	if cfg.TopScorersMaxWorkers, err = getEnvAsInt("TOPSCORERS_MAX_WORKERS", 4); err != nil {
		return Config{}, fmt.Errorf("parse TOPSCORERS_MAX_WORKERS: %w", err)
	}
	if cfg.TopScorersMaxWorkers <= 0 {
		return Config{}, fmt.Errorf("TOPSCORERS_MAX_WORKERS must be > 0")
	}

	if err := loadObservability(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadESPN(cfg *Config) error {
	var err error

	cfg.ESPNGame = strings.ToLower(strings.TrimSpace(getEnv("ESPN_GAME", "ffl")))
	switch cfg.ESPNGame {
	case "ffl", "fba":
	default:
		return fmt.Errorf("invalid ESPN_GAME %q: valid values are ffl, fba", cfg.ESPNGame)
	}
	if (cfg.ESPNS2 == "") != (cfg.ESPNSWID == "") {
		return fmt.Errorf("ESPN_S2 and ESPN_SWID must be set together")
	}

	if cfg.ESPNScoringType, err = getEnvAsInt("ESPN_SCORING_TYPE", 3); err != nil {
		return fmt.Errorf("parse ESPN_SCORING_TYPE: %w", err)
	}
	if cfg.ESPNScoringType <= 0 {
		return fmt.Errorf("ESPN_SCORING_TYPE must be > 0")
	}
	if cfg.ESPNTimeout, err = getEnvAsDuration("ESPN_TIMEOUT", "20s"); err != nil {
		return err
	}
	if cfg.ESPNMaxRetries, err = getEnvAsInt("ESPN_MAX_RETRIES", 2); err != nil {
		return fmt.Errorf("parse ESPN_MAX_RETRIES: %w", err)
	}
	if cfg.ESPNMaxRetries < 0 {
		return fmt.Errorf("ESPN_MAX_RETRIES must be >= 0")
	}
	if cfg.ESPNPageLimit, err = getEnvAsInt("ESPN_PAGE_LIMIT", 1000); err != nil {
		return fmt.Errorf("parse ESPN_PAGE_LIMIT: %w", err)
	}
	if cfg.ESPNPageLimit <= 0 {
		return fmt.Errorf("ESPN_PAGE_LIMIT must be > 0")
	}
	if cfg.ESPNConstantsScrapeEnabled, err = getEnvAsBool("ESPN_CONSTANTS_SCRAPE_ENABLED", "false"); err != nil {
		return err
	}

	if cfg.ESPNCircuitEnabled, err = getEnvAsBool("ESPN_CIRCUIT_ENABLED", "true"); err != nil {
		return err
	}
	if cfg.ESPNCircuitFailureCount, err = getEnvAsInt("ESPN_CIRCUIT_FAILURE_COUNT", 5); err != nil {
		return fmt.Errorf("parse ESPN_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if cfg.ESPNCircuitFailureCount < 1 {
		return fmt.Errorf("ESPN_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	if cfg.ESPNCircuitOpenTimeout, err = getEnvAsDuration("ESPN_CIRCUIT_OPEN_TIMEOUT", "30s"); err != nil {
		return err
	}
	if cfg.ESPNCircuitHalfOpenMaxReq, err = getEnvAsInt("ESPN_CIRCUIT_HALF_OPEN_MAX_REQ", 1); err != nil {
		return fmt.Errorf("parse ESPN_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if cfg.ESPNCircuitHalfOpenMaxReq < 1 {
		return fmt.Errorf("ESPN_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	return nil
}

func loadObservability(cfg *Config) error {
	var err error

	if cfg.UptraceEnabled, err = getEnvAsBool("UPTRACE_ENABLED", "false"); err != nil {
		return err
	}
	cfg.UptraceDSN = strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	if cfg.UptraceLogsEnabled, err = getEnvAsBool("UPTRACE_LOGS_ENABLED", "false"); err != nil {
		return err
	}

	if cfg.PyroscopeEnabled, err = getEnvAsBool("PYROSCOPE_ENABLED", "false"); err != nil {
		return err
	}
	cfg.PyroscopeServerAddress = strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	cfg.PyroscopeBasicAuthUser = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", ""))
	cfg.PyroscopeBasicAuthPassword = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""))
	if cfg.PyroscopeUploadRate, err = getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", "15s"); err != nil {
		return err
	}
	return nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	return strconv.Atoi(value)
}

func getEnvAsBool(key, fallback string) (bool, error) {
	out, err := strconv.ParseBool(getEnv(key, fallback))
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return out, nil
}

// getEnvAsDuration parses a positive duration.
func getEnvAsDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	for _, item := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(parts[1]), "\"'")
		}
	}

	return ""
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
