package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DataSource != DataSourceESPN {
		t.Fatalf("unexpected default data source: %q", cfg.DataSource)
	}
	if cfg.ESPNGame != "ffl" || cfg.ESPNScoringType != 3 {
		t.Fatalf("unexpected espn defaults: game=%q scoring=%d", cfg.ESPNGame, cfg.ESPNScoringType)
	}
	if cfg.TopScorersDefaultLimit != 50 || cfg.TopScorersMaxWorkers != 4 {
		t.Fatalf("unexpected top scorer defaults: limit=%d workers=%d", cfg.TopScorersDefaultLimit, cfg.TopScorersMaxWorkers)
	}
	if cfg.ESPNConstantsScrapeEnabled {
		t.Fatalf("constants scrape must be opt-in")
	}
	if cfg.WriteTimeout != 30*time.Second {
		t.Fatalf("unexpected write timeout: %s", cfg.WriteTimeout)
	}
}

func TestLoad_DataSourceValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("memory accepted case-insensitively", func(t *testing.T) {
		t.Setenv("DATA_SOURCE", "Memory")
		t.Setenv("MEMORY_SEED_PATH", " ./seed.json ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.DataSource != DataSourceMemory || cfg.MemorySeedPath != "./seed.json" {
			t.Fatalf("unexpected data source config: %q %q", cfg.DataSource, cfg.MemorySeedPath)
		}
	})

	t.Run("unknown rejected", func(t *testing.T) {
		t.Setenv("DATA_SOURCE", "postgres")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown DATA_SOURCE")
		}
	})
}

func TestLoad_ESPNConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("cookies must come in pairs", func(t *testing.T) {
		t.Setenv("ESPN_S2", "s2")
		t.Setenv("ESPN_SWID", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when only ESPN_S2 is set")
		}
	})

	t.Run("invalid game", func(t *testing.T) {
		t.Setenv("ESPN_GAME", "nhl")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unsupported ESPN_GAME")
		}
	})

	t.Run("negative retries", func(t *testing.T) {
		t.Setenv("ESPN_MAX_RETRIES", "-1")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for negative ESPN_MAX_RETRIES")
		}
	})

	t.Run("valid values", func(t *testing.T) {
		t.Setenv("ESPN_GAME", "FBA")
		t.Setenv("ESPN_S2", "s2")
		t.Setenv("ESPN_SWID", "{swid}")
		t.Setenv("ESPN_TIMEOUT", "5s")
		t.Setenv("ESPN_MAX_RETRIES", "0")
		t.Setenv("ESPN_CIRCUIT_OPEN_TIMEOUT", "1m")
		t.Setenv("ESPN_CONSTANTS_SCRAPE_ENABLED", "true")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.ESPNGame != "fba" || cfg.ESPNS2 != "s2" || cfg.ESPNSWID != "{swid}" {
			t.Fatalf("unexpected espn identity config: %+v", cfg)
		}
		if cfg.ESPNTimeout != 5*time.Second || cfg.ESPNMaxRetries != 0 || cfg.ESPNCircuitOpenTimeout != time.Minute {
			t.Fatalf("unexpected espn transport config: timeout=%s retries=%d open=%s", cfg.ESPNTimeout, cfg.ESPNMaxRetries, cfg.ESPNCircuitOpenTimeout)
		}
		if !cfg.ESPNConstantsScrapeEnabled {
			t.Fatalf("expected constants scrape enabled")
		}
	})
}

func TestLoad_TopScorersConfig(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("zero limit rejected", func(t *testing.T) {
		t.Setenv("TOPSCORERS_DEFAULT_LIMIT", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for zero default limit")
		}
	})

	t.Run("unbounded limit allowed", func(t *testing.T) {
		t.Setenv("TOPSCORERS_DEFAULT_LIMIT", "-1")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.TopScorersDefaultLimit != -1 {
			t.Fatalf("unexpected default limit: %d", cfg.TopScorersDefaultLimit)
		}
	})

	t.Run("workers must be positive", func(t *testing.T) {
		t.Setenv("TOPSCORERS_MAX_WORKERS", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for zero workers")
		}
	})
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `foo=bar, uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected uptrace dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_SERVICE_NAME", "fantasy-stats-api-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "fantasy-stats-api-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[0] != "https://a.example.com" || cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("only separators rejected", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " , ,")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for empty CORS origins")
		}
	})
}

func TestLoad_DurationsMustBePositive(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_READ_TIMEOUT", "0s")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for zero APP_READ_TIMEOUT")
	}
}

func TestLoad_SwaggerDefaultsByEnv(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.SwaggerEnabled {
		t.Fatalf("swagger must be off by default in prod")
	}

	t.Setenv("SWAGGER_ENABLED", "true")
	if cfg, err = Load(); err != nil || !cfg.SwaggerEnabled {
		t.Fatalf("expected explicit SWAGGER_ENABLED to win, cfg=%v err=%v", cfg.SwaggerEnabled, err)
	}

	t.Setenv("SWAGGER_ENABLED", "maybe")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid SWAGGER_ENABLED")
	}
}
