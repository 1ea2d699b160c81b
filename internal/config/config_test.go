package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
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
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "x-other=1, uptrace-dsn='https://token@api.uptrace.dev?grpc=4317'")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected uptrace dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("DB_URL", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("NATS_ENABLED", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.MemoryMode() {
		t.Fatalf("expected memory mode without DB_URL")
	}
	if cfg.JWTSecret == "" {
		t.Fatalf("expected dev jwt secret fallback")
	}
	if cfg.JWTTTL != 24*time.Hour {
		t.Fatalf("unexpected default jwt ttl: %s", cfg.JWTTTL)
	}
	if cfg.NATSEnabled {
		t.Fatalf("expected NATSEnabled=false by default")
	}
	if cfg.NATSSubjectPrefix != "teamtrack.changes" {
		t.Fatalf("unexpected nats subject prefix: %q", cfg.NATSSubjectPrefix)
	}
	if cfg.ServiceName != "teamtrack-api" {
		t.Fatalf("unexpected service name: %q", cfg.ServiceName)
	}
}

func TestLoad_ProdRequiresJWTSecret(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when APP_ENV=prod without JWT_SECRET")
	}

	t.Setenv("JWT_SECRET", "prod-secret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.JWTSecret != "prod-secret" {
		t.Fatalf("unexpected jwt secret")
	}
}

func TestLoad_BcryptCostBounds(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Setenv("BCRYPT_COST", "2")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for BCRYPT_COST below minimum")
	}

	t.Setenv("BCRYPT_COST", "12")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.BcryptCost != 12 {
		t.Fatalf("unexpected bcrypt cost: %d", cfg.BcryptCost)
	}
}

func TestLoad_NATSConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("enabled with values", func(t *testing.T) {
		t.Setenv("NATS_ENABLED", "true")
		t.Setenv("NATS_URL", "nats://nats:4222")
		t.Setenv("NATS_CIRCUIT_FAILURE_COUNT", "3")
		t.Setenv("NATS_RECONNECT_WAIT", "1s")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.NATSEnabled || cfg.NATSURL != "nats://nats:4222" {
			t.Fatalf("unexpected nats config: %+v", cfg)
		}
		if cfg.NATSCircuitFailureCount != 3 {
			t.Fatalf("unexpected circuit failure count: %d", cfg.NATSCircuitFailureCount)
		}
		if cfg.NATSReconnectWait != time.Second {
			t.Fatalf("unexpected reconnect wait: %s", cfg.NATSReconnectWait)
		}
	})

	t.Run("invalid circuit failure count", func(t *testing.T) {
		t.Setenv("NATS_CIRCUIT_FAILURE_COUNT", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for NATS_CIRCUIT_FAILURE_COUNT=0")
		}
	})
}

func TestLoad_WebSocketTimingValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("WS_PING_INTERVAL", "30s")
	t.Setenv("WS_PONG_WAIT", "10s")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when WS_PONG_WAIT <= WS_PING_INTERVAL")
	}
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_SERVICE_NAME", "teamtrack-api-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "teamtrack-api-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

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
		if cfg.CORSAllowedOrigins[0] != "https://a.example.com" {
			t.Fatalf("unexpected first CORS origin: %s", cfg.CORSAllowedOrigins[0])
		}
		if cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected second CORS origin: %s", cfg.CORSAllowedOrigins[1])
		}
	})
}

func TestLoad_DBDisablePreparedBinaryResultParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default true", func(t *testing.T) {
		t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.DBDisablePreparedBinary {
			t.Fatalf("expected DBDisablePreparedBinary=true by default")
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "not-bool")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid DB_DISABLE_PREPARED_BINARY_RESULT")
		}
	})
}

func TestLoad_DBPoolBounds(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.DBMaxOpenConns != 20 || cfg.DBMaxIdleConns != 5 {
			t.Fatalf("unexpected pool defaults open=%d idle=%d", cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
		}
	})

	t.Run("idle above open", func(t *testing.T) {
		t.Setenv("DB_MAX_OPEN_CONNS", "4")
		t.Setenv("DB_MAX_IDLE_CONNS", "8")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when idle exceeds open")
		}
	})
}

func TestLoad_CacheConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("CACHE_ENABLED", "")
		t.Setenv("CACHE_TTL", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.CacheEnabled {
			t.Fatalf("expected cache enabled by default")
		}
		if cfg.CacheTTL != 60*time.Second {
			t.Fatalf("unexpected default cache ttl: %s", cfg.CacheTTL)
		}
	})

	t.Run("invalid ttl", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "bad")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid CACHE_TTL")
		}
	})
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("TEAMTRACK_TEST_DOTENV=from-file\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_ENV_FILE", path)
	// godotenv sets the variable directly, so register cleanup through t.Setenv first.
	t.Setenv("TEAMTRACK_TEST_DOTENV", "")
	os.Unsetenv("TEAMTRACK_TEST_DOTENV")

	if _, err := Load(); err != nil {
		t.Fatalf("load config: %v", err)
	}
	if got := os.Getenv("TEAMTRACK_TEST_DOTENV"); got != "from-file" {
		t.Fatalf("expected value from env file, got %q", got)
	}
}

func TestLoad_MissingDotEnvIsIgnored(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	if _, err := Load(); err != nil {
		t.Fatalf("expected missing env file to be ignored: %v", err)
	}
}
