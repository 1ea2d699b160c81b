package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/teamtrack/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                     string
	ServiceName                string
	ServiceVersion             string
	HTTPAddr                   string
	DBURL                      string
	DBDisablePreparedBinary    bool
	DBMaxOpenConns             int
	DBMaxIdleConns             int
	CacheEnabled               bool
	CacheTTL                   time.Duration
	CORSAllowedOrigins         []string
	ReadTimeout                time.Duration
	WriteTimeout               time.Duration
	PprofEnabled               bool
	PprofAddr                  string
	JWTSecret                  string
	JWTIssuer                  string
	JWTTTL                     time.Duration
	BcryptCost                 int
	StorageDir                 string
	PublicBaseURL              string
	MaxUploadBytes             int64
	NotificationWorkers        int
	NATSEnabled                bool
	NATSURL                    string
	NATSSubjectPrefix          string
	NATSMaxReconnects          int
	NATSReconnectWait          time.Duration
	NATSCircuitEnabled         bool
	NATSCircuitFailureCount    int
	NATSCircuitOpenTimeout     time.Duration
	NATSCircuitHalfOpenMaxReq  int
	WSPingInterval             time.Duration
	WSPongWait                 time.Duration
	WSSendBuffer               int
	UptraceEnabled             bool
	UptraceDSN                 string
	UptraceLogsEnabled         bool
	UptraceCaptureRequestBody  bool
	UptraceRequestBodyMaxBytes int
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
	LogLevel                   logging.Level
}

// MemoryMode reports whether repositories are kept in process memory.
func (c Config) MemoryMode() bool {
	return strings.TrimSpace(c.DBURL) == ""
}

// Load reads an optional .env file (existing variables win) and then the environment.
func Load() (Config, error) {
	if err := loadDotEnv(getEnv("APP_ENV_FILE", ".env")); err != nil {
		return Config{}, err
	}

	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}

	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}
	uptraceCaptureRequestBody, err := strconv.ParseBool(getEnv("UPTRACE_CAPTURE_REQUEST_BODY", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_CAPTURE_REQUEST_BODY: %w", err)
	}
	uptraceRequestBodyMaxBytes, err := getEnvAsInt("UPTRACE_REQUEST_BODY_MAX_BYTES", 8192)
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_REQUEST_BODY_MAX_BYTES: %w", err)
	}
	if uptraceRequestBodyMaxBytes <= 0 {
		return Config{}, fmt.Errorf("UPTRACE_REQUEST_BODY_MAX_BYTES must be > 0")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	jwtSecret := strings.TrimSpace(getEnv("JWT_SECRET", ""))
	if jwtSecret == "" {
		if appEnv == EnvProd {
			return Config{}, fmt.Errorf("JWT_SECRET is required when APP_ENV=%s", EnvProd)
		}
		jwtSecret = "teamtrack-dev-secret"
	}
	jwtTTL, err := time.ParseDuration(getEnv("JWT_TTL", "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse JWT_TTL: %w", err)
	}
	if jwtTTL <= 0 {
		return Config{}, fmt.Errorf("JWT_TTL must be > 0")
	}
	bcryptCost, err := getEnvAsInt("BCRYPT_COST", 10)
	if err != nil {
		return Config{}, fmt.Errorf("parse BCRYPT_COST: %w", err)
	}
	if bcryptCost < 4 || bcryptCost > 31 {
		return Config{}, fmt.Errorf("BCRYPT_COST must be between 4 and 31")
	}

	maxUploadBytes, err := getEnvAsInt("MAX_UPLOAD_BYTES", 11<<20)
	if err != nil {
		return Config{}, fmt.Errorf("parse MAX_UPLOAD_BYTES: %w", err)
	}
	if maxUploadBytes <= 0 {
		return Config{}, fmt.Errorf("MAX_UPLOAD_BYTES must be > 0")
	}
	notificationWorkers, err := getEnvAsInt("NOTIFICATION_WORKERS", 8)
	if err != nil {
		return Config{}, fmt.Errorf("parse NOTIFICATION_WORKERS: %w", err)
	}
	if notificationWorkers < 1 {
		return Config{}, fmt.Errorf("NOTIFICATION_WORKERS must be >= 1")
	}

	natsEnabled, err := strconv.ParseBool(getEnv("NATS_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NATS_ENABLED: %w", err)
	}
	natsURL := strings.TrimSpace(getEnv("NATS_URL", "nats://127.0.0.1:4222"))
	if natsEnabled && natsURL == "" {
		return Config{}, fmt.Errorf("NATS_URL is required when NATS_ENABLED=true")
	}
	natsMaxReconnects, err := getEnvAsInt("NATS_MAX_RECONNECTS", -1)
	if err != nil {
		return Config{}, fmt.Errorf("parse NATS_MAX_RECONNECTS: %w", err)
	}
	natsReconnectWait, err := time.ParseDuration(getEnv("NATS_RECONNECT_WAIT", "2s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NATS_RECONNECT_WAIT: %w", err)
	}
	if natsReconnectWait <= 0 {
		return Config{}, fmt.Errorf("NATS_RECONNECT_WAIT must be > 0")
	}
	natsCircuitEnabled, err := strconv.ParseBool(getEnv("NATS_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NATS_CIRCUIT_ENABLED: %w", err)
	}
	natsCircuitFailureCount, err := getEnvAsInt("NATS_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse NATS_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if natsCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("NATS_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	natsCircuitOpenTimeout, err := time.ParseDuration(getEnv("NATS_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NATS_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if natsCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("NATS_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	natsCircuitHalfOpenMaxReq, err := getEnvAsInt("NATS_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse NATS_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if natsCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("NATS_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	wsPingInterval, err := time.ParseDuration(getEnv("WS_PING_INTERVAL", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse WS_PING_INTERVAL: %w", err)
	}
	wsPongWait, err := time.ParseDuration(getEnv("WS_PONG_WAIT", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse WS_PONG_WAIT: %w", err)
	}
	if wsPingInterval <= 0 || wsPongWait <= wsPingInterval {
		return Config{}, fmt.Errorf("WS_PONG_WAIT must be greater than WS_PING_INTERVAL")
	}
	wsSendBuffer, err := getEnvAsInt("WS_SEND_BUFFER", 64)
	if err != nil {
		return Config{}, fmt.Errorf("parse WS_SEND_BUFFER: %w", err)
	}
	if wsSendBuffer < 1 {
		return Config{}, fmt.Errorf("WS_SEND_BUFFER must be >= 1")
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                getEnv("APP_SERVICE_NAME", "teamtrack-api"),
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                   getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:                      strings.TrimSpace(os.Getenv("DB_URL")),
		CORSAllowedOrigins:         splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		PprofEnabled:               pprofEnabled,
		PprofAddr:                  pprofAddr,
		JWTSecret:                  jwtSecret,
		JWTIssuer:                  strings.TrimSpace(getEnv("JWT_ISSUER", "teamtrack")),
		JWTTTL:                     jwtTTL,
		BcryptCost:                 bcryptCost,
		StorageDir:                 strings.TrimSpace(getEnv("STORAGE_DIR", "./data/storage")),
		PublicBaseURL:              strings.TrimRight(strings.TrimSpace(getEnv("PUBLIC_BASE_URL", "http://localhost:8080")), "/"),
		MaxUploadBytes:             int64(maxUploadBytes),
		NotificationWorkers:        notificationWorkers,
		NATSEnabled:                natsEnabled,
		NATSURL:                    natsURL,
		NATSSubjectPrefix:          strings.TrimSpace(getEnv("NATS_SUBJECT_PREFIX", "teamtrack.changes")),
		NATSMaxReconnects:          natsMaxReconnects,
		NATSReconnectWait:          natsReconnectWait,
		NATSCircuitEnabled:         natsCircuitEnabled,
		NATSCircuitFailureCount:    natsCircuitFailureCount,
		NATSCircuitOpenTimeout:     natsCircuitOpenTimeout,
		NATSCircuitHalfOpenMaxReq:  natsCircuitHalfOpenMaxReq,
		WSPingInterval:             wsPingInterval,
		WSPongWait:                 wsPongWait,
		WSSendBuffer:               wsSendBuffer,
		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		UptraceLogsEnabled:         uptraceLogsEnabled,
		UptraceCaptureRequestBody:  uptraceCaptureRequestBody,
		UptraceRequestBodyMaxBytes: uptraceRequestBodyMaxBytes,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if cfg.StorageDir == "" {
		return Config{}, fmt.Errorf("STORAGE_DIR cannot be empty")
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}
	cfg.DBDisablePreparedBinary = dbDisablePreparedBinary

	if cfg.DBMaxOpenConns, err = getEnvAsInt("DB_MAX_OPEN_CONNS", 20); err != nil {
		return Config{}, fmt.Errorf("parse DB_MAX_OPEN_CONNS: %w", err)
	}
	if cfg.DBMaxIdleConns, err = getEnvAsInt("DB_MAX_IDLE_CONNS", 5); err != nil {
		return Config{}, fmt.Errorf("parse DB_MAX_IDLE_CONNS: %w", err)
	}
	if cfg.DBMaxOpenConns < 1 || cfg.DBMaxIdleConns < 0 || cfg.DBMaxIdleConns > cfg.DBMaxOpenConns {
		return Config{}, fmt.Errorf("DB_MAX_IDLE_CONNS must be within 0..DB_MAX_OPEN_CONNS and DB_MAX_OPEN_CONNS >= 1")
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}
	cfg.CacheEnabled = cacheEnabled
	cfg.CacheTTL = cacheTTL

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}

	// Uploads up to 10MB need a longer write window than JSON endpoints.
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	cfg.ReadTimeout = readTimeout
	cfg.WriteTimeout = writeTimeout
	cfg.LogLevel = parseLogLevel(getEnv("APP_LOG_LEVEL", "info"))

	return cfg, nil
}

func loadDotEnv(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
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

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
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

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
