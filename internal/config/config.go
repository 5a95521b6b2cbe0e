package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/AboladeOluwaseun/epl-stats-bot/internal/platform/logging"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/platform/resilience"
)

// Config stores runtime configuration for the API server and the ingest CLI.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	HTTPAddr       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	LogLevel       logging.Level

	DBURL                   string
	DBMaxOpenConns          int
	DBDisablePreparedBinary bool

	FootballAPIKey               string
	FootballAPIBaseURL           string
	FootballAPITimeout           time.Duration
	FootballAPIMaxRetries        int
	FootballAPIBaseBackoff       time.Duration
	FootballAPIRateLimitCooldown time.Duration
	FootballAPIThrottleDelay     time.Duration
	FootballAPIRequestsPerMinute int
	FootballAPICircuit           resilience.CircuitBreakerConfig

	LeagueID             int64
	CurrentSeason        int
	HistoricalFromSeason int
	HistoricalToSeason   int
	InterRequestDelay    time.Duration
	SeasonDelay          time.Duration
	MaxProfilePages      int
	DecodeWorkers        int

	InternalJobToken   string
	CacheEnabled       bool
	CacheTTL           time.Duration
	CORSAllowedOrigins []string

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

	PprofEnabled bool
	PprofAddr    string
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("APP_SERVICE_NAME", "epl-stats-bot"),
		ServiceVersion:     getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:           getEnv("APP_HTTP_ADDR", ":8080"),
		LogLevel:           parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		DBURL:              strings.TrimSpace(getEnv("DB_URL", "")),
		FootballAPIKey:     strings.TrimSpace(getEnv("FOOTBALL_API_KEY", "")),
		FootballAPIBaseURL: strings.TrimSpace(getEnv("FOOTBALL_API_BASE_URL", "https://v3.football.api-sports.io")),
		InternalJobToken:   strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}
	if cfg.DBURL == "" {
		cfg.DBURL = buildPostgresURL()
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	if cfg.ReadTimeout, err = getEnvAsDuration("APP_READ_TIMEOUT", "10s"); err != nil {
		return Config{}, err
	}
	// Job endpoints run fetch loops that sleep between requests.
	if cfg.WriteTimeout, err = getEnvAsDuration("APP_WRITE_TIMEOUT", "30m"); err != nil {
		return Config{}, err
	}

	if cfg.DBMaxOpenConns, err = getEnvAsInt("DB_MAX_OPEN_CONNS", 10); err != nil {
		return Config{}, fmt.Errorf("parse DB_MAX_OPEN_CONNS: %w", err)
	}
	if cfg.DBMaxOpenConns < 1 {
		return Config{}, fmt.Errorf("DB_MAX_OPEN_CONNS must be >= 1")
	}
	if cfg.DBDisablePreparedBinary, err = getEnvAsBool("DB_DISABLE_PREPARED_BINARY_RESULT", "true"); err != nil {
		return Config{}, err
	}

	if err := loadFootballAPI(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadFetch(&cfg); err != nil {
		return Config{}, err
	}

	if cfg.CacheEnabled, err = getEnvAsBool("CACHE_ENABLED", "true"); err != nil {
		return Config{}, err
	}
	if cfg.CacheTTL, err = getEnvAsDuration("CACHE_TTL", "60s"); err != nil {
		return Config{}, err
	}

	if err := loadObservability(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadFootballAPI(cfg *Config) error {
	var err error
	if cfg.FootballAPITimeout, err = getEnvAsDuration("FOOTBALL_API_TIMEOUT", "30s"); err != nil {
		return err
	}
	if cfg.FootballAPIMaxRetries, err = getEnvAsInt("FOOTBALL_API_MAX_RETRIES", 3); err != nil {
		return fmt.Errorf("parse FOOTBALL_API_MAX_RETRIES: %w", err)
	}
	if cfg.FootballAPIMaxRetries < 0 {
		return fmt.Errorf("FOOTBALL_API_MAX_RETRIES must be >= 0")
	}
	if cfg.FootballAPIBaseBackoff, err = getEnvAsDuration("FOOTBALL_API_BASE_BACKOFF", "1s"); err != nil {
		return err
	}
	if cfg.FootballAPIRateLimitCooldown, err = getEnvAsDuration("FOOTBALL_API_RATE_LIMIT_COOLDOWN", "60s"); err != nil {
		return err
	}
	if cfg.FootballAPIThrottleDelay, err = getEnvAsDuration("FOOTBALL_API_THROTTLE_DELAY", "6s"); err != nil {
		return err
	}
	if cfg.FootballAPIRequestsPerMinute, err = getEnvAsInt("FOOTBALL_API_REQUESTS_PER_MINUTE", 30); err != nil {
		return fmt.Errorf("parse FOOTBALL_API_REQUESTS_PER_MINUTE: %w", err)
	}
	if cfg.FootballAPIRequestsPerMinute < 0 {
		return fmt.Errorf("FOOTBALL_API_REQUESTS_PER_MINUTE must be >= 0")
	}

	circuit := resilience.DefaultCircuitBreakerConfig()
	if circuit.Enabled, err = getEnvAsBool("FOOTBALL_API_CIRCUIT_ENABLED", "true"); err != nil {
		return err
	}
	if circuit.FailureThreshold, err = getEnvAsInt("FOOTBALL_API_CIRCUIT_FAILURE_COUNT", circuit.FailureThreshold); err != nil {
		return fmt.Errorf("parse FOOTBALL_API_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if circuit.FailureThreshold < 1 {
		return fmt.Errorf("FOOTBALL_API_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	if circuit.OpenTimeout, err = getEnvAsDuration("FOOTBALL_API_CIRCUIT_OPEN_TIMEOUT", "30s"); err != nil {
		return err
	}
	if circuit.HalfOpenMaxReq, err = getEnvAsInt("FOOTBALL_API_CIRCUIT_HALF_OPEN_MAX_REQ", circuit.HalfOpenMaxReq); err != nil {
		return fmt.Errorf("parse FOOTBALL_API_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if err := circuit.Validate(); err != nil {
		return fmt.Errorf("FOOTBALL_API_CIRCUIT_*: %w", err)
	}
	cfg.FootballAPICircuit = circuit

	return nil
}

func loadFetch(cfg *Config) error {
	leagueID, err := getEnvAsInt("EPL_LEAGUE_ID", 39)
	if err != nil {
		return fmt.Errorf("parse EPL_LEAGUE_ID: %w", err)
	}
	if leagueID <= 0 {
		return fmt.Errorf("EPL_LEAGUE_ID must be > 0")
	}
	cfg.LeagueID = int64(leagueID)

	if cfg.CurrentSeason, err = getEnvAsInt("CURRENT_SEASON", 2024); err != nil {
		return fmt.Errorf("parse CURRENT_SEASON: %w", err)
	}
	if cfg.HistoricalFromSeason, err = getEnvAsInt("HISTORICAL_FROM_SEASON", 2010); err != nil {
		return fmt.Errorf("parse HISTORICAL_FROM_SEASON: %w", err)
	}
	if cfg.HistoricalToSeason, err = getEnvAsInt("HISTORICAL_TO_SEASON", 2023); err != nil {
		return fmt.Errorf("parse HISTORICAL_TO_SEASON: %w", err)
	}
	if cfg.HistoricalFromSeason > cfg.HistoricalToSeason {
		return fmt.Errorf("HISTORICAL_FROM_SEASON must be <= HISTORICAL_TO_SEASON")
	}

	if cfg.InterRequestDelay, err = getEnvAsDuration("FETCH_INTER_REQUEST_DELAY", "7s"); err != nil {
		return err
	}
	if cfg.SeasonDelay, err = getEnvAsDuration("FETCH_SEASON_DELAY", "2s"); err != nil {
		return err
	}
	if cfg.MaxProfilePages, err = getEnvAsInt("FETCH_MAX_PROFILE_PAGES", 60); err != nil {
		return fmt.Errorf("parse FETCH_MAX_PROFILE_PAGES: %w", err)
	}
	if cfg.MaxProfilePages < 1 {
		return fmt.Errorf("FETCH_MAX_PROFILE_PAGES must be >= 1")
	}
	if cfg.DecodeWorkers, err = getEnvAsInt("PROCESS_DECODE_WORKERS", 1); err != nil {
		return fmt.Errorf("parse PROCESS_DECODE_WORKERS: %w", err)
	}
	if cfg.DecodeWorkers < 1 {
		return fmt.Errorf("PROCESS_DECODE_WORKERS must be >= 1")
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
	if cfg.UptraceLogsEnabled, err = getEnvAsBool("UPTRACE_LOGS_ENABLED", "true"); err != nil {
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
	cfg.PyroscopeAuthToken = strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", ""))
	cfg.PyroscopeBasicAuthUser = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", ""))
	cfg.PyroscopeBasicAuthPassword = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""))
	if cfg.PyroscopeUploadRate, err = getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", "15s"); err != nil {
		return err
	}

	if cfg.PprofEnabled, err = getEnvAsBool("PPROF_ENABLED", "false"); err != nil {
		return err
	}
	cfg.PprofAddr = strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if cfg.PprofEnabled && cfg.PprofAddr == "" {
		return fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	return nil
}

// buildPostgresURL assembles a DSN from the discrete POSTGRES_* variables.
func buildPostgresURL() string {
	host := getEnv("POSTGRES_HOST", "localhost")
	port := getEnv("POSTGRES_PORT", "5432")
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(getEnv("POSTGRES_USER", "postgres"), getEnv("POSTGRES_PASSWORD", "postgres")),
		Host:     net.JoinHostPort(host, port),
		Path:     "/" + getEnv("POSTGRES_DB", "epl_stats"),
		RawQuery: "sslmode=" + getEnv("POSTGRES_SSLMODE", "disable"),
	}
	return u.String()
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

func getEnvAsBool(key, fallback string) (bool, error) {
	out, err := strconv.ParseBool(getEnv(key, fallback))
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return out, nil
}

// getEnvAsDuration rejects zero and negative durations.
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
