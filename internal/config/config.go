package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mathieu-neron/TrendScope/internal/model"
)

const defaultCountries = "CA=Canada,GB=Great Britain,US=United States,MX=Mexico,DE=Germany,FR=France,JP=Japan"

// Row sources.
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

type Config struct {
	Port         string
	LogLevel     string
	Environment  string
	CORSOrigins  string
	DataDir      string
	Countries    []model.CountrySource
	SampleEvery  int
	DefaultField model.TextField
	RowSource    string
	DatabaseURL  string
	RedisURL     string
	CacheTTL     time.Duration
	WarmInterval time.Duration
}

func Load() *Config {
	field := model.TextField(getEnv("DEFAULT_FIELD", string(model.FieldTitle)))
	if !field.Valid() {
		field = model.FieldTitle
	}

	return &Config{
		Port:         getEnv("PORT", "8080"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		CORSOrigins:  getEnv("CORS_ORIGINS", "*"),
		DataDir:      getEnv("DATA_DIR", "./data"),
		Countries:    ParseCountries(getEnv("COUNTRIES", defaultCountries)),
		SampleEvery:  max(getEnvInt("SAMPLE_EVERY", 1), 1),
		DefaultField: field,
		RowSource:    getEnv("ROW_SOURCE", SourceFile),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		RedisURL:     getEnv("REDIS_URL", ""),
		CacheTTL:     getEnvDuration("HIERARCHY_CACHE_TTL", 30*time.Minute),
		WarmInterval: getEnvDuration("HIERARCHY_WARM_INTERVAL", 15*time.Minute),
	}
}

// ParseCountries parses "CA=Canada,GB=Great Britain" into ordered sources.
// Entries without a name use the code as the name.
func ParseCountries(s string) []model.CountrySource {
	var out []model.CountrySource
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		code, name, found := strings.Cut(part, "=")
		code = strings.ToUpper(strings.TrimSpace(code))
		name = strings.TrimSpace(name)
		if !found || name == "" {
			name = code
		}
		out = append(out, model.CountrySource{Code: code, Name: name})
	}
	return out
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
