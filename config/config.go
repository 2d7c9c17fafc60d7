package config

import (
	"fmt"
	"log/slog"
	"time"
)

type Config struct {
	Database    DatabaseConfig
	Meilisearch MeilisearchConfig
	HTTP        HTTPConfig
	Trending    TrendingConfig
	Indexer     IndexerConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	Timeout  time.Duration
	SSL      SSLConfig
}

// SSLConfig holds the TLS material for the database connection.
type SSLConfig struct {
	Mode     string
	RootCert string
	Cert     string
	Key      string
}

type MeilisearchConfig struct {
	Host                string
	APIKey              string
	Index               string
	RecommendationIndex string
	Timeout             time.Duration
}

type HTTPConfig struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	RequestTimeout    time.Duration
}

// TrendingConfig anchors the trending windows in the product's home
// market time zone.
type TrendingConfig struct {
	Timezone string
}

type IndexerConfig struct {
	Interval   time.Duration
	BatchSize  int
	RetryDelay time.Duration
	MaxRetries int
}

func Load() (*Config, error) {
	dbConfig := DatabaseConfig{
		Host:     getEnvRequired("DB_HOST"),
		Port:     getEnvRequired("DB_PORT"),
		Name:     getEnvRequired("DB_NAME"),
		User:     getEnvRequired("NEWSCOUT_DB_USER"),
		Password: getEnvRequired("NEWSCOUT_DB_PASSWORD"),
		Timeout:  durationEnv("DB_TIMEOUT", 10*time.Second),
		SSL: SSLConfig{
			Mode:     getEnvOrDefault("DB_SSL_MODE", "prefer"),
			RootCert: getEnvOrDefault("DB_SSL_ROOT_CERT", ""),
			Cert:     getEnvOrDefault("DB_SSL_CERT", ""),
			Key:      getEnvOrDefault("DB_SSL_KEY", ""),
		},
	}

	if err := dbConfig.ValidateSSLConfig(); err != nil {
		slog.Error("Invalid SSL configuration", "error", err)
		return nil, fmt.Errorf("SSL configuration error: %w", err)
	}

	cfg := &Config{
		Database: dbConfig,
		Meilisearch: MeilisearchConfig{
			Host:                getEnvRequired("MEILISEARCH_HOST"),
			APIKey:              getEnvOrDefault("MEILISEARCH_API_KEY", ""),
			Index:               getEnvOrDefault("MEILISEARCH_INDEX", "articles"),
			RecommendationIndex: getEnvOrDefault("MEILISEARCH_RECOMMENDATION_INDEX", "recommendations"),
			Timeout:             durationEnv("MEILI_TIMEOUT", 15*time.Second),
		},
		HTTP: HTTPConfig{
			Addr:              stringEnv("HTTP_ADDR", ":9300"),
			ReadHeaderTimeout: durationEnv("HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
			RequestTimeout:    durationEnv("HTTP_REQUEST_TIMEOUT", 30*time.Second),
		},
		Trending: TrendingConfig{
			Timezone: getEnvOrDefault("TRENDING_TIMEZONE", "Asia/Kolkata"),
		},
		Indexer: IndexerConfig{
			Interval:   durationEnv("INDEX_INTERVAL", 1*time.Minute),
			BatchSize:  intEnv("INDEX_BATCH_SIZE", 200),
			RetryDelay: durationEnv("INDEX_RETRY_INTERVAL", 1*time.Minute),
			MaxRetries: intEnv("INDEX_MAX_RETRIES", 5),
		},
	}

	slog.Info("Configuration loaded",
		"db_host", cfg.Database.Host,
		"db_sslmode", cfg.Database.SSL.Mode,
		"meilisearch_host", cfg.Meilisearch.Host,
		"trending_timezone", cfg.Trending.Timezone,
	)

	return cfg, nil
}

// Location resolves the trending time zone, falling back to UTC on an
// unknown zone name.
func (c TrendingConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		slog.Warn("Unknown trending timezone, falling back to UTC", "timezone", c.Timezone)
		return time.UTC
	}
	return loc
}

func (c *DatabaseConfig) GetDatabaseURL() string {
	baseURL := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s",
		c.User, c.Password, c.Host, c.Port, c.Name,
	)

	params := fmt.Sprintf("?sslmode=%s", c.SSL.Mode)

	if c.SSL.RootCert != "" {
		params += fmt.Sprintf("&sslrootcert=%s", c.SSL.RootCert)
	}
	if c.SSL.Cert != "" {
		params += fmt.Sprintf("&sslcert=%s", c.SSL.Cert)
	}
	if c.SSL.Key != "" {
		params += fmt.Sprintf("&sslkey=%s", c.SSL.Key)
	}

	return baseURL + params
}

func (c *DatabaseConfig) ValidateSSLConfig() error {
	switch c.SSL.Mode {
	case "disable":
		return fmt.Errorf("SSL disable mode is not allowed")
	case "allow", "prefer":
		return nil
	case "require":
		return nil
	case "verify-ca", "verify-full":
		if c.SSL.RootCert == "" {
			return fmt.Errorf("SSL root certificate required for mode %s", c.SSL.Mode)
		}
		return nil
	default:
		return fmt.Errorf("invalid SSL mode: %s", c.SSL.Mode)
	}
}
