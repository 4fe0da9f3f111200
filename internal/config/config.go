package config

import (
	"errors"
	"net/url"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
)

const (
	defaultTopologyURL = "https://dl.dropboxusercontent.com/s/r4vj2zzs6rcr9bg/world-110m2.json?dl=0"
	defaultStrikesURL  = "https://dl.dropboxusercontent.com/s/kt6dtz4n5276zqv/meteorite-strike-data.json?dl=0"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	TopologyURL    string
	TopologyObject string
	StrikesURL     string
	OutputPath     string

	Serve           bool
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// RefreshInterval re-renders the served map periodically. Zero disables it.
	RefreshInterval time.Duration

	TooltipCacheSize int

	// Optional impact stream. Disabled when KafkaBrokers is empty.
	KafkaBrokers     []string
	KafkaImpactTopic string
}

// KafkaEnabled reports whether plotted impacts should be published to Kafka.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// Load reads configuration from environment variables, applying defaults where unset.
// A .env file in the working directory is honored when present; real
// environment variables take precedence over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	serve := false
	if v := os.Getenv("SERVE"); v != "" {
		serve, err = strconv.ParseBool(v)
		if err != nil {
			return nil, errors.New("invalid SERVE")
		}
	}

	refresh, err := parseRefreshInterval()
	if err != nil {
		return nil, err
	}

	cacheSize, err := parseTooltipCacheSize()
	if err != nil {
		return nil, err
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}

	cfg := &Config{
		TopologyURL:      sharedcfg.EnvOrDefault("TOPOLOGY_URL", defaultTopologyURL),
		TopologyObject:   sharedcfg.EnvOrDefault("TOPOLOGY_OBJECT", "countries"),
		StrikesURL:       sharedcfg.EnvOrDefault("STRIKES_URL", defaultStrikesURL),
		OutputPath:       sharedcfg.EnvOrDefault("OUTPUT_PATH", "meteorites.html"),
		Serve:            serve,
		HTTPAddr:         sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:         sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:        sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:  shutdownTimeout,
		RefreshInterval:  refresh,
		TooltipCacheSize: cacheSize,
		KafkaBrokers:     brokers,
		KafkaImpactTopic: sharedcfg.EnvOrDefault("KAFKA_IMPACT_TOPIC", "meteorite-impacts"),
	}

	if !validURL(cfg.TopologyURL) {
		return nil, errors.New("invalid TOPOLOGY_URL")
	}
	if !validURL(cfg.StrikesURL) {
		return nil, errors.New("invalid STRIKES_URL")
	}
	if cfg.TopologyObject == "" {
		return nil, errors.New("TOPOLOGY_OBJECT is required")
	}
	if cfg.OutputPath == "" && !cfg.Serve {
		return nil, errors.New("OUTPUT_PATH is required unless SERVE is true")
	}
	if cfg.KafkaEnabled() && cfg.KafkaImpactTopic == "" {
		return nil, errors.New("KAFKA_IMPACT_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

func parseRefreshInterval() (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault("REFRESH_INTERVAL", "0s"))
	if err != nil || d < 0 {
		return 0, errors.New("invalid REFRESH_INTERVAL")
	}
	return d, nil
}

func parseTooltipCacheSize() (int, error) {
	s := os.Getenv("TOOLTIP_CACHE_SIZE")
	if s == "" {
		return 1000, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errors.New("invalid TOOLTIP_CACHE_SIZE")
	}
	return n, nil
}

func validURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
