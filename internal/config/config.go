package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Visualization modes the host can render in. The mode used to live in a
// browser key-value store; it is now an explicit configuration value
// injected at construction and persisted by the host application.
const (
	VisModeMarkers = "markers"
	VisModeHeatmap = "heatmap"
)

// Config holds all service settings, populated from environment variables
// (optionally seeded from a .env file).
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	VisMode       string
	MaxAnimations int
	StyleConfig   string // optional YAML style override path

	SyntheticSeed   int64
	SyntheticStorms int

	// Kafka ingest configuration (disabled by default; the host serves
	// synthetic data when off).
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroupID string
}

// Load reads configuration from the environment, applying defaults where
// unset. A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	maxAnimations, err := parseInt("MAX_ANIMATIONS", 5)
	if err != nil {
		return nil, err
	}

	seed, err := parseInt64("SYNTHETIC_SEED", 1)
	if err != nil {
		return nil, err
	}

	syntheticStorms, err := parseInt("SYNTHETIC_STORMS", 4)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		VisMode:       envOrDefault("VIS_MODE", VisModeMarkers),
		MaxAnimations: maxAnimations,
		StyleConfig:   os.Getenv("STYLE_CONFIG"),

		SyntheticSeed:   seed,
		SyntheticStorms: syntheticStorms,

		KafkaEnabled: envOrDefault("KAFKA_ENABLED", "false") == "true",
		KafkaBrokers: splitList(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:   envOrDefault("KAFKA_TOPIC", "storm-track-updates"),
		KafkaGroupID: envOrDefault("KAFKA_GROUP_ID", "storm-track-viz"),
	}

	if cfg.VisMode != VisModeMarkers && cfg.VisMode != VisModeHeatmap {
		return nil, fmt.Errorf("invalid VIS_MODE %q", cfg.VisMode)
	}
	if cfg.MaxAnimations <= 0 {
		return nil, errors.New("MAX_ANIMATIONS must be positive")
	}
	if cfg.SyntheticStorms < 0 {
		return nil, errors.New("SYNTHETIC_STORMS must not be negative")
	}
	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required when KAFKA_ENABLED is true")
		}
		if cfg.KafkaTopic == "" {
			return nil, errors.New("KAFKA_TOPIC is required when KAFKA_ENABLED is true")
		}
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, s)
	}
	return d, nil
}

func parseInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, s)
	}
	return n, nil
}

func parseInt64(key string, fallback int64) (int64, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, s)
	}
	return n, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
