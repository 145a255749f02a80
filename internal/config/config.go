package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// maxBatchSize bounds BATCH_SIZE so a misconfigured consumer cannot hold
// thousands of uncommitted messages in memory.
const maxBatchSize = 1000

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration

	// Loudness calculation tuning.
	LoudnessPadFront  int
	LoudnessPadRear   int
	LoudnessWindowLen int

	// Census population enrichment configuration.
	CensusAPIKey    string
	CensusEnabled   bool
	CensusTimeout   time.Duration
	CensusCacheSize int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parsePositiveDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	censusTimeout, err := parsePositiveDuration("CENSUS_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	batchSize, err := parseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := parsePositiveDuration("BATCH_FLUSH_INTERVAL", "500ms")
	if err != nil {
		return nil, err
	}

	padFront, err := parsePositiveInt("LOUDNESS_PAD_FRONT", 1)
	if err != nil {
		return nil, err
	}
	padRear, err := parsePositiveInt("LOUDNESS_PAD_REAR", 1)
	if err != nil {
		return nil, err
	}
	windowLen, err := parsePositiveInt("LOUDNESS_WINDOW_LEN", 800)
	if err != nil {
		return nil, err
	}

	// The Census API accepts keyless requests at low volume, so a key is
	// optional even when enrichment is on.
	censusKey := os.Getenv("CENSUS_API_KEY")
	censusEnabled := censusKey != ""
	if v := os.Getenv("CENSUS_ENABLED"); v != "" {
		censusEnabled = v == "true"
	}

	cfg := &Config{
		KafkaBrokers:       parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   envOrDefault("KAFKA_SOURCE_TOPIC", "raw-boom-signatures"),
		KafkaSinkTopic:     envOrDefault("KAFKA_SINK_TOPIC", "boom-loudness-events"),
		KafkaGroupID:       envOrDefault("KAFKA_GROUP_ID", "boom-loudness-etl"),
		HTTPAddr:           envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           envOrDefault("LOG_LEVEL", "info"),
		LogFormat:          envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		LoudnessPadFront:  padFront,
		LoudnessPadRear:   padRear,
		LoudnessWindowLen: windowLen,

		CensusAPIKey:    censusKey,
		CensusEnabled:   censusEnabled,
		CensusTimeout:   censusTimeout,
		CensusCacheSize: parseCensusCacheSize(),
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSourceTopic == "" {
		return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}

	return cfg, nil
}

// envOrDefault returns the environment value for key, or def when unset.
func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// parseBrokers splits a comma-separated broker list, trimming whitespace and
// dropping empty entries.
func parseBrokers(s string) []string {
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if b := strings.TrimSpace(p); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseBatchSize() (int, error) {
	n, err := strconv.Atoi(envOrDefault("BATCH_SIZE", "50"))
	if err != nil || n <= 0 || n > maxBatchSize {
		return 0, fmt.Errorf("invalid BATCH_SIZE: must be in 1..%d", maxBatchSize)
	}
	return n, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}

func parseCensusCacheSize() int {
	if s := os.Getenv("CENSUS_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
