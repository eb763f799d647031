package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// TelemetryConfig: экспорт трейсов gRPC по OTLP.
type TelemetryConfig struct {
	Enabled      bool
	OTLPEndpoint string // host:port, например jaeger:4317
	SampleRatio  float64
}

func LoadTelemetryConfig() (*TelemetryConfig, error) {
	cfg := &TelemetryConfig{
		Enabled:      getEnvBool("OTEL_ENABLED", false),
		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		SampleRatio:  1,
	}

	if v := strings.TrimSpace(os.Getenv("OTEL_SAMPLING_RATIO")); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || f > 1 {
			return nil, fmt.Errorf("invalid OTEL_SAMPLING_RATIO %q: must be in [0, 1]", v)
		}
		cfg.SampleRatio = f
	}

	return cfg, nil
}

func getEnvBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
