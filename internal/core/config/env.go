package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvOverrides applies environment variable overrides to the
// configuration. Pattern: INSCOPE_[SECTION]_[KEY]
// (e.g., INSCOPE_OBSERVABILITY_ADDR).
func ApplyEnvOverrides(cfg *Config) {
	setEnvString(&cfg.ProjectRoot, "INSCOPE_PROJECT_ROOT")

	// Database
	setEnvBool(&cfg.DB.Enabled, "INSCOPE_DB_ENABLED")
	setEnvString(&cfg.DB.Path, "INSCOPE_DB_PATH")
	setEnvString(&cfg.DB.ProjectKey, "INSCOPE_DB_PROJECT_KEY")

	// Watch
	setEnvDuration(&cfg.Watch.Debounce, "INSCOPE_WATCH_DEBOUNCE")
	setEnvFloat64(&cfg.Watch.RescansPerSec, "INSCOPE_WATCH_RESCANS_PER_SEC")
	setEnvInt(&cfg.Watch.RescanBurst, "INSCOPE_WATCH_RESCAN_BURST")

	// Observability
	setEnvString(&cfg.Observability.Addr, "INSCOPE_OBSERVABILITY_ADDR")
	setEnvString(&cfg.Observability.OTLPEndpoint, "INSCOPE_OBSERVABILITY_OTLP_ENDPOINT")
}

func setEnvString(target *string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		log.Printf("Applying env override: %s=%s", key, val)
		*target = val
	}
}

func setEnvInt(target *int, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			log.Printf("Applying env override: %s=%s", key, val)
			*target = i
		}
	}
}

func setEnvBool(target *bool, key string) {
	if val, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(strings.ToLower(val))
		if err == nil {
			log.Printf("Applying env override: %s=%s", key, val)
			*target = b
		}
	}
}

func setEnvFloat64(target *float64, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			log.Printf("Applying env override: %s=%s", key, val)
			*target = f
		}
	}
}

func setEnvDuration(target *time.Duration, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			log.Printf("Applying env override: %s=%s", key, val)
			*target = d
		}
	}
}
