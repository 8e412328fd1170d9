package update

import (
	"os"
	"strconv"
	"strings"

	"github.com/sandeepkv93/doable/internal/assist"
)

// RuntimeConfig carries the process-level knobs read once at startup. The
// API key is the only required piece, and even it is optional: without one
// the assistant degrades to its documented defaults.
type RuntimeConfig struct {
	APIKey             string
	Model              string
	DBPath             string
	LogPath            string
	HTTPTimeoutSeconds int
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		Model:              assist.DefaultModel,
		DBPath:             ".doable.db",
		LogPath:            ".doable.log",
		HTTPTimeoutSeconds: 30,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	cfg.APIKey = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if v, ok := getEnvStr("DOABLE_MODEL"); ok {
		cfg.Model = v
	}
	if v, ok := getEnvStr("DOABLE_DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := os.LookupEnv("DOABLE_LOG_PATH"); ok {
		// An explicitly empty value disables file logging.
		cfg.LogPath = strings.TrimSpace(v)
	}
	if v, ok := getEnvInt("DOABLE_HTTP_TIMEOUT_SECONDS"); ok && v > 0 {
		cfg.HTTPTimeoutSeconds = v
	}
	return cfg
}

func getEnvStr(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
