package config

import (
	"os"
	"strings"
	"time"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode     Mode
	HTTPAddr string

	DBDriver string
	DBDSN    string

	// Catalog source: DataURL wins over DataDir when set.
	DataDir        string
	DataURL        string
	ImageDir       string
	SampleFallback bool

	// EnableEditor mounts the /api/admin routes that rewrite the data
	// documents and upload images. Only effective with a local DataDir.
	EnableEditor bool

	SessionSecret string
	SessionTTL    time.Duration

	CORSOriginsOnline  []string
	CORSOriginsOffline []string
}

func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	dataDir := envOr("DATA_DIR", "./public")
	return Config{
		Mode:               mode,
		HTTPAddr:           envOr("HTTP_ADDR", ":8080"),
		DBDriver:           envOr("DB_DRIVER", "sqlite"),
		DBDSN:              envOr("DB_DSN", ""),
		DataDir:            dataDir,
		DataURL:            strings.TrimSuffix(os.Getenv("DATA_URL"), "/"),
		ImageDir:           envOr("IMAGE_DIR", dataDir+"/images"),
		SampleFallback:     envBool("SAMPLE_FALLBACK", true),
		EnableEditor:       envBool("ENABLE_EDITOR", mode == ModeOffline),
		SessionSecret:      envOr("SESSION_SECRET", "dev-secret-change-me"),
		SessionTTL:         envDuration("SESSION_TTL", 2*time.Hour),
		CORSOriginsOnline:  csvOr("CORS_ORIGINS_ONLINE", ""),
		CORSOriginsOffline: csvOr("CORS_ORIGINS_OFFLINE", "http://localhost:3000,http://localhost:5173"),
	}
}

// CORSOrigins returns the allow-list for the configured mode.
func (c Config) CORSOrigins() []string {
	if c.Mode == ModeOnline {
		return c.CORSOriginsOnline
	}
	return c.CORSOriginsOffline
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}
func envDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
