package config

import (
	"reflect"
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"MODE", "HTTP_ADDR", "DATA_DIR", "DATA_URL", "IMAGE_DIR", "SAMPLE_FALLBACK", "SESSION_TTL", "CORS_ORIGINS_OFFLINE", "ENABLE_EDITOR"} {
		t.Setenv(k, "")
	}
	c := FromEnv()
	if c.Mode != ModeOffline || c.HTTPAddr != ":8080" {
		t.Fatalf("mode/addr = %q %q", c.Mode, c.HTTPAddr)
	}
	if c.DataDir != "./public" || c.ImageDir != "./public/images" {
		t.Fatalf("dirs = %q %q", c.DataDir, c.ImageDir)
	}
	if !c.SampleFallback {
		t.Fatalf("sample fallback should default on")
	}
	if !c.EnableEditor {
		t.Fatalf("editor should default on offline")
	}
	if c.SessionTTL != 2*time.Hour {
		t.Fatalf("ttl = %v", c.SessionTTL)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("MODE", "online")
	t.Setenv("ENABLE_EDITOR", "")
	t.Setenv("DATA_URL", "https://example.com/data/")
	t.Setenv("SAMPLE_FALLBACK", "false")
	t.Setenv("SESSION_TTL", "15m")
	t.Setenv("CORS_ORIGINS_ONLINE", " https://a.example , ,https://b.example")
	c := FromEnv()
	if c.DataURL != "https://example.com/data" {
		t.Fatalf("data url = %q", c.DataURL)
	}
	if c.SampleFallback {
		t.Fatalf("sample fallback should be off")
	}
	if c.EnableEditor {
		t.Fatalf("editor should default off online")
	}
	if c.SessionTTL != 15*time.Minute {
		t.Fatalf("ttl = %v", c.SessionTTL)
	}
	want := []string{"https://a.example", "https://b.example"}
	if got := c.CORSOrigins(); !reflect.DeepEqual(got, want) {
		t.Fatalf("origins = %v", got)
	}
}

func TestEnvDurationInvalid(t *testing.T) {
	t.Setenv("SESSION_TTL", "soon")
	if d := envDuration("SESSION_TTL", time.Minute); d != time.Minute {
		t.Fatalf("invalid duration should fall back, got %v", d)
	}
}
