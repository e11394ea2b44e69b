package config

import (
	"os"
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestLoadEnvironment(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, key := range []string{"CONFIG_DIR", "LOG_LEVEL", "NGROK_ENABLED"} {
			t.Setenv(key, "")
			os.Unsetenv(key)
		}

		e, err := LoadEnvironment()
		if err != nil {
			t.Fatalf("Failed to load environment: %v", err)
		}
		if e.ConfigDir != "configs" {
			t.Errorf("Expected default config dir, got %q", e.ConfigDir)
		}
		if e.Level() != log.InfoLevel {
			t.Errorf("Expected info level, got %v", e.Level())
		}
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("CONFIG_DIR", "/tmp/boards")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("NGROK_ENABLED", "true")
		t.Setenv("NGROK_AUTHTOKEN", "")
		t.Setenv("NGROK_AUTH_TOKEN", "alt-token")

		e, err := LoadEnvironment()
		if err != nil {
			t.Fatalf("Failed to load environment: %v", err)
		}
		if e.ConfigDir != "/tmp/boards" {
			t.Errorf("Expected /tmp/boards, got %q", e.ConfigDir)
		}
		if e.Level() != log.DebugLevel {
			t.Errorf("Expected debug level, got %v", e.Level())
		}
		if !e.NgrokEnabled {
			t.Error("Expected ngrok to be enabled")
		}
		if e.NgrokToken() != "alt-token" {
			t.Errorf("Expected alt-token, got %q", e.NgrokToken())
		}
	})

	t.Run("invalid bool", func(t *testing.T) {
		t.Setenv("NGROK_ENABLED", "maybe")
		if _, err := LoadEnvironment(); err == nil {
			t.Error("Expected error for invalid NGROK_ENABLED")
		}
	})
}
