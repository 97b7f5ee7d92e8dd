package config

import (
	"testing"
	"time"
)

func TestDefaultDaemonConfig(t *testing.T) {
	c := DefaultDaemonConfig()
	if c.Debounce != 2*time.Second {
		t.Fatalf("want 2s debounce, got %s", c.Debounce)
	}
	if c.Listen == "" {
		t.Fatal("want Listen address")
	}
}

func TestDefaultRemoteConfig(t *testing.T) {
	c := DefaultRemoteConfig()
	if c.Timeout <= 0 {
		t.Fatal("want positive Timeout")
	}
}
