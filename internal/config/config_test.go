package config

import (
	"testing"
	"time"
)

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	t.Setenv("CONFIG_ENV", "definitely-missing")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load with missing file must fall back to defaults: %v", err)
	}
	if cfg.Port != 8080 || cfg.Mode != "release" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.PingPeriod != 54*time.Second {
		t.Fatalf("unexpected ping period %v", cfg.PingPeriod)
	}
	if len(cfg.StunURLs) == 0 {
		t.Fatal("expected a default STUN url")
	}
}

func TestLoadGeneratesSecretWhenUnset(t *testing.T) {
	t.Setenv("CONFIG_ENV", "definitely-missing")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Secret == "" {
		t.Fatal("session secret must never be empty")
	}

	other, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if other.Secret == cfg.Secret {
		t.Fatal("generated secrets must be ephemeral, not a fixed constant")
	}
}
