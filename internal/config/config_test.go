package config

import (
	"testing"
	"time"
)

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(NewViper())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTPAddress != defaultHTTPAddress {
		t.Fatalf("unexpected address %s", cfg.HTTPAddress)
	}
	if cfg.AutosaveQuiet != 800*time.Millisecond {
		t.Fatalf("unexpected quiet period %v", cfg.AutosaveQuiet)
	}
	if cfg.SavedFlash != 2*time.Second {
		t.Fatalf("unexpected flash duration %v", cfg.SavedFlash)
	}
	if cfg.DedupEntryTTL != 30*time.Second {
		t.Fatalf("unexpected dedup ttl %v", cfg.DedupEntryTTL)
	}
	if cfg.DedupSweep != 10*time.Second {
		t.Fatalf("unexpected sweep interval %v", cfg.DedupSweep)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{name: "empty-database-path", key: "database.path", value: "  "},
		{name: "zero-quiet", key: "autosave.quiet_ms", value: 0},
		{name: "negative-flash", key: "autosave.saved_flash_ms", value: -1},
		{name: "zero-dedup-ttl", key: "dedup.entry_ttl_s", value: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configViper := NewViper()
			configViper.Set(tt.key, tt.value)
			if _, err := Load(configViper); err == nil {
				t.Fatalf("expected validation error for %s", tt.key)
			}
		})
	}
}
