package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := ParseNeon(GetDefaultYAML("neon"))
	if err != nil {
		t.Fatalf("embedded defaults should parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultNeonConfig()) {
		t.Errorf("embedded YAML and DefaultNeonConfig() disagree:\n%+v\n%+v", cfg, DefaultNeonConfig())
	}
}

func TestParseNeonPartialOverride(t *testing.T) {
	data := []byte(`
world:
  lane_count: 5
enemies:
  stuck_rule: weapons
`)
	cfg, err := ParseNeon(data)
	if err != nil {
		t.Fatalf("ParseNeon() failed: %v", err)
	}
	if cfg.World.LaneCount != 5 {
		t.Errorf("LaneCount = %d, expected 5", cfg.World.LaneCount)
	}
	if cfg.Enemies.StuckRule != StuckRuleWeapons {
		t.Errorf("StuckRule = %q, expected weapons", cfg.Enemies.StuckRule)
	}
	// Untouched keys keep their defaults
	if cfg.World.LaneWidth != 200 {
		t.Errorf("LaneWidth = %v, expected default 200", cfg.World.LaneWidth)
	}
	if len(cfg.Tiers) != 7 {
		t.Errorf("Tiers should keep the defaults, got %d", len(cfg.Tiers))
	}
}

func TestValidateNeonRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown section", "bogus:\n  x: 1\n"},
		{"unknown key", "world:\n  lane_cnt: 3\n"},
		{"wrong type", "world:\n  lane_width: wide\n"},
		{"bad stuck rule", "enemies:\n  stuck_rule: sometimes\n"},
		{"probability out of range", "gates:\n  open_lane_chance: 1.5\n"},
		{"unknown tier", "tiers:\n  - { name: nightmare, hp_multiplier: 20 }\n"},
		{"zero lanes", "world:\n  lane_count: 0\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := ValidateNeon([]byte(tc.yaml)); err == nil {
				t.Errorf("ValidateNeon() should reject %q", tc.yaml)
			}
		})
	}
}

func TestValidateNeonEmptyDocument(t *testing.T) {
	if err := ValidateNeon(nil); err != nil {
		t.Errorf("empty document should be valid, got %v", err)
	}
}

func TestLoadNeonCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "neon.yaml")
	if err := os.WriteFile(path, []byte("boss:\n  interval: 1000\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadNeon(path)
	if err != nil {
		t.Fatalf("LoadNeon() failed: %v", err)
	}
	if cfg.Boss.Interval != 1000 {
		t.Errorf("Boss.Interval = %v, expected 1000", cfg.Boss.Interval)
	}

	if _, err := LoadNeon(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadNeon() should fail for a missing custom path")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("world:\n  nope: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadNeon(bad); err == nil || !strings.Contains(err.Error(), "schema") {
		t.Errorf("LoadNeon() should report a schema violation, got %v", err)
	}
}

func TestMarshalNeonRoundTrip(t *testing.T) {
	data, err := MarshalNeon(DefaultNeonConfig())
	if err != nil {
		t.Fatalf("MarshalNeon() failed: %v", err)
	}
	cfg, err := ParseNeon(data)
	if err != nil {
		t.Fatalf("marshalled config should validate: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultNeonConfig()) {
		t.Error("marshalled config should decode back to the defaults")
	}
}

func TestTierMultiplier(t *testing.T) {
	cfg := DefaultNeonConfig()
	tests := []struct {
		tier     Tier
		expected float64
	}{
		{TierEasy, 0.5},
		{TierNormal, 1},
		{TierHard, 1.5},
		{TierUnfair, 2},
		{TierEmotional, 3},
		{TierSingularity, 5},
		{TierOmega, 10},
		{Tier("nightmare"), 1},
		{Tier(""), 1},
	}
	for _, tc := range tests {
		t.Run(string(tc.tier), func(t *testing.T) {
			if got := cfg.TierMultiplier(tc.tier); got != tc.expected {
				t.Errorf("TierMultiplier(%q) = %v, expected %v", tc.tier, got, tc.expected)
			}
		})
	}

	if cfg.TierGateBias(Tier("nightmare")) != 0 {
		t.Error("unknown tier should not shift gate bias")
	}
}

func TestParseTier(t *testing.T) {
	if tier, ok := ParseTier(" Omega "); !ok || tier != TierOmega {
		t.Errorf("ParseTier(Omega) = %q, %v", tier, ok)
	}
	if tier, ok := ParseTier("nightmare"); ok || tier != TierNormal {
		t.Errorf("ParseTier(nightmare) = %q, %v; expected normal, false", tier, ok)
	}
}

func TestTierNextWraps(t *testing.T) {
	if TierEasy.Next() != TierNormal {
		t.Errorf("easy.Next() = %q", TierEasy.Next())
	}
	if TierOmega.Next() != TierEasy {
		t.Errorf("omega.Next() = %q, expected wrap to easy", TierOmega.Next())
	}
	if TierEasy.Prev() != TierOmega {
		t.Errorf("easy.Prev() = %q, expected wrap to omega", TierEasy.Prev())
	}
	for _, tier := range AllTiers {
		if tier.Next().Prev() != tier {
			t.Errorf("%q.Next().Prev() = %q", tier, tier.Next().Prev())
		}
	}
	if TierOmega.Label() != "OMEGA" {
		t.Errorf("Label() = %q", TierOmega.Label())
	}
}

func TestHalfSpan(t *testing.T) {
	if got := DefaultNeonConfig().HalfSpan(); got != 300 {
		t.Errorf("HalfSpan() = %v, expected 300", got)
	}
}
