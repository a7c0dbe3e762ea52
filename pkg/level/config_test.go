package level

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigFromBytesValid(t *testing.T) {
	yaml := `
ruleset: lynx
pedantic_mode: true
time_limit_override: 250
`
	cfg, err := LoadConfigFromBytes([]byte(yaml))
	if err != nil {
		t.Fatalf("LoadConfigFromBytes() failed: %v", err)
	}
	if cfg.Ruleset != "lynx" {
		t.Errorf("Ruleset = %q, want lynx", cfg.Ruleset)
	}
	if !cfg.PedanticMode {
		t.Error("PedanticMode = false, want true")
	}
	if cfg.TimeLimitOverride != 250 {
		t.Errorf("TimeLimitOverride = %d, want 250", cfg.TimeLimitOverride)
	}
	if cfg.RulesetID() != RulesetLynx {
		t.Errorf("RulesetID() = %v, want RulesetLynx", cfg.RulesetID())
	}
}

func TestLoadConfigFromBytesDefaultsRuleset(t *testing.T) {
	cfg, err := LoadConfigFromBytes([]byte(`pedantic_mode: false`))
	if err != nil {
		t.Fatalf("LoadConfigFromBytes() failed: %v", err)
	}
	if cfg.Ruleset != "ms" {
		t.Errorf("Ruleset = %q, want ms (default)", cfg.Ruleset)
	}
}

func TestLoadConfigFromBytesRejectsUnknownRuleset(t *testing.T) {
	_, err := LoadConfigFromBytes([]byte(`ruleset: mega-ruleset`))
	if err == nil {
		t.Fatal("LoadConfigFromBytes() should fail for an unrecognised ruleset")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "ccengine.yaml")

	yamlContent := `
ruleset: ms
step_parity_override: 1
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config file: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if cfg.Ruleset != "ms" {
		t.Errorf("Ruleset = %q, want ms", cfg.Ruleset)
	}
	if cfg.StepParityOverride == nil || *cfg.StepParityOverride != 1 {
		t.Errorf("StepParityOverride = %v, want pointer to 1", cfg.StepParityOverride)
	}
}

func TestLoadConfigFileNotFound(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/ccengine.yaml")
	if err == nil {
		t.Error("LoadConfig() should fail for a nonexistent file")
	}
}
