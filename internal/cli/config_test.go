package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/murzabaevb/levelplot/pkg/pipeline"
)

func TestLoadConfigMissing(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("loadConfig() on missing file should not error, got: %v", err)
	}
	if cfg != (Config{}) {
		t.Errorf("loadConfig() on missing file = %+v, want zero config", cfg)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
style = "dark"
width = 1600.0
x_axis_title = "Frequency (MHz)"
separation_step = 0.25
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}

	if cfg.Style != "dark" {
		t.Errorf("Style = %q, want %q", cfg.Style, "dark")
	}
	if cfg.Width != 1600 {
		t.Errorf("Width = %v, want 1600", cfg.Width)
	}
	if cfg.XAxisTitle != "Frequency (MHz)" {
		t.Errorf("XAxisTitle = %q, want %q", cfg.XAxisTitle, "Frequency (MHz)")
	}
	if cfg.SeparationStep != 0.25 {
		t.Errorf("SeparationStep = %v, want 0.25", cfg.SeparationStep)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("style = [broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := loadConfig(path); err == nil {
		t.Error("loadConfig() should fail on malformed TOML")
	}
}

func TestConfigApply(t *testing.T) {
	cfg := Config{
		Style:      "dark",
		Width:      1600,
		XAxisTitle: "Frequency (MHz)",
	}

	opts := pipeline.Options{}
	cfg.apply(&opts)

	if opts.Style != "dark" {
		t.Errorf("Style = %q, want %q", opts.Style, "dark")
	}
	if opts.Width != 1600 {
		t.Errorf("Width = %v, want 1600", opts.Width)
	}
	if opts.XAxisTitle != "Frequency (MHz)" {
		t.Errorf("XAxisTitle = %q, want %q", opts.XAxisTitle, "Frequency (MHz)")
	}
}

func TestConfigApplyFlagsWin(t *testing.T) {
	cfg := Config{Style: "dark", Width: 1600}

	// Fields already set by flags must not be overwritten
	opts := pipeline.Options{Style: "simple", Width: 800}
	cfg.apply(&opts)

	if opts.Style != "simple" {
		t.Errorf("Style = %q, flag value should win over config", opts.Style)
	}
	if opts.Width != 800 {
		t.Errorf("Width = %v, flag value should win over config", opts.Width)
	}
}
