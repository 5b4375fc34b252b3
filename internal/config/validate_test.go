package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateResetsUnknownLogLevel(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "verbose"
	errs := cfg.Validate()
	if len(errs) != 1 || !strings.Contains(errs[0].Error(), "log_level") {
		t.Fatalf("expected one log_level error, got %v", errs)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("LogLevel = %q, want reset to warn", cfg.LogLevel)
	}
}

func TestValidateLogFormat(t *testing.T) {
	cfg := Default()
	cfg.LogFormat = "xml"
	if errs := cfg.Validate(); len(errs) != 1 {
		t.Fatalf("expected one error, got %v", errs)
	}
	if cfg.LogFormat != "text" {
		t.Fatalf("LogFormat = %q, want text", cfg.LogFormat)
	}
}

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		in       string
		want     string
		wantErrs int
	}{
		{"json", "json", 0},
		{" YAML ", "yaml", 0},
		{"", "table", 0},
		{"csv", "table", 1},
	}
	for _, tt := range tests {
		cfg := Default()
		cfg.OutputFormat = tt.in
		errs := cfg.Validate()
		if len(errs) != tt.wantErrs {
			t.Errorf("OutputFormat %q: got %d errors, want %d: %v", tt.in, len(errs), tt.wantErrs, errs)
		}
		if cfg.OutputFormat != tt.want {
			t.Errorf("OutputFormat %q normalized to %q, want %q", tt.in, cfg.OutputFormat, tt.want)
		}
	}
}

func TestValidateClampsLogRotation(t *testing.T) {
	cfg := Default()
	cfg.LogMaxSizeMB = 0
	cfg.LogMaxBackups = 1000
	errs := cfg.Validate()
	if len(errs) != 2 {
		t.Fatalf("expected two clamping errors, got %v", errs)
	}
	if cfg.LogMaxSizeMB != 1 {
		t.Fatalf("LogMaxSizeMB = %d, want 1 (clamped)", cfg.LogMaxSizeMB)
	}
	if cfg.LogMaxBackups != 100 {
		t.Fatalf("LogMaxBackups = %d, want 100 (clamped)", cfg.LogMaxBackups)
	}
}

func TestValidateMissingSimulateFile(t *testing.T) {
	cfg := Default()
	cfg.SimulateFile = filepath.Join(t.TempDir(), "topology.yaml")
	errs := cfg.Validate()
	if len(errs) != 1 || !strings.Contains(errs[0].Error(), "simulate_file") {
		t.Fatalf("expected a simulate_file error, got %v", errs)
	}
}
