package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/breeze-rmm/dxgi-probe/internal/logging"
)

var validLogLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

var validOutputFormats = map[string]bool{
	"table": true,
	"json":  true,
	"yaml":  true,
}

// Validate checks the config and returns every problem found. Out-of-range
// numbers are clamped and unknown enum values reset to their defaults, so
// the config is usable afterwards; each problem is also logged as a
// warning.
func (c *Config) Validate() []error {
	var errs []error
	def := Default()

	if c.LogLevel != "" && !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Errorf("log_level %q is not valid (use debug, info, warn, error)", c.LogLevel))
		c.LogLevel = def.LogLevel
	}

	if c.LogFormat != "" && c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("log_format %q is not valid (use text or json)", c.LogFormat))
		c.LogFormat = def.LogFormat
	}

	c.OutputFormat = strings.ToLower(strings.TrimSpace(c.OutputFormat))
	if c.OutputFormat == "" {
		c.OutputFormat = def.OutputFormat
	} else if !validOutputFormats[c.OutputFormat] {
		errs = append(errs, fmt.Errorf("output_format %q is not valid (use table, json or yaml)", c.OutputFormat))
		c.OutputFormat = def.OutputFormat
	}

	if c.LogMaxSizeMB < 1 {
		errs = append(errs, fmt.Errorf("log_max_size_mb %d is below minimum 1, clamping", c.LogMaxSizeMB))
		c.LogMaxSizeMB = 1
	} else if c.LogMaxSizeMB > 1024 {
		errs = append(errs, fmt.Errorf("log_max_size_mb %d exceeds maximum 1024, clamping", c.LogMaxSizeMB))
		c.LogMaxSizeMB = 1024
	}

	if c.LogMaxBackups < 1 {
		errs = append(errs, fmt.Errorf("log_max_backups %d is below minimum 1, clamping", c.LogMaxBackups))
		c.LogMaxBackups = 1
	} else if c.LogMaxBackups > 100 {
		errs = append(errs, fmt.Errorf("log_max_backups %d exceeds maximum 100, clamping", c.LogMaxBackups))
		c.LogMaxBackups = 100
	}

	if c.SimulateFile != "" {
		if _, err := os.Stat(c.SimulateFile); err != nil {
			errs = append(errs, fmt.Errorf("simulate_file: %w", err))
		}
	}

	for _, err := range errs {
		slog.Warn("config validation", logging.KeyError, err)
	}

	return errs
}
