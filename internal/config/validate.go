package config

import (
	"fmt"
	"strings"
)

// Validate проверяет валидность конфигурации
func (c *Config) Validate() []error {
	var errors []error

	// Проверка путей
	if c.Paths.LaunchAgentsDir == "" {
		errors = append(errors, fmt.Errorf("paths.launch_agents_dir is required"))
	} else if err := validatePath(c.Paths.LaunchAgentsDir, "paths.launch_agents_dir"); err != nil {
		errors = append(errors, err)
	}

	if c.Paths.LogRoot == "" {
		errors = append(errors, fmt.Errorf("paths.log_root is required"))
	} else if err := validatePath(c.Paths.LogRoot, "paths.log_root"); err != nil {
		errors = append(errors, err)
	}

	// Проверка префикса метки
	if strings.ContainsAny(c.Job.LabelPrefix, `/\`) {
		errors = append(errors, fmt.Errorf("job.label_prefix must not contain path separators: %s", c.Job.LabelPrefix))
	}
	if strings.TrimSpace(c.Job.LabelPrefix) != c.Job.LabelPrefix {
		errors = append(errors, fmt.Errorf("job.label_prefix must not contain leading or trailing whitespace"))
	}

	if c.Job.ShouldLoad() && c.Job.Launchctl == "" {
		errors = append(errors, fmt.Errorf("job.launchctl is required when job.load is enabled"))
	}

	// Проверка logging config
	if c.Logging.Level == "" {
		errors = append(errors, fmt.Errorf("logging.level is required"))
	} else {
		validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
		if !validLevels[strings.ToLower(c.Logging.Level)] {
			errors = append(errors, fmt.Errorf("invalid logging.level: %s (expected: debug, info, warn, error)", c.Logging.Level))
		}
	}

	if c.Logging.Format == "" {
		errors = append(errors, fmt.Errorf("logging.format is required"))
	} else {
		validFormats := map[string]bool{"json": true, "text": true}
		if !validFormats[strings.ToLower(c.Logging.Format)] {
			errors = append(errors, fmt.Errorf("invalid logging.format: %s (expected: json, text)", c.Logging.Format))
		}
	}

	if c.Logging.Output == "" {
		errors = append(errors, fmt.Errorf("logging.output is required"))
	}

	return errors
}

func validatePath(path, fieldName string) error {
	if path == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}

	if strings.Contains(path, "\x00") {
		return fmt.Errorf("%s contains a NUL byte", fieldName)
	}

	if strings.HasPrefix(path, "~") && path != "~" && !strings.HasPrefix(path, "~/") {
		return fmt.Errorf("%s: ~user paths are not supported: %s", fieldName, path)
	}

	return nil
}
