// Package config provides configuration loading and validation for launchify.
// The configuration file is optional; every field has a default.
//
// Configuration structure:
//   - [paths]: where agent files and job logs are written
//   - [job]: label prefix and launchctl integration
//   - [logging]: diagnostic logging level, format, and output
//
// Environment variables:
// String values can reference environment variables using ${VAR} or ${VAR:default}
// syntax, and paths may start with ~/. For example: log_root = "${LOG_ROOT:~/logs}"
package config

// Config represents the main application configuration.
type Config struct {
	Paths   PathsConfig   `toml:"paths"`
	Job     JobConfig     `toml:"job"`
	Logging LoggingConfig `toml:"logging"`
}

// PathsConfig представляет конфигурацию путей
type PathsConfig struct {
	LaunchAgentsDir string `toml:"launch_agents_dir"`
	LogRoot         string `toml:"log_root"`
}

// JobConfig представляет конфигурацию создаваемых задач
type JobConfig struct {
	LabelPrefix string `toml:"label_prefix"`
	// Load runs "launchctl load" after the agent file is written. Nil means true.
	Load      *bool  `toml:"load"`
	Launchctl string `toml:"launchctl"`
}

// LoggingConfig представляет конфигурацию логирования
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	Output string `toml:"output"`
}

// ShouldLoad reports whether agent files are registered with launchd after writing.
func (j JobConfig) ShouldLoad() bool {
	return j.Load == nil || *j.Load
}
