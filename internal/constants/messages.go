package constants

// User-facing output of the launchify command. Diagnostics go through the logger.

// Schedule messages
const (
	// MsgScheduled confirms that a job was scheduled.
	MsgScheduled = "Scheduled %s every %s\n"

	// MsgWrote reports the agent file path.
	MsgWrote = "Wrote %s\n"

	// MsgLogs reports where the job's output will be captured.
	MsgLogs = "Logs:  %s\n"

	// MsgLoaded confirms registration with launchd.
	MsgLoaded = "Loaded %s into launchd\n"

	// MsgLoadSkipped explains how to register the job manually.
	MsgLoadSkipped = "Not loaded. Run: launchctl load -w %s\n"

	// MsgLoadFailed warns that the file was written but launchd registration failed.
	MsgLoadFailed = "Warning: agent file written but could not be loaded: %v\nRun manually: launchctl load -w %s\n"

	// MsgNextRuns is the header of the upcoming runs preview.
	MsgNextRuns = "Runs at load, then every %s (next: %s)\n"

	// MsgUnloadHint tells the user how to stop the job.
	MsgUnloadHint = "To stop it: launchify unload %s (or launchctl unload -w %s)\n"
)

// Dry run messages
const (
	// MsgDryRunHeader introduces the document that would be written.
	MsgDryRunHeader = "Dry run: would write %s\n"
)

// Unload messages
const (
	// MsgUnloaded confirms the job was unloaded.
	MsgUnloaded = "Unloaded %s\n"

	// MsgUnloadFailed warns that launchctl unload failed.
	MsgUnloadFailed = "Warning: could not unload %s: %v\n"

	// MsgRemoved confirms the agent file was deleted.
	MsgRemoved = "Removed %s\n"

	// MsgAgentNotFound is returned when no agent file exists for a name.
	MsgAgentNotFound = "no agent file for %q at %s"
)

// Config messages
const (
	// MsgConfigValid is printed when the configuration passes validation.
	MsgConfigValid = "Configuration is valid: %s\n"

	// MsgConfigDefaults is printed when no configuration file exists.
	MsgConfigDefaults = "No configuration file found, defaults are valid\n"

	// MsgConfigValidationError is the header of validation errors.
	MsgConfigValidationError = "configuration validation failed:\n"

	// MsgConfigValidatePrefix formats a single validation error.
	MsgConfigValidatePrefix = "  - %v\n"
)
