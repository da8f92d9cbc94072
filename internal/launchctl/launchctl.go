// Package launchctl registers and unregisters agent files with the running launchd
// through the launchctl command.
package launchctl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/aatumaykin/launchify/internal/logger"
)

// DefaultBinary is the launchctl executable looked up in PATH.
const DefaultBinary = "launchctl"

// ErrCommandFailed is matched by every Error.
var ErrCommandFailed = errors.New("launchctl command failed")

// Error describes a launchctl invocation that did not succeed.
type Error struct {
	Args     []string
	ExitCode int // -1 when the command could not be started
	Output   string
	Err      error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s exited with code %d", strings.Join(e.Args, " "), e.ExitCode)
	if e.ExitCode < 0 && e.Err != nil {
		msg = fmt.Sprintf("%s: %v", strings.Join(e.Args, " "), e.Err)
	}
	if e.Output != "" {
		msg += ": " + e.Output
	}
	return msg
}

// Is makes errors.Is(err, ErrCommandFailed) true for any Error.
func (e *Error) Is(target error) bool {
	return target == ErrCommandFailed
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Runner executes a command and returns its combined stdout and stderr.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs commands with os/exec.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	return out.Bytes(), err
}

// Client wraps the launchctl binary.
type Client struct {
	binary string
	run    Runner
	logger *logger.Logger
}

// New creates a Client. An empty binary means DefaultBinary, a nil run means ExecRunner.
func New(binary string, run Runner, log *logger.Logger) *Client {
	if binary == "" {
		binary = DefaultBinary
	}
	if run == nil {
		run = ExecRunner
	}
	return &Client{binary: binary, run: run, logger: log}
}

// Load registers the agent file at path and enables it.
func (c *Client) Load(ctx context.Context, path string) error {
	return c.exec(ctx, "load", "-w", path)
}

// Unload unregisters the agent file at path and disables it.
func (c *Client) Unload(ctx context.Context, path string) error {
	return c.exec(ctx, "unload", "-w", path)
}

func (c *Client) exec(ctx context.Context, args ...string) error {
	if c.logger != nil {
		c.logger.DebugCtx(ctx, "Running launchctl",
			logger.Field{Key: "binary", Value: c.binary},
			logger.Field{Key: "args", Value: args})
	}

	out, err := c.run(ctx, c.binary, args...)
	if err == nil {
		return nil
	}

	return &Error{
		Args:     append([]string{c.binary}, args...),
		ExitCode: exitCode(err),
		Output:   strings.TrimSpace(string(out)),
		Err:      err,
	}
}

// exitCode extracts the exit code from an error, or -1 if the process never ran.
func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
