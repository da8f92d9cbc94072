// Package job turns command-line input into a fully resolved Descriptor: the program
// to run, how often, where, and where its output goes.
//
// Build performs read-only filesystem checks only; it never creates or writes anything.
package job

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/aatumaykin/launchify/internal/duration"
)

const (
	// DefaultLabelPrefix is prepended to the job name to form the launchd label.
	DefaultLabelPrefix = "com."

	// StdoutLogFile is the file name for captured standard output.
	StdoutLogFile = "stdout.log"

	// StderrLogFile is the file name for captured standard error.
	StderrLogFile = "stderr.log"
)

// Descriptor is the resolved description of a scheduled job.
type Descriptor struct {
	Name             string            `yaml:"name" json:"name"`
	Label            string            `yaml:"label" json:"label"`
	ExecutablePath   string            `yaml:"executable_path" json:"executable_path"`
	Args             []string          `yaml:"args" json:"args"`
	WorkingDirectory string            `yaml:"working_directory" json:"working_directory"`
	Interval         duration.Duration `yaml:"interval_seconds" json:"interval_seconds"`
	LogDir           string            `yaml:"log_dir" json:"log_dir"`
	StdoutLogPath    string            `yaml:"stdout_log_path" json:"stdout_log_path"`
	StderrLogPath    string            `yaml:"stderr_log_path" json:"stderr_log_path"`
}

// ProgramArguments returns argv for the job: the executable path followed by Args.
func (d *Descriptor) ProgramArguments() []string {
	argv := make([]string, 0, len(d.Args)+1)
	argv = append(argv, d.ExecutablePath)
	return append(argv, d.Args...)
}

// Options is the raw user input for Build.
type Options struct {
	Executable  string            // path or PATH-searchable name
	Name        string            // optional override of the derived name
	Args        string            // optional shell-style argument string
	WorkingDir  string            // optional working directory
	Interval    duration.Duration // run interval
	LogRoot     string            // directory holding per-job log directories
	LabelPrefix string            // defaults to DefaultLabelPrefix
}

// Env abstracts the process environment consulted by Build.
type Env struct {
	Getwd  func() (string, error)
	Getenv func(string) string
	Stat   func(string) (fs.FileInfo, error)
}

// OSEnv returns an Env backed by the running process.
func OSEnv() Env {
	return Env{
		Getwd:  os.Getwd,
		Getenv: os.Getenv,
		Stat:   os.Stat,
	}
}

func (e Env) withDefaults() Env {
	def := OSEnv()
	if e.Getwd == nil {
		e.Getwd = def.Getwd
	}
	if e.Getenv == nil {
		e.Getenv = def.Getenv
	}
	if e.Stat == nil {
		e.Stat = def.Stat
	}
	return e
}

// Build validates opts and resolves them into a Descriptor.
func Build(opts Options, env Env) (*Descriptor, error) {
	env = env.withDefaults()

	if opts.Interval <= 0 {
		return nil, newBuildError(ErrInvalidInterval, opts.Interval.String(), nil)
	}

	cwd, err := env.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	execPath, err := resolveExecutable(opts.Executable, cwd, env)
	if err != nil {
		return nil, err
	}

	name, err := deriveName(opts.Name, execPath)
	if err != nil {
		return nil, err
	}

	args, err := SplitArgs(opts.Args)
	if err != nil {
		return nil, newBuildError(ErrInvalidArgs, opts.Args, err)
	}

	workDir, err := resolveWorkingDir(opts.WorkingDir, cwd, env)
	if err != nil {
		return nil, err
	}

	prefix := opts.LabelPrefix
	if prefix == "" {
		prefix = DefaultLabelPrefix
	}

	logRoot := opts.LogRoot
	if logRoot != "" && !filepath.IsAbs(logRoot) {
		logRoot = filepath.Join(cwd, logRoot)
	}
	logDir := filepath.Join(logRoot, name)

	return &Descriptor{
		Name:             name,
		Label:            prefix + name,
		ExecutablePath:   execPath,
		Args:             args,
		WorkingDirectory: workDir,
		Interval:         opts.Interval,
		LogDir:           logDir,
		StdoutLogPath:    filepath.Join(logDir, StdoutLogFile),
		StderrLogPath:    filepath.Join(logDir, StderrLogFile),
	}, nil
}

// resolveExecutable returns the absolute path of program. Anything containing a path
// separator is taken relative to cwd; a bare name is searched for in PATH.
func resolveExecutable(program, cwd string, env Env) (string, error) {
	if program == "" {
		return "", newBuildError(ErrExecutableNotFound, program, fmt.Errorf("empty program"))
	}

	if strings.ContainsRune(program, '/') || strings.ContainsRune(program, filepath.Separator) {
		path := program
		if !filepath.IsAbs(path) {
			path = filepath.Join(cwd, path)
		}
		path = filepath.Clean(path)
		if err := checkExecutable(path, env); err != nil {
			return "", newBuildError(ErrExecutableNotFound, program, err)
		}
		return path, nil
	}

	for _, dir := range filepath.SplitList(env.Getenv("PATH")) {
		if dir == "" {
			dir = "."
		}
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(cwd, dir)
		}
		path := filepath.Join(dir, program)
		if checkExecutable(path, env) == nil {
			return path, nil
		}
	}

	return "", newBuildError(ErrExecutableNotFound, program, fmt.Errorf("not found in PATH"))
}

func checkExecutable(path string, env Env) error {
	info, err := env.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	if info.Mode().Perm()&0o111 == 0 {
		return fmt.Errorf("%s is not executable", path)
	}
	return nil
}

// deriveName returns the validated job name: override if given, otherwise the
// executable file name without its extension.
func deriveName(override, execPath string) (string, error) {
	name := override
	if name == "" {
		base := filepath.Base(execPath)
		name = strings.TrimSuffix(base, filepath.Ext(base))
		if name == "" {
			name = base
		}
	}

	name = norm.NFC.String(name)
	if err := ValidateName(name); err != nil {
		return "", newBuildError(ErrInvalidName, name, err)
	}
	return name, nil
}

// ValidateName checks that name is usable both as a filename and inside a label.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is empty")
	}
	if name == "." || name == ".." {
		return fmt.Errorf("name cannot be %q", name)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("name contains a path separator")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("name contains a control character")
		}
	}
	return nil
}

func resolveWorkingDir(dir, cwd string, env Env) (string, error) {
	if dir == "" {
		return cwd, nil
	}

	path := dir
	if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}
	path = filepath.Clean(path)

	info, err := env.Stat(path)
	if err != nil {
		return "", newBuildError(ErrInvalidWorkingDir, dir, err)
	}
	if !info.IsDir() {
		return "", newBuildError(ErrInvalidWorkingDir, dir, fmt.Errorf("not a directory"))
	}
	return path, nil
}
