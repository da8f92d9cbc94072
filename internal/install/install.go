// Package install writes rendered agent definitions into the LaunchAgents directory
// and prepares the log directory the agent will write to.
//
// Example usage:
//
//	inst := install.New("~/Library/LaunchAgents", log)
//	path, err := inst.Install("com.backup", doc, "/Users/me/logs/backup")
//	if err != nil {
//	    return err
//	}
//	fmt.Println("Wrote", path)
package install

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/aatumaykin/launchify/internal/logger"
	"github.com/aatumaykin/launchify/internal/plist"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

var (
	// ErrIO is matched by every filesystem failure reported by the installer.
	ErrIO = errors.New("filesystem error")

	// ErrExists is returned when NoClobber is set and the agent file already exists.
	ErrExists = errors.New("agent file already exists")
)

// Error describes a failed filesystem operation.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

// Is makes errors.Is(err, ErrIO) true for any Error.
func (e *Error) Is(target error) bool {
	return target == ErrIO
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Installer places agent definitions in Dir.
type Installer struct {
	dir       string
	noClobber bool
	logger    *logger.Logger
}

// Option configures an Installer.
type Option func(*Installer)

// WithNoClobber makes Install refuse to replace an existing agent file.
func WithNoClobber(noClobber bool) Option {
	return func(i *Installer) {
		i.noClobber = noClobber
	}
}

// New creates an Installer writing into dir. log may be nil.
func New(dir string, log *logger.Logger, opts ...Option) *Installer {
	i := &Installer{
		dir:    dir,
		logger: log,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Dir returns the directory agent files are written to.
func (i *Installer) Dir() string {
	return i.dir
}

// Path returns the agent file path for label.
func (i *Installer) Path(label string) string {
	return filepath.Join(i.dir, plist.Filename(label))
}

// Install creates logDir, then writes document to <dir>/<label>.plist, replacing any
// existing file unless NoClobber is set. It returns the written path.
func (i *Installer) Install(label string, document []byte, logDir string) (string, error) {
	if err := ensureDir(logDir); err != nil {
		return "", err
	}
	if err := ensureDir(i.dir); err != nil {
		return "", err
	}

	target := i.Path(label)
	if i.noClobber {
		if _, err := os.Stat(target); err == nil {
			return "", fmt.Errorf("%w: %s", ErrExists, target)
		}
	}

	if err := writeFileAtomic(target, document); err != nil {
		return "", err
	}

	i.debug("Agent file written",
		logger.Field{Key: "path", Value: target},
		logger.Field{Key: "bytes", Value: len(document)})
	return target, nil
}

// Remove deletes the agent file for label. A missing file is not an error.
func (i *Installer) Remove(label string) (string, error) {
	target := i.Path(label)
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return "", &Error{Op: "remove", Path: target, Err: err}
	}
	i.debug("Agent file removed", logger.Field{Key: "path", Value: target})
	return target, nil
}

// Exists reports whether an agent file for label is present.
func (i *Installer) Exists(label string) bool {
	info, err := os.Stat(i.Path(label))
	return err == nil && info.Mode().IsRegular()
}

func (i *Installer) debug(msg string, fields ...logger.Field) {
	if i.logger != nil {
		i.logger.Debug(msg, fields...)
	}
}

// ensureDir creates path and its parents if it doesn't exist.
func ensureDir(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return &Error{Op: "create directory", Path: path, Err: errors.New("path exists but is not a directory")}
		}
		return nil
	}

	if err := os.MkdirAll(path, dirPerm); err != nil {
		return &Error{Op: "create directory", Path: path, Err: err}
	}
	return nil
}

// writeFileAtomic writes data next to path and renames it into place, so readers
// never observe a partially written file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))

	if err := os.WriteFile(tmp, data, filePerm); err != nil {
		_ = os.Remove(tmp)
		return &Error{Op: "write", Path: tmp, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &Error{Op: "write", Path: path, Err: err}
	}
	return nil
}
