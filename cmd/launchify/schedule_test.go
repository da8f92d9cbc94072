package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/aatumaykin/launchify/internal/duration"
	"github.com/aatumaykin/launchify/internal/job"
)

func TestSchedule_FromSearchPath(t *testing.T) {
	h := newTestHome(t)

	stdout, _, err := executeCommand(t, "5m", "myprog", "--no-load")
	require.NoError(t, err)

	path := filepath.Join(h.agents, "com.myprog.plist")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	doc := string(data)

	assert.Contains(t, doc, "<key>Label</key>\n    <string>com.myprog</string>")
	assert.Contains(t, doc, "<key>StartInterval</key>\n    <integer>300</integer>")
	assert.Contains(t, doc, "<key>Program</key>\n    <string>"+h.prog+"</string>")
	assert.Contains(t, doc, "<string>"+filepath.Join(h.logs, "myprog", "stdout.log")+"</string>")
	assert.Contains(t, doc, "<string>"+filepath.Join(h.logs, "myprog", "stderr.log")+"</string>")

	info, err := os.Stat(filepath.Join(h.logs, "myprog"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	assert.Contains(t, stdout, "Scheduled myprog every 5m")
	assert.Contains(t, stdout, "Wrote "+path)
	assert.Contains(t, stdout, "launchctl load -w "+path)
	assert.Contains(t, stdout, "launchify unload myprog")
}

func TestSchedule_ArgsAndName(t *testing.T) {
	h := newTestHome(t)

	_, _, err := executeCommand(t, "1h", "myprog", "--args=--foo bar", "--name=my_awesome_program", "--no-load")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(h.agents, "com.my_awesome_program.plist"))
	require.NoError(t, err)
	doc := string(data)

	assert.Contains(t, doc, "<string>com.my_awesome_program</string>")
	assert.Contains(t, doc, "<integer>3600</integer>")
	assert.Contains(t, doc, "<array>\n        <string>"+h.prog+"</string>\n        <string>--foo</string>\n        <string>bar</string>\n    </array>")
	assert.Contains(t, doc, filepath.Join(h.logs, "my_awesome_program", "stdout.log"))
}

func TestSchedule_WorkingDir(t *testing.T) {
	h := newTestHome(t)
	work := filepath.Join(h.home, "work")
	require.NoError(t, os.Mkdir(work, 0o755))

	_, _, err := executeCommand(t, "30s", h.prog, "--working-dir", work, "--no-load")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(h.agents, "com.myprog.plist"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<key>WorkingDirectory</key>\n    <string>"+work+"</string>")
	assert.Contains(t, string(data), "<integer>30</integer>")
}

func TestSchedule_InvalidDurationWritesNothing(t *testing.T) {
	h := newTestHome(t)

	_, stderr, err := executeCommand(t, "5x", "myprog", "--no-load")
	require.Error(t, err)
	assert.ErrorIs(t, err, duration.ErrInvalidDuration)
	assert.Contains(t, stderr, `"5x"`)

	_, statErr := os.Stat(h.agents)
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(h.logs)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSchedule_BuildErrorsWriteNothing(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"unknown program", []string{"5m", "nosuchprog"}, job.ErrExecutableNotFound},
		{"bad name", []string{"5m", "myprog", "--name=a/b"}, job.ErrInvalidName},
		{"bad working dir", []string{"5m", "myprog", "--working-dir=/nonexistent/dir"}, job.ErrInvalidWorkingDir},
		{"bad args", []string{"5m", "myprog", `--args="unterminated`}, job.ErrInvalidArgs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHome(t)

			_, _, err := executeCommand(t, append(tt.args, "--no-load")...)
			assert.ErrorIs(t, err, tt.want)

			_, statErr := os.Stat(h.agents)
			assert.True(t, os.IsNotExist(statErr))
		})
	}
}

func TestSchedule_OverwriteAndNoClobber(t *testing.T) {
	h := newTestHome(t)
	path := filepath.Join(h.agents, "com.myprog.plist")

	_, _, err := executeCommand(t, "5m", "myprog", "--no-load")
	require.NoError(t, err)
	_, _, err = executeCommand(t, "1h", "myprog", "--no-load")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<integer>3600</integer>")

	entries, err := os.ReadDir(h.agents)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	_, _, err = executeCommand(t, "2d", "myprog", "--no-load", "--no-clobber")
	require.Error(t, err)

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<integer>3600</integer>")
}

func TestSchedule_DryRun(t *testing.T) {
	h := newTestHome(t)

	stdout, _, err := executeCommand(t, "5m", "myprog", "--dry-run")
	require.NoError(t, err)

	path := filepath.Join(h.agents, "com.myprog.plist")
	assert.True(t, strings.HasPrefix(stdout, "Dry run: would write "+path+"\n<?xml"))
	assert.Contains(t, stdout, "<integer>300</integer>")

	_, statErr := os.Stat(h.agents)
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(h.logs)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSchedule_DryRunYAML(t *testing.T) {
	h := newTestHome(t)

	stdout, _, err := executeCommand(t, "2d", "myprog", "--dry-run", "--format=yaml", "--args=-v")
	require.NoError(t, err)

	body := stdout[strings.Index(stdout, "\n")+1:]
	var got map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(body), &got))

	assert.Equal(t, "myprog", got["name"])
	assert.Equal(t, "com.myprog", got["label"])
	assert.Equal(t, h.prog, got["executable_path"])
	assert.Equal(t, 172800, got["interval_seconds"])
	assert.Equal(t, []any{"-v"}, got["args"])
}

func TestSchedule_InvalidFormat(t *testing.T) {
	newTestHome(t)

	_, _, err := executeCommand(t, "5m", "myprog", "--dry-run", "--format=json")
	assert.Error(t, err)
}

func TestSchedule_ConfigOverrides(t *testing.T) {
	h := newTestHome(t)
	agents := filepath.Join(h.home, "agents")
	h.writeConfig(t, `
[paths]
launch_agents_dir = "`+agents+`"
log_root = "~/joblogs"

[job]
label_prefix = "org.example."
load = false
`)

	stdout, _, err := executeCommand(t, "5m", "myprog")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(agents, "org.example.myprog.plist"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<string>org.example.myprog</string>")
	assert.Contains(t, string(data), filepath.Join(h.home, "joblogs", "myprog", "stdout.log"))
	assert.Contains(t, stdout, "Not loaded")
}

func TestSchedule_InvalidConfig(t *testing.T) {
	h := newTestHome(t)
	h.writeConfig(t, "[logging]\nlevel = \"loud\"\n")

	_, _, err := executeCommand(t, "5m", "myprog", "--no-load")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")

	_, statErr := os.Stat(h.agents)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSchedule_Load(t *testing.T) {
	h := newTestHome(t)
	bin, record := h.fakeLaunchctl(t, 0)
	h.writeConfig(t, "[job]\nlaunchctl = \""+bin+"\"\n")

	stdout, _, err := executeCommand(t, "5m", "myprog")
	require.NoError(t, err)

	path := filepath.Join(h.agents, "com.myprog.plist")
	calls, err := os.ReadFile(record)
	require.NoError(t, err)
	assert.Equal(t, "load -w "+path+"\n", string(calls))
	assert.Contains(t, stdout, "Loaded com.myprog into launchd")
}

func TestSchedule_LoadFailureIsWarning(t *testing.T) {
	h := newTestHome(t)
	bin, _ := h.fakeLaunchctl(t, 1)
	h.writeConfig(t, "[job]\nlaunchctl = \""+bin+"\"\n")

	_, stderr, err := executeCommand(t, "5m", "myprog")
	require.NoError(t, err)

	assert.Contains(t, stderr, "could not be loaded")
	assert.Contains(t, stderr, "launchctl says no")
	assert.FileExists(t, filepath.Join(h.agents, "com.myprog.plist"))
}
