package proc

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/josephlewis42/bangsh/core/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

type fakeRecorder struct {
	mu     sync.Mutex
	events []logger.LogType
}

func (f *fakeRecorder) Record(event logger.LogType) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakeRecorder) Events() []logger.LogType {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]logger.LogType(nil), f.events...)
}

func newTestLauncher(tracker Tracker) (*Launcher, *bytes.Buffer, *fakeRecorder) {
	out := &bytes.Buffer{}
	events := &fakeRecorder{}
	return &Launcher{
		Stdin:   bytes.NewReader(nil),
		Stdout:  out,
		Stderr:  out,
		Tracker: tracker,
		Events:  events,
	}, out, events
}

func TestLaunchForeground(t *testing.T) {
	l, out, events := newTestLauncher(nil)

	err := l.Launch(context.Background(), []string{"echo", "hello", "world"}, false)
	require.NoError(t, err)
	assert.Equal(t, "hello world\n", out.String())

	got := events.Events()
	require.Len(t, got, 2)
	run, ok := got[0].(*logger.RunCommand)
	require.True(t, ok)
	assert.Equal(t, []string{"echo", "hello", "world"}, run.Command)
	assert.False(t, run.Background)

	exit, ok := got[1].(*logger.CommandExit)
	require.True(t, ok)
	assert.Equal(t, run.Pid, exit.Pid)
	assert.Equal(t, 0, exit.ExitStatus)
}

func TestLaunchForegroundIgnoresExitStatus(t *testing.T) {
	l, _, events := newTestLauncher(nil)

	err := l.Launch(context.Background(), []string{"sh", "-c", "exit 3"}, false)
	assert.NoError(t, err)

	got := events.Events()
	require.Len(t, got, 2)
	assert.Equal(t, 3, got[1].(*logger.CommandExit).ExitStatus)
}

func TestLaunchForegroundWaitsForChild(t *testing.T) {
	l, out, _ := newTestLauncher(nil)

	start := time.Now()
	require.NoError(t, l.Launch(context.Background(), []string{"sh", "-c", "sleep 0.2; echo done"}, false))
	assert.True(t, time.Since(start) >= 200*time.Millisecond, "returned before the child exited")
	assert.Equal(t, "done\n", out.String())
}

func TestLaunchArgvZero(t *testing.T) {
	l, out, _ := newTestLauncher(nil)

	require.NoError(t, l.Launch(context.Background(), []string{"sh", "-c", "echo $0", "custom"}, false))
	assert.Equal(t, "custom\n", out.String())
}

func TestLaunchNotFound(t *testing.T) {
	l, out, events := newTestLauncher(nil)

	err := l.Launch(context.Background(), []string{"bangsh-no-such-program", "-x"}, false)
	assert.NoError(t, err)
	assert.Equal(t, "bangsh-no-such-program: command not found\n", out.String())

	got := events.Events()
	require.Len(t, got, 1)
	unknown, ok := got[0].(*logger.UnknownCommand)
	require.True(t, ok)
	assert.Equal(t, []string{"bangsh-no-such-program", "-x"}, unknown.Command)
}

func TestLaunchNotExecutable(t *testing.T) {
	script := filepath.Join(t.TempDir(), "script")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho hi\n"), 0600))

	l, out, _ := newTestLauncher(nil)
	require.NoError(t, l.Launch(context.Background(), []string{script}, false))
	assert.Equal(t, script+": command not found\n", out.String())
}

func TestLaunchScriptWithoutInterpreter(t *testing.T) {
	script := filepath.Join(t.TempDir(), "noshebang")
	require.NoError(t, os.WriteFile(script, []byte("echo ran \"$1\"\n"), 0700))

	l, out, events := newTestLauncher(nil)
	require.NoError(t, l.Launch(context.Background(), []string{script, "arg"}, false))
	assert.Equal(t, "ran arg\n", out.String())

	got := events.Events()
	require.Len(t, got, 2)
	run, ok := got[0].(*logger.RunCommand)
	require.True(t, ok)
	assert.Equal(t, script, run.ResolvedCommandPath)
	assert.Equal(t, 0, got[1].(*logger.CommandExit).ExitStatus)
}

func TestLaunchBackground(t *testing.T) {
	var mu sync.Mutex
	var exited []int
	reaper := NewReaper(func(pid int, _ unix.WaitStatus) {
		mu.Lock()
		defer mu.Unlock()
		exited = append(exited, pid)
	})

	l, _, events := newTestLauncher(reaper)
	l.Stdout = io.Discard
	l.Stderr = io.Discard

	start := time.Now()
	require.NoError(t, l.Launch(context.Background(), []string{"sleep", "0.3"}, true))
	assert.True(t, time.Since(start) < 300*time.Millisecond, "background launch blocked")
	assert.Equal(t, 1, reaper.Pending())

	run := events.Events()[0].(*logger.RunCommand)
	assert.True(t, run.Background)

	assert.Eventually(t, func() bool {
		reaper.Reap()
		return reaper.Pending() == 0
	}, 5*time.Second, 20*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{run.Pid}, exited)
}

func TestLaunchBackgroundRequiresTracker(t *testing.T) {
	l, _, _ := newTestLauncher(nil)
	assert.Error(t, l.Launch(context.Background(), []string{"true"}, true))
}

func TestLaunchEmpty(t *testing.T) {
	l, out, events := newTestLauncher(nil)
	assert.NoError(t, l.Launch(context.Background(), nil, false))
	assert.Empty(t, out.String())
	assert.Empty(t, events.Events())
}

func TestLaunchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l, out, _ := newTestLauncher(nil)
	assert.ErrorIs(t, l.Launch(ctx, []string{"echo", "hi"}, false), context.Canceled)
	assert.Empty(t, out.String())
}
