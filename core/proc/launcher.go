package proc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"

	"github.com/josephlewis42/bangsh/core/logger"
	"golang.org/x/sys/unix"
)

// ScriptShell interprets executable files the kernel can't run directly.
const ScriptShell = "/bin/sh"

// Tracker receives the PIDs of children started in the background.
type Tracker interface {
	Track(pid int)
}

// LaunchError is returned when the OS couldn't create a child at all, as
// opposed to the program not being found or runnable.
type LaunchError struct {
	Program string
	Err     error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Program, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// Launcher runs external programs.
type Launcher struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Env is the environment for children, nil uses the shell's own.
	Env []string

	// Tracker collects background children. It must be set before
	// launching in the background.
	Tracker Tracker

	Events logger.EventRecorder
}

// NewLauncher creates a Launcher connected to the process's standard
// streams.
func NewLauncher(tracker Tracker, events logger.EventRecorder) *Launcher {
	return &Launcher{
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Tracker: tracker,
		Events:  events,
	}
}

func (l *Launcher) record(event logger.LogType) {
	if l.Events != nil {
		l.Events.Record(event)
	}
}

// Launch starts tokens[0] with tokens as its argument vector. In the
// foreground it blocks until that child exits; in the background it returns
// as soon as the child is running.
//
// A program that can't be found or executed is reported on Stdout as
// "<name>: command not found" and isn't an error. Only failures to create
// the child at all are returned.
func (l *Launcher) Launch(ctx context.Context, tokens []string, background bool) error {
	if len(tokens) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if background && l.Tracker == nil {
		return errors.New("background launch without a reaper")
	}

	name := tokens[0]
	path, err := exec.LookPath(name)
	if errors.Is(err, exec.ErrDot) {
		// execvp semantics: an empty or "." PATH entry is searched.
		err = nil
	}
	if err != nil {
		l.notFound(tokens, err)
		return nil
	}

	cmd := l.command(path, tokens)
	err = cmd.Start()
	if errors.Is(err, unix.ENOEXEC) {
		// execvp runs executables without a recognized header as shell
		// scripts.
		cmd = l.command(ScriptShell, append([]string{ScriptShell, path}, tokens[1:]...))
		err = cmd.Start()
	}
	if err != nil {
		if isResourceError(err) {
			l.record(&logger.LaunchFailure{Command: tokens, ErrorMessage: err.Error()})
			return &LaunchError{Program: name, Err: err}
		}
		l.notFound(tokens, err)
		return nil
	}

	pid := cmd.Process.Pid
	l.record(&logger.RunCommand{
		Command:             tokens,
		ResolvedCommandPath: path,
		Pid:                 pid,
		Background:          background,
	})

	if background {
		// The reaper waits on the raw PID from here on.
		cmd.Process.Release()
		l.Tracker.Track(pid)
		return nil
	}

	// The exit status doesn't affect the shell, a non-zero exit isn't an
	// error here.
	waitErr := cmd.Wait()
	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) {
		return fmt.Errorf("waiting for %s: %w", name, waitErr)
	}
	l.record(exitEvent(pid, cmd.ProcessState.Sys(), false))
	return nil
}

func (l *Launcher) command(path string, argv []string) *exec.Cmd {
	return &exec.Cmd{
		Path:   path,
		Args:   argv,
		Env:    l.Env,
		Stdin:  l.Stdin,
		Stdout: l.Stdout,
		Stderr: l.Stderr,
	}
}

func (l *Launcher) notFound(tokens []string, err error) {
	fmt.Fprintf(l.Stdout, "%s: command not found\n", tokens[0])
	l.record(&logger.UnknownCommand{Command: tokens, ErrorMessage: err.Error()})
}

// isResourceError reports whether a Start failure happened while creating
// the child rather than while loading the program.
func isResourceError(err error) bool {
	return errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.ENOMEM)
}

// ExitEvent converts a wait status into a log event.
func ExitEvent(pid int, status unix.WaitStatus, background bool) *logger.CommandExit {
	event := &logger.CommandExit{
		Pid:        pid,
		ExitStatus: status.ExitStatus(),
		Background: background,
	}
	if status.Signaled() {
		event.Signaled = true
		event.ExitStatus = int(status.Signal())
	}
	return event
}

func exitEvent(pid int, sys interface{}, background bool) *logger.CommandExit {
	if status, ok := sys.(syscall.WaitStatus); ok {
		return ExitEvent(pid, unix.WaitStatus(status), background)
	}
	return &logger.CommandExit{Pid: pid, ExitStatus: -1, Background: background}
}
