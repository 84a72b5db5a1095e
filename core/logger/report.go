package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var logEntry LogEntry
		if err := decoder.Decode(&logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	Sessions       StrCounter `json:"sessions"`
	InvalidEntries int        `json:"invalid_log_entries,omitempty"`

	RunCommand     RunCommandReport     `json:"run_command_report"`
	UnknownCommand UnknownCommandReport `json:"unknown_command_report"`
	Replay         ReplayReport         `json:"replay_report"`
	Exit           ExitReport           `json:"exit_report"`
	LaunchFailures []string             `json:"launch_failures,omitempty"`
}

// Update adds the entry to the report.
func (r *Report) Update(le *LogEntry) {
	r.LogEntries++
	if le.SessionID != "" {
		r.Sessions.Increment(le.SessionID)
	}

	switch event := le.GetLogType().(type) {
	case *RunCommand:
		r.RunCommand.update(event)
	case *UnknownCommand:
		r.UnknownCommand.update(event)
	case *Replay:
		r.Replay.update(event)
	case *CommandExit:
		r.Exit.update(event)
	case *LaunchFailure:
		r.LaunchFailures = append(r.LaunchFailures, event.ErrorMessage)
	case *SessionStart, *SessionEnd, *RecordCommand:
		// Ignore
	default:
		r.InvalidEntries++
	}
}

type RunCommandReport struct {
	Foreground int `json:"foreground"`
	Background int `json:"background"`
	// Name of the resolved command
	ResolvedCommandPaths StrCounter `json:"resolved_command_paths"`
	// Name of the command
	CommandNames StrCounter `json:"command_names"`
}

func (r *RunCommandReport) update(rc *RunCommand) {
	if rc.Background {
		r.Background++
	} else {
		r.Foreground++
	}
	r.ResolvedCommandPaths.Increment(rc.ResolvedCommandPath)
	if len(rc.Command) > 0 {
		r.CommandNames.Increment(rc.Command[0])
	}
}

type UnknownCommandReport struct {
	CommandNames StrCounter `json:"command_names"`
}

func (r *UnknownCommandReport) update(logEntry *UnknownCommand) {
	if len(logEntry.Command) > 0 {
		r.CommandNames.Increment(logEntry.Command[0])
	}
}

type ReplayReport struct {
	Hits   int        `json:"hits"`
	Misses StrCounter `json:"misses"`
}

func (r *ReplayReport) update(rp *Replay) {
	if rp.Found {
		r.Hits++
		return
	}
	r.Misses.Increment(rp.Token)
}

type ExitReport struct {
	Reaped   int        `json:"reaped"`
	Statuses StrCounter `json:"statuses"`
}

func (r *ExitReport) update(ce *CommandExit) {
	if ce.Background {
		r.Reaped++
	}
	status := fmt.Sprintf("%d", ce.ExitStatus)
	if ce.Signaled {
		status = "signal " + status
	}
	r.Statuses.Increment(status)
}

// SessionCommands collects the command lines of each session in order.
type SessionCommands struct {
	// Map of sessionID -> commands
	sessions map[string][]string
}

func (s *SessionCommands) Update(le *LogEntry) {
	if s.sessions == nil {
		s.sessions = make(map[string][]string)
	}

	if rc := le.RecordCommand; rc != nil {
		s.sessions[le.SessionID] = append(s.sessions[le.SessionID], strings.TrimRight(rc.Text, "\n"))
	}
}

// Commands gets the recorded commands for a session.
func (s *SessionCommands) Commands(sessionID string) []string {
	return s.sessions[sessionID]
}

// MarshalJSON implemnts custom JSON marshaler.
func (s *SessionCommands) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.sessions)
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Get returns the count for key.
func (s *StrCounter) Get(key string) int {
	return s.internal[key]
}

// MarshalJSON implemnts custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.internal)
}

// Keys returns the counted strings, most frequent first.
func (s *StrCounter) Keys() []string {
	var out []string
	for k := range s.internal {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if s.internal[out[i]] == s.internal[out[j]] {
			return out[i] < out[j]
		}
		return s.internal[out[i]] > s.internal[out[j]]
	})
	return out
}
