package logger

// LogEntry is a single event in the log. Exactly one of the event fields is
// set.
type LogEntry struct {
	TimestampMicros int64  `json:"timestamp_micros"`
	SessionID       string `json:"session_id,omitempty"`

	SessionStart   *SessionStart   `json:"session_start,omitempty"`
	RecordCommand  *RecordCommand  `json:"record_command,omitempty"`
	Replay         *Replay         `json:"replay,omitempty"`
	RunCommand     *RunCommand     `json:"run_command,omitempty"`
	UnknownCommand *UnknownCommand `json:"unknown_command,omitempty"`
	LaunchFailure  *LaunchFailure  `json:"launch_failure,omitempty"`
	CommandExit    *CommandExit    `json:"command_exit,omitempty"`
	SessionEnd     *SessionEnd     `json:"session_end,omitempty"`
}

// LogType is implemented by every event that can be stored in a LogEntry.
type LogType interface {
	setOn(le *LogEntry)
}

// GetLogType returns the event held by the entry, or nil if there is none.
func (le *LogEntry) GetLogType() LogType {
	switch {
	case le.SessionStart != nil:
		return le.SessionStart
	case le.RecordCommand != nil:
		return le.RecordCommand
	case le.Replay != nil:
		return le.Replay
	case le.RunCommand != nil:
		return le.RunCommand
	case le.UnknownCommand != nil:
		return le.UnknownCommand
	case le.LaunchFailure != nil:
		return le.LaunchFailure
	case le.CommandExit != nil:
		return le.CommandExit
	case le.SessionEnd != nil:
		return le.SessionEnd
	}
	return nil
}

// SessionStart is logged once when the shell loop begins.
type SessionStart struct {
	HistorySize int    `json:"history_size"`
	Interactive bool   `json:"interactive"`
	Term        string `json:"term,omitempty"`
}

func (e *SessionStart) setOn(le *LogEntry) { le.SessionStart = e }

// RecordCommand is logged when a line is added to the history.
type RecordCommand struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

func (e *RecordCommand) setOn(le *LogEntry) { le.RecordCommand = e }

// Replay is logged for every !N directive.
type Replay struct {
	Token string `json:"token"`
	ID    uint   `json:"id"`
	Found bool   `json:"found"`
	Text  string `json:"text,omitempty"`
}

func (e *Replay) setOn(le *LogEntry) { le.Replay = e }

// RunCommand is logged when a child process has been started.
type RunCommand struct {
	Command             []string `json:"command"`
	ResolvedCommandPath string   `json:"resolved_command_path"`
	Pid                 int      `json:"pid"`
	Background          bool     `json:"background"`
}

func (e *RunCommand) setOn(le *LogEntry) { le.RunCommand = e }

// UnknownCommand is logged when a program couldn't be found or executed.
type UnknownCommand struct {
	Command      []string `json:"command"`
	ErrorMessage string   `json:"error_message"`
}

func (e *UnknownCommand) setOn(le *LogEntry) { le.UnknownCommand = e }

// LaunchFailure is logged when a child couldn't be created for a reason
// other than a missing program.
type LaunchFailure struct {
	Command      []string `json:"command"`
	ErrorMessage string   `json:"error_message"`
}

func (e *LaunchFailure) setOn(le *LogEntry) { le.LaunchFailure = e }

// CommandExit is logged when a child has been waited on or reaped.
type CommandExit struct {
	Pid        int  `json:"pid"`
	ExitStatus int  `json:"exit_status"`
	Signaled   bool `json:"signaled,omitempty"`
	Background bool `json:"background"`
}

func (e *CommandExit) setOn(le *LogEntry) { le.CommandExit = e }

// SessionEnd is logged when the shell stops reading input.
type SessionEnd struct {
	Reason   string `json:"reason"`
	ExitCode int    `json:"exit_code"`
}

func (e *SessionEnd) setOn(le *LogEntry) { le.SessionEnd = e }
