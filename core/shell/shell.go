package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/abiosoft/readline"
	"github.com/josephlewis42/bangsh/core/logger"
)

// DefaultMaxReplayDepth bounds how many !N directives can chain for one line.
const DefaultMaxReplayDepth = 16

// Launcher starts external programs.
type Launcher interface {
	Launch(ctx context.Context, tokens []string, background bool) error
}

// LineReader supplies one line of input per call, including its line
// terminator.
type LineReader interface {
	Readline() (string, error)
}

type Shell struct {
	History  *History
	Launcher Launcher

	Stdout io.Writer
	Stderr io.Writer

	// MaxReplayDepth is the longest chain of !N replays followed for a
	// single line.
	MaxReplayDepth int

	Events logger.EventRecorder
}

// NewShell creates a shell writing to the process's standard streams.
func NewShell(launcher Launcher, historySize int, events logger.EventRecorder) *Shell {
	if events == nil {
		events = logger.Nop().Sessionless()
	}
	return &Shell{
		History:        NewHistory(historySize),
		Launcher:       launcher,
		Stdout:         os.Stdout,
		Stderr:         os.Stderr,
		MaxReplayDepth: DefaultMaxReplayDepth,
		Events:         events,
	}
}

func (s *Shell) record(event logger.LogType) {
	if s.Events != nil {
		s.Events.Record(event)
	}
}

// Run reads and handles lines until the input fails or exit is run.
//
// The error is ErrExit after the exit builtin, and wraps the input error
// otherwise.
func (s *Shell) Run(ctx context.Context, in LineReader) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := in.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			// Interrupt clears line.
			continue
		case err != nil:
			s.record(&logger.SessionEnd{Reason: err.Error(), ExitCode: 1})
			return fmt.Errorf("reading input: %w", err)
		}

		if err := s.Handle(ctx, line); err != nil {
			if errors.Is(err, ErrExit) {
				s.record(&logger.SessionEnd{Reason: "exit", ExitCode: 0})
			}
			return err
		}
	}
}

// Handle processes one line of input as if it had been typed.
//
// Replays are followed in a loop, the replayed text is classified again from
// scratch but never recorded.
func (s *Shell) Handle(ctx context.Context, line string) error {
	recording := true

	for depth := 0; ; depth++ {
		tokens, background := Tokenize(line)
		if recording && shouldRecord(tokens) {
			id := s.History.Record(line)
			s.record(&logger.RecordCommand{ID: id, Text: line})
		}

		switch kind := Classify(tokens); kind {
		case KindEmpty:
			return nil

		case KindExit, KindHistory:
			return AllBuiltins[tokens[0]].Main(s, tokens)

		case KindReplay:
			token := tokens[0]
			record, ok := s.lookupReplay(token)
			if !ok {
				fmt.Fprintf(s.Stdout, "%s: event not found\n", token)
				return nil
			}
			if depth >= s.maxReplayDepth() {
				fmt.Fprintf(s.Stdout, "%s: replay depth exceeded\n", token)
				return nil
			}
			line = record.Text
			recording = false

		default:
			err := s.Launcher.Launch(ctx, tokens, background)
			switch {
			case err == nil:
			case ctx.Err() != nil:
				return err
			default:
				fmt.Fprintf(s.Stderr, "bangsh: %v\n", err)
			}
			return nil
		}
	}
}

func (s *Shell) lookupReplay(token string) (Record, bool) {
	id, ok := replayID(token)
	if !ok {
		s.record(&logger.Replay{Token: token})
		return Record{}, false
	}

	record, found := s.History.Lookup(id)
	s.record(&logger.Replay{Token: token, ID: id, Found: found, Text: record.Text})
	return record, found
}

func (s *Shell) maxReplayDepth() int {
	if s.MaxReplayDepth < 1 {
		return DefaultMaxReplayDepth
	}
	return s.MaxReplayDepth
}
