package shell

import (
	"bufio"
	"io"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/fatih/color"
)

// PromptColor is used for the prompt when color is enabled.
var PromptColor = color.New(color.FgGreen, color.Bold)

// TerminalReader reads lines with editing support from an interactive
// terminal.
type TerminalReader struct {
	Instance *readline.Instance
}

var _ LineReader = (*TerminalReader)(nil)

// NewTerminalReader sets up line editing on the given streams.
func NewTerminalReader(prompt string, colorize bool, stdin io.ReadCloser, stdout, stderr io.Writer) (*TerminalReader, error) {
	prompt = ExpandPrompt(prompt)
	if colorize {
		c := *PromptColor
		c.EnableColor()
		prompt = c.Sprint(prompt)
	}

	var completions []readline.PrefixCompleterInterface
	for _, name := range BuiltinNames() {
		completions = append(completions, readline.PcItem(name))
	}

	cfg := &readline.Config{
		Prompt:       prompt,
		Stdin:        readline.NewCancelableStdin(stdin),
		Stdout:       stdout,
		Stderr:       stderr,
		AutoComplete: readline.NewPrefixCompleter(completions...),
	}
	if err := cfg.Init(); err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}
	return &TerminalReader{Instance: rl}, nil
}

// Readline reads the next line. The terminator stripped by line editing is
// put back.
func (t *TerminalReader) Readline() (string, error) {
	line, err := t.Instance.Readline()
	if err != nil {
		return "", err
	}
	return line + "\n", nil
}

func (t *TerminalReader) Close() error {
	return t.Instance.Close()
}

// StreamReader reads lines from non-interactive input such as a pipe,
// keeping the terminators as they appear.
type StreamReader struct {
	r *bufio.Reader
}

var _ LineReader = (*StreamReader)(nil)

// NewStreamReader creates a StreamReader.
func NewStreamReader(r io.Reader) *StreamReader {
	return &StreamReader{r: bufio.NewReader(r)}
}

// NewStringReader is a StreamReader over a fixed script.
func NewStringReader(script string) *StreamReader {
	return NewStreamReader(strings.NewReader(script))
}

// Readline returns the next line. A final line without a terminator is
// returned before io.EOF.
func (s *StreamReader) Readline() (string, error) {
	line, err := s.r.ReadString('\n')
	if err == io.EOF && line != "" {
		return line, nil
	}
	return line, err
}
