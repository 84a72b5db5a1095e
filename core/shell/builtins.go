package shell

import (
	"errors"
	"fmt"
	"sort"

	"github.com/pborman/getopt/v2"
)

// ErrExit is returned by the shell loop when the exit builtin runs.
var ErrExit = errors.New("exit")

// AllBuiltins holds a list of all registered shell builtins
var AllBuiltins = make(map[string]ShellBuiltin)

type ShellBuiltin interface {
	Main(s *Shell, args []string) error
}

type ShellBuiltinFunc func(s *Shell, args []string) error

func (f ShellBuiltinFunc) Main(s *Shell, args []string) error {
	return f(s, args)
}

var _ ShellBuiltin = (ShellBuiltinFunc)(nil)

// Exit quits the shell. Background children are left running.
func Exit(s *Shell, args []string) error {
	return ErrExit
}

// HistoryBuiltin lists the held history records, most recent first.
func HistoryBuiltin(s *Shell, args []string) error {
	opts := getopt.New()
	opts.SetProgram("history")
	opts.SetParameters("")
	count := opts.IntLong("count", 'n', 0, "show only the COUNT most recent entries", "COUNT")
	helpOpt := opts.BoolLong("help", 'h', "show help and exit")

	if err := opts.Getopt(args, nil); err != nil || *helpOpt || *count < 0 {
		w := s.Stderr
		switch {
		case err != nil:
			fmt.Fprintln(w, err)
		case *count < 0:
			fmt.Fprintf(w, "history: invalid count %d\n", *count)
		}
		fmt.Fprintln(w, "Display the history list with command numbers.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Options:")
		opts.PrintOptions(w)
		return nil
	}

	records := s.History.Show()
	if *count > 0 && *count < len(records) {
		records = records[:*count]
	}
	for _, r := range records {
		fmt.Fprintf(s.Stdout, "\t\t%d %s", r.ID, r.Text)
	}
	return nil
}

// BuiltinNames lists the builtins in sorted order, including the !N
// replay directive.
func BuiltinNames() []string {
	var names []string
	for k := range AllBuiltins {
		names = append(names, k)
	}
	names = append(names, replayPrefix+"N")
	sort.Strings(names)
	return names
}

func init() {
	AllBuiltins["exit"] = ShellBuiltinFunc(Exit)
	AllBuiltins["history"] = ShellBuiltinFunc(HistoryBuiltin)
}
