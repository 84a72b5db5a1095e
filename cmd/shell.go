package cmd

import (
	"errors"
	"io"
	"io/ioutil"
	"log"
	"os"

	"github.com/josephlewis42/bangsh/core/logger"
	"github.com/josephlewis42/bangsh/core/proc"
	"github.com/josephlewis42/bangsh/core/shell"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"
)

var verbose bool

func runShell(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	var diagOut io.Writer = ioutil.Discard
	if verbose {
		diagOut = cmd.ErrOrStderr()
	}
	diag := log.New(diagOut, "[bangsh] ", 0)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if eventLogPath != "" {
		cfg.EventLog = eventLogPath
	}

	if err := os.Setenv("PATH", cfg.SearchPath(os.Getenv("PATH"))); err != nil {
		return err
	}

	events := logger.Nop()
	if cfg.EventLogPath() != "" {
		diag.Printf("- Logging events to %s", cfg.EventLogPath())
		fd, err := cfg.OpenEventLog()
		if err != nil {
			return err
		}
		defer fd.Close()
		events = logger.NewJsonLinesLogRecorder(fd)
	}
	session := events.NewSession()

	diag.Println("- Starting reaper")
	reaper := proc.NewReaper(func(pid int, status unix.WaitStatus) {
		session.Record(proc.ExitEvent(pid, status, true))
	})
	launcher := proc.NewLauncher(reaper, session)

	sh := shell.NewShell(launcher, cfg.HistorySize, session)
	sh.MaxReplayDepth = cfg.MaxReplayDepth

	interactive := isatty.IsTerminal(os.Stdin.Fd())
	var in shell.LineReader
	if interactive {
		tr, err := shell.NewTerminalReader(cfg.Prompt, shouldColor(cfg.Color, os.Stdout), os.Stdin, os.Stdout, os.Stderr)
		if err != nil {
			return err
		}
		defer tr.Close()
		in = tr
	} else {
		in = shell.NewStreamReader(os.Stdin)
	}

	session.Record(&logger.SessionStart{
		HistorySize: sh.History.Cap(),
		Interactive: interactive,
		Term:        os.Getenv("TERM"),
	})

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		return reaper.Run(ctx)
	})
	g.Go(func() error {
		// Always non-nil, which also stops the reaper.
		return sh.Run(ctx, in)
	})

	err = g.Wait()
	diag.Printf("- Shell stopped: %v (%d background children running)", err, reaper.Pending())
	if errors.Is(err, shell.ErrExit) {
		return nil
	}
	return err
}

func init() {
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log startup and shutdown diagnostics to stderr")
}
