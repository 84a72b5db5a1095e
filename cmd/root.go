package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/josephlewis42/bangsh/core/config"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	cfgPath      string
	eventLogPath string
)

func loadConfig() (*config.Configuration, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}

	configuration, err := config.Load(afero.NewOsFs(), cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("Couldn't load config: did you run init?")
	}

	return configuration, err
}

// shouldColor decides whether to color output written to f.
func shouldColor(mode string, f *os.File) bool {
	switch mode {
	case config.ColorNever:
		return false
	case config.ColorAlways:
		return true
	default:
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bangsh",
	Short: "A small interactive command interpreter",
	Long: `bangsh reads commands, runs them in the foreground or in the background
(with a trailing &), and keeps a numbered history of the last few commands
that can be re-run with !N.`,
	Args:          cobra.NoArgs,
	RunE:          runShell,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	os.Exit(reportError(os.Stderr, err))
}

// reportError prints a failed command's error once and gives the process
// exit status.
func reportError(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	fmt.Fprintf(w, "bangsh: %v\n", err)
	return 1
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config directory or config.yaml path, defaults are used if empty")
	rootCmd.PersistentFlags().StringVar(&eventLogPath, "event-log", "", "write session events to this file, overrides the config")
}
