package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/josephlewis42/bangsh/core/logger"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Explore the session event log.",
}

func readEventLog(handler func(le *logger.LogEntry)) error {
	config, err := loadConfig()
	if err != nil {
		return err
	}
	if eventLogPath != "" {
		config.EventLog = eventLogPath
	}
	if config.EventLogPath() == "" {
		return errors.New("no event log configured, set event_log or pass --event-log")
	}

	fd, err := config.ReadEventLog()
	if err != nil {
		return err
	}
	defer fd.Close()

	return logger.ReadJSONLinesLog(fd, handler)
}

func printYAML(w io.Writer, v interface{}) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, string(out))
	return nil
}

var reportCommand = &cobra.Command{
	Use:   "report",
	Short: "Show a report of events.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		var report logger.Report
		if err := readEventLog(report.Update); err != nil {
			return err
		}

		return printYAML(cmd.OutOrStdout(), report)
	},
}

var commandsCommand = &cobra.Command{
	Use:   "commands",
	Short: "Show the commands recorded in each session.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		var commands logger.SessionCommands
		if err := readEventLog(commands.Update); err != nil {
			return err
		}

		return printYAML(cmd.OutOrStdout(), &commands)
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(reportCommand)
	eventsCmd.AddCommand(commandsCommand)
}
