// Package cmd wires the cobra command tree.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hugo-lorenzo-mato/procscope/internal/core"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string
	noColor   bool
	timeout   string

	// Version info - set via SetVersion()
	appVersion string
	appCommit  string
	appDate    string
)

var rootCmd = &cobra.Command{
	Use:   "procscope",
	Short: "Interactive dispatcher for process diagnostics",
	Long: `procscope lists running processes, classifies each as a JVM or
generic process, and dispatches the matching diagnostic action against
the one you pick: thread dump (jstack), heap summary (jmap), native
stack trace (pstack), or an environment variable dump.

Running 'procscope' without arguments starts the interactive menu.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runInteractive,
}

// Execute runs the root command, printing any failure with its
// remediation hint.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if hint := core.HintOf(err); hint != "" {
			fmt.Fprintf(os.Stderr, "hint: %s\n", hint)
		}
	}
	return err
}

// SetVersion injects build-time version information.
func SetVersion(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: .procscope.yaml or ~/.config/procscope/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "auto",
		"log format (auto, text, json)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"disable colored output")
	rootCmd.PersistentFlags().StringVar(&timeout, "timeout", "",
		"per-dispatch timeout (e.g. 10s, 1m)")

	// Bind flags to viper (errors are nil when flag exists)
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("ui.no_color", rootCmd.PersistentFlags().Lookup("no-color"))
	_ = viper.BindPFlag("dispatch.timeout", rootCmd.PersistentFlags().Lookup("timeout"))
}
