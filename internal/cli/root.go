package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/T1mof/review-tracker/internal/config"
)

const version = "0.1.0"

const (
	ExitSuccess      = 0
	ExitRuntimeError = 1
	ExitUsageError   = 2
)

var rootCmd = &cobra.Command{
	Use:   "reviewtracker",
	Short: "Multi-stage code review tracker",
	Long:  "Review tracker serves the REST API for review requests, stage templates and global settings.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.SetupLogger()
	},
	SilenceUsage: true,
}

// exitCode выставляется командами, если ошибка уже обработана.
var exitCode = ExitSuccess

// Run выполняет корневую команду и возвращает код выхода.
func Run() int {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		return ExitUsageError
	}

	return exitCode
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print reviewtracker version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "reviewtracker version %s\n", version)
	},
}
