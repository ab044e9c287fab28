// Package cmd implements the quartet command line interface.
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var logLevel string

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "quartet",
	Short: "Four-qubit device geometry assembler",
	Long: `quartet assembles the geometry of a four-qubit superconducting chip:
the silicon substrate, its niobium ground plane and transmission line,
resonator assemblies, flux lines, and the copper housing around them.
Every boundary between the substrate and a deposited or etched element
is classified and given scattering properties.

Device selection layers, highest priority first: flags, QUARTET_*
environment variables, a Lisp device script, quartet.yaml, defaults.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// Execute runs the CLI root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
}
