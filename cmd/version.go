package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags "-X .../cmd.version=v1.2.3".
var version = "dev"

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, _ []string) {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "quartet %s\n", version)
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Four-qubit device geometry assembler")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
