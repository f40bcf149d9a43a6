package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"slidedeck/internal/version"
)

var versionDetailed bool

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Display the version of slidedeck.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		if versionDetailed {
			fmt.Fprintln(cmd.OutOrStdout(), version.GetDetailedVersion())
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), version.GetFormattedVersion())
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionDetailed, "detailed", false, "Show detailed build information")
}
