package cmd

import (
	"fmt"

	"github.com/saltyorg/sb-exec/internal/runtime"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print sb-exec version",
	Long:  `Print sb-exec version`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "sb-exec version: %s\n", runtime.VersionString())
		return err
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
