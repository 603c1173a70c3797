package cmd

import (
	"fmt"

	"github.com/saltyorg/sb-exec/internal/command"

	"github.com/spf13/cobra"
)

var (
	buildRaw       bool
	buildNullToken string
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build [flags] program [args...]",
	Short: "Print the command line that run would execute",
	Example: `  sb-exec build ps a "a b"
  sb-exec build --raw -- ls -la`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}

		line, err := command.Build(args[0], toArgs(args[1:], buildNullToken), s.commandOptions(buildRaw)...)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), line)
		return err
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().BoolVar(&buildRaw, "raw", false, "Pass arguments verbatim instead of quoting them")
	buildCmd.Flags().StringVar(&buildNullToken, "null-token", "", "Drop arguments equal to this token")
	buildCmd.Flags().SetInterspersed(false)
}
