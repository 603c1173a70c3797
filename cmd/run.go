package cmd

import (
	"fmt"
	"strings"

	"github.com/saltyorg/sb-exec/internal/executor"
	"github.com/saltyorg/sb-exec/internal/logging"

	"github.com/agnivade/levenshtein"
	"github.com/spf13/cobra"
)

var (
	runStrategy  string
	runRaw       bool
	runNullToken string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [flags] program [args...]",
	Short: "Run a command and print its output",
	Long: `Run a command through the first available execution mechanism and print its output.

Use --strategy to force a specific mechanism. The deny-list is not consulted then.`,
	Example: `  sb-exec run date -u +%y%m%d
  sb-exec run --strategy proc_open -- ls -la /tmp
  sb-exec run --null-token NULL -- ps NULL aux`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cmd.Context().Err(); err != nil {
			return err
		}

		s, err := loadSettings()
		if err != nil {
			return err
		}
		e, err := s.newExecutor(cmd)
		if err != nil {
			return err
		}

		program, argv := args[0], toArgs(args[1:], runNullToken)
		opts := s.commandOptions(runRaw)

		var out string
		if runStrategy != "" {
			m, ok := executor.ParseMechanism(runStrategy)
			if !ok {
				return unknownStrategyError(runStrategy, s.verbosity)
			}
			out, err = e.RunWith(m, program, argv, opts...)
		} else {
			out, err = e.Run(program, argv, opts...)
		}
		if err != nil {
			return err
		}

		if out != "" && !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runStrategy, "strategy", "s", "", "Force an execution mechanism (exec, shell_exec, passthru, popen, proc_open, system)")
	runCmd.Flags().BoolVar(&runRaw, "raw", false, "Pass arguments verbatim instead of quoting them")
	runCmd.Flags().StringVar(&runNullToken, "null-token", "", "Drop arguments equal to this token")
	runCmd.Flags().SetInterspersed(false)
}

// suggestMechanism returns the closest mechanism name within an edit distance of 2, or "".
func suggestMechanism(name string, verbosity int) string {
	bestMatch := ""
	bestDistance := 3
	for _, m := range executor.Mechanisms() {
		distance := levenshtein.ComputeDistance(name, string(m))
		logging.Debug(verbosity, "Distance between '%s' and '%s': %d", name, m, distance)
		if distance < bestDistance {
			bestDistance = distance
			bestMatch = string(m)
		}
	}
	return bestMatch
}

func unknownStrategyError(name string, verbosity int) error {
	if suggestion := suggestMechanism(name, verbosity); suggestion != "" {
		return fmt.Errorf("unknown strategy '%s'. Did you mean '%s'?", name, suggestion)
	}
	return fmt.Errorf("unknown strategy '%s'\nValid strategies: exec, shell_exec, passthru, popen, proc_open, system", name)
}
