package cmd

import (
	"context"

	"github.com/saltyorg/sb-exec/internal/command"
	"github.com/saltyorg/sb-exec/internal/config"
	"github.com/saltyorg/sb-exec/internal/executor"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbosity  int
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sb-exec",
	Short: "Run commands through the first available execution mechanism",
	Long: `sb-exec builds a shell-ready command line and runs it through the first
execution mechanism that is present on this host and not disabled by policy.`,
	SilenceUsage: true,
}

// GetRootCommand returns the root command for use with fang.Execute
func GetRootCommand() *cobra.Command {
	return rootCmd
}

// ExecuteContext runs the root command with ctx available to all commands via cmd.Context().
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to the configuration file")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity level (can be used multiple times, e.g. -vv)")
}

// settings is the resolved state shared by commands that build or run commands.
type settings struct {
	config    *config.Config
	verbosity int
}

// loadSettings reads the configuration file and merges the verbosity flag into it.
func loadSettings() (*settings, error) {
	cfg, err := config.Load(configPath, verbosity)
	if err != nil {
		return nil, err
	}
	return &settings{
		config:    cfg,
		verbosity: max(verbosity, cfg.Verbosity),
	}, nil
}

// newExecutor creates an executor from the settings, sending the child's
// uncaptured stderr to the command's error stream.
func (s *settings) newExecutor(cmd *cobra.Command) (*executor.Executor, error) {
	opts, err := s.config.ExecutorOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts,
		executor.WithStderr(cmd.ErrOrStderr()),
		executor.WithVerbosity(s.verbosity),
	)
	return executor.New(opts...), nil
}

// commandOptions returns the builder options, forcing raw arguments when raw is set.
func (s *settings) commandOptions(raw bool) []command.Option {
	opts := s.config.CommandOptions()
	if raw {
		opts = append(opts, command.WithRawArguments())
	}
	return opts
}

// toArgs converts positional arguments to builder arguments. Arguments equal
// to nullToken become nil and are dropped by the builder.
func toArgs(values []string, nullToken string) []*string {
	args := make([]*string, 0, len(values))
	for _, v := range values {
		args = append(args, command.ArgIf(nullToken == "" || v != nullToken, v))
	}
	return args
}
