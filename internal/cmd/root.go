package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/hackdesk/internal/config"
	"github.com/felixgeelhaar/hackdesk/internal/log"
)

var rootCmd = &cobra.Command{
	Use:   "hackdesk",
	Short: "Event registration and review portal client",
	Long: `hackdesk is the command-line client for the event-registration and
review portal. Participants manage their registration profile and upload
submission documents; admins review teams and record decisions.

Every gated command verifies the stored session against the backend
before doing anything; the locally cached role is never trusted on its
own.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return configureLogging(cmd)
	},
}

// ExecuteContext runs the root command with the given context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// configureLogging sets the process-wide logger from flags and the
// config file, flags winning.
func configureLogging(cmd *cobra.Command) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	levelFlag, _ := cmd.Flags().GetString("log-level")

	level := log.LevelWarn
	if f, err := config.LoadDefault(); err == nil && f.LogLevel != "" {
		level = log.ParseLevel(f.LogLevel)
	}
	if levelFlag != "" {
		level = log.ParseLevel(levelFlag)
	}
	if verbose {
		level = log.LevelDebug
	}

	cfg := log.DefaultConfig()
	cfg.Level = level
	if verbose {
		cfg.AddSource = true
	}
	log.SetDefaultLogger(log.New(cfg))
	return nil
}

func init() {
	rootCmd.PersistentFlags().String("server", "", "portal hostname or full API base URL")
	rootCmd.PersistentFlags().String("home", "", "state directory (default $HOME/.hackdesk)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose logging")
}
