// Command nightshift-dashboard serves the nightshift monitoring dashboard
// and inspects its route table.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"github.com/xy-planning-network/nightshift"
	"github.com/xy-planning-network/nightshift/logger"
	"github.com/xy-planning-network/nightshift/shell"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nightshift-dashboard",
		Short: "nightshift-dashboard serves the nightshift monitoring dashboard.",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SilenceUsage = true
		},
	}

	rootCmd.PersistentFlags().String("env", "", "Environment the dashboard runs in (overrides ENVIRONMENT)")
	rootCmd.PersistentFlags().String("base-url", "", "Path the single page app is served under (overrides BASE_URL)")
	rootCmd.PersistentFlags().String("assets-dir", "", "Directory holding the client build (overrides ASSETS_DIR)")
	rootCmd.PersistentFlags().String("log-level", "", "Level to begin logging at (overrides LOG_LEVEL)")

	rootCmd.AddCommand(
		newServeCmd(),
		newRoutesCmd(),
		newResolveCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

// configFrom reads a shell.Config from environment variables,
// replacing any value a root flag was set for, then applying overrides.
func configFrom(cmd *cobra.Command, overrides ...func(*shell.Config)) (shell.Config, error) {
	cfg := shell.NewConfig()
	flags := cmd.Flags()

	if flags.Changed("env") {
		v, _ := flags.GetString("env")
		cfg.Env = nightshift.Environment(strings.ToUpper(v))
	}

	if flags.Changed("base-url") {
		cfg.BaseURL, _ = flags.GetString("base-url")
	}

	if flags.Changed("assets-dir") {
		cfg.AssetsDir, _ = flags.GetString("assets-dir")
	}

	if flags.Changed("log-level") {
		v, _ := flags.GetString("log-level")
		cfg.LogLevel = logger.NewLogLevel(strings.ToUpper(v))
		if cfg.LogLevel == logger.LogLevelUnk {
			return cfg, fmt.Errorf("%w: log level %q", nightshift.ErrNotValid, v)
		}
	}

	for _, override := range overrides {
		override(&cfg)
	}

	return cfg, cfg.Valid()
}

// newShell constructs the *shell.Shell for cmd, logging to its stderr.
func newShell(cmd *cobra.Command, overrides ...func(*shell.Config)) (*shell.Shell, error) {
	cfg, err := configFrom(cmd, overrides...)
	if err != nil {
		return nil, err
	}

	l := logger.New(
		logger.WithEnv(cfg.Env.String()),
		logger.WithLevel(cfg.LogLevel),
		logger.WithLogger(log.New(cmd.ErrOrStderr(), "", log.LstdFlags)),
	)

	s, err := shell.New(
		shell.WithConfig(cfg),
		shell.WithContext(cmd.Context()),
		shell.WithLogger(l),
	)
	if err != nil {
		l.Error(err.Error(), nil)
		return nil, err
	}

	return s, nil
}
