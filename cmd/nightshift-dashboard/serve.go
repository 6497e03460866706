package main

import (
	"github.com/spf13/cobra"
	"github.com/xy-planning-network/nightshift/shell"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"start"},
		Short:   "Start the dashboard's web server",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newShell(cmd, serveFlags(cmd))
			if err != nil {
				return err
			}

			return s.Guide()
		},
	}

	cmd.Flags().String("listen-addr", "", "Web server listen address (overrides WEB_LISTEN_ADDR)")
	cmd.Flags().Bool("enable-tls", false, "Enable TLS on the web server (overrides WEB_ENABLE_TLS)")
	cmd.Flags().String("cert-file", "", "TLS certificate file (overrides WEB_CERT_FILE)")
	cmd.Flags().String("key-file", "", "TLS key file (overrides WEB_KEY_FILE)")
	cmd.Flags().Bool("preload", false, "Fetch every lazily loaded view at startup (overrides PRELOAD_VIEWS)")

	return cmd
}

// serveFlags replaces any web server setting a serve flag was set for.
func serveFlags(cmd *cobra.Command) func(*shell.Config) {
	flags := cmd.Flags()

	return func(cfg *shell.Config) {
		if flags.Changed("listen-addr") {
			cfg.ListenAddr, _ = flags.GetString("listen-addr")
		}

		if flags.Changed("enable-tls") {
			cfg.EnableTLS, _ = flags.GetBool("enable-tls")
		}

		if flags.Changed("cert-file") {
			cfg.CertFile, _ = flags.GetString("cert-file")
		}

		if flags.Changed("key-file") {
			cfg.KeyFile, _ = flags.GetString("key-file")
		}

		if flags.Changed("preload") {
			cfg.PreloadViews, _ = flags.GetBool("preload")
		}
	}
}
