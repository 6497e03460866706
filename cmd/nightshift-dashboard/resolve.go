package main

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"
)

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve URL|PATH",
		Short: "Resolve a dashboard URL, or a path after its #, to a view",
		Long: `Resolve a dashboard URL, or a path after its #, to a view.

  nightshift-dashboard resolve /objects
  nightshift-dashboard resolve 'https://nightshift.example.com/public/#/about'`,
		Args: cobra.ExactArgs(1),
		RunE: resolveHandler,
	}
}

func resolveHandler(cmd *cobra.Command, args []string) error {
	s, err := newShell(cmd)
	if err != nil {
		return err
	}

	target := args[0]
	resolve := s.EmitTable().Resolve
	if strings.Contains(target, "#") || strings.Contains(target, "://") {
		resolve = s.EmitTable().ResolveURL
	}

	res, err := resolve(cmd.Context(), target)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
