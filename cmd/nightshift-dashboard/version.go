package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xy-planning-network/nightshift"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of nightshift-dashboard",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "version: %s\n", nightshift.Version)
			fmt.Fprintf(out, "date:    %s\n", nightshift.Date)
			fmt.Fprintf(out, "build:   %s\n", nightshift.Build)
		},
	}
}
