package main

import (
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newRoutesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the dashboard's route table",
		Args:  cobra.NoArgs,
		RunE:  routesHandler,
	}
}

func routesHandler(cmd *cobra.Command, args []string) error {
	s, err := newShell(cmd)
	if err != nil {
		return err
	}

	tbl := s.EmitTable()
	var data [][]string
	for _, r := range tbl.Routes() {
		if r.IsRedirect() {
			data = append(data, []string{r.Path, "", "", "-> " + r.RedirectsTo()})
			continue
		}

		href, _ := tbl.Href(r.Name, nil)
		data = append(data, []string{r.Path, r.Name, r.LoadMode.String(), href})
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"PATH", "NAME", "LOAD", "TARGET"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()

	return nil
}
