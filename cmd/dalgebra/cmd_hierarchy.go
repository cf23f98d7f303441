package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/rldelgado/dalgebra/commutators"
)

var hierarchyFlags struct {
	order  int
	top    int
	format string
}

var hierarchyCmd = &cobra.Command{
	Use:   "hierarchy",
	Short: "Print the almost-commuting basis and its hierarchy",
	Long: `Hierarchy prints the almost-commuting operators P_1..P_top for the
order-n normal form together with the residual coefficients of each
[L, P_i]. For n = 2 the residuals are the right-hand sides of the KdV
hierarchy.`,
	RunE: runHierarchy,
}

func init() {
	f := hierarchyCmd.Flags()
	f.IntVarP(&hierarchyFlags.order, "order", "n", 2, "Order n of the normal-form operator L")
	f.IntVarP(&hierarchyFlags.top, "top", "t", 5, "Highest basis order to print")
	f.StringVar(&hierarchyFlags.format, "format", "table", "Output format (table, latex, json)")
}

func runHierarchy(cmd *cobra.Command, _ []string) error {
	if hierarchyFlags.top < 1 {
		return fmt.Errorf("top must be at least 1, got %d", hierarchyFlags.top)
	}

	type row struct {
		Order int      `json:"order"`
		P     string   `json:"p"`
		H     []string `json:"h"`
		latex string
	}
	rows := make([]row, 0, hierarchyFlags.top)
	for i := 1; i <= hierarchyFlags.top; i++ {
		p, h, err := commutators.AlmostCommutingWilson(hierarchyFlags.order, i)
		if err != nil {
			return err
		}
		hs := make([]string, len(h))
		for j, hv := range h {
			hs[j] = hv.String()
		}
		rows = append(rows, row{Order: i, P: p.String(), H: hs, latex: p.LaTeX()})
	}

	w := cmd.OutOrStdout()
	switch hierarchyFlags.format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)

	case "latex":
		for _, r := range rows {
			fmt.Fprintf(w, "P_{%d} = %s\n", r.Order, r.latex)
		}
		return nil

	case "table":
		tw := table.NewWriter()
		tw.SetOutputMirror(w)
		tw.SetStyle(table.StyleLight)
		tw.AppendHeader(table.Row{"i", "P_i", "H_i"})
		for _, r := range rows {
			tw.AppendRow(table.Row{r.Order, r.P, strings.Join(r.H, "; ")})
		}
		tw.Render()
		return nil
	}
	return fmt.Errorf("unknown format: %s (available: table, latex, json)", hierarchyFlags.format)
}
