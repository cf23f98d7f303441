package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/rldelgado/dalgebra/commutators"
	"github.com/rldelgado/dalgebra/internal/mcp"
)

var equationsFlags struct {
	order  int
	bound  int
	degree int
	format string
}

var equationsCmd = &cobra.Command{
	Use:   "equations",
	Short: "Compute commutation conditions for a polynomial ansatz",
	Long: `Equations runs the full pipeline for L of order n with polynomial
coefficients of degree d: it builds the ansatz P = sum c_i P_i over the
almost-commuting basis up to order m and prints the ideal whose zero
set picks out the commuting members of the flag.`,
	RunE: runEquations,
}

func init() {
	f := equationsCmd.Flags()
	f.IntVarP(&equationsFlags.order, "order", "n", 2, "Order n of the normal-form operator L")
	f.IntVarP(&equationsFlags.bound, "bound", "m", 3, "Order bound m of the ansatz")
	f.IntVarP(&equationsFlags.degree, "degree", "d", 0, "Polynomial degree of the coefficient ansatz")
	f.StringVar(&equationsFlags.format, "format", "table", "Output format (table, latex, json)")
}

func runEquations(cmd *cobra.Command, _ []string) error {
	sys, err := commutators.PolynomialCommutator(
		equationsFlags.order, equationsFlags.bound, equationsFlags.degree)
	if err != nil {
		return err
	}
	return renderSystem(cmd.OutOrStdout(), sys, equationsFlags.format)
}

func renderSystem(w io.Writer, sys *commutators.System, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(mcp.SystemResult(sys))

	case "latex":
		fmt.Fprintf(w, "L = %s\n", sys.L.LaTeX())
		fmt.Fprintf(w, "P = %s\n", sys.P.LaTeX())
		fmt.Fprintf(w, "I = %s\n", sys.Ideal.LaTeX())
		return nil

	case "table":
		consts := make([]string, len(sys.Constants))
		for i, c := range sys.Constants {
			consts[i] = c.String()
		}
		fmt.Fprintf(w, "L = %s\n", sys.L)
		fmt.Fprintf(w, "P = %s\n", sys.P)
		fmt.Fprintf(w, "constants: %s\n\n", strings.Join(consts, ", "))

		if sys.Ideal.IsZero() {
			fmt.Fprintf(w, "%s\n", sys.Ideal)
			return nil
		}
		tw := table.NewWriter()
		tw.SetOutputMirror(w)
		tw.SetStyle(table.StyleLight)
		tw.AppendHeader(table.Row{"#", "Generator"})
		for i, g := range sys.Ideal.Generators() {
			tw.AppendRow(table.Row{i + 1, g.String()})
		}
		tw.Render()
		return nil
	}
	return fmt.Errorf("unknown format: %s (available: table, latex, json)", format)
}
