package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rldelgado/dalgebra/commutators"
	"github.com/rldelgado/dalgebra/internal/logging"
	"github.com/rldelgado/dalgebra/internal/scenario"
)

var sweepFlags struct {
	parallel int
	format   string
}

var sweepCmd = &cobra.Command{
	Use:   "sweep <scenario.yaml>",
	Short: "Run a batch of commutator problems from a scenario file",
	Long: `Sweep loads a YAML scenario listing named {order, bound, degree} jobs,
runs them concurrently, and prints a summary. A failing job is reported
in the summary and does not abort the others.

Scenario format:

  name: kdv-family
  jobs:
    - name: schrodinger
      order: 2
      bound: 3
      degree: 1`,
	Args: cobra.ExactArgs(1),
	RunE: runSweep,
}

func init() {
	f := sweepCmd.Flags()
	f.IntVar(&sweepFlags.parallel, "parallel", 4, "Number of jobs to run concurrently")
	f.StringVar(&sweepFlags.format, "format", "table", "Output format (table, json)")
}

type sweepResult struct {
	Job        scenario.Job  `json:"job"`
	Ideal      string        `json:"ideal,omitempty"`
	Generators int           `json:"generators"`
	Error      string        `json:"error,omitempty"`
	Elapsed    time.Duration `json:"elapsed_ns"`
}

func runSweep(cmd *cobra.Command, args []string) error {
	s, err := scenario.Load(args[0])
	if err != nil {
		return err
	}

	parallel := sweepFlags.parallel
	if parallel < 1 {
		parallel = 1
	}

	logger := logging.New("sweep")
	logger.Info("starting sweep", "scenario", s.Name, "jobs", len(s.Jobs), "parallel", parallel)

	results := make([]sweepResult, len(s.Jobs))
	var g errgroup.Group
	g.SetLimit(parallel)
	for i, job := range s.Jobs {
		g.Go(func() error {
			results[i] = runSweepJob(job)
			return nil
		})
	}
	_ = g.Wait() // job failures are captured in results

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}

	w := cmd.OutOrStdout()
	switch sweepFlags.format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}

	case "table":
		tw := table.NewWriter()
		tw.SetOutputMirror(w)
		tw.SetStyle(table.StyleLight)
		tw.AppendHeader(table.Row{"Job", "n", "m", "d", "Status", "Gens", "Ideal", "Elapsed"})
		for _, r := range results {
			status, detail := "ok", r.Ideal
			if r.Error != "" {
				status, detail = "error", r.Error
			}
			tw.AppendRow(table.Row{
				r.Job.Name, r.Job.Order, r.Job.Bound, r.Job.Degree,
				status, r.Generators, detail, r.Elapsed.Round(time.Millisecond),
			})
		}
		tw.AppendFooter(table.Row{s.Name, "", "", "", fmt.Sprintf("%d/%d ok", len(results)-failed, len(results)), "", "", ""})
		tw.Render()

	default:
		return fmt.Errorf("unknown format: %s (available: table, json)", sweepFlags.format)
	}

	if failed > 0 {
		return fmt.Errorf("sweep: %d/%d jobs failed", failed, len(results))
	}
	return nil
}

func runSweepJob(job scenario.Job) sweepResult {
	start := time.Now()
	res := sweepResult{Job: job}

	sys, err := commutators.PolynomialCommutator(job.Order, job.Bound, job.Degree)
	res.Elapsed = time.Since(start)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Ideal = sys.Ideal.String()
	res.Generators = len(sys.Ideal.Generators())
	return res
}
