package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/rldelgado/dalgebra/internal/mcp"
)

var serveFlags struct {
	addr string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tool API over HTTP",
	Long: `Serve exposes the pipeline as a JSON tool endpoint for agent
frameworks: POST /tool executes a call, GET /schema returns the tool
schema for registration, GET /health is a liveness check.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.addr, "addr", ":8080", "Listen address")
}

func runServe(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "dalgebra tool server listening on %s\n", serveFlags.addr)
	fmt.Fprintln(out, "  POST /tool   - execute a tool call")
	fmt.Fprintln(out, "  GET  /schema - tool schema for agent registration")
	fmt.Fprintln(out, "  GET  /health - health check")

	srv := &http.Server{
		Addr:              serveFlags.addr,
		Handler:           mcp.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
