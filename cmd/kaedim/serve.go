package main

import (
	"github.com/spf13/cobra"

	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/server"
)

var serveHTTP bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the operation surface as an MCP server",
	Long: `Serve exposes validate_preset, plan_steps, assign_artist and
record_decision as MCP tools, plus the four catalog collections as read-only
resources.

By default the server speaks framed JSON over stdio. With --http (or a
server.http_addr config entry) it serves streamable HTTP with optional
bearer-token auth instead.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	rt, err := buildRuntime(cfg)
	if err != nil {
		return err
	}
	defer rt.close()

	srv := server.New(rt.snap, rt.validator, rt.planner, rt.assigner, rt.recorder, rt.bus, rt.logger)

	if serveHTTP || cfg.Server.HTTPAddr != "" {
		addr := cfg.Server.HTTPAddr
		if addr == "" {
			addr = ":8765"
		}
		return srv.ServeHTTP(addr, cfg.Server.AuthToken)
	}
	return srv.ServeStdio()
}

func init() {
	serveCmd.Flags().BoolVar(&serveHTTP, "http", false, "Serve over HTTP instead of stdio")
}
