// Package server exposes the decision engines over MCP. It is the
// composition root for the operation surface: four tools, four read-only
// resources, and the stdio and HTTP transport bindings around them. No
// business logic lives here.
package server

import (
	"log/slog"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/catalog"
	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/decision"
	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/engine"
	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/events"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Server owns the MCP server instance plus the engines it dispatches to.
type Server struct {
	mcp       *mcpserver.MCPServer
	snap      *catalog.Snapshot
	validator *engine.Validator
	planner   *engine.Planner
	assigner  *engine.Assigner
	recorder  *decision.Recorder
	bus       events.Bus
	logger    *slog.Logger
}

// New wires the operation surface over an immutable snapshot. All
// dependencies are resolved here and injected into the handlers.
func New(snap *catalog.Snapshot, validator *engine.Validator, planner *engine.Planner, assigner *engine.Assigner, recorder *decision.Recorder, bus events.Bus, logger *slog.Logger) *Server {
	s := &Server{
		snap:      snap,
		validator: validator,
		planner:   planner,
		assigner:  assigner,
		recorder:  recorder,
		bus:       bus,
		logger:    logger.With("component", "server"),
	}

	s.mcp = mcpserver.NewMCPServer(
		"kaedim-routing",
		Version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, true),
		mcpserver.WithRecovery(),
	)

	s.registerTools()
	s.registerResources()
	return s
}

// MCP returns the underlying MCP server for transport binding.
func (s *Server) MCP() *mcpserver.MCPServer {
	return s.mcp
}

// ServeStdio runs the framed stdio transport until the stream closes.
func (s *Server) ServeStdio() error {
	s.logger.Info("serving over stdio")
	return mcpserver.ServeStdio(s.mcp)
}
