package server

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/events"
)

func (s *Server) registerResources() {
	s.addResource("resource://requests", "Active Requests",
		"Current 3D asset requests pending processing",
		func() any { return s.snap.Requests })

	s.addResource("resource://artists", "Artist Roster",
		"Available artists with skills and capacity",
		func() any { return s.snap.Artists })

	s.addResource("resource://presets", "Customer Presets",
		"Customer-specific validation presets",
		func() any { return s.snap.Presets })

	s.addResource("resource://rules", "Routing Rules",
		"Business rules for request processing",
		func() any { return s.snap.Rules })
}

func (s *Server) addResource(uri, name, description string, data func() any) {
	resource := mcp.NewResource(uri, name,
		mcp.WithResourceDescription(description),
		mcp.WithMIMEType("application/json"),
	)

	s.mcp.AddResource(resource, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		s.emit(ctx, events.New(events.EventResourceRead, "", map[string]any{"uri": uri}))

		encoded, err := json.MarshalIndent(data(), "", "  ")
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(encoded),
			},
		}, nil
	})
}
