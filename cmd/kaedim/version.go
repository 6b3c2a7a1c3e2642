package main

import (
	"github.com/spf13/cobra"

	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/server"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the agent version",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("kaedim %s\n", server.Version)
	},
}
