package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/decision"
)

var outputPath string

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process every catalog request and export the decisions",
	Long: `Process runs the full decision flow over each request in the
catalog, one at a time: validate the preset, plan the steps, assign an
artist, and record the decision. Results are written to a JSON file and,
when a store path is configured, to the durable SQLite store.`,
	RunE: runProcess,
}

func runProcess(cmd *cobra.Command, _ []string) error {
	rt, err := buildRuntime(cfg)
	if err != nil {
		return err
	}
	defer rt.close()

	o, cleanup, err := rt.newOrchestrator()
	if err != nil {
		return err
	}
	defer cleanup()

	decisions := o.ProcessAll(cmd.Context())

	if err := decision.ExportFile(outputPath, decisions); err != nil {
		return err
	}

	succeeded := 0
	for _, d := range decisions {
		if d.Status == decision.StatusSuccess {
			succeeded++
		}
	}

	cmd.Printf("Requests processed: %d\n", len(decisions))
	cmd.Printf("Successful: %d\n", succeeded)
	cmd.Printf("Failed: %d\n", len(decisions)-succeeded)
	cmd.Printf("Results saved to: %s\n", outputPath)

	if len(decisions) == 0 {
		return fmt.Errorf("no requests found in %s", cfg.Core.DataDir)
	}
	return nil
}

func init() {
	processCmd.Flags().StringVarP(&outputPath, "output", "o", "decisions.json", "Path for the exported decisions")
}
