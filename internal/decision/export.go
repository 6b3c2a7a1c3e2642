package decision

import (
	"encoding/json"
	"io"
	"os"
)

// ExportJSON writes decisions as indented JSON, the format the batch driver
// has always produced for decisions.json.
func ExportJSON(w io.Writer, decisions []Decision) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(decisions)
}

// ExportFile writes decisions to a file, truncating any previous contents.
func ExportFile(path string, decisions []Decision) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ExportJSON(f, decisions)
}
