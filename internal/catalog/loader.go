package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/types"
)

// Loader reads the four snapshot collections from a data directory.
// Each collection may be stored as <name>.json or <name>.yaml; a missing
// file yields the empty collection, matching the original loader.
type Loader struct {
	dataDir  string
	validate *validator.Validate
}

// NewLoader creates a Loader rooted at dataDir.
func NewLoader(dataDir string) *Loader {
	return &Loader{
		dataDir:  dataDir,
		validate: validator.New(),
	}
}

// Load reads all collections and validates rule shapes. Rule shape problems
// are load-time errors, not match-time errors.
func (l *Loader) Load() (*Snapshot, error) {
	snap := &Snapshot{
		Presets: map[string]Preset{},
	}

	if err := l.loadCollection("requests", &snap.Requests); err != nil {
		return nil, err
	}
	if err := l.loadCollection("artists", &snap.Artists); err != nil {
		return nil, err
	}
	if err := l.loadCollection("presets", &snap.Presets); err != nil {
		return nil, err
	}
	if err := l.loadCollection("rules", &snap.Rules); err != nil {
		return nil, err
	}

	for i, rule := range snap.Rules {
		if err := l.validate.Struct(rule); err != nil {
			return nil, types.WrapError(types.RULE_INVALID,
				fmt.Sprintf("rule %d has invalid shape", i), err)
		}
		for j, step := range rule.Then.Steps {
			if step == "" {
				return nil, types.NewError(types.RULE_INVALID,
					fmt.Sprintf("rule %d step %d is empty", i, j))
			}
		}
	}

	return snap, nil
}

// loadCollection fills out from <name>.json or <name>.yaml under the data
// dir. out must be a pointer to the collection's zero value.
func (l *Loader) loadCollection(name string, out any) error {
	jsonPath := filepath.Join(l.dataDir, name+".json")
	if data, err := os.ReadFile(jsonPath); err == nil {
		if err := json.Unmarshal(data, out); err != nil {
			return types.WrapError(types.CATALOG_PARSE_FAILED,
				fmt.Sprintf("parsing %s.json", name), err)
		}
		return nil
	} else if !os.IsNotExist(err) {
		return types.WrapError(types.CATALOG_LOAD_FAILED,
			fmt.Sprintf("reading %s.json", name), err)
	}

	yamlPath := filepath.Join(l.dataDir, name+".yaml")
	if data, err := os.ReadFile(yamlPath); err == nil {
		if err := yaml.Unmarshal(data, out); err != nil {
			return types.WrapError(types.CATALOG_PARSE_FAILED,
				fmt.Sprintf("parsing %s.yaml", name), err)
		}
		return nil
	} else if !os.IsNotExist(err) {
		return types.WrapError(types.CATALOG_LOAD_FAILED,
			fmt.Sprintf("reading %s.yaml", name), err)
	}

	// Neither file exists: leave the empty collection in place.
	return nil
}
