// Package catalog holds the four static collections the decision engine
// operates over: asset requests, the artist roster, per-account presets, and
// routing rules. A loaded Snapshot is immutable for the life of the process.
package catalog

// Request is one incoming asset-creation request. Immutable once loaded.
type Request struct {
	ID       string `json:"id" yaml:"id"`
	Account  string `json:"account" yaml:"account"`
	Style    string `json:"style" yaml:"style"`
	Engine   string `json:"engine" yaml:"engine"`
	Topology string `json:"topology" yaml:"topology"`
	Priority string `json:"priority,omitempty" yaml:"priority,omitempty"`
}

// Field returns the named request field as a string for rule-condition
// matching. The second return is false for names the request does not carry,
// which a rule condition treats as a non-match.
func (r Request) Field(name string) (string, bool) {
	switch name {
	case "id":
		return r.ID, true
	case "account":
		return r.Account, true
	case "style":
		return r.Style, true
	case "engine":
		return r.Engine, true
	case "topology":
		return r.Topology, true
	case "priority":
		if r.Priority == "" {
			return "", false
		}
		return r.Priority, true
	default:
		return "", false
	}
}

// Naming is the naming-convention section of a preset.
type Naming struct {
	Pattern string `json:"pattern" yaml:"pattern"`
}

// Preset is a per-account configuration. A zero Preset (no naming, nil
// packing, nil version) is what an account without a stored preset gets; that
// is valid input, not an error.
type Preset struct {
	Naming  *Naming           `json:"naming,omitempty" yaml:"naming,omitempty"`
	Packing map[string]string `json:"packing,omitempty" yaml:"packing,omitempty"`
	Version *int              `json:"version,omitempty" yaml:"version,omitempty"`
}

// RequiredChannels are the four texture channels a complete packing map covers.
var RequiredChannels = []string{"r", "g", "b", "a"}

// MissingChannels returns the required channels absent from the packing map,
// in canonical r,g,b,a order.
func (p Preset) MissingChannels() []string {
	var missing []string
	for _, ch := range RequiredChannels {
		if _, ok := p.Packing[ch]; !ok {
			missing = append(missing, ch)
		}
	}
	return missing
}

// Artist is one worker on the roster with skills and concurrent capacity.
type Artist struct {
	ID                 string   `json:"id" yaml:"id"`
	Name               string   `json:"name" yaml:"name"`
	Skills             []string `json:"skills" yaml:"skills"`
	CapacityConcurrent int      `json:"capacity_concurrent" yaml:"capacity_concurrent"`
	ActiveLoad         int      `json:"active_load" yaml:"active_load"`
}

// AvailableCapacity returns max(0, capacity - load).
func (a Artist) AvailableCapacity() int {
	avail := a.CapacityConcurrent - a.ActiveLoad
	if avail < 0 {
		return 0
	}
	return avail
}

// Action is the consequence of a matched rule: extra processing steps to
// inject, and an optional queue marker ("expedite" flags priority handling).
type Action struct {
	Steps []string `json:"steps,omitempty" yaml:"steps,omitempty"`
	Queue string   `json:"queue,omitempty" yaml:"queue,omitempty"`
}

// Rule is a declarative condition → action pair. The condition is a mapping
// of request field name to required exact value; all keys must match
// (conjunction, never disjunction).
type Rule struct {
	If   map[string]string `json:"if" yaml:"if" validate:"required,min=1,dive,keys,required,endkeys"`
	Then Action            `json:"then" yaml:"then"`
}
