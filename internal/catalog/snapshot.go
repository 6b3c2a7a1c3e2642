package catalog

// Snapshot is the full set of collections the engines read. It is constructed
// once and passed explicitly into every engine call; nothing in the engines
// mutates it.
type Snapshot struct {
	Requests []Request
	Artists  []Artist
	Presets  map[string]Preset
	Rules    []Rule
}

// Request returns the request with the given id, or false if unknown.
func (s *Snapshot) Request(id string) (Request, bool) {
	for _, r := range s.Requests {
		if r.ID == id {
			return r, true
		}
	}
	return Request{}, false
}

// Preset returns the preset for an account. A missing preset yields the zero
// Preset and false; callers treat that as an empty configuration, not a
// failure.
func (s *Snapshot) Preset(account string) (Preset, bool) {
	p, ok := s.Presets[account]
	return p, ok
}
