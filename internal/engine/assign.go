package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/catalog"
)

// Skill-match weights. Criteria are additive and independent; the maximum
// attainable skill score is 20.
const (
	styleWeight    = 10
	engineWeight   = 5
	topologyWeight = 5
)

// priorityBonus adjusts only the fallback tiebreak score, never the primary
// ranking keys.
const priorityBonus = 6

// maxAlternatives caps the runners-up returned alongside a selection.
const maxAlternatives = 2

// Assigner ranks the artist roster for a request using a lexicographic
// multi-criteria policy and selects the best feasible artist. It is a pure
// function over a point-in-time snapshot: it never mutates an artist's load,
// and re-ranking after a commit is out of scope.
type Assigner struct{}

// NewAssigner creates an Assigner.
func NewAssigner() *Assigner {
	return &Assigner{}
}

// candidate carries the independent per-artist ranking keys.
type candidate struct {
	artist        catalog.Artist
	skillScore    int
	available     int
	priorityFlag  int
	fallbackScore int
	reasons       []string
}

// AssignArtist ranks every artist and returns the top pick, with up to two
// eligible runners-up as alternatives. When no artist is eligible the result
// carries a nil id and an empty alternatives list; that is a valid terminal
// outcome, not an error.
func (a *Assigner) AssignArtist(snap *catalog.Snapshot, requestID string) AssignmentResult {
	req, ok := snap.Request(requestID)
	if !ok {
		return AssignmentResult{
			Reason:       fmt.Sprintf("Request %s not found", requestID),
			Alternatives: []Alternative{},
		}
	}

	// Priority is decided by re-running the rule-matching primitive, not by
	// consulting a previously computed plan.
	priority := IsExpedited(MatchRules(snap.Rules, req))

	ranked := make([]candidate, 0, len(snap.Artists))
	for _, artist := range snap.Artists {
		ranked = append(ranked, score(req, artist, priority))
	}

	// Genuine multi-key lexicographic ordering: skill strength dominates raw
	// capacity; capacity then load break ties; the fallback score is the last
	// resort. Stable sort preserves roster order for full ties.
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.skillScore != b.skillScore {
			return a.skillScore > b.skillScore
		}
		if a.priorityFlag != b.priorityFlag {
			return a.priorityFlag > b.priorityFlag
		}
		if a.available != b.available {
			return a.available > b.available
		}
		if a.artist.ActiveLoad != b.artist.ActiveLoad {
			return a.artist.ActiveLoad < b.artist.ActiveLoad
		}
		return a.fallbackScore > b.fallbackScore
	})

	if len(ranked) == 0 || !eligible(ranked[0]) {
		return AssignmentResult{
			Reason:       "No available artists with matching skills",
			Alternatives: []Alternative{},
		}
	}

	selected := ranked[0]
	alternatives := []Alternative{}
	for _, c := range ranked[1:] {
		if len(alternatives) == maxAlternatives {
			break
		}
		if eligible(c) {
			alternatives = append(alternatives, Alternative{
				ID:    c.artist.ID,
				Name:  c.artist.Name,
				Score: c.skillScore,
			})
		}
	}

	id := selected.artist.ID
	return AssignmentResult{
		ArtistID:     &id,
		ArtistName:   selected.artist.Name,
		Reason:       "Best match: " + strings.Join(selected.reasons, ", "),
		MatchScore:   selected.skillScore,
		Alternatives: alternatives,
	}
}

// eligible is the minimal feasibility test: some skill signal or some spare
// capacity.
func eligible(c candidate) bool {
	return c.skillScore > 0 || c.available > 0
}

func score(req catalog.Request, artist catalog.Artist, priority bool) candidate {
	style := strings.ToLower(req.Style)
	engine := strings.ToLower(req.Engine)
	topology := strings.ToLower(req.Topology)

	skills := make([]string, len(artist.Skills))
	for i, s := range artist.Skills {
		skills[i] = strings.ToLower(s)
	}
	joined := strings.Join(skills, " ")

	c := candidate{
		artist:    artist,
		available: artist.AvailableCapacity(),
	}

	if style != "" && (contains(skills, style) || strings.Contains(joined, strings.ReplaceAll(style, "_", " "))) {
		c.skillScore += styleWeight
		c.reasons = append(c.reasons, fmt.Sprintf("matches style %s", req.Style))
	}
	if engine != "" && contains(skills, engine) {
		c.skillScore += engineWeight
		c.reasons = append(c.reasons, fmt.Sprintf("matches engine %s", engine))
	}
	if topology != "" && strings.Contains(joined, topology) {
		c.skillScore += topologyWeight
		c.reasons = append(c.reasons, fmt.Sprintf("matches topology %s", topology))
	}

	if c.available > 0 {
		c.reasons = append(c.reasons, fmt.Sprintf("has %d slots available", c.available))
	} else {
		c.reasons = append(c.reasons, "at full capacity")
	}

	if priority && c.available > 0 {
		c.priorityFlag = 1
	}

	c.fallbackScore = c.available*2 + c.skillScore
	if priority {
		if c.available > 0 {
			c.fallbackScore += priorityBonus
		} else {
			c.fallbackScore -= priorityBonus
		}
	}

	return c
}
