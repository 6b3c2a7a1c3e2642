// Package engine implements the decision engines: preset validation,
// rule-based step planning, and multi-criteria artist assignment. Every
// operation is a pure function over a catalog.Snapshot plus call arguments;
// unknown ids yield structured negative results, never errors.
package engine

import (
	"time"

	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/catalog"
)

// ValidationCode is a stable machine-readable code for one validation error.
// Customer messaging switches on these codes rather than on error prose.
type ValidationCode string

const (
	CodeRequestNotFound      ValidationCode = "request_not_found"
	CodeMissingNamingPattern ValidationCode = "missing_naming_pattern"
	CodeMissingChannels      ValidationCode = "missing_texture_channels"
	CodeNoPackingConfig      ValidationCode = "no_packing_config"
	CodeMissingVersion       ValidationCode = "missing_preset_version"
)

// ValidationResult is the outcome of validating one request's target preset.
// Errors and Codes are parallel: Codes[i] classifies Errors[i].
type ValidationResult struct {
	Ok                  bool             `json:"ok"`
	Errors              []string         `json:"errors"`
	Codes               []ValidationCode `json:"codes,omitempty"`
	PresetVersion       *int             `json:"preset_version"`
	ValidationTimestamp time.Time        `json:"validation_timestamp"`
}

// RuleMatch records one rule whose condition matched a request. The ordinal
// id is derived from the rule's position in the stored rule set.
type RuleMatch struct {
	RuleID    string            `json:"rule_id"`
	Condition map[string]string `json:"condition"`
	Action    catalog.Action    `json:"action"`
}

// PlanResult is the ordered processing-step sequence derived for a request.
type PlanResult struct {
	Steps          []string    `json:"steps"`
	MatchedRules   []RuleMatch `json:"matched_rules"`
	EstimatedHours int         `json:"estimated_hours"`
	PriorityQueue  bool        `json:"priority_queue"`
	Error          string      `json:"error,omitempty"`
}

// Alternative is a runner-up artist returned alongside an assignment.
type Alternative struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// AssignmentResult is the outcome of ranking the roster for one request.
// A nil ArtistID is the explicit "no eligible artist" terminal outcome.
type AssignmentResult struct {
	ArtistID     *string       `json:"artist_id"`
	ArtistName   string        `json:"artist_name,omitempty"`
	Reason       string        `json:"reason"`
	MatchScore   int           `json:"match_score,omitempty"`
	Alternatives []Alternative `json:"alternative_artists"`
}

// Assigned reports whether the result carries a selection.
func (r AssignmentResult) Assigned() bool {
	return r.ArtistID != nil
}
