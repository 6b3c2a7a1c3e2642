package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/catalog"
	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/events"
)

// Validator checks one request's target preset for completeness. Checks are
// independent and cumulative; nothing short-circuits.
type Validator struct {
	bus events.Bus
}

// NewValidator creates a Validator. The bus may be nil, in which case no
// events are emitted.
func NewValidator(bus events.Bus) *Validator {
	return &Validator{bus: bus}
}

// ValidatePreset validates the request's account preset. An unknown request
// id yields ok=false with a single not-found error. A missing preset is
// treated as an empty configuration and accumulates errors like any other
// incomplete preset.
func (v *Validator) ValidatePreset(ctx context.Context, snap *catalog.Snapshot, requestID, accountID string) ValidationResult {
	now := time.Now().UTC()

	if _, ok := snap.Request(requestID); !ok {
		return ValidationResult{
			Ok:                  false,
			Errors:              []string{fmt.Sprintf("Request %s not found", requestID)},
			Codes:               []ValidationCode{CodeRequestNotFound},
			ValidationTimestamp: now,
		}
	}

	preset, _ := snap.Preset(accountID)

	errs := []string{} // marshals as [] rather than null on the wire
	var codes []ValidationCode

	// The naming section is only checked when present; an account that never
	// configured naming does not accumulate a naming error.
	if preset.Naming != nil && preset.Naming.Pattern == "" {
		errs = append(errs, "Missing naming pattern in preset")
		codes = append(codes, CodeMissingNamingPattern)
	}

	if preset.Packing != nil {
		if missing := preset.MissingChannels(); len(missing) > 0 {
			errs = append(errs, fmt.Sprintf("Missing texture channels: %s", strings.Join(missing, ", ")))
			codes = append(codes, CodeMissingChannels)

			// Incomplete packing gets a dedicated observability event on top
			// of the accumulated error; the other checks do not.
			v.emit(ctx, events.New(events.EventValidationFailed, requestID, map[string]any{
				"account_id":       accountID,
				"error":            "invalid_texture_packing",
				"missing_channels": missing,
			}))
		}
	} else {
		errs = append(errs, "No texture packing configuration found")
		codes = append(codes, CodeNoPackingConfig)
	}

	if preset.Version == nil {
		errs = append(errs, "Preset version not specified")
		codes = append(codes, CodeMissingVersion)
	}

	return ValidationResult{
		Ok:                  len(errs) == 0,
		Errors:              errs,
		Codes:               codes,
		PresetVersion:       preset.Version,
		ValidationTimestamp: now,
	}
}

func (v *Validator) emit(ctx context.Context, ev events.Event) {
	if v.bus != nil {
		_ = v.bus.Publish(ctx, ev)
	}
}
