package orchestrator

import (
	"fmt"
	"strings"

	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/engine"
)

// messageBucket maps one class of validation failure to canned customer
// text. Buckets are evaluated in order; the first match wins.
type messageBucket struct {
	code     engine.ValidationCode
	substr   string
	message  func(account string) string
	question string
}

// buckets is the messaging taxonomy for validation failures. Codes are the
// primary key; the substring is a fallback for results produced without
// codes (for example decisions recorded by external callers).
var buckets = []messageBucket{
	{
		code:   engine.CodeMissingChannels,
		substr: "missing texture channels",
		message: func(account string) string {
			return fmt.Sprintf("Configuration issue for %s: Your texture packing appears incomplete. "+
				"Please configure all RGBA channels so we can generate engine-ready textures.", account)
		},
		question: "Would you like us to apply default channel mappings now, or wait for your preset update?",
	},
	{
		code:   engine.CodeNoPackingConfig,
		substr: "no texture packing configuration",
		message: func(account string) string {
			return fmt.Sprintf("Configuration issue for %s: No texture packing configuration was found for your account. "+
				"Please add one so we can produce engine-ready textures.", account)
		},
		question: "Would you like us to set up a standard RGBA packing configuration for you?",
	},
	{
		code:   engine.CodeMissingVersion,
		substr: "version not specified",
		message: func(account string) string {
			return fmt.Sprintf("Configuration issue for %s: Your preset has no version. "+
				"Please pin a preset version so processing is reproducible.", account)
		},
		question: "Should we pin your preset to the latest version?",
	},
	{
		code:   engine.CodeMissingNamingPattern,
		substr: "naming pattern",
		message: func(account string) string {
			return fmt.Sprintf("Configuration issue for %s: Your preset has no file naming pattern. "+
				"Please set one so delivered assets are named consistently.", account)
		},
		question: "Would you like us to suggest a naming pattern?",
	},
	{
		substr: "unsupported engine",
		message: func(account string) string {
			return fmt.Sprintf("Issue for %s: The requested target engine is not supported for this preset.", account)
		},
		question: "Would you like to retarget the request to a supported engine?",
	},
	{
		substr: "topology",
		message: func(account string) string {
			return fmt.Sprintf("Issue for %s: The requested topology conflicts with your preset constraints.", account)
		},
		question: "Would you like us to relax the topology constraint for this request?",
	},
	{
		substr: "uv",
		message: func(account string) string {
			return fmt.Sprintf("Issue for %s: The asset's UV layout needs attention before processing.", account)
		},
		question: "Would you like us to regenerate the UVs automatically?",
	},
	{
		substr: "polycount",
		message: func(account string) string {
			return fmt.Sprintf("Issue for %s: The asset exceeds the size or polycount limits in your preset.", account)
		},
		question: "Would you like us to decimate the asset to fit your limits?",
	},
}

// CustomerMessage derives the customer-facing message for a failed
// validation. Every input maps to some message; unmatched errors land in the
// generic fallback.
func CustomerMessage(validation engine.ValidationResult, account string) string {
	if b, ok := matchBucket(validation); ok {
		return b.message(account)
	}
	if len(validation.Errors) > 0 {
		return fmt.Sprintf("Validation error: %s", validation.Errors[0])
	}
	return "Validation error: Unknown issue"
}

// ClarifyingQuestion derives the follow-up question for a failed validation.
func ClarifyingQuestion(validation engine.ValidationResult) string {
	if b, ok := matchBucket(validation); ok {
		return b.question
	}
	return "Would you like help updating your preset?"
}

func matchBucket(validation engine.ValidationResult) (messageBucket, bool) {
	for _, b := range buckets {
		if b.code != "" {
			for _, c := range validation.Codes {
				if c == b.code {
					return b, true
				}
			}
		}
	}

	joined := strings.ToLower(strings.Join(validation.Errors, " "))
	for _, b := range buckets {
		if b.substr != "" && strings.Contains(joined, b.substr) {
			return b, true
		}
	}
	return messageBucket{}, false
}
