package llm

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/types"
)

var codeBlockPattern = regexp.MustCompile(`(?s)` + "```" + `(\w*)\s*\n(.+?)\n` + "```")

// ExtractJSON pulls a JSON document out of a model reply. Replies wrapped in
// markdown code fences are preferred; otherwise the first balanced object or
// array in the raw text is used.
func ExtractJSON(response string) (string, error) {
	if jsonStr, ok := extractFromCodeBlock(response); ok {
		return jsonStr, nil
	}
	if jsonStr, ok := extractRawJSON(response); ok {
		return jsonStr, nil
	}
	return "", types.NewError(types.LLM_UNPARSABLE, "no valid JSON found in model response")
}

// ExtractJSONAs extracts JSON from a model reply and unmarshals it into T.
func ExtractJSONAs[T any](response string) (T, error) {
	var result T
	jsonStr, err := ExtractJSON(response)
	if err != nil {
		return result, err
	}
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return result, types.WrapError(types.LLM_UNPARSABLE, "model JSON did not match expected shape", err)
	}
	return result, nil
}

func extractFromCodeBlock(response string) (string, bool) {
	for _, match := range codeBlockPattern.FindAllStringSubmatch(response, -1) {
		if len(match) < 3 {
			continue
		}
		lang := strings.ToLower(match[1])
		if lang != "" && lang != "json" {
			continue
		}
		content := strings.TrimSpace(match[2])
		if !strings.HasPrefix(content, "{") && !strings.HasPrefix(content, "[") {
			continue
		}
		if isValidJSON(content) {
			return content, true
		}
	}
	return "", false
}

func extractRawJSON(response string) (string, bool) {
	startObj := strings.Index(response, "{")
	startArr := strings.Index(response, "[")

	start := -1
	closeChar := byte('}')
	if startObj >= 0 && (startArr < 0 || startObj < startArr) {
		start = startObj
	} else if startArr >= 0 {
		start = startArr
		closeChar = ']'
	}
	if start < 0 {
		return "", false
	}

	jsonStr := findMatchingBracket(response[start:], closeChar)
	if jsonStr != "" && isValidJSON(jsonStr) {
		return jsonStr, true
	}
	return "", false
}

// findMatchingBracket returns the prefix of s up to the bracket that balances
// s[0], skipping brackets inside JSON strings.
func findMatchingBracket(s string, closeChar byte) string {
	if len(s) == 0 {
		return ""
	}

	openChar := s[0]
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		if c == '\\' && inString {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}
		if c == openChar {
			depth++
		} else if c == closeChar {
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return ""
}

func isValidJSON(s string) bool {
	var js json.RawMessage
	return json.Unmarshal([]byte(s), &js) == nil
}
