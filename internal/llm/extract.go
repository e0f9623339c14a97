package llm

import (
	"encoding/json"
	"strings"
)

// ExtractJSON pulls the first JSON object out of model text. It accepts a
// bare object, a ```json fenced block, any fenced block holding an object, or
// an object embedded in prose.
func ExtractJSON(text string) (json.RawMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrNoJSON
	}

	// Strategy 1: the whole answer is the object
	if isObject(text) {
		return json.RawMessage(text), nil
	}

	// Strategy 2: ```json block
	lower := strings.ToLower(text)
	if idx := strings.Index(lower, "```json"); idx != -1 {
		body := text[idx+len("```json"):]
		if end := strings.Index(body, "```"); end != -1 {
			if candidate := strings.TrimSpace(body[:end]); isObject(candidate) {
				return json.RawMessage(candidate), nil
			}
		}
	}

	// Strategy 3: any fenced block whose content is an object
	parts := strings.Split(text, "```")
	for i := 1; i < len(parts); i += 2 {
		candidate := strings.TrimSpace(parts[i])
		if nl := strings.Index(candidate, "\n"); nl != -1 && !strings.HasPrefix(candidate, "{") {
			candidate = strings.TrimSpace(candidate[nl:])
		}
		if isObject(candidate) {
			return json.RawMessage(candidate), nil
		}
	}

	// Strategy 4: widest {...} span in prose
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		if candidate := text[start : end+1]; isObject(candidate) {
			return json.RawMessage(candidate), nil
		}
	}
	return nil, ErrNoJSON
}

func isObject(s string) bool {
	return strings.HasPrefix(s, "{") && json.Valid([]byte(s))
}
