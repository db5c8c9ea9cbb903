package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

// StripFences removes a surrounding markdown code fence, if present. Models
// asked for bare JSON still wrap it in ```json fences often enough that this
// is worth doing unconditionally.
func StripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	if _, rest, found := strings.Cut(raw, "\n"); found {
		raw = rest
	}
	if idx := strings.LastIndex(raw, "```"); idx >= 0 {
		raw = raw[:idx]
	}
	return strings.TrimSpace(raw)
}

// ExtractObject returns the first balanced {...} substring of raw, for
// replies that bury the JSON object in surrounding prose.
func ExtractObject(raw string) (string, bool) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return raw[start : i+1], true
			}
		}
	}
	return "", false
}

// DecodeObject strips fences and unmarshals raw into v, falling back to the
// first embedded JSON object when the full reply doesn't parse.
func DecodeObject(raw string, v any) error {
	raw = StripFences(raw)
	if err := json.Unmarshal([]byte(raw), v); err == nil {
		return nil
	}
	obj, ok := ExtractObject(raw)
	if !ok {
		return fmt.Errorf("no JSON object in reply")
	}
	if err := json.Unmarshal([]byte(obj), v); err != nil {
		return fmt.Errorf("decode embedded object: %w", err)
	}
	return nil
}

// Invoke completes the prompt and decodes the reply into v, retrying both
// transport errors and undecodable replies up to retries attempts. Context
// cancellation ends the loop early.
func Invoke(ctx context.Context, c Client, system, user string, maxTokens, retries int, v any) error {
	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		raw, err := c.Complete(ctx, system, user, maxTokens)
		if err != nil {
			log.Printf("[llm] completion error, attempt %d/%d: %v", attempt, retries, err)
			lastErr = err
			continue
		}

		if err := DecodeObject(raw, v); err != nil {
			log.Printf("[llm] failed to parse JSON, attempt %d/%d: %v", attempt, retries, err)
			lastErr = err
			continue
		}

		return nil
	}
	return fmt.Errorf("llm call failed after %d attempts: %w", retries, lastErr)
}
