package scraper

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"

	apperrors "github.com/slumbersage/gjirafa50/pkg/errors"
)

// EmbeddedModel is a JSON object the upstream renders into an inline script.
// Its shape depends on the page type, so it stays untyped.
type EmbeddedModel map[string]any

// ExtractEmbeddedModel finds `var <name> = {...}` in page and decodes the
// object literal. The end of the object is found by counting brace depth
// outside of string literals, so nested objects never truncate the match.
func ExtractEmbeddedModel(page, name string) (EmbeddedModel, error) {
	assign := regexp.MustCompile(`\bvar\s+` + regexp.QuoteMeta(name) + `\s*=\s*`)
	loc := assign.FindStringIndex(page)
	if loc == nil {
		return nil, apperrors.NewModelNotFound("model", name)
	}

	start := loc[1]
	if start >= len(page) || page[start] != '{' {
		return nil, apperrors.NewModelNotFound("model", name)
	}

	end := matchingBrace(page, start)
	if end < 0 {
		return nil, apperrors.NewModelNotFound("model", name)
	}

	decoder := json.NewDecoder(bytes.NewReader([]byte(page[start : end+1])))
	decoder.UseNumber()

	var model EmbeddedModel
	if err := decoder.Decode(&model); err != nil {
		return nil, apperrors.NewParsing("model", "failed to decode "+name, err)
	}
	return model, nil
}

// matchingBrace returns the offset of the brace closing the one at open,
// or -1 when the object never closes.
func matchingBrace(s string, open int) int {
	depth := 0
	inString := false
	escaped := false

	for i := open; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// Object returns the nested object under key, or nil.
func (m EmbeddedModel) Object(key string) EmbeddedModel {
	switch v := m[key].(type) {
	case map[string]any:
		return v
	case EmbeddedModel:
		return v
	default:
		return nil
	}
}

// Objects returns the objects of the array under key, skipping other values.
func (m EmbeddedModel) Objects(key string) []EmbeddedModel {
	items, ok := m[key].([]any)
	if !ok {
		return nil
	}
	objects := make([]EmbeddedModel, 0, len(items))
	for _, item := range items {
		switch obj := item.(type) {
		case map[string]any:
			objects = append(objects, obj)
		case EmbeddedModel:
			objects = append(objects, obj)
		}
	}
	return objects
}

// String returns the value under key as text, or "" when absent.
// Numbers are rendered in their JSON form.
func (m EmbeddedModel) String(key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// Bool returns the value under key as a boolean, or false when absent.
func (m EmbeddedModel) Bool(key string) bool {
	switch v := m[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	default:
		return false
	}
}

// Int returns the value under key as an integer, or 0 when absent.
func (m EmbeddedModel) Int(key string) int64 {
	switch v := m[key].(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
		if f, err := v.Float64(); err == nil {
			return int64(f)
		}
	case float64:
		return int64(v)
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return 0
}

// Amount returns the value under key as a number. Display strings go
// through ParsePrice.
func (m EmbeddedModel) Amount(key string) float64 {
	switch v := m[key].(type) {
	case json.Number:
		f, _ := v.Float64()
		return f
	case float64:
		return v
	case string:
		return ParsePrice(v)
	default:
		return 0
	}
}
