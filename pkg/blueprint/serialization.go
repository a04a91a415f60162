package blueprint

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Marshal encodes the blueprint as indented JSON with a trailing newline.
// This is the storage format and the "duplicate blueprint" export format.
// Nil collections are written as empty arrays.
func Marshal(b Blueprint) ([]byte, error) {
	b = b.normalized()
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return nil, fmt.Errorf("failed to marshal blueprint: %w", err)
	}
	return buf.Bytes(), nil
}

// Parse decodes a blueprint from JSON or YAML and validates it.
// Well-formed JSON is decoded with encoding/json, since yaml.v3 rejects some
// valid JSON such as escaped surrogate pairs. Anything else is read as YAML.
func Parse(data []byte) (Blueprint, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Blueprint{}, fmt.Errorf("blueprint payload is empty")
	}

	var b Blueprint
	if json.Valid(data) {
		if err := json.Unmarshal(data, &b); err != nil {
			return Blueprint{}, fmt.Errorf("failed to parse blueprint: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &b); err != nil {
		return Blueprint{}, fmt.Errorf("failed to parse blueprint: %w", err)
	}

	b = b.normalized()
	if err := b.Validate(); err != nil {
		return Blueprint{}, err
	}
	return b, nil
}

// normalized replaces nil collections with empty ones so encoders never emit null.
func (b Blueprint) normalized() Blueprint {
	next := b.Clone()
	if next.Actions == nil {
		next.Actions = []Action{}
	}
	if next.KnowledgeBase == nil {
		next.KnowledgeBase = []KnowledgeItem{}
	}
	if next.Telemetry == nil {
		next.Telemetry = []TelemetryEvent{}
	}
	if next.HumanInLoop.ReviewCheckpoints == nil {
		next.HumanInLoop.ReviewCheckpoints = []string{}
	}
	return next
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// ExportFileName returns the file name used when duplicating a blueprint:
// whitespace runs become '-', the result is lower-cased and suffixed with
// -blueprint.json.
func ExportFileName(projectName string) string {
	slug := strings.ToLower(whitespaceRun.ReplaceAllString(projectName, "-"))
	return slug + "-blueprint.json"
}
