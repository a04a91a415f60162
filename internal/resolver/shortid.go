package resolver

import (
	"fmt"
	"strings"

	"github.com/dyluth/architect/pkg/blueprint"
)

// MinShortIDLength is the minimum required length for ID prefixes.
// Generated IDs are UUIDs, so four characters rarely collide within one blueprint.
const MinShortIDLength = 4

// ResolveActionID resolves a full action ID or a unique prefix of one.
func ResolveActionID(bp blueprint.Blueprint, shortID string) (string, error) {
	ids := make([]string, 0, len(bp.Actions))
	for _, a := range bp.Actions {
		ids = append(ids, a.ID)
	}
	return resolve("action", ids, shortID)
}

// ResolveKnowledgeID resolves a full knowledge item ID or a unique prefix of one.
func ResolveKnowledgeID(bp blueprint.Blueprint, shortID string) (string, error) {
	ids := make([]string, 0, len(bp.KnowledgeBase))
	for _, k := range bp.KnowledgeBase {
		ids = append(ids, k.ID)
	}
	return resolve("knowledge source", ids, shortID)
}

// resolve handles three cases:
// 1. Input equals an ID exactly - returned as-is, whatever its length
// 2. Input is too short (< 4 chars) - returns validation error
// 3. Input is a prefix - returns the unique match
func resolve(kind string, ids []string, shortID string) (string, error) {
	for _, id := range ids {
		if id == shortID {
			return id, nil
		}
	}

	if len(shortID) < MinShortIDLength {
		return "", fmt.Errorf("short ID must be at least %d characters (got %d)", MinShortIDLength, len(shortID))
	}

	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, shortID) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", &NotFoundError{Kind: kind, ShortID: shortID}
	case 1:
		return matches[0], nil
	default:
		return "", &AmbiguousError{Kind: kind, ShortID: shortID, Matches: matches}
	}
}

// NotFoundError indicates no IDs matched the short ID.
type NotFoundError struct {
	Kind    string
	ShortID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s found matching '%s'", e.Kind, e.ShortID)
}

// AmbiguousError indicates multiple IDs matched the short ID.
type AmbiguousError struct {
	Kind    string
	ShortID string
	Matches []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous short ID '%s' matches %d %s entries", e.ShortID, len(e.Matches), e.Kind)
}

// FormatAmbiguousError creates a user-friendly error message for ambiguous short IDs.
// Lists all matching IDs (up to 10, then "...and N more").
func FormatAmbiguousError(err *AmbiguousError) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Error: ambiguous short ID '%s' matches %d %s entries:\n", err.ShortID, len(err.Matches), err.Kind)

	displayCount := min(len(err.Matches), 10)
	for i := 0; i < displayCount; i++ {
		fmt.Fprintf(&b, "  %s\n", err.Matches[i])
	}

	if len(err.Matches) > 10 {
		fmt.Fprintf(&b, "  ...and %d more\n", len(err.Matches)-10)
	}

	b.WriteString("\nUse a longer prefix to uniquely identify the entry.")
	return b.String()
}

// IsNotFoundError checks if an error is a NotFoundError.
func IsNotFoundError(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}

// IsAmbiguousError checks if an error is an AmbiguousError.
func IsAmbiguousError(err error) bool {
	_, ok := err.(*AmbiguousError)
	return ok
}
