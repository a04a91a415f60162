package summary

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dyluth/architect/pkg/blueprint"
	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
)

// FormatStats writes the headline stats, one per line.
func FormatStats(w io.Writer, stats []Stat) {
	for _, s := range stats {
		fmt.Fprintf(w, "%-18s %4s  %s\n", s.Label, s.Value, s.Description)
	}
}

// FormatHooks writes the tailored hooks as a bullet list.
func FormatHooks(w io.Writer, hooks []string) {
	for _, h := range hooks {
		fmt.Fprintf(w, "  • %s\n", h)
	}
}

// FormatPrompt writes one prompt template.
func FormatPrompt(w io.Writer, p PromptTemplate) {
	fmt.Fprintf(w, "%s\n  System: %s\n  User:   %s\n", p.Label, p.System, p.User)
}

// FormatTable writes actions as a table with columns #, ID, TITLE, SERVICE and
// CRITICAL. Returns the number of actions written.
func FormatTable(w io.Writer, actions []blueprint.Action) (int, error) {
	if len(actions) == 0 {
		fmt.Fprintln(w, "No actions configured")
		return 0, nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("#", "ID", "TITLE", "SERVICE", "CRITICAL")
	for i, a := range actions {
		critical := "-"
		if a.Critical {
			critical = "yes"
		}
		if err := table.Append([]string{strconv.Itoa(i + 1), formatID(a.ID), a.Title, orDash(a.Service), critical}); err != nil {
			return 0, fmt.Errorf("failed to format action table: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return 0, fmt.Errorf("failed to render action table: %w", err)
	}

	fmt.Fprintf(w, "\n%d %s\n", len(actions), plural(len(actions), "action", "actions"))
	return len(actions), nil
}

// FormatKnowledgeTable writes knowledge sources as a table.
func FormatKnowledgeTable(w io.Writer, items []blueprint.KnowledgeItem) (int, error) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No knowledge sources configured")
		return 0, nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "TITLE", "SOURCE", "ACCESS")
	for _, k := range items {
		if err := table.Append([]string{formatID(k.ID), k.Title, k.SourceType.Label(), formatText(k.AccessDetails)}); err != nil {
			return 0, fmt.Errorf("failed to format knowledge table: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return 0, fmt.Errorf("failed to render knowledge table: %w", err)
	}
	return len(items), nil
}

// FormatBlueprintJSON writes the blueprint as pretty-printed JSON, the same
// format used for storage and export.
func FormatBlueprintJSON(w io.Writer, bp blueprint.Blueprint) error {
	data, err := blueprint.Marshal(bp)
	if err != nil {
		return fmt.Errorf("failed to marshal blueprint to JSON: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}
	return nil
}

// formatID shortens generated UUIDs to their first 8 characters.
// Hand-written IDs are shown in full.
func formatID(id string) string {
	if _, err := uuid.Parse(id); err == nil {
		return id[:8]
	}
	return id
}

// formatText keeps the first non-empty line, truncated to 40 characters.
func formatText(s string) string {
	for _, line := range strings.Split(s, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if len([]rune(trimmed)) > 40 {
			return string([]rune(trimmed)[:37]) + "..."
		}
		return trimmed
	}
	return "-"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
