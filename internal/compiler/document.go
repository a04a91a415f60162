package compiler

import (
	"fmt"
	"strings"

	"github.com/dyluth/architect/pkg/blueprint"
)

// Placeholder sentences emitted for empty document sections.
const (
	UntitledProject          = "Untitled Automation"
	PlaceholderNotSpecified  = "_Not specified._"
	PlaceholderNoActions     = "No actions configured."
	PlaceholderNoKnowledge   = "No knowledge sources configured."
	PlaceholderNoTelemetry   = "No telemetry events configured."
	PlaceholderNoCheckpoints = "No review checkpoints configured."
	PlaceholderNoCritical    = "Critical steps: none flagged."
	PlaceholderAutomated     = "Human review is disabled. Automated validation pipeline: the agent self-checks using unit tests before deployment."
)

// DocumentSections lists the section headers of the technical document in order.
var DocumentSections = []string{
	"## Executive Summary",
	"## User Persona",
	"## Success Criteria",
	"## Trigger Mechanics",
	"## Automation Path",
	"## Memory & Knowledge Architecture",
	"### Knowledge Sources",
	"## Telemetry Plan",
	"## Human-in-the-Loop Policy",
	"## Deployment Notes",
}

// RenderTechnicalDoc renders the markdown technical document. Every section is
// always present; empty data is replaced with a placeholder sentence.
func RenderTechnicalDoc(bp blueprint.Blueprint) string {
	var b strings.Builder

	title := strings.TrimSpace(bp.ProjectName)
	if title == "" {
		title = UntitledProject
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	writeTextSection(&b, "## Executive Summary", bp.ExecutiveSummary)
	writeTextSection(&b, "## User Persona", bp.UserPersona)
	writeTextSection(&b, "## Success Criteria", bp.SuccessCriteria)

	b.WriteString("## Trigger Mechanics\n\n")
	fmt.Fprintf(&b, "- **Type:** %s (`%s`)\n", bp.Trigger.Type.Label(), bp.Trigger.Type)
	fmt.Fprintf(&b, "- **Entry point:** %s\n", orPlaceholder(bp.Trigger.EntryPoint))
	if cmd := bp.Trigger.DisplayCommand(); cmd != "" {
		fmt.Fprintf(&b, "- **Command syntax:** `%s`\n", cmd)
	}
	b.WriteString("\n")

	b.WriteString("## Automation Path\n\n")
	if len(bp.Actions) == 0 {
		b.WriteString(PlaceholderNoActions + "\n\n")
	} else {
		for i, a := range bp.Actions {
			fmt.Fprintf(&b, "%d. **%s** (%s)", i+1, a.Title, orPlaceholder(a.Service))
			if a.Critical {
				b.WriteString(" [CRITICAL]")
			}
			if a.Description != "" {
				fmt.Fprintf(&b, ": %s", a.Description)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		if critical := criticalTitles(bp); len(critical) > 0 {
			fmt.Fprintf(&b, "Critical steps: %s\n\n", strings.Join(critical, ", "))
		} else {
			b.WriteString(PlaceholderNoCritical + "\n\n")
		}
	}

	b.WriteString("## Memory & Knowledge Architecture\n\n")
	fmt.Fprintf(&b, "- **Backend:** %s (`%s`)\n", bp.Memory.Strategy.Label(), bp.Memory.Strategy)
	fmt.Fprintf(&b, "- **Retention:** %s\n", orPlaceholder(bp.Memory.Retention))
	fmt.Fprintf(&b, "- **Embedding model:** %s\n\n", orPlaceholder(bp.Memory.EmbeddingModel))
	b.WriteString("### Knowledge Sources\n\n")
	if len(bp.KnowledgeBase) == 0 {
		b.WriteString(PlaceholderNoKnowledge + "\n\n")
	} else {
		for _, k := range bp.KnowledgeBase {
			fmt.Fprintf(&b, "- **%s** (%s): %s\n", k.Title, k.SourceType.Label(), orPlaceholder(k.AccessDetails))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Telemetry Plan\n\n")
	if len(bp.Telemetry) == 0 {
		b.WriteString(PlaceholderNoTelemetry + "\n\n")
	} else {
		for _, e := range bp.Telemetry {
			fmt.Fprintf(&b, "- `%s` -> %s\n", e.Capture, orPlaceholder(e.Destination))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Human-in-the-Loop Policy\n\n")
	if bp.HumanInLoop.Enabled {
		b.WriteString("Human approval is required before critical steps run.\n\n")
		cps := checkpoints(bp)
		if len(cps) == 0 {
			b.WriteString(PlaceholderNoCheckpoints + "\n\n")
		} else {
			b.WriteString("Review checkpoints:\n\n")
			for i, cp := range cps {
				fmt.Fprintf(&b, "%d. %s\n", i+1, cp)
			}
			b.WriteString("\n")
		}
	} else {
		b.WriteString(PlaceholderAutomated + "\n\n")
	}

	writeTextSection(&b, "## Deployment Notes", bp.DeploymentNotes)

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeTextSection(b *strings.Builder, header, text string) {
	fmt.Fprintf(b, "%s\n\n%s\n\n", header, orPlaceholder(strings.TrimSpace(text)))
}

func orPlaceholder(s string) string {
	if s == "" {
		return PlaceholderNotSpecified
	}
	return s
}
