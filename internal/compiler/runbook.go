package compiler

import (
	"fmt"
	"strings"

	"github.com/dyluth/architect/pkg/blueprint"
)

// Runbook phases, one line each, in this order. The notes line closes the runbook.
var RunbookPhases = []string{"Kickoff", "Discovery", "Build", "Review", "Launch"}

// RenderRunbook renders the plain-text operator runbook: one line per phase and a
// closing line with the deployment notes reproduced verbatim. Line breaks inside
// phase values are folded to spaces.
func RenderRunbook(bp blueprint.Blueprint) string {
	lines := []string{
		singleLine(kickoffLine(bp)),
		singleLine(discoveryLine(bp)),
		singleLine(buildLine(bp)),
		singleLine(reviewLine(bp)),
		"Launch: Deploy to production agents.",
		"Notes: " + bp.DeploymentNotes,
	}
	return strings.Join(lines, "\n") + "\n"
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

func singleLine(s string) string {
	return lineBreaks.Replace(s)
}

func kickoffLine(bp blueprint.Blueprint) string {
	entry := bp.Trigger.EntryPoint
	if entry == "" {
		entry = "an unspecified entry point"
	}
	line := fmt.Sprintf("Kickoff: %s trigger on %s", bp.Trigger.Type.Label(), entry)
	if cmd := bp.Trigger.DisplayCommand(); cmd != "" {
		line += " with command " + cmd
	}
	return line + ". Verify operator access and load memory context."
}

func discoveryLine(bp blueprint.Blueprint) string {
	sources := strings.Join(knowledgeTitles(bp), ", ")
	if sources == "" {
		sources = "add knowledge assets"
	}
	return fmt.Sprintf("Discovery: Map knowledge sources: %s. Collect compliance signals.", sources)
}

func buildLine(bp blueprint.Blueprint) string {
	path := strings.Join(actionTitles(bp), " -> ")
	if path == "" {
		path = "no actions configured"
	}
	critical := strings.Join(criticalTitles(bp), ", ")
	if critical == "" {
		critical = "none"
	}
	return fmt.Sprintf("Build: Orchestrate %d nodes: %s. Critical: %s.", len(bp.Actions), path, critical)
}

func reviewLine(bp blueprint.Blueprint) string {
	if !bp.HumanInLoop.Enabled {
		return "Review: Automated validation pipeline. Agent self-checks using unit tests before deployment."
	}
	cps := strings.Join(checkpoints(bp), " -> ")
	if cps == "" {
		cps = "an unnamed checkpoint"
	}
	return fmt.Sprintf("Review: Human review at %s. Operators sign off before production import.", cps)
}
