// Package summary renders terminal views of a blueprint: headline stats,
// conversation hooks for the chat agent, and action and knowledge tables.
package summary

import (
	"strconv"
	"strings"

	"github.com/dyluth/architect/pkg/blueprint"
)

// Stat is one headline number.
type Stat struct {
	Label       string `json:"label"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

// HeroStats returns the headline numbers of the blueprint.
func HeroStats(bp blueprint.Blueprint) []Stat {
	return []Stat{
		{
			Label:       "Workflow nodes",
			Value:       strconv.Itoa(len(bp.Actions)),
			Description: "Nodes orchestrated from intake to launch",
		},
		{
			Label:       "Knowledge assets",
			Value:       strconv.Itoa(len(bp.KnowledgeBase)),
			Description: "Documents piped into retrieval layer",
		},
		{
			Label:       "Telemetry",
			Value:       strconv.Itoa(len(bp.Telemetry)),
			Description: "Events supporting ops visibility",
		},
	}
}

// TailoredHooks returns the conversation hints derived from the blueprint.
func TailoredHooks(bp blueprint.Blueprint) []string {
	critical := []string{}
	for _, a := range bp.Actions {
		if a.Critical {
			critical = append(critical, a.Title)
		}
	}
	confirm := strings.Join(critical, ", ")
	if confirm == "" {
		confirm = "critical steps"
	}

	return []string{
		"Mention " + bp.Trigger.EntryPoint + " as the primary entry point.",
		"Ask for confirmation before executing " + confirm + ".",
		"Store contextual insights in " + string(bp.Memory.Strategy) + " memory tier.",
	}
}

// PromptTemplate primes the chat agent for one stage of a build-out conversation.
type PromptTemplate struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	System string `json:"system"`
	User   string `json:"user"`
}

// PromptTemplates are the conversation stages in order.
var PromptTemplates = []PromptTemplate{
	{
		ID:     "discovery",
		Label:  "Discovery",
		System: "You are the n8n AI Workflow Architect. Extract triggers, actions, and guardrails from the user with short probing questions.",
		User:   "We need an onboarding automation for new partner creators. Trigger when they submit the airtable form.",
	},
	{
		ID:     "refine",
		Label:  "Refinement",
		System: "Use existing blueprint memory to fill gaps. Ask follow-ups for missing telemetry destinations.",
		User:   "Make sure compliance approves any copy before shipping.",
	},
	{
		ID:     "handoff",
		Label:  "Handoff",
		System: "Summarize the orchestrated automation, highlight human checkpoints, and attach exportable assets.",
		User:   "Generate the full package for import.",
	},
}

// LookupPrompt returns the template with the given ID.
func LookupPrompt(id string) (PromptTemplate, bool) {
	for _, p := range PromptTemplates {
		if p.ID == id {
			return p, true
		}
	}
	return PromptTemplate{}, false
}
