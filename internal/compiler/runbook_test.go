package compiler

import (
	"strings"
	"testing"

	"github.com/dyluth/architect/pkg/blueprint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderRunbook_DefaultBlueprint(t *testing.T) {
	bp := blueprint.Default()
	lines := strings.Split(strings.TrimSuffix(RenderRunbook(bp), "\n"), "\n")
	require.Len(t, lines, 6)

	for i, phase := range RunbookPhases {
		assert.True(t, strings.HasPrefix(lines[i], phase+": "), "line %d should start with %s", i, phase)
	}
	assert.Equal(t, "Kickoff: Telegram Command trigger on Telegram Bot API with command /architect. Verify operator access and load memory context.", lines[0])
	assert.Equal(t, "Discovery: Map knowledge sources: Automation Playbooks, Compliance Checklist. Collect compliance signals.", lines[1])
	assert.Equal(t, "Build: Orchestrate 4 nodes: Capture Request -> Retrieve Context -> Draft Workflow -> Publish to n8n. Critical: Publish to n8n.", lines[2])
	assert.Equal(t, "Review: Human review at Compliance QA -> Ops Lead Sign-off. Operators sign off before production import.", lines[3])
	assert.Equal(t, "Launch: Deploy to production agents.", lines[4])
	assert.Equal(t, "Notes: "+bp.DeploymentNotes, lines[5])
}

func TestRenderRunbook_EmptyFallbacks(t *testing.T) {
	rb := RenderRunbook(emptyBlueprint())
	assert.Contains(t, rb, "Kickoff: Manual trigger on an unspecified entry point. ")
	assert.Contains(t, rb, "Discovery: Map knowledge sources: add knowledge assets.")
	assert.Contains(t, rb, "Build: Orchestrate 0 nodes: no actions configured. Critical: none.")
	assert.Contains(t, rb, "Review: Automated validation pipeline.")
}

func TestRenderRunbook_ReviewWithoutCheckpoints(t *testing.T) {
	bp := emptyBlueprint()
	bp.HumanInLoop.Enabled = true
	assert.Contains(t, RenderRunbook(bp), "Review: Human review at an unnamed checkpoint.")
}

func TestRenderRunbook_TelegramDefaultCommand(t *testing.T) {
	bp := emptyBlueprint()
	bp.Trigger = blueprint.Trigger{Type: blueprint.TriggerTelegramCommand, EntryPoint: "Bot"}
	assert.Contains(t, RenderRunbook(bp), "with command "+blueprint.DefaultCommandSyntax+".")
}

func TestRenderRunbook_NotesVerbatim(t *testing.T) {
	bp := emptyBlueprint()
	bp.DeploymentNotes = "Roll out behind flag `architect_v2`; ping #ops."
	assert.True(t, strings.HasSuffix(RenderRunbook(bp), "Notes: Roll out behind flag `architect_v2`; ping #ops.\n"))
}

func TestRenderRunbook_FoldsLineBreaksInPhaseLines(t *testing.T) {
	bp := emptyBlueprint()
	bp.Trigger = blueprint.Trigger{Type: blueprint.TriggerWebhook, EntryPoint: "Stripe\nwebhook", CommandSyntax: "/go\r\nnow"}
	bp.KnowledgeBase = []blueprint.KnowledgeItem{{ID: "k1", Title: "Pricing\rSheet", SourceType: blueprint.SourceNotion}}
	bp.Actions = []blueprint.Action{{ID: "a1", Title: "Charge\ncard", Critical: true}}
	bp.HumanInLoop = blueprint.HumanInLoop{Enabled: true, ReviewCheckpoints: []string{"Finance\nLead"}}
	bp.DeploymentNotes = "line one\nline two"

	lines := strings.Split(strings.TrimSuffix(RenderRunbook(bp), "\n"), "\n")
	require.Len(t, lines, len(RunbookPhases)+2, "notes keep their own line break")

	assert.Equal(t, "Kickoff: Webhook trigger on Stripe webhook with command /go now. Verify operator access and load memory context.", lines[0])
	assert.Equal(t, "Discovery: Map knowledge sources: Pricing Sheet. Collect compliance signals.", lines[1])
	assert.Equal(t, "Build: Orchestrate 1 nodes: Charge card. Critical: Charge card.", lines[2])
	assert.Equal(t, "Review: Human review at Finance Lead. Operators sign off before production import.", lines[3])
	assert.Equal(t, "Notes: line one", lines[5])
	assert.Equal(t, "line two", lines[6])
}
