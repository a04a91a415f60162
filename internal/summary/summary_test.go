package summary

import (
	"testing"

	"github.com/dyluth/architect/pkg/blueprint"
	"github.com/stretchr/testify/assert"
)

func TestHeroStats(t *testing.T) {
	stats := HeroStats(blueprint.Default())

	assert.Equal(t, []Stat{
		{Label: "Workflow nodes", Value: "4", Description: "Nodes orchestrated from intake to launch"},
		{Label: "Knowledge assets", Value: "2", Description: "Documents piped into retrieval layer"},
		{Label: "Telemetry", Value: "3", Description: "Events supporting ops visibility"},
	}, stats)
}

func TestTailoredHooks(t *testing.T) {
	t.Run("default blueprint", func(t *testing.T) {
		hooks := TailoredHooks(blueprint.Default())
		assert.Equal(t, []string{
			"Mention Telegram Bot API as the primary entry point.",
			"Ask for confirmation before executing Publish to n8n.",
			"Store contextual insights in vector_db memory tier.",
		}, hooks)
	})

	t.Run("no critical actions", func(t *testing.T) {
		bp := blueprint.Default()
		for i := range bp.Actions {
			bp.Actions[i].Critical = false
		}
		hooks := TailoredHooks(bp)
		assert.Equal(t, "Ask for confirmation before executing critical steps.", hooks[1])
	})
}

func TestLookupPrompt(t *testing.T) {
	p, ok := LookupPrompt("refine")
	assert.True(t, ok)
	assert.Equal(t, "Refinement", p.Label)

	_, ok = LookupPrompt("celebrate")
	assert.False(t, ok)

	ids := []string{}
	for _, p := range PromptTemplates {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"discovery", "refine", "handoff"}, ids)
}
