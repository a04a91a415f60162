package blueprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	bp := Default()
	require.NoError(t, bp.Validate())
	assert.NotEmpty(t, bp.Actions)
	assert.True(t, bp.HumanInLoop.Enabled)
}

func TestBlueprintValidate(t *testing.T) {
	t.Run("accepts empty collections and empty strings", func(t *testing.T) {
		bp := Blueprint{
			Trigger: Trigger{Type: TriggerManual},
			Memory:  Memory{Strategy: MemoryRedis},
		}
		assert.NoError(t, bp.Validate())
	})

	t.Run("rejects unknown trigger type", func(t *testing.T) {
		bp := Default()
		bp.Trigger.Type = "carrier_pigeon"
		err := bp.Validate()
		require.Error(t, err)
		assert.True(t, IsValidationError(err))
		assert.Contains(t, err.Error(), "trigger.type")
	})

	t.Run("rejects unknown memory strategy", func(t *testing.T) {
		bp := Default()
		bp.Memory.Strategy = "floppy"
		err := bp.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "memory.strategy")
	})

	t.Run("rejects empty action id", func(t *testing.T) {
		bp := Default()
		bp.Actions[1].ID = ""
		err := bp.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "actions[1].id")
	})

	t.Run("rejects duplicate action ids", func(t *testing.T) {
		bp := Default()
		bp.Actions[2].ID = bp.Actions[0].ID
		err := bp.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate id")
	})

	t.Run("rejects duplicate knowledge ids", func(t *testing.T) {
		bp := Default()
		bp.KnowledgeBase[1].ID = bp.KnowledgeBase[0].ID
		err := bp.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "knowledgeBase[1].id")
	})

	t.Run("rejects unknown knowledge source type", func(t *testing.T) {
		bp := Default()
		bp.KnowledgeBase[0].SourceType = "fax"
		err := bp.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sourceType")
	})

	t.Run("allows the same id across collections", func(t *testing.T) {
		bp := Default()
		bp.KnowledgeBase[0].ID = bp.Actions[0].ID
		assert.NoError(t, bp.Validate())
	})
}

func TestTriggerDisplayCommand(t *testing.T) {
	tests := []struct {
		name     string
		trigger  Trigger
		expected string
	}{
		{"telegram default", Trigger{Type: TriggerTelegramCommand}, "/architect"},
		{"telegram explicit", Trigger{Type: TriggerTelegramCommand, CommandSyntax: "/launch"}, "/launch"},
		{"webhook without syntax", Trigger{Type: TriggerWebhook}, ""},
		{"webhook with syntax", Trigger{Type: TriggerWebhook, CommandSyntax: "POST /hook"}, "POST /hook"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.trigger.DisplayCommand())
		})
	}
}

func TestEnumLabels(t *testing.T) {
	assert.Equal(t, "Telegram Command", TriggerTelegramCommand.Label())
	assert.Equal(t, "HTTP Polling", TriggerHTTPPolling.Label())
	assert.Equal(t, "Redis Cache", MemoryRedis.Label())
	assert.Equal(t, "Google Doc", SourceGDoc.Label())
	assert.Equal(t, "mystery", TriggerType("mystery").Label())

	for _, tt := range TriggerTypes {
		assert.NoError(t, tt.Validate())
	}
	for _, m := range MemoryStrategies {
		assert.NoError(t, m.Validate())
	}
	for _, s := range SourceTypes {
		assert.NoError(t, s.Validate())
	}
}

func TestSequenceGenerator(t *testing.T) {
	gen := NewSequenceGenerator("act")
	assert.Equal(t, "act-1", gen.NewID())
	assert.Equal(t, "act-2", gen.NewID())

	bare := NewSequenceGenerator("")
	assert.Equal(t, "1", bare.NewID())
}

func TestUUIDGenerator(t *testing.T) {
	gen := UUIDGenerator{}
	a, b := gen.NewID(), gen.NewID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
