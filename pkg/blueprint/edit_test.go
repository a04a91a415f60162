package blueprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEdits_DoNotMutateReceiver(t *testing.T) {
	original := Default()
	snapshot := original.Clone()

	next := original.WithProjectName("Renamed")
	next = next.AddAction(NewSequenceGenerator("new"), NewAction())
	next, err := next.RemoveAction("action-intake")
	require.NoError(t, err)
	next = next.AddTelemetry(NewTelemetryEvent())
	next, err = next.Set(FieldCheckpoints, "Legal | Finance")
	require.NoError(t, err)

	assert.Equal(t, snapshot, original, "receiver must be unchanged")
	assert.Equal(t, "Renamed", next.ProjectName)
	assert.Equal(t, []string{"Legal", "Finance"}, next.HumanInLoop.ReviewCheckpoints)
}

func TestClone_SharesNoBackingArrays(t *testing.T) {
	original := Default()
	clone := original.Clone()

	clone.Actions[0].Title = "changed"
	clone.KnowledgeBase[0].Title = "changed"
	clone.Telemetry[0].Capture = "changed"
	clone.HumanInLoop.ReviewCheckpoints[0] = "changed"

	assert.NotEqual(t, "changed", original.Actions[0].Title)
	assert.NotEqual(t, "changed", original.KnowledgeBase[0].Title)
	assert.NotEqual(t, "changed", original.Telemetry[0].Capture)
	assert.NotEqual(t, "changed", original.HumanInLoop.ReviewCheckpoints[0])
}

func TestAddAction_AssignsIDsFromGenerator(t *testing.T) {
	gen := NewSequenceGenerator("a")
	bp := Blueprint{Trigger: Trigger{Type: TriggerManual}, Memory: Memory{Strategy: MemoryRedis}}

	draft := NewAction()
	draft.ID = "ignored"
	bp = bp.AddAction(gen, draft)
	bp = bp.AddAction(gen, NewAction())
	require.Len(t, bp.Actions, 2)
	assert.Equal(t, "a-1", bp.Actions[0].ID)
	assert.Equal(t, "a-2", bp.Actions[1].ID)
	assert.Equal(t, "Untitled Node", bp.Actions[0].Title)

	t.Run("ids are not reused after removal", func(t *testing.T) {
		removed, err := bp.RemoveAction("a-2")
		require.NoError(t, err)
		added := removed.AddAction(gen, NewAction())
		assert.Equal(t, "a-3", added.Actions[1].ID)
		assert.NoError(t, added.Validate())
	})
}

func TestUpdateAction(t *testing.T) {
	bp := Default()

	t.Run("replaces the matching action in place", func(t *testing.T) {
		a, ok := bp.Action("action-draft")
		require.True(t, ok)
		a.Critical = true
		next, err := bp.UpdateAction(a)
		require.NoError(t, err)
		assert.True(t, next.Actions[2].Critical)
		assert.False(t, bp.Actions[2].Critical)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := bp.UpdateAction(Action{ID: "missing"})
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
	})
}

func TestKnowledgeAndTelemetryEdits(t *testing.T) {
	bp := Default()
	gen := NewSequenceGenerator("kb")

	bp = bp.AddKnowledge(gen, NewKnowledgeItem())
	last := bp.KnowledgeBase[len(bp.KnowledgeBase)-1]
	assert.Equal(t, "kb-1", last.ID)
	assert.Equal(t, SourceCustom, last.SourceType)

	bp, err := bp.RemoveKnowledge("kb-playbooks")
	require.NoError(t, err)
	assert.Len(t, bp.KnowledgeBase, 2)

	_, err = bp.RemoveKnowledge("missing")
	assert.True(t, IsNotFound(err))

	bp, err = bp.RemoveTelemetry(0)
	require.NoError(t, err)
	assert.Equal(t, "workflow.published", bp.Telemetry[0].Capture)

	_, err = bp.RemoveTelemetry(10)
	assert.True(t, IsNotFound(err))
}

func TestSet(t *testing.T) {
	bp := Default()

	tests := []struct {
		name  string
		field string
		value string
		check func(t *testing.T, b Blueprint)
	}{
		{"project name", FieldProjectName, "Ops Bot", func(t *testing.T, b Blueprint) {
			assert.Equal(t, "Ops Bot", b.ProjectName)
		}},
		{"trigger type", FieldTriggerType, "webhook", func(t *testing.T, b Blueprint) {
			assert.Equal(t, TriggerWebhook, b.Trigger.Type)
		}},
		{"command syntax cleared", FieldTriggerCommand, "", func(t *testing.T, b Blueprint) {
			assert.Empty(t, b.Trigger.CommandSyntax)
			assert.Equal(t, DefaultCommandSyntax, b.Trigger.DisplayCommand())
		}},
		{"memory strategy", FieldMemoryStrategy, "postgres", func(t *testing.T, b Blueprint) {
			assert.Equal(t, MemoryPostgres, b.Memory.Strategy)
		}},
		{"human in loop", FieldHumanInLoop, "false", func(t *testing.T, b Blueprint) {
			assert.False(t, b.HumanInLoop.Enabled)
		}},
		{"checkpoints drop empties", FieldCheckpoints, " Legal || QA |  ", func(t *testing.T, b Blueprint) {
			assert.Equal(t, []string{"Legal", "QA"}, b.HumanInLoop.ReviewCheckpoints)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := bp.Set(tt.field, tt.value)
			require.NoError(t, err)
			tt.check(t, next)
		})
	}

	t.Run("rejects invalid enum", func(t *testing.T) {
		_, err := bp.Set(FieldTriggerType, "fax")
		assert.Error(t, err)
	})

	t.Run("rejects invalid boolean", func(t *testing.T) {
		_, err := bp.Set(FieldHumanInLoop, "maybe")
		assert.Error(t, err)
	})

	t.Run("rejects unknown field", func(t *testing.T) {
		_, err := bp.Set("colour", "blue")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown field")
	})
}
