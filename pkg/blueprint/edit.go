package blueprint

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Field names accepted by Set.
const (
	FieldProjectName       = "project_name"
	FieldSuccessCriteria   = "success_criteria"
	FieldExecutiveSummary  = "executive_summary"
	FieldUserPersona       = "user_persona"
	FieldDeploymentNotes   = "deployment_notes"
	FieldTriggerType       = "trigger.type"
	FieldTriggerEntryPoint = "trigger.entry_point"
	FieldTriggerCommand    = "trigger.command_syntax"
	FieldMemoryStrategy    = "memory.strategy"
	FieldMemoryRetention   = "memory.retention"
	FieldMemoryEmbedding   = "memory.embedding_model"
	FieldHumanInLoop       = "human_in_loop.enabled"
	FieldCheckpoints       = "human_in_loop.checkpoints"
)

// Fields lists every field name accepted by Set.
var Fields = []string{
	FieldProjectName,
	FieldSuccessCriteria,
	FieldExecutiveSummary,
	FieldUserPersona,
	FieldDeploymentNotes,
	FieldTriggerType,
	FieldTriggerEntryPoint,
	FieldTriggerCommand,
	FieldMemoryStrategy,
	FieldMemoryRetention,
	FieldMemoryEmbedding,
	FieldHumanInLoop,
	FieldCheckpoints,
}

// NotFoundError reports an edit addressed to a collection entry that does not exist.
type NotFoundError struct {
	Collection string
	Key        string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s entry '%s' not found", e.Collection, e.Key)
}

// IsNotFound returns true if the error is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// Clone returns a deep copy of the blueprint.
func (b Blueprint) Clone() Blueprint {
	clone := b
	clone.Actions = slices.Clone(b.Actions)
	clone.KnowledgeBase = slices.Clone(b.KnowledgeBase)
	clone.Telemetry = slices.Clone(b.Telemetry)
	clone.HumanInLoop.ReviewCheckpoints = slices.Clone(b.HumanInLoop.ReviewCheckpoints)
	return clone
}

// WithProjectName returns a copy with the project name replaced.
func (b Blueprint) WithProjectName(name string) Blueprint {
	next := b.Clone()
	next.ProjectName = name
	return next
}

// WithSuccessCriteria returns a copy with the success criteria replaced.
func (b Blueprint) WithSuccessCriteria(s string) Blueprint {
	next := b.Clone()
	next.SuccessCriteria = s
	return next
}

// WithExecutiveSummary returns a copy with the executive summary replaced.
func (b Blueprint) WithExecutiveSummary(s string) Blueprint {
	next := b.Clone()
	next.ExecutiveSummary = s
	return next
}

// WithUserPersona returns a copy with the user persona replaced.
func (b Blueprint) WithUserPersona(s string) Blueprint {
	next := b.Clone()
	next.UserPersona = s
	return next
}

// WithDeploymentNotes returns a copy with the deployment notes replaced.
func (b Blueprint) WithDeploymentNotes(s string) Blueprint {
	next := b.Clone()
	next.DeploymentNotes = s
	return next
}

// WithTrigger returns a copy with the trigger replaced.
func (b Blueprint) WithTrigger(t Trigger) Blueprint {
	next := b.Clone()
	next.Trigger = t
	return next
}

// WithMemory returns a copy with the memory configuration replaced.
func (b Blueprint) WithMemory(m Memory) Blueprint {
	next := b.Clone()
	next.Memory = m
	return next
}

// WithHumanInLoop returns a copy with the human-in-the-loop policy replaced.
func (b Blueprint) WithHumanInLoop(h HumanInLoop) Blueprint {
	next := b.Clone()
	next.HumanInLoop = HumanInLoop{
		Enabled:           h.Enabled,
		ReviewCheckpoints: slices.Clone(h.ReviewCheckpoints),
	}
	return next
}

// Set returns a copy with the named field replaced by value. Field names are
// listed in Fields. Enum fields are validated; booleans use strconv.ParseBool;
// checkpoints are a '|' separated list whose entries are trimmed and dropped
// when empty. Setting trigger.command_syntax to "" makes it absent.
func (b Blueprint) Set(field, value string) (Blueprint, error) {
	switch field {
	case FieldProjectName:
		return b.WithProjectName(value), nil
	case FieldSuccessCriteria:
		return b.WithSuccessCriteria(value), nil
	case FieldExecutiveSummary:
		return b.WithExecutiveSummary(value), nil
	case FieldUserPersona:
		return b.WithUserPersona(value), nil
	case FieldDeploymentNotes:
		return b.WithDeploymentNotes(value), nil
	case FieldTriggerType:
		t := TriggerType(value)
		if err := t.Validate(); err != nil {
			return Blueprint{}, err
		}
		trigger := b.Trigger
		trigger.Type = t
		return b.WithTrigger(trigger), nil
	case FieldTriggerEntryPoint:
		trigger := b.Trigger
		trigger.EntryPoint = value
		return b.WithTrigger(trigger), nil
	case FieldTriggerCommand:
		trigger := b.Trigger
		trigger.CommandSyntax = value
		return b.WithTrigger(trigger), nil
	case FieldMemoryStrategy:
		s := MemoryStrategy(value)
		if err := s.Validate(); err != nil {
			return Blueprint{}, err
		}
		memory := b.Memory
		memory.Strategy = s
		return b.WithMemory(memory), nil
	case FieldMemoryRetention:
		memory := b.Memory
		memory.Retention = value
		return b.WithMemory(memory), nil
	case FieldMemoryEmbedding:
		memory := b.Memory
		memory.EmbeddingModel = value
		return b.WithMemory(memory), nil
	case FieldHumanInLoop:
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return Blueprint{}, fmt.Errorf("invalid boolean for %s: %q", field, value)
		}
		h := b.HumanInLoop
		h.Enabled = enabled
		return b.WithHumanInLoop(h), nil
	case FieldCheckpoints:
		h := b.HumanInLoop
		h.ReviewCheckpoints = SplitCheckpoints(value)
		return b.WithHumanInLoop(h), nil
	default:
		return Blueprint{}, fmt.Errorf("unknown field: %q (valid: %s)", field, strings.Join(Fields, ", "))
	}
}

// SplitCheckpoints parses the '|' separated checkpoint list used by editors.
func SplitCheckpoints(value string) []string {
	checkpoints := []string{}
	for _, part := range strings.Split(value, "|") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			checkpoints = append(checkpoints, trimmed)
		}
	}
	return checkpoints
}

// AddAction returns a copy with the action appended. The action's ID is always
// assigned by gen.
func (b Blueprint) AddAction(gen IDGenerator, a Action) Blueprint {
	next := b.Clone()
	a.ID = gen.NewID()
	next.Actions = append(next.Actions, a)
	return next
}

// UpdateAction returns a copy with the action sharing a.ID replaced by a.
func (b Blueprint) UpdateAction(a Action) (Blueprint, error) {
	idx := b.actionIndex(a.ID)
	if idx < 0 {
		return Blueprint{}, &NotFoundError{Collection: "action", Key: a.ID}
	}
	next := b.Clone()
	next.Actions[idx] = a
	return next, nil
}

// RemoveAction returns a copy without the action identified by id.
func (b Blueprint) RemoveAction(id string) (Blueprint, error) {
	idx := b.actionIndex(id)
	if idx < 0 {
		return Blueprint{}, &NotFoundError{Collection: "action", Key: id}
	}
	next := b.Clone()
	next.Actions = slices.Delete(next.Actions, idx, idx+1)
	return next, nil
}

// Action returns the action identified by id.
func (b Blueprint) Action(id string) (Action, bool) {
	idx := b.actionIndex(id)
	if idx < 0 {
		return Action{}, false
	}
	return b.Actions[idx], true
}

func (b Blueprint) actionIndex(id string) int {
	return slices.IndexFunc(b.Actions, func(a Action) bool { return a.ID == id })
}

// AddKnowledge returns a copy with the knowledge source appended. The item's ID
// is always assigned by gen.
func (b Blueprint) AddKnowledge(gen IDGenerator, k KnowledgeItem) Blueprint {
	next := b.Clone()
	k.ID = gen.NewID()
	next.KnowledgeBase = append(next.KnowledgeBase, k)
	return next
}

// RemoveKnowledge returns a copy without the knowledge source identified by id.
func (b Blueprint) RemoveKnowledge(id string) (Blueprint, error) {
	idx := slices.IndexFunc(b.KnowledgeBase, func(k KnowledgeItem) bool { return k.ID == id })
	if idx < 0 {
		return Blueprint{}, &NotFoundError{Collection: "knowledge", Key: id}
	}
	next := b.Clone()
	next.KnowledgeBase = slices.Delete(next.KnowledgeBase, idx, idx+1)
	return next, nil
}

// AddTelemetry returns a copy with the telemetry mapping appended.
func (b Blueprint) AddTelemetry(e TelemetryEvent) Blueprint {
	next := b.Clone()
	next.Telemetry = append(next.Telemetry, e)
	return next
}

// RemoveTelemetry returns a copy without the telemetry mapping at index.
func (b Blueprint) RemoveTelemetry(index int) (Blueprint, error) {
	if index < 0 || index >= len(b.Telemetry) {
		return Blueprint{}, &NotFoundError{Collection: "telemetry", Key: strconv.Itoa(index)}
	}
	next := b.Clone()
	next.Telemetry = slices.Delete(next.Telemetry, index, index+1)
	return next, nil
}
