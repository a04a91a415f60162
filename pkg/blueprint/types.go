package blueprint

import (
	"errors"
	"fmt"
)

// Blueprint describes one automation concept. It is the sole input of the compiler.
type Blueprint struct {
	ProjectName      string           `json:"projectName" yaml:"projectName"`
	SuccessCriteria  string           `json:"successCriteria" yaml:"successCriteria"`
	ExecutiveSummary string           `json:"executiveSummary" yaml:"executiveSummary"`
	UserPersona      string           `json:"userPersona" yaml:"userPersona"`
	Trigger          Trigger          `json:"trigger" yaml:"trigger"`
	Actions          []Action         `json:"actions" yaml:"actions"`
	Memory           Memory           `json:"memory" yaml:"memory"`
	KnowledgeBase    []KnowledgeItem  `json:"knowledgeBase" yaml:"knowledgeBase"`
	Telemetry        []TelemetryEvent `json:"telemetry" yaml:"telemetry"`
	HumanInLoop      HumanInLoop      `json:"humanInLoop" yaml:"humanInLoop"`
	DeploymentNotes  string           `json:"deploymentNotes" yaml:"deploymentNotes"`
}

// Trigger defines how the automation wakes up.
// An empty CommandSyntax means the syntax is absent.
type Trigger struct {
	Type          TriggerType `json:"type" yaml:"type"`
	EntryPoint    string      `json:"entryPoint" yaml:"entryPoint"`
	CommandSyntax string      `json:"commandSyntax,omitempty" yaml:"commandSyntax,omitempty"`
}

// Action is one step of the automation path. Order in Blueprint.Actions is the
// execution order.
type Action struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Service     string `json:"service" yaml:"service"`
	Description string `json:"description" yaml:"description"`
	Critical    bool   `json:"critical" yaml:"critical"`
}

// Memory describes the persistence tier the assistant uses for context.
type Memory struct {
	Strategy       MemoryStrategy `json:"strategy" yaml:"strategy"`
	Retention      string         `json:"retention" yaml:"retention"`
	EmbeddingModel string         `json:"embeddingModel" yaml:"embeddingModel"`
}

// KnowledgeItem is a document, table or API that informs the assistant.
type KnowledgeItem struct {
	ID            string     `json:"id" yaml:"id"`
	Title         string     `json:"title" yaml:"title"`
	SourceType    SourceType `json:"sourceType" yaml:"sourceType"`
	AccessDetails string     `json:"accessDetails" yaml:"accessDetails"`
}

// TelemetryEvent maps a captured event to the destination it is shipped to.
// Duplicates are allowed.
type TelemetryEvent struct {
	Capture     string `json:"capture" yaml:"capture"`
	Destination string `json:"destination" yaml:"destination"`
}

// HumanInLoop configures human approval of critical steps.
type HumanInLoop struct {
	Enabled           bool     `json:"enabled" yaml:"enabled"`
	ReviewCheckpoints []string `json:"reviewCheckpoints" yaml:"reviewCheckpoints"`
}

// TriggerType selects the entry mechanism of the automation.
type TriggerType string

const (
	// TriggerTelegramCommand wakes the workflow on a chat command such as /architect
	TriggerTelegramCommand TriggerType = "telegram_command"

	// TriggerWebhook wakes the workflow on an inbound HTTP call
	TriggerWebhook TriggerType = "webhook"

	// TriggerSchedule wakes the workflow on a cron schedule
	TriggerSchedule TriggerType = "schedule"

	// TriggerHTTPPolling wakes the workflow when a polled endpoint changes
	TriggerHTTPPolling TriggerType = "http_polling"

	// TriggerManual is started by an operator
	TriggerManual TriggerType = "manual"
)

// DefaultCommandSyntax is displayed for chat command triggers without an explicit syntax.
const DefaultCommandSyntax = "/architect"

// TriggerTypes lists every trigger type in form order.
var TriggerTypes = []TriggerType{
	TriggerTelegramCommand,
	TriggerWebhook,
	TriggerSchedule,
	TriggerHTTPPolling,
	TriggerManual,
}

// Validate checks if the TriggerType is a valid enum value.
func (t TriggerType) Validate() error {
	switch t {
	case TriggerTelegramCommand, TriggerWebhook, TriggerSchedule, TriggerHTTPPolling, TriggerManual:
		return nil
	default:
		return fmt.Errorf("unknown trigger type: %q", t)
	}
}

// Label returns the human-readable name of the trigger type.
// Unknown values are returned verbatim.
func (t TriggerType) Label() string {
	switch t {
	case TriggerTelegramCommand:
		return "Telegram Command"
	case TriggerWebhook:
		return "Webhook"
	case TriggerSchedule:
		return "Scheduled"
	case TriggerHTTPPolling:
		return "HTTP Polling"
	case TriggerManual:
		return "Manual"
	default:
		return string(t)
	}
}

// DisplayCommand returns the command syntax shown to operators.
// Chat command triggers fall back to DefaultCommandSyntax; other trigger types
// only show a syntax that was explicitly set.
func (t Trigger) DisplayCommand() string {
	if t.CommandSyntax != "" {
		return t.CommandSyntax
	}
	if t.Type == TriggerTelegramCommand {
		return DefaultCommandSyntax
	}
	return ""
}

// MemoryStrategy selects the memory backend.
type MemoryStrategy string

const (
	MemoryVectorDB MemoryStrategy = "vector_db"
	MemoryPostgres MemoryStrategy = "postgres"
	MemoryJSONFile MemoryStrategy = "json_file"
	MemoryRedis    MemoryStrategy = "redis"
)

// MemoryStrategies lists every memory strategy in form order.
var MemoryStrategies = []MemoryStrategy{MemoryVectorDB, MemoryPostgres, MemoryJSONFile, MemoryRedis}

// Validate checks if the MemoryStrategy is a valid enum value.
func (m MemoryStrategy) Validate() error {
	switch m {
	case MemoryVectorDB, MemoryPostgres, MemoryJSONFile, MemoryRedis:
		return nil
	default:
		return fmt.Errorf("unknown memory strategy: %q", m)
	}
}

// Label returns the human-readable name of the memory strategy.
func (m MemoryStrategy) Label() string {
	switch m {
	case MemoryVectorDB:
		return "Vector DB"
	case MemoryPostgres:
		return "Postgres"
	case MemoryJSONFile:
		return "JSON File"
	case MemoryRedis:
		return "Redis Cache"
	default:
		return string(m)
	}
}

// SourceType identifies where a knowledge source lives.
type SourceType string

const (
	SourceNotion   SourceType = "notion"
	SourceGDoc     SourceType = "gdoc"
	SourceAirtable SourceType = "airtable"
	SourceCustom   SourceType = "custom"
)

// SourceTypes lists every knowledge source type in form order.
var SourceTypes = []SourceType{SourceNotion, SourceGDoc, SourceAirtable, SourceCustom}

// Validate checks if the SourceType is a valid enum value.
func (s SourceType) Validate() error {
	switch s {
	case SourceNotion, SourceGDoc, SourceAirtable, SourceCustom:
		return nil
	default:
		return fmt.Errorf("unknown knowledge source type: %q", s)
	}
}

// Label returns the human-readable name of the source type.
func (s SourceType) Label() string {
	switch s {
	case SourceNotion:
		return "Notion"
	case SourceGDoc:
		return "Google Doc"
	case SourceAirtable:
		return "Airtable"
	case SourceCustom:
		return "Custom"
	default:
		return string(s)
	}
}

// ValidationError reports a blueprint that breaks a structural invariant.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// IsValidationError returns true if the error is, or wraps, a ValidationError.
func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// Validate checks the structural invariants of the blueprint: known enum values
// and non-empty identifiers unique within their own collection. Free-text fields
// may be empty and collections may be empty.
func (b Blueprint) Validate() error {
	if err := b.Trigger.Type.Validate(); err != nil {
		return &ValidationError{Field: "trigger.type", Reason: err.Error()}
	}

	if err := b.Memory.Strategy.Validate(); err != nil {
		return &ValidationError{Field: "memory.strategy", Reason: err.Error()}
	}

	seenActions := make(map[string]int, len(b.Actions))
	for i, a := range b.Actions {
		if a.ID == "" {
			return &ValidationError{Field: fmt.Sprintf("actions[%d].id", i), Reason: "must not be empty"}
		}
		if prev, exists := seenActions[a.ID]; exists {
			return &ValidationError{
				Field:  fmt.Sprintf("actions[%d].id", i),
				Reason: fmt.Sprintf("duplicate id %q (also used by actions[%d])", a.ID, prev),
			}
		}
		seenActions[a.ID] = i
	}

	seenKnowledge := make(map[string]int, len(b.KnowledgeBase))
	for i, k := range b.KnowledgeBase {
		if k.ID == "" {
			return &ValidationError{Field: fmt.Sprintf("knowledgeBase[%d].id", i), Reason: "must not be empty"}
		}
		if prev, exists := seenKnowledge[k.ID]; exists {
			return &ValidationError{
				Field:  fmt.Sprintf("knowledgeBase[%d].id", i),
				Reason: fmt.Sprintf("duplicate id %q (also used by knowledgeBase[%d])", k.ID, prev),
			}
		}
		seenKnowledge[k.ID] = i
		if err := k.SourceType.Validate(); err != nil {
			return &ValidationError{Field: fmt.Sprintf("knowledgeBase[%d].sourceType", i), Reason: err.Error()}
		}
	}

	return nil
}
