// Package blueprint provides the type-safe Go definition of an automation
// blueprint: the structured description of a workflow concept (trigger, ordered
// actions, memory and knowledge sources, telemetry, human checkpoints and
// deployment notes) that the architect compiler turns into a workflow graph, a
// technical document and an operator runbook.
//
// # Value semantics
//
// A Blueprint is treated as an immutable value. Every edit produces a new
// Blueprint through a copy-with-override method; nested slices are copied so an
// edit is never visible through an older value:
//
//	bp := blueprint.Default()
//	next := bp.WithProjectName("Growth Ops Copilot")
//	next = next.AddAction(blueprint.UUIDGenerator{}, blueprint.NewAction())
//
// # Identifiers
//
// Actions and knowledge sources carry identifiers that are unique within their
// own collection. Identifiers are assigned once when an entry is created, through
// an injected IDGenerator, and are never reused after removal. Tests substitute a
// SequenceGenerator for deterministic IDs.
//
// # Serialization
//
// Blueprints are stored and exported as indented JSON (Marshal). Parse accepts
// JSON or YAML and validates the result.
package blueprint
