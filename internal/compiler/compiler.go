// Package compiler turns a blueprint into its three artefacts: an importable
// workflow graph (JSON), a technical document (markdown) and an operator runbook
// (plain text).
//
// Compile is pure and total. It performs no I/O, keeps no state and never
// modifies its input, so concurrent calls are safe. Each artefact is rendered by
// an independent function over the same blueprint snapshot; facts that appear in
// more than one artefact (action titles, critical steps, checkpoints) come from
// shared derivation helpers, never from another artefact's text.
package compiler

import "github.com/dyluth/architect/pkg/blueprint"

// Outputs holds the three compiled artefacts.
type Outputs struct {
	WorkflowGraph string `json:"workflowGraph"`
	TechnicalDoc  string `json:"technicalDoc"`
	Runbook       string `json:"runbook"`
}

// Compile renders all three artefacts from bp.
func Compile(bp blueprint.Blueprint) Outputs {
	snapshot := bp.Clone()
	return Outputs{
		WorkflowGraph: RenderWorkflowGraph(snapshot),
		TechnicalDoc:  RenderTechnicalDoc(snapshot),
		Runbook:       RenderRunbook(snapshot),
	}
}
