package compiler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dyluth/architect/pkg/blueprint"
)

// Graph format marker written into every workflow envelope.
const (
	GraphFormat        = "architect.workflow"
	GraphFormatVersion = 1
)

// Engine-facing node types.
const (
	NodeTypeChatCommandTrigger = "chat-command-trigger"
	NodeTypeWebhookTrigger     = "http-webhook-trigger"
	NodeTypeCronTrigger        = "cron-trigger"
	NodeTypePollingTrigger     = "polling-trigger"
	NodeTypeManualTrigger      = "manual-trigger"
	NodeTypeAction             = "action"
	NodeTypeCriticalAction     = "critical-action"
	NodeTypeApprovalGate       = "approval-gate"
	NodeTypeMemory             = "memory-knowledge"
	NodeTypeTelemetry          = "telemetry-sink"
)

// CheckpointSeparator joins review checkpoints in the gate node's reviewCheckpoints parameter.
const CheckpointSeparator = " | "

// Canvas layout: every node sits on one lane, spaced left to right in chain order.
const (
	laneY   = 300
	originX = 250
	stepX   = 220
)

// WorkflowGraph is the importable node-and-connection document.
type WorkflowGraph struct {
	Name        string        `json:"name"`
	Meta        GraphMeta     `json:"meta"`
	Nodes       []Node        `json:"nodes"`
	Connections []Connection  `json:"connections"`
	Active      bool          `json:"active"`
	Settings    GraphSettings `json:"settings"`
}

// GraphMeta carries the format marker for forward compatibility.
type GraphMeta struct {
	Format  string `json:"format"`
	Version int    `json:"version"`
}

// GraphSettings mirrors the engine's workflow settings block.
type GraphSettings struct {
	ExecutionOrder string `json:"executionOrder"`
}

// Node is one step on the canvas. Parameters only contain fields that are present.
type Node struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Type        string         `json:"type"`
	TypeVersion int            `json:"typeVersion"`
	Position    [2]int         `json:"position"`
	Parameters  map[string]any `json:"parameters"`
}

// Connection links the main output of Source to the main input of Target.
type Connection struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

// TriggerNodeType maps a blueprint trigger type to the engine node type.
// Unknown values map to the manual trigger.
func TriggerNodeType(t blueprint.TriggerType) string {
	switch t {
	case blueprint.TriggerTelegramCommand:
		return NodeTypeChatCommandTrigger
	case blueprint.TriggerWebhook:
		return NodeTypeWebhookTrigger
	case blueprint.TriggerSchedule:
		return NodeTypeCronTrigger
	case blueprint.TriggerHTTPPolling:
		return NodeTypePollingTrigger
	default:
		return NodeTypeManualTrigger
	}
}

// BuildWorkflowGraph derives the workflow graph structure from the blueprint.
// Chain order: trigger, actions (gate inserted per gateIndex), memory, telemetry sinks.
func BuildWorkflowGraph(bp blueprint.Blueprint) WorkflowGraph {
	nodes := []Node{triggerNode(bp)}

	gateAt := gateIndex(bp)
	for i, a := range bp.Actions {
		if i == gateAt {
			nodes = append(nodes, gateNode(bp))
		}
		nodes = append(nodes, actionNode(i, a))
	}
	if gateAt == len(bp.Actions) {
		nodes = append(nodes, gateNode(bp))
	}

	nodes = append(nodes, memoryNode(bp))

	for i, g := range telemetryGroups(bp) {
		nodes = append(nodes, telemetryNode(i, g))
	}

	connections := make([]Connection, 0, len(nodes))
	for i := range nodes {
		nodes[i].Position = [2]int{originX + stepX*i, laneY}
		if i > 0 {
			connections = append(connections, Connection{
				Source: nodes[i-1].ID,
				Target: nodes[i].ID,
				Type:   "main",
			})
		}
	}

	return WorkflowGraph{
		Name:        bp.ProjectName,
		Meta:        GraphMeta{Format: GraphFormat, Version: GraphFormatVersion},
		Nodes:       nodes,
		Connections: connections,
		Active:      false,
		Settings:    GraphSettings{ExecutionOrder: "v1"},
	}
}

func triggerNode(bp blueprint.Blueprint) Node {
	params := map[string]any{
		"entryPoint":  bp.Trigger.EntryPoint,
		"triggerType": string(bp.Trigger.Type),
	}
	if bp.Trigger.CommandSyntax != "" {
		params["commandSyntax"] = bp.Trigger.CommandSyntax
	}
	return Node{
		ID:          "trigger",
		Name:        bp.Trigger.Type.Label(),
		Type:        TriggerNodeType(bp.Trigger.Type),
		TypeVersion: 1,
		Parameters:  params,
	}
}

func actionNode(i int, a blueprint.Action) Node {
	nodeType := NodeTypeAction
	if a.Critical {
		nodeType = NodeTypeCriticalAction
	}
	return Node{
		ID:          fmt.Sprintf("action-%d", i+1),
		Name:        a.Title,
		Type:        nodeType,
		TypeVersion: 1,
		Parameters: map[string]any{
			"actionId":    a.ID,
			"service":     a.Service,
			"description": a.Description,
			"critical":    a.Critical,
		},
	}
}

func gateNode(bp blueprint.Blueprint) Node {
	cps := checkpoints(bp)
	params := map[string]any{
		"reviewCheckpoints": strings.Join(cps, CheckpointSeparator),
		"checkpoints":       cps,
		"checkpointCount":   len(cps),
	}
	if idx := firstCriticalIndex(bp); idx >= 0 {
		params["guards"] = bp.Actions[idx].Title
	}
	return Node{
		ID:          "gate",
		Name:        "Human Approval",
		Type:        NodeTypeApprovalGate,
		TypeVersion: 1,
		Parameters:  params,
	}
}

func memoryNode(bp blueprint.Blueprint) Node {
	return Node{
		ID:          "memory",
		Name:        "Memory & Knowledge",
		Type:        NodeTypeMemory,
		TypeVersion: 1,
		Parameters: map[string]any{
			"strategy":         string(bp.Memory.Strategy),
			"retention":        bp.Memory.Retention,
			"embeddingModel":   bp.Memory.EmbeddingModel,
			"knowledgeSources": knowledgeTitles(bp),
		},
	}
}

func telemetryNode(i int, g telemetryGroup) Node {
	return Node{
		ID:          fmt.Sprintf("telemetry-%d", i+1),
		Name:        "Telemetry: " + g.Destination,
		Type:        NodeTypeTelemetry,
		TypeVersion: 1,
		Parameters: map[string]any{
			"destination": g.Destination,
			"events":      g.Captures,
		},
	}
}

// RenderWorkflowGraph encodes the workflow graph as indented JSON with a trailing
// newline. Map keys are sorted by the encoder, so equal blueprints give equal bytes.
func RenderWorkflowGraph(bp blueprint.Blueprint) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(BuildWorkflowGraph(bp)); err != nil {
		// Unreachable for the value types above; still emit valid JSON.
		msg, _ := json.Marshal(err.Error())
		return fmt.Sprintf("{\"error\": %s}\n", msg)
	}
	return buf.String()
}
