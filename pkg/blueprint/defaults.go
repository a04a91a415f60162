package blueprint

// Default returns the canonical blueprint used when no stored blueprint exists
// and when an operator resets the workspace. Identifiers are fixed so the
// default compiles to the same artefacts everywhere.
func Default() Blueprint {
	return Blueprint{
		ProjectName:      "Growth Ops Copilot",
		SuccessCriteria:  "Launch production-ready workflows in under 5 minutes",
		ExecutiveSummary: "A Telegram-native assistant that interviews operators, drafts n8n automations and hands off documented, reviewable workflows.",
		UserPersona:      "Growth and operations leads who describe automations in chat and need auditable hand-offs.",
		Trigger: Trigger{
			Type:          TriggerTelegramCommand,
			EntryPoint:    "Telegram Bot API",
			CommandSyntax: DefaultCommandSyntax,
		},
		Actions: []Action{
			{
				ID:          "action-intake",
				Title:       "Capture Request",
				Service:     "Telegram Trigger",
				Description: "Parse the operator command and collect goal, constraints and deadlines.",
				Critical:    false,
			},
			{
				ID:          "action-enrich",
				Title:       "Retrieve Context",
				Service:     "n8n Vector Store",
				Description: "Query the knowledge base for playbooks, compliance rules and prior workflows.",
				Critical:    false,
			},
			{
				ID:          "action-draft",
				Title:       "Draft Workflow",
				Service:     "OpenAI Chat Model",
				Description: "Generate the workflow JSON, documentation and runbook from the blueprint.",
				Critical:    false,
			},
			{
				ID:          "action-publish",
				Title:       "Publish to n8n",
				Service:     "n8n HTTP Request",
				Description: "Import the approved workflow through the n8n REST API and notify the operator.",
				Critical:    true,
			},
		},
		Memory: Memory{
			Strategy:       MemoryVectorDB,
			Retention:      "Rolling 30 days",
			EmbeddingModel: "text-embedding-3-large",
		},
		KnowledgeBase: []KnowledgeItem{
			{
				ID:            "kb-playbooks",
				Title:         "Automation Playbooks",
				SourceType:    SourceNotion,
				AccessDetails: "Notion integration token scoped to the Ops workspace",
			},
			{
				ID:            "kb-compliance",
				Title:         "Compliance Checklist",
				SourceType:    SourceGDoc,
				AccessDetails: "Shared Google Doc, read-only service account",
			},
		},
		Telemetry: []TelemetryEvent{
			{Capture: "workflow.drafted", Destination: "BigQuery"},
			{Capture: "workflow.published", Destination: "BigQuery"},
			{Capture: "workflow.failed", Destination: "Slack #ops-alerts"},
		},
		HumanInLoop: HumanInLoop{
			Enabled:           true,
			ReviewCheckpoints: []string{"Compliance QA", "Ops Lead Sign-off"},
		},
		DeploymentNotes: "Rotate the Telegram bot token every 90 days. Store n8n API keys in the credential vault and roll out to one team before company-wide launch.",
	}
}

// NewAction returns a draft action with the editor's placeholder values.
// The identifier is assigned by AddAction.
func NewAction() Action {
	return Action{
		Title:       "Untitled Node",
		Service:     "n8n Function",
		Description: "Describe what this node should accomplish",
		Critical:    false,
	}
}

// NewKnowledgeItem returns a draft knowledge source with placeholder values.
// The identifier is assigned by AddKnowledge.
func NewKnowledgeItem() KnowledgeItem {
	return KnowledgeItem{
		Title:         "Untitled Source",
		SourceType:    SourceCustom,
		AccessDetails: "Describe how to fetch this data",
	}
}

// NewTelemetryEvent returns a draft telemetry mapping.
func NewTelemetryEvent() TelemetryEvent {
	return TelemetryEvent{
		Capture:     "workflow.event",
		Destination: "Data Warehouse",
	}
}
