package compiler

import "github.com/dyluth/architect/pkg/blueprint"

// Facts shared by the renderers. Each renderer calls these helpers on the same
// blueprint snapshot instead of reading another renderer's output.

func actionTitles(bp blueprint.Blueprint) []string {
	titles := make([]string, 0, len(bp.Actions))
	for _, a := range bp.Actions {
		titles = append(titles, a.Title)
	}
	return titles
}

func criticalTitles(bp blueprint.Blueprint) []string {
	titles := []string{}
	for _, a := range bp.Actions {
		if a.Critical {
			titles = append(titles, a.Title)
		}
	}
	return titles
}

// firstCriticalIndex returns the index of the first critical action, or -1.
func firstCriticalIndex(bp blueprint.Blueprint) int {
	for i, a := range bp.Actions {
		if a.Critical {
			return i
		}
	}
	return -1
}

// gateIndex returns the number of actions that precede the approval gate, or -1
// when human review is disabled. The gate follows the first critical action;
// without one it follows the last action.
func gateIndex(bp blueprint.Blueprint) int {
	if !bp.HumanInLoop.Enabled {
		return -1
	}
	if idx := firstCriticalIndex(bp); idx >= 0 {
		return idx + 1
	}
	return len(bp.Actions)
}

func knowledgeTitles(bp blueprint.Blueprint) []string {
	titles := make([]string, 0, len(bp.KnowledgeBase))
	for _, k := range bp.KnowledgeBase {
		titles = append(titles, k.Title)
	}
	return titles
}

// telemetryGroup is the set of captures shipped to one destination.
type telemetryGroup struct {
	Destination string
	Captures    []string
}

// telemetryGroups groups captures by destination in first-seen order.
// Destinations match case-sensitively and exactly; duplicate captures are kept.
func telemetryGroups(bp blueprint.Blueprint) []telemetryGroup {
	groups := []telemetryGroup{}
	index := make(map[string]int)
	for _, e := range bp.Telemetry {
		i, ok := index[e.Destination]
		if !ok {
			i = len(groups)
			index[e.Destination] = i
			groups = append(groups, telemetryGroup{Destination: e.Destination})
		}
		groups[i].Captures = append(groups[i].Captures, e.Capture)
	}
	return groups
}

func checkpoints(bp blueprint.Blueprint) []string {
	if bp.HumanInLoop.ReviewCheckpoints == nil {
		return []string{}
	}
	return bp.HumanInLoop.ReviewCheckpoints
}
