package store

import "fmt"

// Redis key pattern helpers
//
// Keys and Pub/Sub channels are namespaced by workspace so several blueprints
// can share one Redis server.
//
// Key pattern: architect:{workspace}:blueprint
// Channel pattern: architect:{workspace}:blueprint_events

// Hash fields of the blueprint slot.
const (
	fieldBlueprint   = "blueprint"
	fieldRevision    = "revision"
	fieldUpdatedAtMs = "updated_at_ms"
)

// BlueprintKey returns the Redis key of the blueprint slot.
// Pattern: architect:{workspace}:blueprint
func BlueprintKey(workspace string) string {
	return fmt.Sprintf("architect:%s:blueprint", workspace)
}

// BlueprintEventsChannel returns the Pub/Sub channel that announces new revisions.
// Pattern: architect:{workspace}:blueprint_events
func BlueprintEventsChannel(workspace string) string {
	return fmt.Sprintf("architect:%s:blueprint_events", workspace)
}
