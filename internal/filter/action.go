package filter

import (
	"path/filepath"
	"strings"

	"github.com/dyluth/architect/pkg/blueprint"
)

// Criteria defines filtering criteria for actions.
// All filters are ANDed together - an action must match ALL criteria to pass.
type Criteria struct {
	TitleGlob    string // Glob pattern for the action title, empty = no filter
	Service      string // Case-insensitive match on service, empty = no filter
	CriticalOnly bool   // Only critical actions
}

// Matches returns true if the action matches all filter criteria.
// Empty/zero criteria values are treated as "match all" for that criterion.
func (c *Criteria) Matches(a blueprint.Action) bool {
	if c.CriticalOnly && !a.Critical {
		return false
	}

	// Title filtering - glob pattern matching
	if c.TitleGlob != "" {
		matched, err := filepath.Match(c.TitleGlob, a.Title)
		if err != nil || !matched {
			return false
		}
	}

	if c.Service != "" && !strings.EqualFold(a.Service, c.Service) {
		return false
	}

	return true
}

// HasFilters returns true if any filters are active.
func (c *Criteria) HasFilters() bool {
	return c.TitleGlob != "" || c.Service != "" || c.CriticalOnly
}

// Apply returns the matching actions in their original order.
func (c *Criteria) Apply(actions []blueprint.Action) []blueprint.Action {
	out := []blueprint.Action{}
	for _, a := range actions {
		if c.Matches(a) {
			out = append(out, a)
		}
	}
	return out
}
