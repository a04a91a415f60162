package blueprint

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator assigns identifiers to new collection entries.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator generates random UUIDv4 identifiers.
type UUIDGenerator struct{}

// NewID returns a new random UUID string.
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// SequenceGenerator generates deterministic identifiers of the form prefix-N.
// N increases monotonically, so identifiers are never reused even after the
// entry that held one is removed. Safe for concurrent use.
type SequenceGenerator struct {
	Prefix string

	mu   sync.Mutex
	next int
}

// NewSequenceGenerator creates a generator whose first identifier is prefix-1.
func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{Prefix: prefix}
}

// NewID returns the next identifier in the sequence.
func (g *SequenceGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	if g.Prefix == "" {
		return fmt.Sprintf("%d", g.next)
	}
	return fmt.Sprintf("%s-%d", g.Prefix, g.next)
}
