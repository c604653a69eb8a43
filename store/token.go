package store

import (
	"sync"

	"github.com/google/uuid"
)

// TokenGenerator produces tree tokens for root nodes. Tokens only appear in
// error diagnostics; they carry no addressing semantics.
type TokenGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 tree tokens, so tokens in
// logs sort by root creation time.
//
// Stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate returns a new hyphenated UUIDv7 string.
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator returns predetermined tokens in order, enabling
// deterministic error output in tests and golden snapshots.
type FixedGenerator struct {
	mu     sync.Mutex
	tokens []string
	idx    int
}

// NewFixedGenerator creates a generator that returns tokens in order.
func NewFixedGenerator(tokens ...string) *FixedGenerator {
	return &FixedGenerator{tokens: tokens}
}

// Generate returns the next predetermined token. Panics when all tokens
// have been consumed, failing fast on test misconfiguration.
func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.tokens) {
		panic("FixedGenerator: all tokens exhausted")
	}
	token := g.tokens[g.idx]
	g.idx++
	return token
}
