// Package id generates the identifiers attached to save runs
package id

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// ShortLength is the number of uuid characters kept in a run ID
const ShortLength = 8

// Generator generates unique IDs
type Generator interface {
	Generate() string
}

type shortUUIDGenerator struct{}

// NewShortUUIDGenerator returns IDs made of the first ShortLength characters
// of a random uuid. Short enough to grep for in logs.
func NewShortUUIDGenerator() Generator {
	return shortUUIDGenerator{}
}

func (shortUUIDGenerator) Generate() string {
	return uuid.NewString()[:ShortLength]
}

// sequentialGenerator generates sequential numeric IDs
type sequentialGenerator struct {
	prefix  string
	counter uint64
}

// NewSequentialGenerator creates a generator of predictable IDs, for tests
func NewSequentialGenerator(prefix string) Generator {
	return &sequentialGenerator{
		prefix: prefix,
	}
}

// Generate returns the next ID in sequence
func (g *sequentialGenerator) Generate() string {
	count := atomic.AddUint64(&g.counter, 1)
	if g.prefix != "" {
		return fmt.Sprintf("%s-%d", g.prefix, count)
	}
	return fmt.Sprintf("%d", count)
}
