// Package ordernum generates human-readable order numbers.
//
// A number is the concatenation of a fixed prefix, the creation instant in
// milliseconds, and a zero-padded random suffix. This is probabilistically
// but not guaranteed unique: two generations in the same millisecond can
// draw the same suffix. The persistence layer enforces a uniqueness
// constraint on the column and callers retry generate-and-insert a bounded
// number of times before surfacing a duplicate-identifier error.
package ordernum

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// DefaultPrefix is the prefix used for all marketplace order numbers.
const DefaultPrefix = "ORD-"

// suffixSpace bounds the random suffix; suffixes are rendered zero-padded
// to four digits.
const suffixSpace = 10000

// Generator produces order numbers. The zero value is not usable; create
// instances via NewGenerator.
type Generator struct {
	prefix string
	now    func() time.Time
	intN   func(n int) int
}

// Option customizes a Generator.
type Option func(*Generator)

// WithClock overrides the clock, letting tests pin the timestamp component.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithRand overrides the random source, letting tests pin the suffix.
func WithRand(intN func(n int) int) Option {
	return func(g *Generator) {
		g.intN = intN
	}
}

// NewGenerator creates a Generator with the given prefix.
// An empty prefix falls back to DefaultPrefix.
func NewGenerator(prefix string, opts ...Option) *Generator {
	if prefix == "" {
		prefix = DefaultPrefix
	}

	g := &Generator{
		prefix: prefix,
		now:    time.Now,
		intN:   rand.IntN,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Next produces the next order number. Called once per order creation,
// before persistence.
func (g *Generator) Next() string {
	return fmt.Sprintf("%s%d%04d", g.prefix, g.now().UnixMilli(), g.intN(suffixSpace))
}
