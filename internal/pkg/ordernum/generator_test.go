package ordernum_test

import (
	"strings"
	"testing"
	"time"

	"marketplace/internal/pkg/ordernum"

	"github.com/stretchr/testify/assert"
)

func TestGenerator_Next(t *testing.T) {
	instant := time.UnixMilli(1717243200123)

	t.Run("concatenates prefix, millis, and padded suffix", func(t *testing.T) {
		g := ordernum.NewGenerator("ORD-",
			ordernum.WithClock(func() time.Time { return instant }),
			ordernum.WithRand(func(int) int { return 42 }),
		)

		assert.Equal(t, "ORD-17172432001230042", g.Next())
	})

	t.Run("suffix is zero-padded to four digits", func(t *testing.T) {
		g := ordernum.NewGenerator("ORD-",
			ordernum.WithClock(func() time.Time { return instant }),
			ordernum.WithRand(func(int) int { return 7 }),
		)

		assert.True(t, strings.HasSuffix(g.Next(), "0007"))
	})

	t.Run("empty prefix falls back to default", func(t *testing.T) {
		g := ordernum.NewGenerator("")

		assert.True(t, strings.HasPrefix(g.Next(), ordernum.DefaultPrefix))
	})

	t.Run("same millisecond and same suffix collide", func(t *testing.T) {
		// Documents why callers must retry on a uniqueness violation.
		g := ordernum.NewGenerator("ORD-",
			ordernum.WithClock(func() time.Time { return instant }),
			ordernum.WithRand(func(int) int { return 1234 }),
		)

		assert.Equal(t, g.Next(), g.Next())
	})

	t.Run("different instants never collide", func(t *testing.T) {
		calls := 0
		g := ordernum.NewGenerator("ORD-",
			ordernum.WithClock(func() time.Time {
				calls++
				return instant.Add(time.Duration(calls) * time.Millisecond)
			}),
			ordernum.WithRand(func(int) int { return 0 }),
		)

		assert.NotEqual(t, g.Next(), g.Next())
	})
}
