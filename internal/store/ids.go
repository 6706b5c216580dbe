package store

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// IDGenerator produces the id of the next record. count is the number of
// records currently held; it is always called with the store lock held.
type IDGenerator interface {
	NextID(count int) string
}

// IDGeneratorFunc adapts a plain function to IDGenerator.
type IDGeneratorFunc func(count int) string

func (f IDGeneratorFunc) NextID(count int) string { return f(count) }

// Sequential returns PREFIX-NNN using count+1, zero padded to three digits.
// After a delete the next id can repeat an existing one; UUID avoids that.
func Sequential(prefix string) IDGenerator {
	return IDGeneratorFunc(func(count int) string {
		return fmt.Sprintf("%s-%03d", prefix, count+1)
	})
}

// Timestamp returns the current Unix time in milliseconds, bumped so that ids
// from one generator are strictly increasing even within the same millisecond.
func Timestamp() IDGenerator {
	return &timestampGen{now: time.Now}
}

type timestampGen struct {
	now  func() time.Time
	last int64
}

func (g *timestampGen) NextID(int) string {
	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return strconv.FormatInt(ms, 10)
}

// UUID returns random v4 identifiers, optionally prefixed.
func UUID(prefix string) IDGenerator {
	return IDGeneratorFunc(func(int) string {
		if prefix == "" {
			return uuid.NewString()
		}
		return prefix + "-" + uuid.NewString()
	})
}
