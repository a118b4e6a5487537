package kernel

import (
	"strconv"
	"sync/atomic"

	"github.com/rs/xid"
)

// IDGenerator produces identifiers used to correlate trace records with the
// EventRecord that caused them. It has no bearing on simulation semantics:
// two kernels with different ID generators produce the same sequence of
// dispatched events.
type IDGenerator interface {
	Generate() string
}

// NewSequentialIDGenerator returns an IDGenerator that produces small,
// deterministic, human-readable IDs. Useful for golden-file trace tests.
func NewSequentialIDGenerator() IDGenerator {
	return &sequentialIDGenerator{}
}

// NewXIDGenerator returns an IDGenerator backed by github.com/rs/xid,
// suitable for correlating trace records across multiple kernel runs or
// when persisting to the tracing package's SQLite sink.
func NewXIDGenerator() IDGenerator {
	return &xidGenerator{}
}

type sequentialIDGenerator struct {
	next uint64
}

func (g *sequentialIDGenerator) Generate() string {
	n := atomic.AddUint64(&g.next, 1)
	return strconv.FormatUint(n, 10)
}

type xidGenerator struct{}

func (xidGenerator) Generate() string {
	return xid.New().String()
}
