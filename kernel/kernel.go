// Package kernel implements the core of a discrete-event simulation
// engine in the style of MacDougall's smpl: a time-ordered event-list
// scheduler, multi-server facilities with priority queueing and
// preemption, and the statistics accounting that is threaded through
// every facility state transition.
package kernel

import (
	"fmt"
	"io"
	"os"

	"github.com/archsim/smpl/rand"
)

// Kernel owns the clock, the event list, the facility registry, and the
// per-instance RNG stream (spec §3, §5). The zero value is not usable;
// construct one with New.
type Kernel struct {
	*HookableBase

	modelName string

	clock         float64
	intervalStart float64

	eventListHead *eventRecord
	pool          recordPool

	facilities []*facility

	lastDispatchedEventCode int
	lastDispatchedToken     Token

	randStream *rand.Stream

	traceOn   bool
	traceSink io.Writer
}

// New creates a Kernel. Multiple independent Kernels are safe to use
// concurrently, one goroutine per Kernel, since none of their state is
// shared (spec §5).
func New() *Kernel {
	return &Kernel{
		HookableBase: NewHookableBase(),
		randStream:   rand.New(),
		traceSink:    os.Stdout,
	}
}

// Init resets the clock, empties the event list and facility registry,
// and advances to the stream one past whatever stream is currently
// selected on Rand(), wrapping from 15 back to 1 (spec §3 Lifecycle, §6,
// §8-S6). The rotation is relative to Rand()'s own current stream rather
// than an Init-private counter, so a manual Rand().SetStream(n) call
// between two Init calls is honored by the next one, exactly as spec.md's
// S6 worked example requires.
func (k *Kernel) Init(modelName string) error {
	if modelName == "" {
		return invalidArgument("Init", "model name must not be empty")
	}

	k.modelName = modelName
	k.clock = 0
	k.intervalStart = 0
	k.eventListHead = nil
	k.pool = recordPool{}
	k.facilities = nil
	k.lastDispatchedEventCode = 0
	k.lastDispatchedToken = nil

	next := k.randStream.CurrentStream()%15 + 1
	// CurrentStream() is always in 1..15 by construction, so next is
	// always in 1..15 and SetStream cannot fail here.
	_ = k.randStream.SetStream(next)

	return nil
}

// Reset zeros every statistics accumulator and sets the measurement
// interval to start at the current clock, leaving the event list and
// every facility's reservations untouched (spec §3 Lifecycle).
func (k *Kernel) Reset() {
	for _, f := range k.facilities {
		f.queueExitCount = 0
		f.preemptCount = 0
		f.totalQueueingTime = 0
		f.lastChangeTime = k.clock
		for i := range f.servers {
			f.servers[i].releaseCount = 0
			f.servers[i].totalBusyTime = 0
		}
	}
	k.intervalStart = k.clock
}

// Mname returns the model name passed to Init.
func (k *Kernel) Mname() string {
	return k.modelName
}

// Rand returns the kernel's RNG stream.
func (k *Kernel) Rand() *rand.Stream {
	return k.randStream
}

// IntervalStart returns the clock value at which the current measurement
// interval began (set by Init and Reset).
func (k *Kernel) IntervalStart() float64 {
	return k.intervalStart
}

// FacilityCount returns the number of facilities registered so far, in
// creation order; valid FacilityIDs are 0..FacilityCount()-1.
func (k *Kernel) FacilityCount() int {
	return len(k.facilities)
}

// Trace turns the kernel's built-in console trace on or off.
func (k *Kernel) Trace(on bool) {
	k.traceOn = on
}

// TraceOn reports whether the built-in console trace is on.
func (k *Kernel) TraceOn() bool {
	return k.traceOn
}

// Sendto redirects the destination of the built-in console trace and
// report output.
func (k *Kernel) Sendto(dest io.Writer) error {
	if dest == nil {
		return invalidArgument("Sendto", "destination writer must not be nil")
	}
	k.traceSink = dest
	return nil
}

// SendtoWriter returns the current trace/report destination.
func (k *Kernel) SendtoWriter() io.Writer {
	return k.traceSink
}

// trace writes a formatted line to the trace sink if tracing is on, using
// the literal "At time %12.3f -- %s\n" format from spec §6.
func (k *Kernel) trace(format string, args ...interface{}) {
	if !k.traceOn {
		return
	}
	fmt.Fprintf(k.traceSink, "At time %12.3f -- %s\n", k.clock, fmt.Sprintf(format, args...))
}
