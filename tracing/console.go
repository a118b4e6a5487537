package tracing

import (
	"fmt"
	"io"

	"github.com/archsim/smpl/kernel"
)

// ConsoleTracer is a kernel.Hook that prints one line per hook firing,
// in the same "At time %12.3f -- ..." register the kernel's own Trace
// output uses, so a model that turns both on gets a consistent log.
type ConsoleTracer struct {
	Dest io.Writer
	ids  kernel.IDGenerator
}

// NewConsoleTracer returns a ConsoleTracer writing to dest.
func NewConsoleTracer(dest io.Writer) *ConsoleTracer {
	return &ConsoleTracer{Dest: dest, ids: kernel.NewSequentialIDGenerator()}
}

// Func implements kernel.Hook.
func (c *ConsoleTracer) Func(ctx kernel.HookCtx) {
	r := newRecord(c.ids, ctx)

	if r.FacilityName != "" {
		fmt.Fprintf(c.Dest, "At time %12.3f -- [%s] %s FACILITY %s: %s\n",
			r.Time, r.ID, r.Position, r.FacilityName, r.Detail)
		return
	}

	fmt.Fprintf(c.Dest, "At time %12.3f -- [%s] %s TOKEN %s\n",
		r.Time, r.ID, r.Position, r.Token)
}
