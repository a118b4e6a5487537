// Package tracing turns the kernel's Hook callbacks into a durable trace:
// a flat sequence of Records that can be printed, appended to a CSV file,
// or loaded into SQLite for later querying.
package tracing

import (
	"fmt"

	"github.com/archsim/smpl/kernel"
)

// Record is one hook firing, flattened into a shape that every sink in
// this package knows how to write. FacilityName is empty for an
// event-list hook (Schedule, Cause, Cancel, Unschedule); Token and Detail
// are formatted with %v since a Token may be any comparable value (§9
// "Polymorphic tokens").
type Record struct {
	ID           string
	Time         float64
	Position     string
	FacilityID   int
	FacilityName string
	Token        string
	Detail       string
}

// newRecord flattens a kernel.HookCtx into a Record, assigning it an ID
// from gen. It recognizes the two Item shapes the kernel ever hands a
// hook (kernel.ScheduleInfo and kernel.FacilityInfo); anything else is
// left with a blank facility section.
func newRecord(gen kernel.IDGenerator, ctx kernel.HookCtx) Record {
	r := Record{
		ID:       gen.Generate(),
		Position: ctx.Pos.Name,
	}

	if tk, ok := ctx.Domain.(timeKeeper); ok {
		r.Time = tk.Time()
	}

	switch item := ctx.Item.(type) {
	case kernel.ScheduleInfo:
		r.Token = fmt.Sprintf("%v", item.Token)
	case kernel.FacilityInfo:
		r.FacilityID = int(item.ID)
		r.FacilityName = item.Name
	}

	if ctx.Detail != nil {
		r.Token = fmt.Sprintf("%v", detailToken(ctx.Detail))
		r.Detail = fmt.Sprintf("%+v", ctx.Detail)
	}

	return r
}

// timeKeeper is satisfied by *kernel.Kernel. Matching it structurally,
// rather than importing the concrete type as ctx.Domain's static type,
// keeps this package usable against anything Hookable that also knows
// its own clock.
type timeKeeper interface {
	Time() float64
}

func detailToken(detail interface{}) interface{} {
	switch d := detail.(type) {
	case kernel.QueueRecordInfo:
		return d.Token
	default:
		return d
	}
}
