package kernel

import (
	"fmt"

	"github.com/archsim/smpl/report"
)

// Snapshot builds a report.Snapshot from the kernel's current public
// statistics, for callers that want a different Formatter than the one
// Report writes with.
func (k *Kernel) Snapshot() report.Snapshot {
	snap := report.Snapshot{
		ModelName: k.modelName,
		Time:      k.clock,
		Interval:  k.clock - k.intervalStart,
	}

	for i, f := range k.facilities {
		id := FacilityID(i)

		var releases int
		for j := range f.servers {
			releases += f.servers[j].releaseCount
		}

		u, _ := k.U(id)
		b, _ := k.B(id)
		lq, _ := k.Lq(id)

		snap.Facilities = append(snap.Facilities, report.FacilityStats{
			Name:            f.name,
			Servers:         len(f.servers),
			Util:            u,
			MeanBusyPeriod:  b,
			MeanQueueLength: lq,
			Releases:        releases,
			Preempts:        f.preemptCount,
			QueueExits:      f.queueExitCount,
		})
	}

	return snap
}

// Report writes a text report, in the reference smpl layout, to the
// kernel's current Sendto destination.
func (k *Kernel) Report() {
	fmt.Fprint(k.traceSink, report.TextFormatter{}.Format(k.Snapshot()))
}
