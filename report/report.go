// Package report formats the statistics a kernel.Kernel exposes. It is
// the one remaining piece of the "external collaborator" role spec.md
// assigns to the report formatter: the core only needs to hand it a
// Snapshot built from its own public accessors.
package report

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FacilityStats is the subset of a single facility's statistics that a
// report prints (spec §4.5, §6).
type FacilityStats struct {
	Name            string
	Servers         int
	Util            float64
	MeanBusyPeriod  float64
	MeanQueueLength float64
	Releases        int
	Preempts        int
	QueueExits      int
}

// displayName renders "name" for a single-server facility and
// "name[N]" for a multi-server one, matching the reference report.
func (f FacilityStats) displayName() string {
	if f.Servers == 1 {
		return f.Name
	}
	return fmt.Sprintf("%s[%d]", f.Name, f.Servers)
}

// Snapshot is everything a Formatter needs to render one report.
type Snapshot struct {
	ModelName  string
	Time       float64
	Interval   float64
	Facilities []FacilityStats
}

// Formatter renders a Snapshot as text.
type Formatter interface {
	Format(s Snapshot) string
}

// TextFormatter reproduces the literal column layout of the reference
// smpl report.
type TextFormatter struct{}

// Format renders s in the reference smpl report layout.
func (TextFormatter) Format(s Snapshot) string {
	if len(s.Facilities) == 0 {
		return "no facilities defined:  report abandoned\n"
	}

	var b strings.Builder

	b.WriteString("\nsmpl SIMULATION REPORT\n\n\n")
	fmt.Fprintf(&b, "MODEL %-56sTIME: %11.3f\n", s.ModelName, s.Time)
	fmt.Fprintf(&b, "%68s%11.3f\n", "INTERVAL: ", s.Interval)
	b.WriteString("\n")
	b.WriteString("MEAN BUSY     MEAN QUEUE        OPERATION COUNTS\n")
	b.WriteString(" FACILITY          UTIL.     PERIOD        LENGTH     RELEASE   PREEMPT   QUEUE\n")

	for _, f := range s.Facilities {
		fmt.Fprintf(&b, " %-17s%6.4f %10.3f %13.3f %11d %9d %7d\n",
			f.displayName(), f.Util, f.MeanBusyPeriod, f.MeanQueueLength,
			f.Releases, f.Preempts, f.QueueExits)
	}

	return b.String()
}

// JSONFormatter renders a Snapshot as indented JSON, for machine
// consumption such as an offline analysis script.
type JSONFormatter struct{}

// Format renders s as JSON. Marshal errors on a Snapshot (a plain struct
// of strings, ints and float64s) cannot occur, so they are surfaced as an
// inline error string rather than forcing every caller to check one.
func (JSONFormatter) Format(s Snapshot) string {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(b)
}
