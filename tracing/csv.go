package tracing

import (
	"fmt"
	"os"

	"github.com/tebeka/atexit"

	"github.com/archsim/smpl/kernel"
)

// CSVTraceWriter is a kernel.Hook that buffers Records and periodically
// flushes them to a CSV file.
type CSVTraceWriter struct {
	path string
	file *os.File

	ids        kernel.IDGenerator
	records    []Record
	bufferSize int
}

// NewCSVTraceWriter creates a writer for path+".csv". path may be empty,
// in which case Init assigns one from a fresh xid.
func NewCSVTraceWriter(path string) *CSVTraceWriter {
	return &CSVTraceWriter{
		path:       path,
		ids:        kernel.NewXIDGenerator(),
		bufferSize: 1000,
	}
}

// Init creates the trace file, overwriting any file already there, and
// registers a Flush+Close with atexit, which runs it when the process
// exits through atexit.Exit, so a model that forgets to call Flush itself
// does not lose its buffered tail.
func (t *CSVTraceWriter) Init() {
	if t.path == "" {
		t.path = "smpl_trace_" + kernel.NewXIDGenerator().Generate()
	}

	filename := t.path + ".csv"
	file, err := os.Create(filename)
	if err != nil {
		panic(err)
	}
	t.file = file

	fmt.Fprintf(file, "ID,Time,Position,FacilityID,FacilityName,Token,Detail\n")

	atexit.Register(func() {
		t.Flush()
		if err := t.file.Close(); err != nil {
			panic(err)
		}
	})
}

// Func implements kernel.Hook.
func (t *CSVTraceWriter) Func(ctx kernel.HookCtx) {
	t.records = append(t.records, newRecord(t.ids, ctx))
	if len(t.records) >= t.bufferSize {
		t.Flush()
	}
}

// Flush writes every buffered Record to the CSV file.
func (t *CSVTraceWriter) Flush() {
	for _, r := range t.records {
		fmt.Fprintf(t.file, "%s,%.10f,%s,%d,%s,%s,%q\n",
			r.ID, r.Time, r.Position, r.FacilityID, r.FacilityName, r.Token, r.Detail)
	}
	t.records = nil
}
