// Package monitoring turns a running kernel.Kernel into a small HTTP
// server: JSON snapshots of facility state and time-weighted statistics,
// for a model that wants to watch a long run from outside the process.
package monitoring

import (
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/archsim/smpl/kernel"
)

// Monitor serves read-only JSON views of a kernel.Kernel.
type Monitor struct {
	kernel     *kernel.Kernel
	portNumber int
}

// NewMonitor creates a Monitor for k.
func NewMonitor(k *kernel.Kernel) *Monitor {
	return &Monitor{kernel: k}
}

// WithPortNumber sets the port the monitor listens on. A value below
// 1000 is refused in favor of a random port, the same guard the
// reference monitoring server uses to keep models off well-known ports.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"port number %d is not allowed for the monitoring server, "+
				"using a random port instead\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// StartServer starts the monitor as a background HTTP server and
// returns the address it bound to.
func (m *Monitor) StartServer() string {
	r := mux.NewRouter()
	r.HandleFunc("/time", m.now)
	r.HandleFunc("/stats", m.stats)
	r.HandleFunc("/facilities", m.listFacilities)
	r.HandleFunc("/facilities/{id}", m.facilityByID)

	actualPort := ":0"
	if m.portNumber >= 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	addr := listener.Addr().String()
	fmt.Fprintf(os.Stderr, "monitoring kernel at http://localhost%s\n", addr)

	go func() {
		dieOnErr(http.Serve(listener, r))
	}()

	return addr
}

func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, struct {
		Time float64 `json:"time"`
	}{m.kernel.Time()})
}

func (m *Monitor) stats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, m.kernel.Snapshot())
}

func (m *Monitor) listFacilities(w http.ResponseWriter, _ *http.Request) {
	snap := m.kernel.Snapshot()
	writeJSON(w, snap.Facilities)
}

func (m *Monitor) facilityByID(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]

	n, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "facility id must be an integer", http.StatusBadRequest)
		return
	}

	busy, err := m.kernel.Status(kernel.FacilityID(n))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	inq, _ := m.kernel.Inq(kernel.FacilityID(n))
	name, _ := m.kernel.Fname(kernel.FacilityID(n))

	writeJSON(w, struct {
		Name string `json:"name"`
		Busy bool   `json:"busy"`
		Inq  int    `json:"inq"`
	}{name, busy, inq})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	dieOnErr(json.NewEncoder(w).Encode(v))
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
