package report

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTextFormatterAbandonsAnEmptyReport(t *testing.T) {
	out := TextFormatter{}.Format(Snapshot{ModelName: "empty"})
	require.Equal(t, "no facilities defined:  report abandoned\n", out)
}

func TestTextFormatterRendersTheReferenceColumnLayout(t *testing.T) {
	snap := Snapshot{
		ModelName: "queue",
		Time:      100.0,
		Interval:  100.0,
		Facilities: []FacilityStats{
			{
				Name:            "server",
				Servers:         1,
				Util:            0.85,
				MeanBusyPeriod:  1.234,
				MeanQueueLength: 0.5,
				Releases:        120,
				Preempts:        0,
				QueueExits:      15,
			},
		},
	}

	out := TextFormatter{}.Format(snap)

	require.Contains(t, out, "smpl SIMULATION REPORT")
	require.Contains(t, out, "MODEL queue")
	require.Contains(t, out, "TIME:     100.000")
	require.Contains(t, out, "server")

	lines := strings.Split(out, "\n")
	var row string
	for _, line := range lines {
		if strings.Contains(line, "server") && !strings.Contains(line, "MODEL") {
			row = line
			break
		}
	}
	require.NotEmpty(t, row, "expected a row for facility %q", "server")
	require.Contains(t, row, "0.8500")
	require.Contains(t, row, "120")
	require.Contains(t, row, "15")
}

func TestTextFormatterQualifiesAMultiServerFacilityName(t *testing.T) {
	snap := Snapshot{
		ModelName: "multi",
		Facilities: []FacilityStats{
			{Name: "pool", Servers: 3},
		},
	}

	out := TextFormatter{}.Format(snap)
	require.Contains(t, out, "pool[3]")
}

func TestJSONFormatterRoundTrips(t *testing.T) {
	snap := Snapshot{
		ModelName: "queue",
		Time:      42,
		Facilities: []FacilityStats{
			{Name: "server", Servers: 1, Util: 0.5},
		},
	}

	out := JSONFormatter{}.Format(snap)

	var got Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, snap, got)
}
