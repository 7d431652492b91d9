// Package export provides the reporting surfaces of the optimizer: the
// per-iteration CSV trajectory log and a terminal map of the civilization.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/XiaoConstantine/sco-go/pkg/errors"
	"github.com/XiaoConstantine/sco-go/pkg/optimizer"
)

// TrajectoryWriter appends one CSV row per individual per iteration:
// Run,Time,AgentID,x1..xn,Objective,ClusterID,IsLocalLeader,IsSuperLeader.
// Safe for use as a runner observer across concurrent runs.
type TrajectoryWriter struct {
	mu          sync.Mutex
	w           *csv.Writer
	numVars     int
	wroteHeader bool
}

// NewTrajectoryWriter creates a trajectory writer emitting numVars variable
// columns.
func NewTrajectoryWriter(w io.Writer, numVars int) *TrajectoryWriter {
	return &TrajectoryWriter{
		w:       csv.NewWriter(w),
		numVars: numVars,
	}
}

// WriteState logs the full civilization state for one iteration of one run.
func (t *TrajectoryWriter) WriteState(run, step int, civ *optimizer.Civilization) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.wroteHeader {
		header := []string{"Run", "Time", "AgentID"}
		for j := 0; j < t.numVars; j++ {
			header = append(header, fmt.Sprintf("x%d", j+1))
		}
		header = append(header, "Objective", "ClusterID", "IsLocalLeader", "IsSuperLeader")
		if err := t.w.Write(header); err != nil {
			return errors.Wrap(err, errors.Unknown, "failed to write trajectory header")
		}
		t.wroteHeader = true
	}

	localLeader := make(map[int]bool)
	for _, leaders := range civ.SocietyLeaders() {
		for _, i := range leaders {
			localLeader[i] = true
		}
	}
	superLeader := make(map[int]bool)
	for _, i := range civ.SuperLeaders() {
		superLeader[i] = true
	}

	assignments := civ.Assignments()
	for i, ind := range civ.Population() {
		row := []string{
			strconv.Itoa(run),
			strconv.Itoa(step),
			strconv.Itoa(i),
		}
		for j := 0; j < t.numVars; j++ {
			row = append(row, strconv.FormatFloat(ind.Variables[j], 'g', -1, 64))
		}
		cluster := -1
		if i < len(assignments) {
			cluster = assignments[i]
		}
		row = append(row,
			strconv.FormatFloat(ind.ObjectiveValue, 'g', -1, 64),
			strconv.Itoa(cluster),
			boolFlag(localLeader[i]),
			boolFlag(superLeader[i]),
		)
		if err := t.w.Write(row); err != nil {
			return errors.WithFields(
				errors.Wrap(err, errors.Unknown, "failed to write trajectory row"),
				errors.Fields{"run": run, "step": step, "agent": i},
			)
		}
	}
	t.w.Flush()
	return t.w.Error()
}

// Flush forces buffered rows out to the underlying writer.
func (t *TrajectoryWriter) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.w.Flush()
	return t.w.Error()
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
