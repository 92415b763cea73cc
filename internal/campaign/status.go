package campaign

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type Outcome string

const (
	AllSucceeded    Outcome = "all_succeeded"
	PartiallyFailed Outcome = "partially_failed"
)

type State string

const (
	StatePending      State = "pending"
	StateCollecting   State = "collecting"
	StateAssembling   State = "assembling"
	StateSkipAssembly State = "skip_assembly"
	StateRecorded     State = "recorded"
)

var allowedTransitions = map[State]map[State]bool{
	StatePending: {
		StateCollecting: true,
		StateRecorded:   true, // cancelled before start
	},
	StateCollecting: {
		StateAssembling:   true,
		StateSkipAssembly: true,
	},
	StateAssembling: {
		StateRecorded: true,
	},
	StateSkipAssembly: {
		StateRecorded: true,
	},
	StateRecorded: {},
}

func CanTransition(from, to State) bool {
	return allowedTransitions[from][to]
}

// VolumeStatus is the recorded result of one volume plan.
type VolumeStatus struct {
	Volume  int
	Title   string
	Outcome Outcome
	// Failed lists chapter numbers that could not be fetched, ascending.
	Failed   []int
	Chapters int
	Output   string
	Bytes    int64
	// Err annotates a failure outside chapter fetching, e.g. packaging.
	// It wraps context.Canceled when the run was interrupted.
	Err   error
	State State
}

func (s *VolumeStatus) advance(to State) error {
	if !CanTransition(s.State, to) {
		return fmt.Errorf("invalid volume state transition: %q -> %q (volume %d)", s.State, to, s.Volume)
	}
	s.State = to
	return nil
}

// Cancelled reports whether the volume was cut short by an interrupt.
func (s VolumeStatus) Cancelled() bool {
	return errors.Is(s.Err, context.Canceled)
}

func (s VolumeStatus) Describe() string {
	var b strings.Builder

	switch {
	case s.Outcome == AllSucceeded:
		b.WriteString("Successfully scraped")
	case s.Cancelled():
		b.WriteString("Cancelled")
		if len(s.Failed) > 0 {
			b.WriteString("; failed chapters - " + joinInts(s.Failed))
		}
		return b.String()
	default:
		if len(s.Failed) > 0 {
			b.WriteString("Failed chapters - " + joinInts(s.Failed))
		} else {
			b.WriteString("Failed")
		}
	}

	if s.Err != nil {
		b.WriteString(" (" + s.Err.Error() + ")")
	}

	return b.String()
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, ", ")
}

// Summary holds one status per plan, in processing order.
type Summary struct {
	Statuses []VolumeStatus
}

func (s Summary) AllSucceeded() bool {
	for _, st := range s.Statuses {
		if st.Outcome != AllSucceeded {
			return false
		}
	}
	return true
}

func (s Summary) Totals() (chapters, failed int, bytes int64) {
	for _, st := range s.Statuses {
		chapters += st.Chapters
		failed += len(st.Failed)
		bytes += st.Bytes
	}
	return chapters, failed, bytes
}
