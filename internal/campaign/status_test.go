package campaign

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := [][2]State{
		{StatePending, StateCollecting},
		{StatePending, StateRecorded},
		{StateCollecting, StateAssembling},
		{StateCollecting, StateSkipAssembly},
		{StateAssembling, StateRecorded},
		{StateSkipAssembly, StateRecorded},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransition(tc[0], tc[1]), "%s -> %s", tc[0], tc[1])
	}

	rejected := [][2]State{
		{StatePending, StateAssembling},
		{StateCollecting, StateRecorded},
		{StateRecorded, StateCollecting},
		{StateAssembling, StateSkipAssembly},
		{"bogus", StatePending},
	}
	for _, tc := range rejected {
		assert.False(t, CanTransition(tc[0], tc[1]), "%s -> %s", tc[0], tc[1])
	}
}

func TestAdvance_RejectsIllegalTransition(t *testing.T) {
	st := VolumeStatus{Volume: 1, State: StatePending}

	assert.Error(t, st.advance(StateAssembling))
	assert.Equal(t, StatePending, st.State)
	assert.NoError(t, st.advance(StateCollecting))
	assert.Equal(t, StateCollecting, st.State)
}

func TestDescribe(t *testing.T) {
	cases := []struct {
		st   VolumeStatus
		want string
	}{
		{VolumeStatus{Outcome: AllSucceeded}, "Successfully scraped"},
		{VolumeStatus{Outcome: PartiallyFailed, Failed: []int{2, 5}}, "Failed chapters - 2, 5"},
		{VolumeStatus{Outcome: PartiallyFailed, Err: errors.New("boom")}, "Failed (boom)"},
		{VolumeStatus{Outcome: PartiallyFailed, Err: errCancelled}, "Cancelled"},
		{VolumeStatus{Outcome: PartiallyFailed, Err: errCancelled, Failed: []int{4}}, "Cancelled; failed chapters - 4"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.st.Describe())
	}
}
