package scheduler

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	runs atomic.Int64
	err  error
}

func (j *countingJob) Name() string { return "counting" }

func (j *countingJob) Run() error {
	j.runs.Add(1)
	return j.err
}

func TestRunNow(t *testing.T) {
	sched := New(zerolog.Nop())
	job := &countingJob{}

	require.NoError(t, sched.RunNow(job))
	assert.Equal(t, int64(1), job.runs.Load())
}

func TestRunNowPropagatesError(t *testing.T) {
	sched := New(zerolog.Nop())
	job := &countingJob{err: errors.New("boom")}

	require.Error(t, sched.RunNow(job))
	assert.Equal(t, int64(1), job.runs.Load())
}

func TestAddJobRejectsBadSchedule(t *testing.T) {
	sched := New(zerolog.Nop())

	assert.Error(t, sched.AddJob("not a schedule", &countingJob{}))
	assert.NoError(t, sched.AddJob("@hourly", &countingJob{}))
}

func TestScheduledJobRuns(t *testing.T) {
	sched := New(zerolog.Nop())
	job := &countingJob{}
	require.NoError(t, sched.AddJob("@every 10ms", job))

	sched.Start()
	defer sched.Stop()

	deadline := time.After(2 * time.Second)
	for job.runs.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("job never ran")
		case <-time.After(10 * time.Millisecond):
		}
	}
}
