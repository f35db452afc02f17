// SPDX-License-Identifier: EPL-2.0

package converter

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/ik5/audconv/audio"
)

// Job is the state of one Convert call. It is owned by a single goroutine.
type Job struct {
	ID           uuid.UUID
	State        State
	Intermediate audio.Format

	// FramesRead and FramesWritten only grow.
	FramesRead    int64
	FramesWritten int64
	// TotalFrames is the expected intermediate length, or -1.
	TotalFrames int64
	Chunks      int

	reader *SourceReader
	writer *DestinationWriter
	logger *slog.Logger
}

func newJob(logger *slog.Logger) *Job {
	id := uuid.New()

	return &Job{
		ID:          id,
		State:       StateIdle,
		TotalFrames: -1,
		logger:      logger.With("job_id", id.String()),
	}
}

func (j *Job) transition(s State) {
	j.logger.Debug("state transition", "from", j.State.String(), "state", s.String())
	j.State = s
}

// fail moves the job to StateFailed and wraps err with the failing stage.
func (j *Job) fail(op string, err error) error {
	state := j.State
	j.transition(StateFailed)

	return &Error{Op: op, State: state, Err: err}
}

// Percent done, or -1 when the total is unknown.
func (j *Job) Percent() float64 {
	if j.TotalFrames <= 0 {
		return -1
	}
	return min(100, float64(j.FramesWritten)*100/float64(j.TotalFrames))
}

// release closes whatever the job still holds.
func (j *Job) release() error {
	var err error
	if j.reader != nil {
		err = j.reader.Close()
		j.reader = nil
	}
	return err
}
