package trace

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	"roomsim/internal/sims/room"
)

// Record runs r to completion, writing the initial state and every step.
func Record(r *room.Room, w *Writer) (room.Report, error) {
	if err := w.WriteFrame(r.Frame()); err != nil {
		return room.Report{}, err
	}
	for !r.Done() {
		r.Step()
		if err := w.WriteFrame(r.Frame()); err != nil {
			return room.Report{}, err
		}
	}
	return r.Report(), nil
}

// Verify rebuilds the run described by the trace header and checks that it
// reproduces every recorded frame. It returns the replayed report.
func Verify(tr *Reader) (room.Report, error) {
	r, err := room.New(tr.Header().Config)
	if err != nil {
		return room.Report{}, fmt.Errorf("replay config: %w", err)
	}
	first := true
	for {
		recorded, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return room.Report{}, err
		}
		if !first {
			if r.Done() {
				return room.Report{}, fmt.Errorf("%w: trace continues past step %d", ErrMismatch, r.Steps())
			}
			r.Step()
		}
		first = false
		if got := r.Frame(); !reflect.DeepEqual(got, recorded) {
			return room.Report{}, fmt.Errorf("%w at step %d", ErrMismatch, recorded.Step)
		}
	}
	if first {
		return room.Report{}, fmt.Errorf("%w: trace has no frames", ErrMismatch)
	}
	if !r.Done() {
		return room.Report{}, fmt.Errorf("%w: trace ends at step %d before the run finished", ErrMismatch, r.Steps())
	}
	return r.Report(), nil
}
