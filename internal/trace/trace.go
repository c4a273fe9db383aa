// Package trace records room trajectories as zstd-compressed JSON lines and
// replays them to check that a run is reproducible.
//
// A trace starts with one header line holding the run configuration,
// followed by one frame per step; the first frame is the initial state.
package trace

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"

	"roomsim/internal/sims/room"
)

// Version is the trace format version written into headers.
const Version = 1

// maxLine bounds a single decoded line; a frame for a 1000x1000 room with a
// few thousand cleaners stays well below it.
const maxLine = 64 << 20

// ErrMismatch is returned by Verify when a replay diverges from the trace.
var ErrMismatch = errors.New("trace mismatch")

// Header is the first line of a trace.
type Header struct {
	Version int         `json:"version"`
	Config  room.Config `json:"config"`
}

// Writer appends frames to a trace.
type Writer struct {
	file *os.File
	enc  *zstd.Encoder
	w    *bufio.Writer
}

// Create opens path for writing, truncating it, and writes the header.
func Create(path string, h Header) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	w, err := NewWriter(f, h)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	w.file = f
	return w, nil
}

// NewWriter writes a compressed trace to dst. Closing the Writer does not
// close dst.
func NewWriter(dst io.Writer, h Header) (*Writer, error) {
	enc, err := zstd.NewWriter(dst, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	w := &Writer{enc: enc, w: bufio.NewWriterSize(enc, 256*1024)}
	if h.Version == 0 {
		h.Version = Version
	}
	if err := w.writeLine(h); err != nil {
		_ = enc.Close()
		return nil, err
	}
	return w, nil
}

// WriteFrame appends one frame.
func (w *Writer) WriteFrame(f room.Frame) error {
	return w.writeLine(f)
}

func (w *Writer) writeLine(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

// Close flushes buffered frames and finishes the zstd stream.
func (w *Writer) Close() error {
	err := w.w.Flush()
	if cerr := w.enc.Close(); err == nil {
		err = cerr
	}
	if w.file != nil {
		if cerr := w.file.Close(); err == nil {
			err = cerr
		}
		w.file = nil
	}
	return err
}

// Reader iterates over the frames of a trace.
type Reader struct {
	file   *os.File
	dec    *zstd.Decoder
	sc     *bufio.Scanner
	header Header
}

// Open opens a trace file and reads its header.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	r.file = f
	return r, nil
}

// NewReader reads a compressed trace from src.
func NewReader(src io.Reader) (*Reader, error) {
	dec, err := zstd.NewReader(src)
	if err != nil {
		return nil, err
	}
	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 0, 256*1024), maxLine)
	r := &Reader{dec: dec, sc: sc}
	if !sc.Scan() {
		dec.Close()
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		return nil, errors.New("read header: empty trace")
	}
	if err := json.Unmarshal(sc.Bytes(), &r.header); err != nil {
		dec.Close()
		return nil, fmt.Errorf("decode header: %w", err)
	}
	if r.header.Version != Version {
		dec.Close()
		return nil, fmt.Errorf("unsupported trace version %d", r.header.Version)
	}
	return r, nil
}

// Header returns the trace header.
func (r *Reader) Header() Header { return r.header }

// Next returns the next frame, or io.EOF after the last one.
func (r *Reader) Next() (room.Frame, error) {
	var f room.Frame
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return f, err
		}
		return f, io.EOF
	}
	if err := json.Unmarshal(r.sc.Bytes(), &f); err != nil {
		return f, fmt.Errorf("decode frame: %w", err)
	}
	return f, nil
}

// Close releases the decoder and the underlying file, if any.
func (r *Reader) Close() error {
	r.dec.Close()
	if r.file != nil {
		err := r.file.Close()
		r.file = nil
		return err
	}
	return nil
}
