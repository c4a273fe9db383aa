package trace

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"roomsim/internal/sims/room"
)

func testConfig() room.Config {
	return room.Config{DirtFraction: 0.4, Width: 7, Height: 5, MaxSteps: 60, Cleaners: 4, Seed: 21}
}

func recordToBuffer(t *testing.T, cfg room.Config) (*bytes.Buffer, room.Report) {
	t.Helper()
	r, err := room.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	w, err := NewWriter(&buf, Header{Config: cfg})
	if err != nil {
		t.Fatal(err)
	}
	rep, err := Record(r, w)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return &buf, rep
}

func readAll(t *testing.T, src io.Reader) (Header, []room.Frame) {
	t.Helper()
	tr, err := NewReader(src)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	defer tr.Close()
	var frames []room.Frame
	for {
		f, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		frames = append(frames, f)
	}
	return tr.Header(), frames
}

func TestRecordRoundTrip(t *testing.T) {
	cfg := testConfig()
	buf, rep := recordToBuffer(t, cfg)

	header, frames := readAll(t, buf)
	if header.Version != Version {
		t.Fatalf("version = %d, want %d", header.Version, Version)
	}
	if diff := cmp.Diff(cfg, header.Config); diff != "" {
		t.Fatalf("header config mismatch:\n%s", diff)
	}
	if len(frames) != rep.Steps+1 {
		t.Fatalf("frames = %d, want %d", len(frames), rep.Steps+1)
	}
	if frames[0].Step != 0 || frames[0].Movements != 0 {
		t.Fatalf("first frame should be the initial state: %+v", frames[0])
	}
	last := frames[len(frames)-1]
	if !last.Done || last.Step != rep.Steps || last.Movements != rep.Movements {
		t.Fatalf("last frame %+v does not match report %+v", last, rep)
	}
}

func TestSameSeedSameTrace(t *testing.T) {
	a, _ := recordToBuffer(t, testConfig())
	b, _ := recordToBuffer(t, testConfig())
	_, framesA := readAll(t, a)
	_, framesB := readAll(t, b)
	if diff := cmp.Diff(framesA, framesB); diff != "" {
		t.Fatalf("traces differ:\n%s", diff)
	}
}

func TestVerifyFile(t *testing.T) {
	cfg := testConfig()
	path := filepath.Join(t.TempDir(), "run.jsonl.zst")
	r, err := room.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	w, err := Create(path, Header{Config: cfg})
	if err != nil {
		t.Fatal(err)
	}
	want, err := Record(r, w)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	tr, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer tr.Close()
	got, err := Verify(tr)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got != want {
		t.Fatalf("replayed report %+v, want %+v", got, want)
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	cfg := testConfig()
	buf, _ := recordToBuffer(t, cfg)
	_, frames := readAll(t, buf)

	frames[3].Movements += 5
	var tampered bytes.Buffer
	w, err := NewWriter(&tampered, Header{Config: cfg})
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range frames {
		if err := w.WriteFrame(f); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	tr, err := NewReader(&tampered)
	if err != nil {
		t.Fatal(err)
	}
	defer tr.Close()
	if _, err := Verify(tr); !errors.Is(err, ErrMismatch) {
		t.Fatalf("expected ErrMismatch, got %v", err)
	}
}

func TestVerifyDetectsTruncation(t *testing.T) {
	cfg := testConfig()
	buf, _ := recordToBuffer(t, cfg)
	_, frames := readAll(t, buf)

	var short bytes.Buffer
	w, err := NewWriter(&short, Header{Config: cfg})
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range frames[:len(frames)-1] {
		if err := w.WriteFrame(f); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	tr, err := NewReader(&short)
	if err != nil {
		t.Fatal(err)
	}
	defer tr.Close()
	if _, err := Verify(tr); !errors.Is(err, ErrMismatch) {
		t.Fatalf("expected ErrMismatch for truncated trace, got %v", err)
	}
}

func TestNewReaderRejectsGarbage(t *testing.T) {
	if _, err := NewReader(bytes.NewReader([]byte("not zstd at all"))); err == nil {
		t.Fatal("expected error for non-zstd input")
	}
}
