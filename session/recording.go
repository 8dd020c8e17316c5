package session

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/oomph-ac/charsim/controller"
	"github.com/oomph-ac/charsim/oerror"
	"github.com/oomph-ac/charsim/settings"
)

const CurrentRecordingVer = "1"

// Frame is a single recorded frame: the device input and the frame time it was simulated with.
type Frame struct {
	Dt    float64
	Input controller.Input
}

// Recording is a sequence of frames recorded against a scene. Replaying the frames on the same
// settings reproduces the motion of the recorded character exactly.
type Recording struct {
	Version  string
	Name     string
	Settings settings.Settings
	Frames   []Frame
}

// NewRecording returns an empty recording for the settings passed.
func NewRecording(name string, s settings.Settings) *Recording {
	return &Recording{
		Version:  CurrentRecordingVer,
		Name:     name,
		Settings: s,
		Frames:   []Frame{},
	}
}

// Record appends a frame to the recording.
func (r *Recording) Record(in controller.Input, dt float64) {
	r.Frames = append(r.Frames, Frame{Dt: dt, Input: in})
}

// Duration returns the total frame time of the recording in seconds.
func (r *Recording) Duration() (d float64) {
	for _, f := range r.Frames {
		d += f.Dt
	}
	return d
}

// Encode writes the recording to w. The version of the recording is written as a header line ahead of
// the payload so that decoders can reject recordings they do not understand before decoding them.
func (r *Recording) Encode(w io.Writer) error {
	if _, err := io.WriteString(w, CurrentRecordingVer+"\n"); err != nil {
		return fmt.Errorf("unable to write recording header: %w", err)
	}
	r.Version = CurrentRecordingVer
	if err := cbor.NewEncoder(w).Encode(r); err != nil {
		return fmt.Errorf("unable to encode recording: %w", err)
	}
	return nil
}

// Save writes the recording to the file passed, replacing it if it exists.
func (r *Recording) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create recording file: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err := r.Encode(bw); err != nil {
		return err
	}
	return bw.Flush()
}

// DecodeRecording decodes a recording from r. It returns an error if the recording could not be parsed,
// or if the version of the recording is not supported.
func DecodeRecording(r io.Reader) (*Recording, error) {
	br := bufio.NewReader(r)
	header, err := br.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("unable to read recording header: %w", err)
	}
	if version := strings.TrimSpace(header); version != CurrentRecordingVer {
		return nil, oerror.New("unsupported recording version: %q", version)
	}

	rec := &Recording{}
	if err := cbor.NewDecoder(br).Decode(rec); err != nil {
		return nil, fmt.Errorf("unable to decode recording: %w", err)
	}
	if rec.Version != CurrentRecordingVer {
		return nil, oerror.New("recording header and payload versions differ: %q", rec.Version)
	}
	if rec.Frames == nil {
		rec.Frames = []Frame{}
	}
	return rec, nil
}

// LoadRecording decodes the recording file passed.
func LoadRecording(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open recording file: %w", err)
	}
	defer f.Close()

	rec, err := DecodeRecording(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}
