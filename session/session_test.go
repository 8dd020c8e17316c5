package session

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/charsim/controller"
	"github.com/oomph-ac/charsim/movement"
	"github.com/oomph-ac/charsim/oerror"
	"github.com/oomph-ac/charsim/settings"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demo(t *testing.T, seconds float64, seed int64) *Recording {
	rec, err := Demo(settings.DefaultSettings(), seconds, 60, seed)
	require.NoError(t, err)
	return rec
}

func TestDemoIsDeterministic(t *testing.T) {
	a, b := demo(t, 5, 7), demo(t, 5, 7)
	require.Equal(t, a, b)
	assert.InDelta(t, 5, a.Duration(), 1.0/40)
	assert.InDelta(t, 300, len(a.Frames), 30)

	c := demo(t, 5, 8)
	assert.NotEqual(t, a.Frames, c.Frames)
}

func TestDemoRejectsInvalidArguments(t *testing.T) {
	for _, args := range [][2]float64{{0, 60}, {5, 0}, {-1, 60}} {
		_, err := Demo(settings.DefaultSettings(), args[0], args[1], 1)
		assert.Error(t, err, "%v", args)
	}
}

func TestRecordingRoundTrip(t *testing.T) {
	rec := NewRecording("round trip", settings.DefaultSettings())
	rec.Record(controller.Input{Forward: true, CameraYaw: 0.25}, 1.0/60)
	rec.Record(controller.Input{UseStick: true, Stick: mgl64.Vec2{0.3, -0.7}, Jump: true}, 1.0/55)

	var buf bytes.Buffer
	require.NoError(t, rec.Encode(&buf))
	assert.True(t, strings.HasPrefix(buf.String(), CurrentRecordingVer+"\n"))

	decoded, err := DecodeRecording(&buf)
	require.NoError(t, err)
	assert.Equal(t, rec, decoded)
}

func TestRecordingFile(t *testing.T) {
	rec := demo(t, 2, 1)
	path := filepath.Join(t.TempDir(), "demo.rec")
	require.NoError(t, rec.Save(path))

	loaded, err := LoadRecording(path)
	require.NoError(t, err)
	assert.Equal(t, rec, loaded)

	_, err = LoadRecording(filepath.Join(t.TempDir(), "missing.rec"))
	assert.Error(t, err)
}

func TestUnsupportedRecordingVersion(t *testing.T) {
	_, err := DecodeRecording(strings.NewReader("0\n\xa0"))
	require.Error(t, err)
	var oerr *oerror.Error
	assert.ErrorAs(t, err, &oerr)

	_, err = DecodeRecording(strings.NewReader(""))
	assert.Error(t, err)
}

func TestReplayHasNoDesyncs(t *testing.T) {
	log, hook := test.NewNullLogger()
	rec := demo(t, 20, 3)

	report, err := Replay(rec, log)
	require.NoError(t, err)
	assert.Zero(t, report.DesyncCount)
	assert.Empty(t, report.Desyncs)
	assert.Empty(t, hook.AllEntries())

	assert.Equal(t, len(rec.Frames), report.Frames)
	total := 0
	for _, n := range report.Labels {
		total += n
	}
	assert.Equal(t, len(rec.Frames), total)
	assert.Positive(t, report.Labels[movement.LabelWalk])
	assert.Positive(t, report.Labels[movement.LabelRun])
	assert.Positive(t, report.Labels[movement.LabelJetpack])

	assert.LessOrEqual(t, report.GroundDistanceMin, report.GroundDistanceMean)
	assert.LessOrEqual(t, report.GroundDistanceMean, report.GroundDistanceMax)
	assert.GreaterOrEqual(t, report.GroundDistanceStdDev, 0.0)
	assert.NotZero(t, report.FinalHash)
}

func TestReplayIsDeterministic(t *testing.T) {
	rec := demo(t, 5, 11)
	a, err := Replay(rec, nil)
	require.NoError(t, err)
	b, err := Replay(rec, nil)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestReplayRejectsInvalidSettings(t *testing.T) {
	rec := demo(t, 1, 1)
	rec.Settings.Movement.Gravity = 10
	_, err := Replay(rec, nil)
	assert.Error(t, err)
}

func TestReplayAll(t *testing.T) {
	recs := []*Recording{demo(t, 3, 1), demo(t, 3, 2), demo(t, 3, 3), demo(t, 3, 4)}
	reports, err := ReplayAll(recs, logrus.New())
	require.NoError(t, err)
	require.Len(t, reports, len(recs))

	for i, rec := range recs {
		single, err := Replay(rec, nil)
		require.NoError(t, err)
		assert.Equal(t, single, reports[i])
	}

	broken := demo(t, 1, 1)
	broken.Name = "broken"
	broken.Settings.Spawn = []float64{0, 0}
	_, err = ReplayAll(append(recs, broken), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestReportString(t *testing.T) {
	report, err := Replay(demo(t, 2, 5), nil)
	require.NoError(t, err)
	s := report.String()
	for _, key := range []string{"name=demo", "frames=", "desyncs=0", "idle=", "walk=", "run=", "jetpack=", "groundDist=", "hash="} {
		assert.Contains(t, s, key)
	}
	assert.NotContains(t, s, "firstDesync")
}

func TestReportStringWithDesyncs(t *testing.T) {
	report := Report{
		Name:        "desynced",
		Desyncs:     []Desync{{Frame: 42, Desktop: 1, Mirror: 2, Delta: 0.5}},
		DesyncCount: 3,
		Labels:      map[movement.Label]int{movement.LabelWalk: 10},
	}
	s := report.String()
	assert.Contains(t, s, "desyncs=3")
	assert.Contains(t, s, "firstDesync=42")
	assert.Contains(t, s, "walk=10")
	assert.Contains(t, s, "idle=0")
}
