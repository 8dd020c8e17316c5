package session

import (
	"fmt"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/charsim/controller"
	"github.com/oomph-ac/charsim/game"
	"github.com/oomph-ac/charsim/movement"
	"github.com/oomph-ac/charsim/utils"
	"github.com/oomph-ac/charsim/worker"
	"github.com/sirupsen/logrus"
)

// MaxReportedDesyncs is the number of desyncs kept in a Report. Any further desyncs are only counted.
const MaxReportedDesyncs = 16

// Desync is a frame in which the desktop character and its tracked mirror ended up in different states.
type Desync struct {
	Frame   int
	Desktop uint64
	Mirror  uint64
	// Delta is the distance between the two positions.
	Delta float64
}

// Report summarises the replay of a recording.
type Report struct {
	Name     string
	Frames   int
	Duration float64

	Desyncs     []Desync
	DesyncCount int

	// Labels counts the frames spent in each movement state.
	Labels map[movement.Label]int

	// GroundDistanceMean, GroundDistanceStdDev, GroundDistanceMin and GroundDistanceMax describe the
	// distance between the feet and the ground over the frames in which there was ground below.
	GroundDistanceMean   float64
	GroundDistanceStdDev float64
	GroundDistanceMin    float64
	GroundDistanceMax    float64

	FinalPosition mgl64.Vec3
	FinalHash     uint64
}

// String ...
func (r Report) String() string {
	data := orderedmap.NewOrderedMap[string, any]()
	data.Set("name", r.Name)
	data.Set("frames", r.Frames)
	data.Set("duration", fmt.Sprintf("%.2fs", r.Duration))
	data.Set("desyncs", r.DesyncCount)
	if len(r.Desyncs) > 0 {
		data.Set("firstDesync", r.Desyncs[0].Frame)
	}
	for l := movement.LabelIdle; l <= movement.LabelJetpack; l++ {
		data.Set(l.String(), r.Labels[l])
	}
	data.Set("groundDist", fmt.Sprintf("%.4f±%.4f [%.4f, %.4f]", r.GroundDistanceMean, r.GroundDistanceStdDev, r.GroundDistanceMin, r.GroundDistanceMax))
	data.Set("pos", game.RoundVec64(r.FinalPosition, 3))
	data.Set("hash", fmt.Sprintf("%016x", r.FinalHash))
	return utils.OrderedMapToString(data)
}

// Replay runs the recording through a desktop controller and, alongside it, through the tracked-body
// mirror fed with the movement the controller planned each frame. The states of both are compared
// every frame. The mirror is resynchronised with the controller after a desync so that a single
// divergence is reported once.
func Replay(rec *Recording, log *logrus.Logger) (Report, error) {
	cfg, err := rec.Settings.Config()
	if err != nil {
		return Report{}, err
	}
	spawn, err := rec.Settings.SpawnPosition()
	if err != nil {
		return Report{}, err
	}
	surfaces, err := rec.Settings.Surfaces()
	if err != nil {
		return Report{}, err
	}
	c, err := controller.New(cfg, surfaces, spawn, controller.Opts{Log: log})
	if err != nil {
		return Report{}, err
	}

	report := Report{
		Name:     rec.Name,
		Frames:   len(rec.Frames),
		Duration: rec.Duration(),
		Labels:   make(map[movement.Label]int),
	}
	distances := make([]float64, 0, len(rec.Frames))

	out := movement.MirrorFromBody(c.State().Body)
	for i, f := range rec.Frames {
		res := c.Update(f.Input, f.Dt)
		out = movement.Mirror(cfg, surfaces, out.Next(res.Planned, f.Dt, f.Input.Jump, f.Input.Run))

		mirrored := out.Body()
		if desktop, mirror := c.Hash(), mirrored.Hash(); desktop != mirror {
			report.DesyncCount++
			if len(report.Desyncs) < MaxReportedDesyncs {
				report.Desyncs = append(report.Desyncs, Desync{
					Frame:   i,
					Desktop: desktop,
					Mirror:  mirror,
					Delta:   c.Position().Sub(mirrored.Position).Len(),
				})
			}
			if log != nil {
				log.Warnf("%s: desync at frame %d (desktop=%016x mirror=%016x)", rec.Name, i, desktop, mirror)
			}
			out = movement.MirrorFromBody(c.State().Body)
		}

		report.Labels[c.MovementState()]++
		if res.Outcome == movement.StepOutcomeNormal && res.Ground.Found {
			distances = append(distances, c.GroundDistance())
		}
	}

	report.GroundDistanceMean = game.Mean(distances)
	report.GroundDistanceStdDev = game.StandardDeviation(distances)
	report.GroundDistanceMin, report.GroundDistanceMax = game.Extremes(distances)
	report.FinalPosition = c.Position()
	report.FinalHash = c.Hash()
	return report, nil
}

// ReplayAll replays the recordings passed concurrently on the worker pool. The reports are returned in
// the order of the recordings. If any replay fails, the errors of all failed replays are returned.
func ReplayAll(recs []*Recording, log *logrus.Logger) ([]Report, error) {
	reports := make([]Report, len(recs))

	var g worker.Group
	for i, rec := range recs {
		g.Go(func() error {
			report, err := Replay(rec, log)
			if err != nil {
				return fmt.Errorf("%s: %w", rec.Name, err)
			}
			reports[i] = report
			return nil
		})
	}
	return reports, g.Wait()
}
