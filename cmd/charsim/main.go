package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/oomph-ac/charsim/session"
	"github.com/oomph-ac/charsim/settings"
	"github.com/sirupsen/logrus"
)

var CLI struct {
	Debug bool `help:"Whether to enable debug logging."`

	Demo struct {
		Out      string  `arg:"" name:"out" help:"File to write the recording to."`
		Settings string  `help:"Settings file describing the scene. The default scene is used if empty." type:"existingfile"`
		Seconds  float64 `help:"Length of the recording in seconds." default:"30"`
		Rate     float64 `help:"Nominal frame rate of the recording." default:"60"`
		Seed     int64   `help:"Seed of the frame time jitter." default:"1"`
	} `cmd:"" help:"Record a scripted run around a scene."`

	Replay struct {
		Recordings []string `arg:"" name:"recordings" help:"Recordings to replay." type:"existingfile"`
	} `cmd:"" help:"Replay recordings, checking desktop and tracked bodies stay in sync."`

	Settings struct {
		Out string `arg:"" name:"out" help:"File to write the default settings to (.toml, .yaml or .yml)."`
	} `cmd:"" help:"Write the default settings to a file."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	sentry.Flush(2 * time.Second)
	os.Exit(1)
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("charsim"),
		kong.Description("a kinematic character controller simulator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	log := logrus.New()
	log.Formatter = &logrus.TextFormatter{ForceColors: true, FullTimestamp: true}
	log.Level = logrus.InfoLevel
	if CLI.Debug {
		log.Level = logrus.DebugLevel
		log.Warn("debug logging enabled")
	}

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
			log.Errorf("unable to initialize sentry: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	if os.Getenv("PPROF_ENABLED") != "" {
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr("localhost:8080"))

		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
	}

	var err error
	switch ctx.Command() {
	case "demo <out>":
		err = demoCommand(log)
	case "replay <recordings>":
		err = replayCommand(log)
	case "settings <out>":
		err = settings.SaveDefault(CLI.Settings.Out)
	}
	if err != nil {
		writeError(err)
	}
}

func demoCommand(log *logrus.Logger) error {
	s := settings.DefaultSettings()
	if CLI.Demo.Settings != "" {
		var err error
		if s, err = settings.Load(CLI.Demo.Settings); err != nil {
			return err
		}
	}

	rec, err := session.Demo(s, CLI.Demo.Seconds, CLI.Demo.Rate, CLI.Demo.Seed)
	if err != nil {
		return err
	}
	if err := rec.Save(CLI.Demo.Out); err != nil {
		return err
	}
	log.Infof("recorded %d frames (%.2fs) to %s", len(rec.Frames), rec.Duration(), CLI.Demo.Out)
	return nil
}

func replayCommand(log *logrus.Logger) error {
	recs := make([]*session.Recording, 0, len(CLI.Replay.Recordings))
	for _, path := range CLI.Replay.Recordings {
		rec, err := session.LoadRecording(path)
		if err != nil {
			return err
		}
		recs = append(recs, rec)
	}

	reports, err := session.ReplayAll(recs, log)
	if err != nil {
		return err
	}

	desynced := 0
	for _, r := range reports {
		if r.DesyncCount > 0 {
			desynced++
			log.Warn(r)
			for _, d := range r.Desyncs {
				log.Debugf("frame %d: desktop=%016x mirror=%016x delta=%.6f", d.Frame, d.Desktop, d.Mirror, d.Delta)
			}
			continue
		}
		log.Info(r)
	}
	if desynced > 0 {
		return fmt.Errorf("%d of %d recordings desynced", desynced, len(reports))
	}
	return nil
}
