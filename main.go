package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gruntwork-io/go-commons/errors"
	"github.com/nickysemenza/gola"
	"github.com/robmorgan/orbit/audio"
	"github.com/robmorgan/orbit/config"
	"github.com/robmorgan/orbit/engine"
	"github.com/robmorgan/orbit/fixture"
	"github.com/robmorgan/orbit/logger"
	"github.com/robmorgan/orbit/osctrigger"
	"github.com/robmorgan/orbit/trigger"
	"github.com/robmorgan/orbit/ui"
	"k8s.io/utils/clock"
)

type placement struct {
	angle float64
	kind  trigger.NoteKind
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	headless := flag.Bool("headless", false, "run without the terminal ui")
	bpm := flag.Float64("bpm", 0, "initial tempo in BPM, overrides the config")
	triggers := flag.String("triggers", "", `initial trigger points, e.g. "0:accent,90,180,270"`)
	logFile := flag.String("log-file", "orbit.log", "where the terminal ui writes its logs")
	flag.Parse()

	logger := logger.GetProjectLogger()

	cfg := config.NewConfig()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			logger.Fatalf("error loading config. err='%v'", err)
		}
	}
	if *bpm > 0 {
		cfg.Tempo.Initial = *bpm
	}

	points, err := parseTriggers(*triggers)
	if err != nil {
		logger.Fatalf("error parsing triggers. err='%v'", err)
	}

	if err := Run(context.Background(), cfg, points, *headless, *logFile); err != nil {
		logger.Fatalf("%v", err)
	}
}

// Run wires the engine to its outputs and plays until interrupted.
func Run(ctx context.Context, cfg config.Config, points []placement, headless bool, logFile string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger := logger.GetProjectLogger()
	if err := loggerSetup(cfg, headless, logFile); err != nil {
		return err
	}

	wg := sync.WaitGroup{}
	realClock := clock.RealClock{}

	var emitters audio.Fanout
	var queues []*audio.Async
	queued := func(e audio.Emitter) {
		q := audio.NewAsync(e, cfg.Audio.QueueSize)
		queues = append(queues, q)
		emitters = append(emitters, q)
	}
	defer func() {
		for _, q := range queues {
			q.Close()
		}
	}()

	if cfg.Audio.Enabled {
		logger.Info("Initializing speaker...")
		click, err := audio.NewClick(audio.ClickConfig{
			SampleRate: cfg.Audio.SampleRate,
			RegularHz:  cfg.Audio.RegularHz,
			AccentHz:   cfg.Audio.AccentHz,
			Gain:       cfg.Audio.Gain,
			Duration:   cfg.Audio.Duration,
			Attack:     cfg.Audio.Attack,
		})
		if err != nil {
			logger.Errorf("could not initialize speaker, continuing without sound: %v", err)
		} else {
			queued(click)
		}
	}

	if cfg.OSC.Enabled {
		logger.Infof("Sending beats over OSC to %s:%d%s", cfg.OSC.Host, cfg.OSC.Port, cfg.OSC.Address)
		queued(osctrigger.NewEmitter(cfg.OSC.Host, cfg.OSC.Port, cfg.OSC.Address))
	}

	if cfg.DMX.Enabled {
		logger.Info("Connecting to OLA...")
		flash, err := fixture.NewFlashFixtureFromConfig(realClock, cfg.DMX)
		if err != nil {
			return errors.WithStackTrace(err)
		}
		client, err := gola.New(cfg.DMX.OLAAddress)
		if err != nil {
			logger.Errorf("could not connect to OLA, continuing without lights: %v", err)
		} else {
			emitters = append(emitters, flash)
			wg.Add(1)
			go fixture.SendDMXWorker(ctx, client, realClock, cfg.DMX.FrameInterval, flash, &wg)
		}
	}

	notifier := &ui.Notifier{}
	if !headless {
		queued(notifier)
	}

	driver := engine.NewDriver(realClock, emitters, engine.OptionsFromConfig(cfg))
	for _, p := range points {
		driver.AddTrigger(p.angle, p.kind)
	}

	if headless {
		err := runHeadless(ctx, driver, &wg)
		cancel()
		wg.Wait()
		return err
	}

	p := tea.NewProgram(ui.NewModel(driver, engine.DefaultFrameInterval))
	notifier.Attach(p)
	_, err := p.Run()

	driver.Stop()
	cancel()
	wg.Wait()
	return errors.WithStackTrace(err)
}

func runHeadless(ctx context.Context, driver *engine.Driver, wg *sync.WaitGroup) error {
	logger := logger.GetProjectLogger()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	driver.Start()
	wg.Add(1)
	go func() {
		defer wg.Done()
		driver.Run(ctx)
	}()

	// handle CTRL+C interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	defer signal.Stop(quit)

	select {
	case <-quit:
	case <-ctx.Done():
	}
	logger.Println("shutting down orbit")
	driver.Stop()
	return nil
}

func loggerSetup(cfg config.Config, headless bool, logFile string) error {
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		return errors.WithStackTrace(err)
	}
	if headless {
		return nil
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return errors.WithStackTrace(err)
	}
	logger.SetOutput(f)
	return nil
}

// parseTriggers reads a comma separated list of angles, each optionally followed by ":accent" or ":regular".
func parseTriggers(s string) ([]placement, error) {
	var out []placement
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		angleStr, kindStr, hasKind := strings.Cut(field, ":")
		angle, err := strconv.ParseFloat(strings.TrimSpace(angleStr), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid trigger angle %q: %w", angleStr, err)
		}

		kind := trigger.DefaultNoteKind
		if hasKind {
			if kind, err = trigger.ParseNoteKind(strings.TrimSpace(kindStr)); err != nil {
				return nil, err
			}
		}
		out = append(out, placement{angle: angle, kind: kind})
	}
	return out, nil
}
