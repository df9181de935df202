package main

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	gdatarepo "homestead/internal/adapter/repo/gdata"
	"homestead/internal/app/driver"
	"homestead/internal/app/ports"
	"homestead/internal/config"
	"homestead/internal/domain/homestead"
	"homestead/internal/domain/world"
	"homestead/internal/logger"

	"github.com/google/uuid"
)

type options struct {
	FarmID   string
	Steps    int
	Step     time.Duration
	Every    int
	PatchW   int
	PatchH   int
	Fresh    bool
	Seed     int64
	Catalog  string
	AppName  string
	LogLevel string
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("farmsim", flag.ContinueOnError)
	fs.StringVar(&o.FarmID, "farm", "local", "save slot name")
	fs.IntVar(&o.Steps, "steps", 600, "simulation steps to run")
	fs.DurationVar(&o.Step, "step", driver.DefaultStep, "simulated time per step")
	fs.IntVar(&o.Every, "every", driver.DefaultPilotEvery, "steps between autopilot passes")
	fs.IntVar(&o.PatchW, "w", 3, "autopilot patch width")
	fs.IntVar(&o.PatchH, "h", 2, "autopilot patch height")
	fs.BoolVar(&o.Fresh, "fresh", false, "ignore the saved farm and start over")
	fs.Int64Var(&o.Seed, "seed", 0, "mission shuffle seed for a new farm (0 = random)")
	fs.StringVar(&o.Catalog, "catalog", os.Getenv("HOMESTEAD_CATALOG"), "content yaml path (empty = built-in)")
	fs.StringVar(&o.AppName, "app", "homestead", "save data application name")
	fs.StringVar(&o.LogLevel, "log-level", "info", "log level")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if o.Steps <= 0 || o.Step <= 0 || o.Every <= 0 || o.PatchW <= 0 || o.PatchH <= 0 {
		return options{}, errors.New("steps, step, every, w and h must be positive")
	}
	return o, nil
}

func main() {
	o, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := logger.Setup(logger.Config{Level: o.LogLevel, Format: logger.FormatText, ServiceName: "farmsim"})

	repo, err := gdatarepo.Open(o.AppName)
	if err != nil {
		log.Error("open save data", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, o, repo, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("farmsim failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, o options, repo ports.FarmStateRepository, out io.Writer) error {
	log := slog.Default().With("run_id", uuid.NewString(), "farm", o.FarmID)

	content, err := loadContent(o.Catalog)
	if err != nil {
		return err
	}
	opts, err := content.Options(log)
	if err != nil {
		return err
	}
	opts.Messenger = messengerFunc(func(msg string) { log.Debug("farm", "msg", msg) })

	g, version, err := loadGame(ctx, repo, o, opts)
	if err != nil {
		return err
	}
	defer g.Close()

	loop := &driver.Loop{
		Game:       g,
		Step:       o.Step,
		Pilot:      driver.NewAutopilot(g.Farm.Field(), world.Point{}, o.PatchW, o.PatchH),
		PilotEvery: o.Every,
		Logger:     log,
		OnEvents: func(events []homestead.Event) {
			for _, e := range events {
				log.Info("event", "type", e.Type, "elapsed_ms", e.Elapsed)
			}
		},
	}
	stats, runErr := loop.Run(ctx, o.Steps)

	state := ports.FarmState{
		FarmID:    o.FarmID,
		Snapshot:  g.Snapshot(),
		Version:   version + 1,
		UpdatedAt: time.Now().UTC(),
	}
	if err := repo.SaveWithVersion(ctx, state, version); err != nil {
		return fmt.Errorf("save farm %s: %w", o.FarmID, err)
	}

	printSummary(out, g, stats)
	return runErr
}

func loadContent(path string) (*config.Content, error) {
	if path == "" {
		return config.DefaultContent()
	}
	return config.LoadContent(path)
}

// loadGame resumes the saved farm unless fresh is set, returning the
// stored version (0 for a new farm).
func loadGame(ctx context.Context, repo ports.FarmStateRepository, o options, opts homestead.Options) (*homestead.Game, int64, error) {
	saved, err := repo.GetByFarmID(ctx, o.FarmID)
	switch {
	case err == nil:
		if o.Fresh {
			g, err := newGame(o, opts)
			return g, saved.Version, err
		}
		g, err := homestead.Restore(opts, saved.Snapshot)
		if err != nil {
			return nil, 0, fmt.Errorf("restore farm %s: %w", o.FarmID, err)
		}
		return g, saved.Version, nil
	case errors.Is(err, ports.ErrNotFound):
		g, err := newGame(o, opts)
		return g, 0, err
	default:
		return nil, 0, err
	}
}

func newGame(o options, opts homestead.Options) (*homestead.Game, error) {
	opts.Seed = o.Seed
	if opts.Seed == 0 {
		var b [8]byte
		if _, err := rand.Read(b[:]); err != nil {
			return nil, err
		}
		opts.Seed = int64(binary.LittleEndian.Uint64(b[:]) >> 1)
	}
	return homestead.New(opts)
}

func printSummary(out io.Writer, g *homestead.Game, stats driver.Stats) {
	v := g.View()
	fmt.Fprintf(out, "ran %d steps (%s simulated, %s total)\n", stats.Steps, stats.Elapsed, g.Elapsed())
	fmt.Fprintf(out, "actions: %v rejected: %d\n", stats.Actions, stats.Rejected)
	fmt.Fprintf(out, "inventory: %v\n", v.Inventory)
	for _, o := range v.Objectives {
		fmt.Fprintf(out, "- %s\n", o.Status)
	}
	if v.MissionIdle {
		fmt.Fprintln(out, "no missions left")
	}
}

type messengerFunc func(string)

func (f messengerFunc) Show(msg string) {
	f(msg)
}
