package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/lixenwraith/minesim/config"
)

// options holds command-line values; only flags the user set override the config file
type options struct {
	configPath string
	importPath string
	headless   bool
	logPath    string

	set map[string]bool

	world    string
	images   string
	seed     uint64
	speed    float64
	duration time.Duration
	listen   string
	sound    bool
	check    bool
}

func parseFlags(args []string) (*options, error) {
	o := &options{set: make(map[string]bool)}
	fs := flag.NewFlagSet("minesim", flag.ContinueOnError)

	fs.StringVar(&o.configPath, "config", "", "TOML configuration file")
	fs.StringVar(&o.importPath, "import", "", "import a world file into the configured database and exit")
	fs.BoolVar(&o.headless, "headless", false, "run without the terminal UI")
	fs.StringVar(&o.logPath, "log", "", "log file (terminal UI discards logs otherwise)")

	fs.StringVar(&o.world, "world", "", "world file")
	fs.StringVar(&o.images, "images", "", "image list file")
	fs.Uint64Var(&o.seed, "seed", 0, "random seed")
	fs.Float64Var(&o.speed, "speed", 0, "virtual time multiplier")
	fs.DurationVar(&o.duration, "duration", 0, "stop a headless run at this virtual time")
	fs.StringVar(&o.listen, "listen", "", "spectator websocket address, e.g. :8080")
	fs.BoolVar(&o.sound, "sound", false, "enable audio cues")
	fs.BoolVar(&o.check, "check", false, "verify world invariants after every step")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })
	return o, nil
}

// apply overrides cfg with every flag given on the command line
func (o *options) apply(cfg *config.Config) {
	if o.set["world"] {
		cfg.World.File = o.world
		cfg.Database.DSN = ""
	}
	if o.set["images"] {
		cfg.World.Images = o.images
	}
	if o.set["seed"] {
		cfg.Simulation.Seed = o.seed
	}
	if o.set["speed"] {
		cfg.Simulation.Speed = o.speed
	}
	if o.set["duration"] {
		cfg.Simulation.Duration = config.Duration{Duration: o.duration}
	}
	if o.set["listen"] {
		cfg.Network.Listen = o.listen
	}
	if o.set["sound"] {
		cfg.Audio.Enabled = o.sound
	}
	if o.set["check"] {
		cfg.Simulation.Check = o.check
	}
}

func loadConfig(o *options) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return cfg, err
		}
	}
	o.apply(&cfg)
	return cfg, cfg.Validate()
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run returns the process exit code so deferred cleanup completes before exit
func run(args []string) int {
	opts, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		return 1
	}

	headless := opts.headless || !term.IsTerminal(int(os.Stdout.Fd()))

	var fallback io.Writer = os.Stderr
	if !headless {
		fallback = io.Discard
	}
	logFile, err := setupLogging(opts.logPath, fallback)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	if logFile != nil {
		defer logFile.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.importPath != "" {
		if err := importWorld(ctx, cfg, opts.importPath); err != nil {
			fmt.Fprintf(os.Stderr, "Import failed: %v\n", err)
			return 1
		}
		return 0
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		return 1
	}
	defer a.close()

	if headless {
		err = a.runHeadless(ctx)
	} else {
		err = a.runTerminal(ctx)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("Run ended with error: %v", err)
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	return 0
}
