// Command constellation animates a field of particles joined by proximity
// lines in a window. Particles push and pull their neighbors and flee the
// cursor or touch points.
//
// Usage:
//
//	constellation [-config file.toml] [-width w] [-height h] [-seed n] [-fps] [-debug]
//
// Keys: Space start/stop, B batched drawing, P ping-pong updates, F stats
// overlay, Up/Down density, R reseed, 1-9 presets, Esc quit.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/coreyshuman/Constellation/internal/config"
	"github.com/coreyshuman/Constellation/internal/constellation"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a TOML config file")
		width      = flag.Int("width", 0, "window width, overrides the config file")
		height     = flag.Int("height", 0, "window height, overrides the config file")
		seed       = flag.Int64("seed", 0, "random seed, 0 picks one from the clock")
		showFPS    = flag.Bool("fps", false, "show the stats overlay")
		debug      = flag.Bool("debug", false, "write logs to "+config.LogDir+"/"+config.LogFileName)
	)
	flag.Parse()

	logFile, err := config.SetupLogging(*debug, config.LogDir)
	if err != nil {
		Fatal(err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	conf := config.Default()
	if *configPath != "" {
		if conf, err = config.Load(*configPath); err != nil {
			Fatal(err)
		}
	}
	if *width > 0 {
		conf.Window.Width = *width
	}
	if *height > 0 {
		conf.Window.Height = *height
	}
	if *seed != 0 {
		conf.Seed = *seed
	}
	if conf.Seed == 0 {
		conf.Seed = time.Now().UnixNano()
	}
	conf.ShowFPS = conf.ShowFPS || *showFPS

	settings, err := conf.SimulationSettings()
	if err != nil {
		Fatal(err)
	}

	g := newGame(conf)
	g.sim, err = constellation.New(constellation.Options{
		Settings:  settings,
		Scheduler: g,
		Surface:   g.surface,
		Logger:    log.Default(),
		Seed:      conf.Seed,
	})
	if err != nil {
		Fatal(err)
	}
	log.Printf("seed %d, window %dx%d", conf.Seed, conf.Window.Width, conf.Window.Height)

	ebiten.SetWindowSize(conf.Window.Width, conf.Window.Height)
	ebiten.SetWindowTitle(conf.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(conf.Window.TPS)
	ebiten.SetScreenClearedEveryFrame(false)

	if err := ebiten.RunGame(g); err != nil {
		Fatal(err)
	}
}

// Fatal prints an error on the standard error and exits with a non-zero status.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	os.Exit(1)
}
