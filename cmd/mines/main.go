package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var (
	log = logrus.New()

	configPath string
)

func init() {
	const usage = "config file path (environment only when empty)"
	flag.StringVar(&configPath, "config", "", usage)
	flag.StringVar(&configPath, "c", "", usage+" (shorthand)")
}

func setupLogging(cfg *config.Config) error {
	log.SetLevel(cfg.LogLevel())
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	log.SetOutput(os.Stderr)

	if cfg.Log.File != "" {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   cfg.Log.File,
			MaxSize:    cfg.Log.MaxSize,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAge,
			Level:      cfg.LogLevel(),
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			return fmt.Errorf("unable to create log file hook: %w", err)
		}
		log.AddHook(hook)
	}

	mines.Log = log
	return nil
}

func createRand(seed uint64) *rand.Rand {
	if seed != 0 {
		return rand.New(rand.NewPCG(seed, seed))
	}
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func main() {
	mainCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal("unable to load config: ", err)
	}

	if err := setupLogging(cfg); err != nil {
		log.Fatal(err)
	}

	log.Info("starting up, mode = ", cfg.Mode)
	log.WithFields(cfg.Fields()).Debug("config")

	difficulty, err := mines.ParseDifficulty(cfg.Difficulty)
	if err != nil {
		log.Fatal(err)
	}

	sh := newShell(os.Stdout, mines.NewSession(difficulty, createRand(cfg.Seed), nil))
	fmt.Fprint(os.Stdout, helpText)

	lines := make(chan string)
	ticks := make(chan time.Time, 1)

	// stdin reads cannot be interrupted; the reader dies with the process
	go readLines(os.Stdin, lines)

	g, gCtx := errgroup.WithContext(mainCtx)
	g.Go(func() error {
		return sh.run(gCtx, lines, ticks)
	})
	g.Go(func() error {
		return tick(gCtx, cfg.TickInterval, ticks)
	})

	if err := g.Wait(); err != nil &&
		!errors.Is(err, errQuit) && !errors.Is(err, context.Canceled) {
		log.Printf("exit reason: %s\n", err)
	}
	log.Info("bye")
}
