package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"blockfall/client"
	"blockfall/tetris"

	"github.com/charmbracelet/log"
	"golang.org/x/term"
)

const (
	hideCursor = "\033[?25l"
	showCursor = "\033[?25h"

	// rows and columns the layout needs around the board.
	extraRows = 10
	extraCols = 4
)

type config struct {
	logPath       string
	debug         bool
	noColor       bool
	seed          uint64
	width, height int
}

func main() {
	var c config
	flag.StringVar(&c.logPath, "log", "blockfall.log", "file the logs are written to")
	flag.BoolVar(&c.debug, "debug", false, "enable debug logs")
	flag.BoolVar(&c.noColor, "nocolor", false, "draw without colors")
	flag.Uint64Var(&c.seed, "seed", 0, "seed for the tetromino generator, 0 picks a random one")
	flag.IntVar(&c.width, "width", tetris.DefaultWidth, "board width")
	flag.IntVar(&c.height, "height", tetris.DefaultHeight, "board height")
	flag.Parse()

	if err := run(c); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c config) error {
	o := tetris.Options{Width: c.width, Height: c.height, Seed: c.seed}
	if err := o.Validate(); err != nil {
		return fmt.Errorf("invalid board size: %w", err)
	}
	if err := checkTerminal(c.width, c.height); err != nil {
		return err
	}

	f, err := os.OpenFile(c.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("unable to open log file: %w", err)
	}
	defer f.Close()

	level := log.InfoLevel
	if c.debug {
		level = log.DebugLevel
	}
	logger := slog.New(log.NewWithOptions(f, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "blockfall",
	}))

	cl, err := client.New(logger, &client.Options{
		NoColor: c.noColor,
		Tetris:  o,
	})
	if err != nil {
		logger.Error("unable to start client", slog.String("error", err.Error()))
		return err
	}
	defer cl.Close()

	fmt.Print(hideCursor)
	defer fmt.Print(showCursor)
	cl.Start()
	return nil
}

// checkTerminal makes sure the board fits on screen.
func checkTerminal(width, height int) error {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("blockfall has to run in a terminal")
	}
	cols, rows, err := term.GetSize(fd)
	if err != nil {
		return fmt.Errorf("unable to read terminal size: %w", err)
	}
	wantCols, wantRows := width*2+extraCols, height+extraRows
	if cols < wantCols || rows < wantRows {
		return fmt.Errorf("terminal is %dx%d, the game needs at least %dx%d", cols, rows, wantCols, wantRows)
	}
	return nil
}
