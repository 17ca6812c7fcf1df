package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

// shell owns the session; every call into it happens on the run goroutine.
type shell struct {
	out     io.Writer
	session *mines.Session

	shownTime int64 // last elapsed value written to out
}

func newShell(out io.Writer, session *mines.Session) *shell {
	return &shell{out: out, session: session, shownTime: -1}
}

func (sh *shell) render() {
	renderBoard(sh.out, sh.session)
	sh.shownTime = sh.session.ElapsedSeconds()
}

// refreshTimer prints the elapsed time of a running game whenever it differs
// from what the player last saw.
func (sh *shell) refreshTimer() {
	if sh.session.State() != mines.Playing {
		return
	}
	elapsed := sh.session.ElapsedSeconds()
	if elapsed == sh.shownTime {
		return
	}
	sh.shownTime = elapsed
	fmt.Fprintf(sh.out, "time: %03d\n", elapsed)
}

func (sh *shell) run(ctx context.Context, lines <-chan string, ticks <-chan time.Time) error {
	sh.render()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return errQuit
			}
			if err := sh.execute(line); err != nil {
				return err
			}
		case <-ticks:
			sh.refreshTimer()
		}
	}
}

// execute runs every ';'-separated command in line. Only errQuit is
// returned; other command errors are reported to the player.
func (sh *shell) execute(line string) error {
	before := sh.session.State()
	redraw := false

	for _, c := range byPiece(line, ";") {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		verb, err := executeCommand(sh.session, c)
		if err == errQuit {
			return err
		}
		if err != nil {
			log.WithFields(logrus.Fields{
				"command": c,
				"error":   err,
			}).Debug("command failed")
			fmt.Fprintln(sh.out, "error:", err)
			continue
		}
		switch verb {
		case "o", "f", "n", "r", "p":
			redraw = true
		case "t":
			sh.shownTime = sh.session.ElapsedSeconds()
			fmt.Fprintf(sh.out, "time: %03d\n", sh.shownTime)
		case "h":
			fmt.Fprint(sh.out, helpText)
		}
	}

	if redraw {
		sh.render()
	}
	if after := sh.session.State(); after != before && after.Terminal() {
		log.WithFields(logrus.Fields{
			"state":      after,
			"difficulty": sh.session.Difficulty(),
			"elapsed":    sh.session.ElapsedSeconds(),
		}).Info("game over")
		renderSummary(sh.out, sh.session)
	}
	return nil
}

// readLines forwards lines from r until EOF, then closes lines.
func readLines(r io.Reader, lines chan<- string) {
	defer close(lines)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines <- scanner.Text()
	}
	if err := scanner.Err(); err != nil {
		log.Error("read: ", err)
	}
}

func tick(ctx context.Context, interval time.Duration, ticks chan<- time.Time) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case t := <-ticker.C:
			select {
			case ticks <- t:
			default:
			}
		}
	}
}
