// This file is part of Retroreplay.
//
// Retroreplay is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Retroreplay is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Retroreplay.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/jetsetilly/retroreplay/config"
	"github.com/jetsetilly/retroreplay/logger"
	"github.com/jetsetilly/retroreplay/metrics"
	"github.com/jetsetilly/retroreplay/modalflag"
	"github.com/jetsetilly/retroreplay/statsview"
)

// exit values
const (
	exitOK         = 0
	exitParseError = 10
	exitModeError  = 20
)

// launcher is the state shared by every mode.
type launcher struct {
	ctx     context.Context
	md      *modalflag.Modes
	output  io.Writer
	cfg     config.Config
	metrics *metrics.Metrics
}

// #mainthread
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	// #ctrlc the first interrupt cancels the context. replays stop at the
	// next frame. a second interrupt ends the program immediately
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	quit := make(chan int)
	go func() {
		quit <- launch(ctx, os.Args[1:], os.Stdout)
	}()

	exitVal := exitOK
	done := false
	interrupted := false
	for !done {
		select {
		case <-intChan:
			fmt.Print("\r")
			if interrupted {
				os.Exit(exitModeError)
			}
			interrupted = true
			cancel()

		case exitVal = <-quit:
			done = true
		}
	}

	cancel()
	os.Exit(exitVal)
}

// launch parses the arguments and runs the selected mode. Returns the exit
// value for the program.
func launch(ctx context.Context, args []string, output io.Writer) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)

	cfgFile := md.AddString("config", "", "configuration file (default is in the resource directory)")
	echo := md.AddBool("log", false, "echo log to stderr")
	md.AddSubModes("REPLAY", "RECORD", "REFORMAT", "GIF", "WAV", "VIDEO", "PLOT", "DIGEST", "REGRESS", "LIST", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return exitOK
	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitParseError
	}

	var cfg config.Config
	if *cfgFile != "" {
		cfg, err = config.Load(*cfgFile)
	} else {
		cfg, err = config.LoadResource()
	}
	if err != nil {
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitParseError
	}

	if *echo || cfg.LogEcho {
		logger.SetEcho(os.Stderr, false)
		defer logger.SetEcho(nil, false)
	}

	l := &launcher{
		ctx:     ctx,
		md:      md,
		output:  output,
		cfg:     cfg,
		metrics: metrics.NewMetrics(),
	}

	if cfg.Statsview {
		statsview.Launch(output, cfg.StatsviewAddress)
	}

	if cfg.MetricsAddress != "" {
		go func() {
			if err := l.metrics.Serve(ctx, cfg.MetricsAddress); err != nil {
				logger.Log(logger.Allow, "metrics", err)
			}
		}()
	}

	switch md.Mode() {
	case "REPLAY":
		err = l.replay()
	case "RECORD":
		err = l.record()
	case "REFORMAT":
		err = l.reformat()
	case "GIF":
		err = l.gif()
	case "WAV":
		err = l.wav()
	case "VIDEO":
		err = l.video()
	case "PLOT":
		err = l.plot()
	case "DIGEST":
		err = l.digest()
	case "REGRESS":
		err = l.regress()
	case "LIST":
		err = l.list()
	case "VERSION":
		err = l.version()
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %v\n", md, err)
		return exitModeError
	}

	return exitOK
}

// parse the current mode's flags. returns false if the mode should not
// continue, which is not necessarily an error.
func (l *launcher) parse() (bool, error) {
	p, err := l.md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return false, err
	}
	return true, nil
}
