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
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jetsetilly/retroreplay/curated"
	"github.com/jetsetilly/retroreplay/database"
	"github.com/jetsetilly/retroreplay/digest"
	"github.com/jetsetilly/retroreplay/emulator"
	"github.com/jetsetilly/retroreplay/environment"
	"github.com/jetsetilly/retroreplay/integration"
	"github.com/jetsetilly/retroreplay/performance"
	"github.com/jetsetilly/retroreplay/replay"
	"github.com/jetsetilly/retroreplay/session"
)

// interrupted is the error produced by a replay that has been stopped by the
// user.
const interrupted = "replay interrupted at frame %d"

// replayFlags are the flags common to every mode that replays a movie.
type replayFlags struct {
	game         *string
	scenario     *string
	inttype      *string
	integrations *[]string
	skip         *bool
}

func (l *launcher) addReplayFlags() replayFlags {
	return replayFlags{
		game:         l.md.AddString("game", "", "game to use instead of the game named in the movie"),
		scenario:     l.md.AddString("scenario", "", "scenario name or path of scenario file"),
		inttype:      l.md.AddString("inttype", l.cfg.Inttype, "integrations to search: STABLE, CUSTOM, ALL"),
		integrations: l.md.AddStringList("integrations", "custom integration directory (can be repeated)"),
		skip:         l.md.AddBool("skip", l.cfg.SkipFirstStep, "skip the first frame of the input log"),
	}
}

// environment returns a new environment with the configured custom
// integrations and any integrations named on the command line.
func (l *launcher) environment(rf replayFlags, seed uint64) *environment.Environment {
	reg := l.cfg.Registry()
	if rf.integrations != nil {
		for _, p := range *rf.integrations {
			reg.AddCustomPath(p)
		}
	}
	return environment.NewEnvironment("", reg, seed)
}

func (l *launcher) replayOptions(rf replayFlags) (replay.Options, error) {
	opts := l.cfg.ReplayOptions()

	t, err := integration.ParseType(*rf.inttype)
	if err != nil {
		return replay.Options{}, err
	}
	opts.Inttype = t
	opts.SkipFirstStep = *rf.skip
	opts.Game = *rf.game
	opts.Scenario = *rf.scenario

	return opts, nil
}

// open a replay of the movie with the options from the flags.
func (l *launcher) open(rf replayFlags, path string, noRender bool) (*replay.Replay, error) {
	opts, err := l.replayOptions(rf)
	if err != nil {
		return nil, err
	}
	opts.NoRender = noRender

	rp, err := replay.Open(l.environment(rf, 0), path, opts)
	if err != nil {
		l.metrics.Failed("open")
		return nil, err
	}
	return rp, nil
}

// frames of the replay. the sequence ends with an error if the context is
// cancelled. the replay is counted as complete if every frame is consumed.
func (l *launcher) frames(rp *replay.Replay) iter.Seq2[replay.Frame, error] {
	return func(yield func(replay.Frame, error) bool) {
		start := time.Now()
		for frm, err := range rp.Frames() {
			if err == nil && l.ctx.Err() != nil {
				err = curated.Errorf(interrupted, frm.Index)
			}
			if err != nil {
				l.metrics.Failed("step")
				yield(replay.Frame{}, err)
				return
			}
			l.metrics.Frame()
			if !yield(frm, nil) {
				return
			}
		}
		l.metrics.Completed(time.Since(start))
	}
}

// outputName returns the flag value if it is set, otherwise the path with the
// extension replaced.
func outputName(flag string, path string, ext string) string {
	if flag != "" {
		return flag
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// movies expands the arguments into a list of movie files. Directories are
// searched for files with the .bk2 extension.
func movies(args []string) ([]string, error) {
	var m []string
	for _, a := range args {
		fi, err := os.Stat(a)
		if err != nil || !fi.IsDir() {
			m = append(m, a)
			continue
		}

		err = filepath.WalkDir(a, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".bk2") {
				m = append(m, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (l *launcher) replay() error {
	l.md.NewMode()
	rf := l.addReplayFlags()
	profile := l.md.AddString("profile", "none", "profile the replay: CPU, MEM, TRACE, ALL (can be combined)")
	hz := l.md.AddFloat64("hz", 60, "frame rate of the recording, for the fps report")

	if ok, err := l.parse(); !ok {
		return err
	}

	if len(l.md.RemainingArgs()) == 0 {
		return fmt.Errorf("movie file required for %s mode", l.md)
	}

	prof, err := performance.ParseProfile(*profile)
	if err != nil {
		return err
	}

	paths, err := movies(l.md.RemainingArgs())
	if err != nil {
		return err
	}

	return performance.RunProfiler(prof, "replay", func() error {
		for _, path := range paths {
			if err := l.replayOne(rf, path, *hz); err != nil {
				return err
			}
		}
		return nil
	})
}

func (l *launcher) replayOne(rf replayFlags, path string, hz float64) error {
	rp, err := l.open(rf, path, true)
	if err != nil {
		return err
	}
	defer rp.Close()

	var frames int
	var reward float64
	firstDone := -1

	start := time.Now()

	for frm, err := range l.frames(rp) {
		if err != nil {
			return err
		}
		frames++
		reward += frm.Annotations.Reward
		if frm.Annotations.Done && firstDone == -1 {
			firstDone = frm.Index
		}
	}

	done := "never"
	if firstDone >= 0 {
		done = fmt.Sprintf("at frame %d", firstDone)
	}
	fps, accuracy := performance.CalcFPS(frames, time.Since(start).Seconds(), hz)
	fmt.Fprintf(l.output, "%s: %d frames, reward %.2f, done %s (%.0f fps, %.0f%%)\n", path, frames, reward, done, fps, accuracy)

	return nil
}

func (l *launcher) record() error {
	l.md.NewMode()
	rf := l.addReplayFlags()
	state := l.md.AddString("state", "", "state to start from (default is the state named by the integration)")
	players := l.md.AddInt("players", 1, "number of players")
	steps := l.md.AddInt("steps", 600, "maximum number of steps to record")
	seed := l.md.AddUint64("seed", 0, "seed for the random presses (zero is a time based seed)")
	prob := l.md.AddFloat64("prob", 0.25, "probability of a button being pressed on a step")
	dir := l.md.AddString("dir", ".", "directory for the recorded movie")

	if ok, err := l.parse(); !ok {
		return err
	}

	if len(l.md.RemainingArgs()) != 1 {
		return fmt.Errorf("one game required for %s mode", l.md)
	}

	s := *seed
	if s == 0 {
		s = uint64(time.Now().UnixNano())
	}
	env := l.environment(rf, s)

	opts, err := l.replayOptions(rf)
	if err != nil {
		return err
	}

	emu, err := emulator.Make(env, l.md.GetArg(0), emulator.Options{
		Scenario: opts.Scenario,
		Inttype:  opts.Inttype,
		State:    *state,
		Record:   *dir,
		NoRender: true,
		Players:  *players,
	})
	if err != nil {
		return err
	}

	if err := emu.Reset(); err != nil {
		_ = emu.Close()
		return err
	}

	path := emu.MoviePath()

	n := 0
	for n < *steps && l.ctx.Err() == nil {
		var pressed []bool
		for range emu.Players() {
			pressed = append(pressed, env.Random.Presses(emu.Buttons(), *prob)...)
		}

		stp, err := emu.Step(pressed)
		if err != nil {
			_ = emu.Close()
			return err
		}
		n++

		if stp.Done() {
			break // for loop
		}
	}

	if err := emu.Close(); err != nil {
		return err
	}

	fmt.Fprintf(l.output, "recorded %d steps to %s\n", n, path)

	return nil
}

func (l *launcher) reformat() error {
	l.md.NewMode()
	rf := l.addReplayFlags()
	out := l.md.AddString("o", "", "output JSON file (default is the movie name with .json extension)")
	store := l.md.AddBool("store", false, "add the session record to the database")
	dbPath := l.md.AddString("db", l.cfg.Database, "session record database")

	if ok, err := l.parse(); !ok {
		return err
	}

	if len(l.md.RemainingArgs()) != 1 {
		return fmt.Errorf("one movie file required for %s mode", l.md)
	}
	path := l.md.GetArg(0)

	// the filename must describe the session before any replay is attempted
	if _, err := session.ParseFilename(path); err != nil {
		return err
	}

	rp, err := l.open(rf, path, true)
	if err != nil {
		return err
	}
	defer rp.Close()

	rec, err := session.FromFrames(l.frames(rp), path, rp.Actions())
	if err != nil {
		return err
	}

	fn := outputName(*out, path, ".json")
	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	if err := rec.WriteJSON(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(l.output, "%s\nwritten to %s\n", rec, fn)

	if *store {
		db, err := database.StartSession(*dbPath, database.ActivityCreating)
		if err != nil {
			return err
		}
		ent, err := db.Add(l.ctx, rec)
		if err != nil {
			_ = db.EndSession()
			return err
		}
		if err := db.EndSession(); err != nil {
			return err
		}
		fmt.Fprintf(l.output, "stored as %s\n", ent.ID)
	}

	return nil
}

func (l *launcher) digest() error {
	l.md.NewMode()
	rf := l.addReplayFlags()

	if ok, err := l.parse(); !ok {
		return err
	}

	if len(l.md.RemainingArgs()) == 0 {
		return fmt.Errorf("movie file required for %s mode", l.md)
	}

	paths, err := movies(l.md.RemainingArgs())
	if err != nil {
		return err
	}

	for _, path := range paths {
		rp, err := l.open(rf, path, false)
		if err != nil {
			return err
		}

		res, err := digest.Frames(l.frames(rp))
		rp.Close()
		if err != nil {
			return err
		}

		fmt.Fprintf(l.output, "%s\n%s\n", path, res)
	}

	return nil
}
