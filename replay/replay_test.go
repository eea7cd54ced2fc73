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

package replay_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/retroreplay/curated"
	"github.com/jetsetilly/retroreplay/emulator"
	"github.com/jetsetilly/retroreplay/environment"
	"github.com/jetsetilly/retroreplay/integration"
	"github.com/jetsetilly/retroreplay/movie"
	"github.com/jetsetilly/retroreplay/replay"
	"github.com/jetsetilly/retroreplay/test"
)

const game = "Dodge-Toy"

// recording is what the emulator reported for each step of a recording
type recording struct {
	path   string
	keys   [][]bool
	steps  []emulator.Step
	sounds []emulator.Audio
}

// newEnv returns an environment with the stable integration exported to a
// custom path, which is what a replay with the default options expects.
func newEnv(t *testing.T) *environment.Environment {
	t.Helper()
	env := environment.NewEnvironment("", nil, 50)
	env.Normalise()

	dir := t.TempDir()
	_, err := env.Integrations.Export(game, integration.Stable, dir)
	test.DemandSuccess(t, err)
	env.Integrations.AddCustomPath(dir)

	return env
}

// record a session of random presses in the same way a participant's
// session is recorded: a reset followed by a number of steps.
func record(t *testing.T, env *environment.Environment, players int, steps int) recording {
	t.Helper()

	dir := t.TempDir()
	emu, err := emulator.Make(env, game, emulator.Options{
		Inttype: integration.CustomOnly,
		Record:  dir,
		Players: players,
	})
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, emu.Reset())

	rec := recording{path: emu.MoviePath()}

	buttons := emu.Buttons()
	for range steps {
		var pressed []bool
		for range players {
			pressed = append(pressed, env.Random.Presses(buttons, 0.5)...)
		}
		stp, err := emu.Step(pressed)
		test.DemandSuccess(t, err)
		rec.keys = append(rec.keys, pressed)
		rec.steps = append(rec.steps, stp)
		rec.sounds = append(rec.sounds, emu.Audio())
	}

	test.DemandSuccess(t, emu.Close())
	return rec
}

func compare(t *testing.T, rec recording, frm replay.Frame) {
	t.Helper()
	i := frm.Index

	test.DemandEquality(t, i < len(rec.steps), true, "too many frames")
	stp := rec.steps[i]

	test.ExpectSuccess(t, bytes.Equal(frm.Visual.Pix, stp.Frame.Pix), i, "visual")
	test.ExpectSliceEquality(t, frm.Pressed, rec.keys[i], i, "pressed")
	test.ExpectEquality(t, frm.Annotations.Reward, stp.Reward, i, "reward")
	test.ExpectEquality(t, frm.Annotations.Done, stp.Done(), i, "done")
	test.ExpectEquality(t, len(frm.Annotations.Info), len(stp.Info), i, "info")
	for k, v := range stp.Info {
		test.ExpectEquality(t, frm.Annotations.Info[k], v, i, k)
	}
	test.DemandEquality(t, frm.Sound != nil, true, i, "sound")
	test.ExpectSliceEquality(t, frm.Sound.Samples, rec.sounds[i].Samples, i, "audio")
	test.ExpectEquality(t, frm.Sound.Rate, rec.sounds[i].Rate, i, "audio rate")
}

func TestEndToEnd(t *testing.T) {
	env := newEnv(t)
	rec := record(t, env, 1, 50)

	mov, err := movie.Open(rec.path)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, mov.NumFrames(), 51)

	rp, err := replay.Open(env, rec.path, replay.DefaultOptions())
	test.DemandSuccess(t, err)
	defer rp.Close()

	var n int
	for frm, err := range rp.Frames() {
		test.DemandSuccess(t, err)
		test.ExpectEquality(t, frm.Index, n)
		compare(t, rec, frm)
		n++
	}
	test.ExpectEquality(t, n, 50)

	// the replay is exhausted
	_, err = rp.Next()
	test.ExpectSuccess(t, curated.Is(err, replay.EndOfLog))
	for range rp.Frames() {
		t.Errorf("a second range over an exhausted replay yields frames")
	}
}

func TestTwoPlayers(t *testing.T) {
	env := newEnv(t)
	rec := record(t, env, 2, 40)

	rp, err := replay.Open(env, rec.path, replay.DefaultOptions())
	test.DemandSuccess(t, err)
	defer rp.Close()

	test.ExpectEquality(t, rp.Players(), 2)
	test.ExpectEquality(t, len(rp.Actions()), 16)
	test.ExpectEquality(t, rp.Actions()[8], "P2 B")

	var n int
	for frm, err := range rp.Frames() {
		test.DemandSuccess(t, err)
		test.ExpectEquality(t, len(frm.Pressed), 16)
		compare(t, rec, frm)
		n++
	}
	test.ExpectEquality(t, n, 40)
}

// without skipping the first step, the replay has one more frame than the
// recording had steps
func TestNoSkip(t *testing.T) {
	env := newEnv(t)
	rec := record(t, env, 1, 30)

	opts := replay.DefaultOptions()
	opts.SkipFirstStep = false
	rp, err := replay.Open(env, rec.path, opts)
	test.DemandSuccess(t, err)
	defer rp.Close()

	col, err := replay.Collect(rp)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, col.Len(), 31)

	// the first frame is the reset frame
	for _, p := range col.Keys[0] {
		test.ExpectFailure(t, p)
	}
}

func TestIdempotence(t *testing.T) {
	env := newEnv(t)
	rec := record(t, env, 1, 60)

	run := func() *replay.Collection {
		rp, err := replay.Open(env, rec.path, replay.DefaultOptions())
		test.DemandSuccess(t, err)
		defer rp.Close()
		col, err := replay.Collect(rp)
		test.DemandSuccess(t, err)
		return col
	}

	a := run()
	b := run()
	test.DemandEquality(t, a.Len(), b.Len())
	test.ExpectEquality(t, a.Len(), 60)
	for i := range a.Len() {
		test.ExpectSuccess(t, bytes.Equal(a.Frames[i].Pix, b.Frames[i].Pix), i)
		test.ExpectSliceEquality(t, a.Keys[i], b.Keys[i], i)
		test.ExpectEquality(t, a.Annotations[i].Reward, b.Annotations[i].Reward, i)
		test.ExpectEquality(t, a.Annotations[i].Done, b.Annotations[i].Done, i)
		test.ExpectSliceEquality(t, a.Sounds[i].Samples, b.Sounds[i].Samples, i)
	}
}

func TestNoRender(t *testing.T) {
	env := newEnv(t)
	rec := record(t, env, 1, 5)

	opts := replay.DefaultOptions()
	opts.NoRender = true
	rp, err := replay.Open(env, rec.path, opts)
	test.DemandSuccess(t, err)
	defer rp.Close()

	for frm, err := range rp.Frames() {
		test.DemandSuccess(t, err)
		test.ExpectEquality(t, frm.Visual == nil, true)
	}
}

func TestConfiguration(t *testing.T) {
	env := newEnv(t)
	rec := record(t, env, 1, 5)

	// the default options only search custom integrations
	_, err := replay.Open(environment.NewEnvironment("", nil, 0), rec.path, replay.DefaultOptions())
	test.ExpectSuccess(t, curated.Has(err, replay.UnknownGame))
	test.ExpectSuccess(t, curated.Has(err, integration.UnknownIntegration))

	opts := replay.DefaultOptions()
	opts.Inttype = integration.Stable
	rp, err := replay.Open(environment.NewEnvironment("", nil, 0), rec.path, opts)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, rp.Close())

	opts = replay.DefaultOptions()
	opts.Scenario = "missing"
	_, err = replay.Open(env, rec.path, opts)
	test.ExpectSuccess(t, curated.Is(err, integration.MissingScenario))

	opts = replay.DefaultOptions()
	opts.Game = "Missing-Toy"
	_, err = replay.Open(env, rec.path, opts)
	test.ExpectSuccess(t, curated.Has(err, replay.UnknownGame))

	_, err = replay.Open(env, filepath.Join(t.TempDir(), "missing.bk2"), replay.DefaultOptions())
	test.ExpectSuccess(t, curated.Is(err, movie.NotAMovie))
}

func TestClaim(t *testing.T) {
	env := newEnv(t)
	rec := record(t, env, 1, 5)

	emu, err := emulator.Make(env, game, emulator.Options{Inttype: integration.CustomOnly})
	test.DemandSuccess(t, err)

	mov, err := movie.Open(rec.path)
	test.DemandSuccess(t, err)
	rp, err := replay.New(mov, emu, replay.DefaultOptions())
	test.DemandSuccess(t, err)

	// a second replay can not use the emulator
	mov2, err := movie.Open(rec.path)
	test.DemandSuccess(t, err)
	_, err = replay.New(mov2, emu, replay.DefaultOptions())
	test.ExpectSuccess(t, curated.Is(err, emulator.AlreadyClaimed))

	// until the first replay is closed
	test.DemandSuccess(t, rp.Close())
	rp, err = replay.New(mov2, emu, replay.DefaultOptions())
	test.DemandSuccess(t, err)
	col, err := replay.Collect(rp)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, col.Len(), 5)
	test.DemandSuccess(t, rp.Close())
}
