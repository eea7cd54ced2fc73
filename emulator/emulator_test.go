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

package emulator_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/retroreplay/curated"
	"github.com/jetsetilly/retroreplay/emulator"
	"github.com/jetsetilly/retroreplay/environment"
	"github.com/jetsetilly/retroreplay/integration"
	"github.com/jetsetilly/retroreplay/movie"
	"github.com/jetsetilly/retroreplay/test"
)

const game = "Dodge-Toy"

func newEnv() *environment.Environment {
	env := environment.NewEnvironment("", nil, 1)
	env.Normalise()
	return env
}

func TestMake(t *testing.T) {
	emu, err := emulator.Make(newEnv(), game, emulator.Options{})
	test.DemandSuccess(t, err)
	defer emu.Close()

	test.ExpectEquality(t, emu.Game().Name, game)
	test.ExpectEquality(t, emu.Players(), 1)
	test.ExpectEquality(t, emu.NumButtons(), 8)
	test.ExpectSliceEquality(t, emu.Buttons(), []string{"B", "A", "SELECT", "START", "UP", "DOWN", "LEFT", "RIGHT"})
	test.ExpectEquality(t, emu.Scenario().Name, "scenario")

	// only custom integrations are searched
	_, err = emulator.Make(newEnv(), game, emulator.Options{Inttype: integration.CustomOnly})
	test.ExpectSuccess(t, curated.Is(err, integration.UnknownIntegration))

	_, err = emulator.Make(newEnv(), game, emulator.Options{Scenario: "missing"})
	test.ExpectSuccess(t, curated.Is(err, integration.MissingScenario))

	_, err = emulator.Make(newEnv(), game, emulator.Options{Players: 3})
	test.ExpectSuccess(t, curated.Is(err, emulator.TooManyPlayers))

	_, err = emulator.Make(newEnv(), game, emulator.Options{State: "Level9"})
	test.ExpectFailure(t, err)
}

func TestUnknownSystem(t *testing.T) {
	dir := t.TempDir()
	test.DemandSuccess(t, os.MkdirAll(filepath.Join(dir, "Dodge-Vectrex"), 0o755))
	test.DemandSuccess(t, os.WriteFile(filepath.Join(dir, "Dodge-Vectrex", "data.json"), []byte(`{"info": {}}`), 0o644))

	env := newEnv()
	env.Integrations.AddCustomPath(dir)

	_, err := emulator.Make(env, "Dodge-Vectrex", emulator.Options{Inttype: integration.CustomOnly})
	test.ExpectSuccess(t, curated.Is(err, emulator.UnknownSystem))
}

func TestStepBeforeReset(t *testing.T) {
	emu, err := emulator.Make(newEnv(), game, emulator.Options{})
	test.DemandSuccess(t, err)

	_, err = emu.Step(make([]bool, 8))
	test.ExpectSuccess(t, curated.Is(err, emulator.NotReset))

	test.DemandSuccess(t, emu.Reset())
	_, err = emu.Step(make([]bool, 7))
	test.ExpectSuccess(t, curated.Is(err, emulator.ButtonCount))
}

func TestStep(t *testing.T) {
	emu, err := emulator.Make(newEnv(), game, emulator.Options{})
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, emu.Reset())

	right := []bool{false, false, false, false, false, false, false, true}

	x := -1
	for range 10 {
		stp, err := emu.Step(right)
		test.DemandSuccess(t, err)
		test.ExpectSliceEquality(t, stp.Info.Keys(), []string{"level", "lives", "score", "x", "y"})
		if x != -1 {
			test.ExpectEquality(t, stp.Info["x"], x+1)
		}
		x = stp.Info["x"]

		test.ExpectInequality(t, stp.Frame, nil)
		test.ExpectEquality(t, len(emu.Audio().Samples), 368)
		test.ExpectEquality(t, emu.Audio().Rate, 11040.0)
	}

	// modifying the returned info does not change the emulation
	stp, err := emu.Step(right)
	test.DemandSuccess(t, err)
	stp.Info["score"] = 1000
	stp, err = emu.Step(right)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, stp.Reward < 1000, true)
}

func TestNoRender(t *testing.T) {
	emu, err := emulator.Make(newEnv(), game, emulator.Options{NoRender: true})
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, emu.Reset())
	stp, err := emu.Step(make([]bool, 8))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, stp.Frame == nil, true)
}

func TestState(t *testing.T) {
	emu, err := emulator.Make(newEnv(), game, emulator.Options{State: "Level3"})
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, emu.Reset())
	stp, err := emu.Step(make([]bool, 8))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, stp.Info["level"], 3)

	// the initial state can be replaced
	other, err := emulator.Make(newEnv(), game, emulator.Options{State: emulator.PowerOn})
	test.DemandSuccess(t, err)
	emu.SetInitialState(other.InitialState())
	test.DemandSuccess(t, emu.Reset())
	stp, err = emu.Step(make([]bool, 8))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, stp.Info["level"], 0)
}

// two emulators given the same input produce the same steps
func TestDeterminism(t *testing.T) {
	a, err := emulator.Make(newEnv(), game, emulator.Options{Players: 2})
	test.DemandSuccess(t, err)
	b, err := emulator.Make(newEnv(), game, emulator.Options{Players: 2})
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, a.Reset())
	test.DemandSuccess(t, b.Reset())

	env := newEnv()
	buttons := a.Buttons()
	for i := range 200 {
		pressed := append(env.Random.Presses(buttons, 0.5), env.Random.Presses(buttons, 0.5)...)
		sa, err := a.Step(pressed)
		test.DemandSuccess(t, err)
		sb, err := b.Step(pressed)
		test.DemandSuccess(t, err)

		test.ExpectEquality(t, sa.Reward, sb.Reward, i)
		test.ExpectEquality(t, sa.Done(), sb.Done(), i)
		test.ExpectSuccess(t, bytes.Equal(sa.Frame.Pix, sb.Frame.Pix), i)
		test.ExpectSliceEquality(t, a.Audio().Samples, b.Audio().Samples, i)
		for k, v := range sa.Info {
			test.ExpectEquality(t, sb.Info[k], v, i, k)
		}
	}
}

func TestRecord(t *testing.T) {
	dir := t.TempDir()

	emu, err := emulator.Make(newEnv(), game, emulator.Options{Record: dir})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, emu.MoviePath(), "")
	test.DemandSuccess(t, emu.Reset())
	test.ExpectEquality(t, emu.MoviePath(), filepath.Join(dir, "Dodge-Toy-none-000000.bk2"))

	const steps = 25
	for i := range steps {
		pressed := make([]bool, 8)
		pressed[i%8] = true
		_, err := emu.Step(pressed)
		test.DemandSuccess(t, err)
	}

	// a second reset writes the first movie and starts another
	test.DemandSuccess(t, emu.Reset())
	test.ExpectEquality(t, emu.MoviePath(), filepath.Join(dir, "Dodge-Toy-none-000001.bk2"))
	test.DemandSuccess(t, emu.Close())

	mov, err := movie.Open(filepath.Join(dir, "Dodge-Toy-none-000000.bk2"))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, mov.Game(), game)
	test.ExpectEquality(t, mov.NumFrames(), steps+1)
	test.ExpectSuccess(t, bytes.Equal(mov.State(), emu.InitialState()))

	// the first frame is the reset frame with no buttons pressed
	test.ExpectSuccess(t, mov.Step())
	for b := range 8 {
		test.ExpectFailure(t, mov.Key(b, 0))
	}
	for i := range steps {
		test.ExpectSuccess(t, mov.Step())
		for b := range 8 {
			test.ExpectEquality(t, mov.Key(b, 0), b == i%8, i, b)
		}
	}
	test.ExpectFailure(t, mov.Step())

	mov, err = movie.Open(filepath.Join(dir, "Dodge-Toy-none-000001.bk2"))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, mov.NumFrames(), 1)
}

func TestClaim(t *testing.T) {
	emu, err := emulator.Make(newEnv(), game, emulator.Options{})
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, emu.Claim())
	test.ExpectSuccess(t, curated.Is(emu.Claim(), emulator.AlreadyClaimed))
	emu.Release()
	test.ExpectSuccess(t, emu.Claim())
}

func TestSystems(t *testing.T) {
	test.ExpectSliceEquality(t, emulator.Systems(), []string{"Toy"})
}
