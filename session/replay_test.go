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

package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/retroreplay/emulator"
	"github.com/jetsetilly/retroreplay/environment"
	"github.com/jetsetilly/retroreplay/integration"
	"github.com/jetsetilly/retroreplay/replay"
	"github.com/jetsetilly/retroreplay/session"
	"github.com/jetsetilly/retroreplay/test"
)

// record a session and rename the movie so that it follows the filename
// convention
func record(t *testing.T, env *environment.Environment, steps int) string {
	t.Helper()

	dir := t.TempDir()
	emu, err := emulator.Make(env, "Dodge-Toy", emulator.Options{Record: dir})
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, emu.Reset())
	path := emu.MoviePath()

	buttons := emu.Buttons()
	for range steps {
		_, err := emu.Step(env.Random.Presses(buttons, 0.3))
		test.DemandSuccess(t, err)
	}
	test.DemandSuccess(t, emu.Close())

	return path
}

func TestFromReplay(t *testing.T) {
	env := environment.NewEnvironment("", nil, 7)
	env.Normalise()

	path := record(t, env, 50)

	opts := replay.DefaultOptions()
	opts.Inttype = integration.Stable

	named := filepath.Join(filepath.Dir(path), "sub-03_ses-001_task-Dodge_level-1_run-02.bk2")
	test.DemandSuccess(t, os.Rename(path, named))

	rp, err := replay.Open(env, named, opts)
	test.DemandSuccess(t, err)
	defer rp.Close()

	rec, err := session.FromReplay(rp, named)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, rec.Validate())

	test.ExpectEquality(t, rec.Len(), 50)
	test.ExpectEquality(t, rec.Subject, "sub-03")
	test.ExpectEquality(t, rec.Session, "ses-001")
	test.ExpectEquality(t, rec.Level, "level-1")
	test.ExpectEquality(t, rec.Repetition, "run-02")
	test.ExpectSliceEquality(t, rec.Actions, []string{"B", "A", "SELECT", "START", "UP", "DOWN", "LEFT", "RIGHT"})
	test.ExpectSliceEquality(t, rec.Keys, []string{"level", "lives", "score", "x", "y"})

	// the replay was consumed
	_, err = rp.Next()
	test.ExpectFailure(t, err)
}
