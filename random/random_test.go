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

package random_test

import (
	"testing"

	"github.com/jetsetilly/retroreplay/random"
	"github.com/jetsetilly/retroreplay/test"
)

var buttons = []string{"B", "A", "SELECT", "START", "UP", "DOWN", "LEFT", "RIGHT"}

func TestZeroSeed(t *testing.T) {
	a := random.NewRandom(1234)
	a.ZeroSeed = true
	b := random.NewRandom(1234)
	b.ZeroSeed = true

	for i := range 100 {
		test.ExpectSliceEquality(t, a.Presses(buttons, 0.5), b.Presses(buttons, 0.5), i)
	}
}

func TestRewind(t *testing.T) {
	rnd := random.NewRandom(99)
	rnd.ZeroSeed = true

	var first []int
	for range 20 {
		first = append(first, rnd.Intn(1000))
	}

	rnd.Rewind()
	for i := range 20 {
		test.ExpectEquality(t, rnd.Intn(1000), first[i], i)
	}
}

func TestOpposites(t *testing.T) {
	rnd := random.NewRandom(7)
	rnd.ZeroSeed = true

	for i := range 1000 {
		p := rnd.Presses(buttons, 0.9)
		test.ExpectFailure(t, p[4] && p[5], i)
		test.ExpectFailure(t, p[6] && p[7], i)
	}
}

func TestExclude(t *testing.T) {
	rnd := random.NewRandom(7)
	rnd.ZeroSeed = true

	for i := range 1000 {
		p := rnd.Presses(buttons, 1.0, "select", "start")
		test.ExpectFailure(t, p[2], i)
		test.ExpectFailure(t, p[3], i)
		test.ExpectSuccess(t, p[0], i)
	}
}
