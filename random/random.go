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

package random

import (
	"math/rand/v2"
	"strings"
	"time"
)

var baseSeed uint64

func init() {
	baseSeed = uint64(time.Now().UnixNano())
}

// Random is a source of random numbers for one environment.
type Random struct {
	seed uint64
	rng  *rand.Rand

	// use zero seed rather than the random base seed. this is only really
	// useful for normalised instances where random numbers must be predictable
	ZeroSeed bool
}

// NewRandom is the preferred method of initialisation for the Random type.
func NewRandom(seed uint64) *Random {
	return &Random{seed: seed}
}

func (rnd *Random) rand() *rand.Rand {
	if rnd.rng == nil {
		if rnd.ZeroSeed {
			rnd.rng = rand.New(rand.NewPCG(rnd.seed, 0))
		} else {
			rnd.rng = rand.New(rand.NewPCG(rnd.seed, baseSeed))
		}
	}
	return rnd.rng
}

// Rewind restarts the sequence from the beginning.
func (rnd *Random) Rewind() {
	rnd.rng = nil
}

// Intn returns a random number in the range [0,n).
func (rnd *Random) Intn(n int) int {
	return rnd.rand().IntN(n)
}

// Float64 returns a random number in the range [0.0,1.0).
func (rnd *Random) Float64() float64 {
	return rnd.rand().Float64()
}

// opposing directions are never pressed together. a recorder would drop the
// combination anyway
var opposites = map[string]string{
	"UP":    "DOWN",
	"DOWN":  "UP",
	"LEFT":  "RIGHT",
	"RIGHT": "LEFT",
}

// Presses returns a press vector for the named buttons. Each button is
// pressed with the given probability, except that a direction is never pressed
// at the same time as its opposite and buttons named in the exclude list are
// never pressed.
func (rnd *Random) Presses(buttons []string, probability float64, exclude ...string) []bool {
	pressed := make([]bool, len(buttons))

	held := make(map[string]bool)
	for i, b := range buttons {
		b = strings.ToUpper(b)

		skip := false
		for _, e := range exclude {
			if strings.EqualFold(e, b) {
				skip = true
				break
			}
		}

		// draw a value regardless of whether it is used so that the sequence
		// length for each call depends only on the number of buttons
		v := rnd.Float64() < probability

		if skip || held[opposites[b]] {
			continue
		}

		pressed[i] = v
		held[b] = v
	}

	return pressed
}
