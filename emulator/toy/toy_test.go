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

package toy_test

import (
	"bytes"
	"testing"

	"github.com/jetsetilly/retroreplay/emulator/toy"
	"github.com/jetsetilly/retroreplay/test"
)

var rom = []byte("TOYROM\x01\x2a\x17\x03\x03Dodge")

func newCore(t *testing.T) *toy.Core {
	t.Helper()
	c := toy.NewCore()
	test.DemandSuccess(t, c.Load(rom))
	return c
}

func TestLoad(t *testing.T) {
	c := toy.NewCore()
	test.ExpectFailure(t, c.Load([]byte("NOTAROM")))
	test.ExpectFailure(t, c.Load([]byte("TOYROM\x02\x00\x01\x03\x03")))
	test.ExpectFailure(t, c.Load([]byte("TOYROM\x01\x00\x01\x00\x03")))
	test.ExpectFailure(t, c.Load([]byte("TOYROM\x01\x00\x01\x03\x09")))
	test.ExpectSuccess(t, c.Load(rom))
	test.ExpectEquality(t, c.String(), "Toy: Dodge")

	// three lives from the rom
	test.ExpectEquality(t, c.Memory()[18], 3)
	test.ExpectEquality(t, len(c.Buttons()), 8)
}

func TestState(t *testing.T) {
	c := newCore(t)
	test.ExpectFailure(t, toy.NewCore().SetState(c.State()))
	test.ExpectFailure(t, c.SetState([]byte("TOYSTATE")))

	start := c.State()

	right := []bool{false, false, false, false, false, false, false, true}
	c.SetButtons(0, right)
	for range 30 {
		c.Run()
	}
	moved := c.State()
	test.ExpectFailure(t, bytes.Equal(start, moved))

	test.DemandSuccess(t, c.SetState(start))
	test.ExpectSuccess(t, bytes.Equal(start, c.State()))
}

// running from the same state with the same input always gives the same
// frames, audio and memory
func TestDeterminism(t *testing.T) {
	a := newCore(t)
	b := newCore(t)

	presses := func(f int) []bool {
		return []bool{f%2 == 0, f%5 == 0, false, false, f%7 < 3, f%7 >= 4, f%11 < 5, f%11 >= 6}
	}

	for f := range 300 {
		a.SetButtons(0, presses(f))
		b.SetButtons(0, presses(f))
		a.SetButtons(1, presses(f+3))
		b.SetButtons(1, presses(f+3))
		a.Run()
		b.Run()
		test.DemandEquality(t, bytes.Equal(a.Memory(), b.Memory()), true, f)
		test.DemandEquality(t, bytes.Equal(a.Frame().Pix, b.Frame().Pix), true, f)
		test.ExpectSliceEquality(t, a.Audio(), b.Audio(), f)
	}
}

func TestPlayerMovement(t *testing.T) {
	c := newCore(t)
	x := c.Memory()[2]

	c.SetButtons(0, []bool{false, false, false, false, false, false, true, false})
	c.Run()
	test.ExpectEquality(t, c.Memory()[2], x-1)

	// A doubles the speed
	c.SetButtons(0, []bool{false, true, false, false, false, false, true, false})
	c.Run()
	test.ExpectEquality(t, c.Memory()[2], x-3)

	// players can not leave the screen
	c.SetButtons(0, []bool{false, true, false, false, false, true, false, false})
	for range toy.Height {
		c.Run()
	}
	test.ExpectEquality(t, int(c.Memory()[3]), toy.Height-1)
}

func TestGameOver(t *testing.T) {
	c := newCore(t)

	// standing still eventually loses every life or the game goes on long
	// enough to score
	for range 10000 {
		c.Run()
		if c.Memory()[23] != 0 {
			break
		}
	}

	mem := c.Memory()
	if mem[23] == 0 {
		score := int(mem[16])<<8 | int(mem[17])
		test.ExpectInequality(t, score, 0)
		return
	}
	test.ExpectEquality(t, mem[18], 0)

	// START begins a new game
	c.SetButtons(0, []bool{false, false, false, true, false, false, false, false})
	c.Run()
	test.ExpectEquality(t, c.Memory()[18], 3)
	test.ExpectEquality(t, c.Memory()[23], 0)
}

func TestAudio(t *testing.T) {
	c := newCore(t)
	c.Run()
	test.ExpectEquality(t, len(c.Audio()), toy.SamplesPerFrame*2)
	test.ExpectEquality(t, c.AudioRate(), toy.AudioRate)
}

func TestFrame(t *testing.T) {
	c := newCore(t)
	c.Run()
	img := c.Frame()
	test.ExpectEquality(t, img.Bounds().Dx(), toy.Width)
	test.ExpectEquality(t, img.Bounds().Dy(), toy.Height)

	// alpha is always opaque
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0xff {
			t.Fatalf("pixel %d is not opaque", i/4)
		}
	}
}
