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

package digest_test

import (
	"image"
	"testing"

	"github.com/jetsetilly/retroreplay/digest"
	"github.com/jetsetilly/retroreplay/emulator"
	"github.com/jetsetilly/retroreplay/environment"
	"github.com/jetsetilly/retroreplay/integration"
	"github.com/jetsetilly/retroreplay/replay"
	"github.com/jetsetilly/retroreplay/test"
)

func TestVideo(t *testing.T) {
	a := digest.NewVideo()
	b := digest.NewVideo()
	test.ExpectEquality(t, a.Hash(), b.Hash())

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	a.SetFrame(img)
	b.SetFrame(img)
	test.ExpectEquality(t, a.Hash(), b.Hash())

	// the digest is chained so the same frame twice changes the digest
	h := a.Hash()
	a.SetFrame(img)
	test.ExpectInequality(t, a.Hash(), h)

	// alpha is not part of the digest
	b.SetFrame(img)
	img.Pix[3] = 0x80
	c := digest.NewVideo()
	c.SetFrame(image.NewRGBA(image.Rect(0, 0, 4, 4)))
	d := digest.NewVideo()
	d.SetFrame(img)
	test.ExpectEquality(t, c.Hash(), d.Hash())

	img.Pix[0] = 0x80
	d.ResetDigest()
	d.SetFrame(img)
	test.ExpectInequality(t, c.Hash(), d.Hash())
	test.ExpectEquality(t, d.Frames(), 1)
}

func TestAudio(t *testing.T) {
	a := digest.NewAudio()
	b := digest.NewAudio()

	samples := make([]int16, 2000)
	for i := range samples {
		samples[i] = int16(i * 3)
	}
	a.SetAudio(samples, 11040)
	b.SetAudio(samples, 11040)
	test.ExpectEquality(t, a.Hash(), b.Hash())

	b.SetAudio(samples[:1], 11040)
	test.ExpectInequality(t, a.Hash(), b.Hash())

	c := digest.NewAudio()
	c.SetAudio(samples, 22050)
	test.ExpectInequality(t, a.Hash(), c.Hash())
}

func TestReplay(t *testing.T) {
	env := environment.NewEnvironment("", nil, 3)
	env.Normalise()

	dir := t.TempDir()
	emu, err := emulator.Make(env, "Dodge-Toy", emulator.Options{Record: dir})
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, emu.Reset())
	path := emu.MoviePath()
	for range 40 {
		_, err := emu.Step(env.Random.Presses(emu.Buttons(), 0.5))
		test.DemandSuccess(t, err)
	}
	test.DemandSuccess(t, emu.Close())

	opts := replay.DefaultOptions()
	opts.Inttype = integration.Stable

	run := func(opts replay.Options) digest.Result {
		rp, err := replay.Open(env, path, opts)
		test.DemandSuccess(t, err)
		defer rp.Close()
		res, err := digest.Replay(rp)
		test.DemandSuccess(t, err)
		return res
	}

	a := run(opts)
	b := run(opts)
	test.ExpectEquality(t, a, b)
	test.ExpectEquality(t, a.Frames, 40)

	// replaying without the skip is a different sequence
	opts.SkipFirstStep = false
	c := run(opts)
	test.ExpectEquality(t, c.Frames, 41)
	test.ExpectInequality(t, a.Video, c.Video)
	test.ExpectInequality(t, a.Telemetry, c.Telemetry)
}
