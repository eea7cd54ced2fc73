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

package gifexport

import (
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"io"
	"math"
	"os"

	"golang.org/x/image/draw"

	"github.com/jetsetilly/retroreplay/curated"
	"github.com/jetsetilly/retroreplay/logger"
)

// DefaultStride is the number of frames between each frame written to the
// GIF.
const DefaultStride = 4

// Options for Encode().
type Options struct {
	// write every Stride frame. zero means DefaultStride
	Stride int

	// the delay between each frame in hundredths of a second. zero means a
	// delay that matches the stride for a 60Hz replay
	Delay int

	// frames are scaled by this whole number. zero means no scaling
	Scale int
}

func (opts *Options) normalise() {
	if opts.Stride < 1 {
		opts.Stride = DefaultStride
	}
	if opts.Delay < 1 {
		opts.Delay = max(1, int(math.Round(float64(opts.Stride)*100/60)))
	}
	if opts.Scale < 1 {
		opts.Scale = 1
	}
}

var greys color.Palette

func init() {
	greys = make(color.Palette, 256)
	for i := range greys {
		greys[i] = color.Gray{Y: uint8(i)}
	}
}

func clamp(v float64) uint8 {
	return uint8(math.Round(min(max(v, 0), 255)))
}

// image returns frame f of the tensor as an image.
func (t *Tensor) image(f int, centred bool) image.Image {
	conv := func(v float64) uint8 {
		if centred {
			v = (v + 0.5) * 255
		}
		return clamp(v)
	}

	if t.Channels == 3 {
		img := image.NewRGBA(image.Rect(0, 0, t.Width, t.Height))
		for y := range t.Height {
			for x := range t.Width {
				img.SetRGBA(x, y, color.RGBA{
					R: conv(t.At(f, 0, y, x)),
					G: conv(t.At(f, 1, y, x)),
					B: conv(t.At(f, 2, y, x)),
					A: 0xff,
				})
			}
		}
		return img
	}

	img := image.NewGray(image.Rect(0, 0, t.Width, t.Height))
	for y := range t.Height {
		for x := range t.Width {
			img.SetGray(x, y, color.Gray{Y: conv(t.At(f, 0, y, x))})
		}
	}
	return img
}

// Encode the tensor as a looping animated GIF.
func Encode(w io.Writer, t *Tensor, opts Options) error {
	if t.Frames == 0 {
		return curated.Errorf("gifexport: no frames")
	}

	opts.normalise()
	centred := t.Centred()

	pal := palette.Plan9
	if t.Channels != 3 {
		pal = greys
	}

	anim := &gif.GIF{
		// loop forever
		LoopCount: 0,
	}

	bounds := image.Rect(0, 0, t.Width*opts.Scale, t.Height*opts.Scale)

	for f := 0; f < t.Frames; f += opts.Stride {
		src := t.image(f, centred)

		if opts.Scale > 1 {
			scaled := image.NewRGBA(bounds)
			draw.NearestNeighbor.Scale(scaled, bounds, src, src.Bounds(), draw.Src, nil)
			src = scaled
		}

		dst := image.NewPaletted(bounds, pal)
		if t.Channels == 3 {
			draw.FloydSteinberg.Draw(dst, bounds, src, image.Point{})
		} else {
			draw.Draw(dst, bounds, src, image.Point{}, draw.Src)
		}

		anim.Image = append(anim.Image, dst)
		anim.Delay = append(anim.Delay, opts.Delay)
	}

	if err := gif.EncodeAll(w, anim); err != nil {
		return curated.Errorf("gifexport: %v", err)
	}

	return nil
}

// Write the tensor to the named file as a looping animated GIF.
func Write(filename string, t *Tensor, opts Options) (rerr error) {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf("gifexport: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf("gifexport: %v", err)
		}
	}()

	if err := Encode(f, t, opts); err != nil {
		return err
	}

	logger.Logf(logger.Allow, "gifexport", "wrote %d frames to %s", t.Frames, filename)

	return nil
}
