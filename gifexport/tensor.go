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

	"github.com/jetsetilly/retroreplay/curated"
	"github.com/jetsetilly/retroreplay/replay"
)

// Tensor is a four dimensional buffer of frames.
type Tensor struct {
	Frames int

	// zero for greyscale frames with no channel axis. otherwise one (grey)
	// or three (red, green and blue)
	Channels int

	Height int
	Width  int

	// values in frame, channel, row, column order
	Data []float64

	// values are pixel intensities in the range 0 to 255 and are never
	// treated as centred. set by FromImages()
	Pixels bool
}

// NewTensor is the preferred method of initialisation for the Tensor type.
func NewTensor(frames int, channels int, height int, width int) (*Tensor, error) {
	if frames < 0 || height < 1 || width < 1 {
		return nil, curated.Errorf("gifexport: bad tensor shape (%d, %d, %d, %d)", frames, channels, height, width)
	}
	switch channels {
	case 0, 1, 3:
	default:
		return nil, curated.Errorf("gifexport: tensor must have 0, 1 or 3 channels, not %d", channels)
	}

	return &Tensor{
		Frames:   frames,
		Channels: channels,
		Height:   height,
		Width:    width,
		Data:     make([]float64, frames*max(channels, 1)*height*width),
	}, nil
}

func (t *Tensor) index(f, c, y, x int) int {
	return ((f*max(t.Channels, 1)+c)*t.Height+y)*t.Width + x
}

// At returns the value at the position. The channel is ignored for Tensors
// with no channel axis.
func (t *Tensor) At(f, c, y, x int) float64 {
	if t.Channels == 0 {
		c = 0
	}
	return t.Data[t.index(f, c, y, x)]
}

// Set the value at the position.
func (t *Tensor) Set(f, c, y, x int, v float64) {
	if t.Channels == 0 {
		c = 0
	}
	t.Data[t.index(f, c, y, x)] = v
}

// Centred returns true if every value is in the range -0.5 to 0.5. A tensor
// of pixel intensities is never centred.
func (t *Tensor) Centred() bool {
	if t.Pixels {
		return false
	}
	for _, v := range t.Data {
		if v < -0.5 || v > 0.5 {
			return false
		}
	}
	return true
}

// FromImages creates a three channel Tensor from the images. Every image must
// be the same size.
func FromImages(imgs []*image.RGBA) (*Tensor, error) {
	if len(imgs) == 0 {
		return nil, curated.Errorf("gifexport: no frames")
	}

	b := imgs[0].Rect
	t, err := NewTensor(len(imgs), 3, b.Dy(), b.Dx())
	if err != nil {
		return nil, err
	}
	t.Pixels = true

	for f, img := range imgs {
		if img == nil {
			return nil, curated.Errorf("gifexport: frame %d has no image", f)
		}
		if img.Rect.Dx() != t.Width || img.Rect.Dy() != t.Height {
			return nil, curated.Errorf("gifexport: frame %d is a different size", f)
		}
		for y := range t.Height {
			row := img.Pix[y*img.Stride:]
			for x := range t.Width {
				for c := range 3 {
					t.Set(f, c, y, x, float64(row[x*4+c]))
				}
			}
		}
	}

	return t, nil
}

// FromFrames creates a three channel Tensor from the images of replayed
// frames.
func FromFrames(frames []replay.Frame) (*Tensor, error) {
	imgs := make([]*image.RGBA, len(frames))
	for i, frm := range frames {
		imgs[i] = frm.Visual
	}
	return FromImages(imgs)
}
