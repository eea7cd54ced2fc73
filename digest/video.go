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

package digest

import (
	"crypto/sha1"
	"fmt"
	"image"
)

// Video is an implementation of the Digest interface for frame images. Only
// the red, green and blue channels are used.
type Video struct {
	digest   [sha1.Size]byte
	pixels   []byte
	frameNum int
}

const pixelDepth = 3

// NewVideo is the preferred method of initialisation for the Video type.
func NewVideo() *Video {
	return &Video{}
}

// Hash implements digest.Digest interface
func (dig *Video) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements digest.Digest interface
func (dig *Video) ResetDigest() {
	for i := range dig.digest {
		dig.digest[i] = 0
	}
	dig.frameNum = 0
}

// Frames returns the number of frames added to the digest.
func (dig *Video) Frames() int {
	return dig.frameNum
}

// SetFrame adds the image to the digest. A nil image is treated as a frame
// with no pixels.
func (dig *Video) SetFrame(img *image.RGBA) {
	var w, h int
	if img != nil {
		w = img.Rect.Dx()
		h = img.Rect.Dy()
	}

	// length of pixels array contains enough room for the previous frames
	// digest value
	l := len(dig.digest) + w*h*pixelDepth
	if cap(dig.pixels) < l {
		dig.pixels = make([]byte, l)
	}
	dig.pixels = dig.pixels[:l]

	// chain fingerprints by copying the value of the last fingerprint
	// to the head of the video data
	copy(dig.pixels, dig.digest[:])

	i := len(dig.digest)
	for y := range h {
		row := img.Pix[y*img.Stride:]
		for x := range w {
			copy(dig.pixels[i:i+pixelDepth], row[x*4:x*4+pixelDepth])
			i += pixelDepth
		}
	}

	dig.digest = sha1.Sum(dig.pixels)
	dig.frameNum++
}
