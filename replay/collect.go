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

package replay

import (
	"image"

	"github.com/jetsetilly/retroreplay/curated"
	"github.com/jetsetilly/retroreplay/emulator"
)

// Collection is a complete replay held in memory as parallel slices. Entry i
// of each slice belongs to frame i.
type Collection struct {
	Frames      []*image.RGBA
	Keys        [][]bool
	Annotations []Annotations
	Sounds      []*emulator.Audio
}

// Len returns the number of frames in the collection.
func (col *Collection) Len() int {
	return len(col.Frames)
}

// Collect runs the replay to the end of the input log and returns every
// frame.
func Collect(rp *Replay) (*Collection, error) {
	col := &Collection{}
	for {
		frm, err := rp.Next()
		if err != nil {
			if curated.Is(err, EndOfLog) {
				return col, nil
			}
			return nil, err
		}
		col.Frames = append(col.Frames, frm.Visual)
		col.Keys = append(col.Keys, frm.Pressed)
		col.Annotations = append(col.Annotations, frm.Annotations)
		col.Sounds = append(col.Sounds, frm.Sound)
	}
}
