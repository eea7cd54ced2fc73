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
	"encoding/binary"
	"fmt"
	"math"

	"github.com/jetsetilly/retroreplay/replay"
)

// Telemetry is an implementation of the Digest interface for everything in a
// frame except the image and audio.
type Telemetry struct {
	digest [sha1.Size]byte
	buffer []byte
}

// NewTelemetry is the preferred method of initialisation for the Telemetry
// type.
func NewTelemetry() *Telemetry {
	return &Telemetry{}
}

// Hash implements digest.Digest interface
func (dig *Telemetry) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements digest.Digest interface
func (dig *Telemetry) ResetDigest() {
	for i := range dig.digest {
		dig.digest[i] = 0
	}
}

// SetFrame adds the press vector and annotations of the frame to the digest.
func (dig *Telemetry) SetFrame(frm replay.Frame) {
	dig.buffer = append(dig.buffer[:0], dig.digest[:]...)

	for _, p := range frm.Pressed {
		if p {
			dig.buffer = append(dig.buffer, 1)
		} else {
			dig.buffer = append(dig.buffer, 0)
		}
	}

	dig.buffer = binary.LittleEndian.AppendUint64(dig.buffer, math.Float64bits(frm.Annotations.Reward))
	if frm.Annotations.Done {
		dig.buffer = append(dig.buffer, 1)
	} else {
		dig.buffer = append(dig.buffer, 0)
	}

	// keys are sorted so the digest does not depend on map order
	for _, k := range frm.Annotations.Info.Keys() {
		dig.buffer = append(dig.buffer, k...)
		dig.buffer = binary.LittleEndian.AppendUint64(dig.buffer, uint64(frm.Annotations.Info[k]))
	}

	dig.digest = sha1.Sum(dig.buffer)
}
