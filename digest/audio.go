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
)

// the length of the buffer we're using isn't really important. that said, it
// needs to be at least sha1.Size bytes in length
const audioBufferLength = 1024 + sha1.Size

// the previous digest is stored at the beginning of the buffer array
const audioBufferStart = sha1.Size

// Audio is an implementation of the Digest interface for audio samples.
type Audio struct {
	digest   [sha1.Size]byte
	buffer   []uint8
	bufferCt int
}

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio() *Audio {
	dig := &Audio{}
	dig.buffer = make([]uint8, audioBufferLength)
	dig.bufferCt = audioBufferStart
	return dig
}

// Hash implements digest.Digest interface. Samples waiting in the buffer are
// flushed before the hash is made.
func (dig *Audio) Hash() string {
	dig.FlushAudio()
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements digest.Digest interface
func (dig *Audio) ResetDigest() {
	for i := range dig.digest {
		dig.digest[i] = 0
	}
	dig.bufferCt = audioBufferStart
}

// SetAudio adds the samples to the digest. The sample rate is part of the
// digest.
func (dig *Audio) SetAudio(samples []int16, rate float64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(rate))
	dig.write(b[:])
	for _, s := range samples {
		binary.LittleEndian.PutUint16(b[:], uint16(s))
		dig.write(b[:2])
	}
}

func (dig *Audio) write(p []byte) {
	for _, v := range p {
		dig.buffer[dig.bufferCt] = v
		dig.bufferCt++
		if dig.bufferCt >= audioBufferLength {
			dig.FlushAudio()
		}
	}
}

// FlushAudio adds any buffered samples to the digest.
func (dig *Audio) FlushAudio() {
	if dig.bufferCt == audioBufferStart {
		return
	}
	dig.digest = sha1.Sum(dig.buffer[:dig.bufferCt])
	copy(dig.buffer, dig.digest[:])
	dig.bufferCt = audioBufferStart
}
