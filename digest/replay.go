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
	"fmt"
	"iter"

	"github.com/jetsetilly/retroreplay/replay"
)

// Result of a digest of a complete replay.
type Result struct {
	Frames    int
	Video     string
	Audio     string
	Telemetry string
}

func (res Result) String() string {
	return fmt.Sprintf("%d frames\nvideo: %s\naudio: %s\ntelemetry: %s", res.Frames, res.Video, res.Audio, res.Telemetry)
}

// Replay runs the replay to the end of the input log and returns the digests
// of everything it produced.
func Replay(rp *replay.Replay) (Result, error) {
	return Frames(rp.Frames())
}

// Frames consumes the sequence of frames and returns the digests of
// everything in it. An error in the sequence stops the digest.
func Frames(frames iter.Seq2[replay.Frame, error]) (Result, error) {
	vid := NewVideo()
	aud := NewAudio()
	tel := NewTelemetry()

	for frm, err := range frames {
		if err != nil {
			return Result{}, err
		}
		vid.SetFrame(frm.Visual)
		if frm.Sound != nil {
			aud.SetAudio(frm.Sound.Samples, frm.Sound.Rate)
		}
		tel.SetFrame(frm)
	}

	return Result{
		Frames:    vid.Frames(),
		Video:     vid.Hash(),
		Audio:     aud.Hash(),
		Telemetry: tel.Hash(),
	}, nil
}
