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

package movie

import (
	"fmt"

	"github.com/jetsetilly/retroreplay/curated"
)

// Claim the movie for playback by a single reader. Fails with NotClaimable if
// the movie is already claimed, is a recording, or if playback has moved
// past the start of the log.
func (mov *Movie) Claim() error {
	if mov.recording {
		return curated.Errorf(NotClaimable, mov.path, "recording")
	}
	if !mov.claimed.CompareAndSwap(false, true) {
		return curated.Errorf(NotClaimable, mov.path, "already claimed")
	}
	if mov.cursor != -1 {
		mov.claimed.Store(false)
		return curated.Errorf(NotClaimable, mov.path, fmt.Sprintf("at frame %d", mov.cursor))
	}
	return nil
}

// Release a claim made with Claim(). The playback position is not reset.
func (mov *Movie) Release() {
	mov.claimed.Store(false)
}

// Step advances to the next frame. For a playback movie this returns false
// when there are no more frames. For a recording movie the frame built by
// SetKey() is added to the log and a new frame is started. Recording movies
// always return true.
func (mov *Movie) Step() bool {
	if mov.recording {
		if mov.closed {
			return false
		}
		mov.frames = append(mov.frames, mov.current)
		mov.current = make([]bool, mov.players*len(mov.buttons))
		return true
	}

	if mov.cursor >= len(mov.frames) {
		return false
	}
	mov.cursor++
	return mov.cursor < len(mov.frames)
}

// Key returns the state of the button for the player in the current frame.
// Buttons and players are indexed from zero. Indexes that are out of range
// return false.
func (mov *Movie) Key(button int, player int) bool {
	if button < 0 || button >= len(mov.buttons) || player < 0 || player >= mov.players {
		return false
	}

	i := player*len(mov.buttons) + button

	if mov.recording {
		return mov.current[i]
	}

	if mov.cursor < 0 || mov.cursor >= len(mov.frames) {
		return false
	}
	return mov.frames[mov.cursor][i]
}

// Frame returns the current frame number. For a playback movie this is -1
// before the first call to Step(). For a recording movie it is the number of
// the frame being built.
func (mov *Movie) Frame() int {
	if mov.recording {
		return len(mov.frames)
	}
	return mov.cursor
}
