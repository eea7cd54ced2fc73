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

package video

import (
	"testing"

	"github.com/jetsetilly/retroreplay/test"
)

func TestEncoderArgs(t *testing.T) {
	opts, err := encoderArgs(ProfileFast, 640, 480, 60, "out.mp4")
	test.DemandSuccess(t, err)
	test.ExpectSliceEquality(t, opts[:10], []string{
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", "640x480",
		"-r", "60.00",
		"-i", "-",
	})
	test.ExpectEquality(t, opts[len(opts)-1], "out.mp4")

	opts, err = encoderArgs(ProfileYouTube4k, 64, 48, 59.94, "out.mp4")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, opts[7], "59.94")

	_, err = encoderArgs(Profile("VHS"), 64, 48, 60, "out.mp4")
	test.ExpectFailure(t, err)
}

func TestParseProfile(t *testing.T) {
	p, err := ParseProfile("youtube1080")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, ProfileYouTube1080)

	_, err = ParseProfile("vhs")
	test.ExpectFailure(t, err)
}
