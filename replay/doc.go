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

// Package replay runs a recorded session through an emulator and produces
// the reconstructed frames one at a time.
//
// The movie and the emulator are stepped in lockstep. After setup, which
// resets the emulator to the state stored in the movie, every frame of the
// movie's input log is applied to the emulator exactly once and in order.
// Each application produces one Frame: the image, the buttons pressed, the
// reward, the done flag, the memory variables and the audio.
//
// Frames are pulled with Next() or by ranging over Frames(). The replay ends
// when the input log is exhausted, whatever the emulator's done flag says:
//
//	rp, err := replay.Open(env, "sub-01_ses-001_task-Dodge_run-01.bk2", replay.DefaultOptions())
//	if err != nil {
//		return err
//	}
//	defer rp.Close()
//
//	for frm, err := range rp.Frames() {
//		if err != nil {
//			return err
//		}
//		fmt.Println(frm.Index, frm.Annotations.Reward)
//	}
//
// A Replay is single use. Once the input log is exhausted the replay only
// returns EndOfLog. Nothing is retained between frames so memory use does not
// grow with the length of the recording.
package replay
