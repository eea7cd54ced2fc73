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

// Package digest creates fingerprints of the output of a replay. Each
// fingerprint is a SHA1 value chained from frame to frame, so that two
// replays with the same digest produced the same output in the same order.
// Digests are useful for checking that a recording still replays as it did
// when a reference digest was taken.
//
// The Video type fingerprints frame images, the Audio type fingerprints
// audio samples and the Telemetry type fingerprints the press vector,
// reward, done flag and memory variables of each frame.
package digest

// Digest implementations compute a chained hash of the emulator's output.
type Digest interface {
	Hash() string
	ResetDigest()
}
