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

// Package regression checks that replays of recorded sessions do not change.
//
// A regression entry names a movie file and the options used to replay it,
// along with the digests of the video, audio and telemetry produced by the
// replay at the time the entry was added. Running the regression tests
// replays every movie again and compares the new digests with the stored
// digests.
//
// A failed test means that either the emulation or the replay has changed in
// a way that alters what the user would see or hear, or what the session
// record would contain.
//
// The entries are stored in a YAML file. Entries are numbered in the order
// they were added and the number is used to select entries for running and
// for deletion.
package regression
