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

// Package movie reads and writes recorded sessions. A recorded session is a
// zip archive in the style of a BizHawk bk2 file:
//
//	Header.txt	key/value lines: MovieVersion, Platform, GameName, Players
//	Input Log.txt	the LogKey line and one line per frame
//	Core.bin	the emulator state at the start of the recording, gzip compressed
//
// The input log names every button of every player in the LogKey line. Each
// frame line has one group of characters per player, in the order of the
// LogKey. A period means the button is released. Any other character means
// the button is pressed:
//
//	[Input]
//	LogKey:#P1 B|P1 A|P1 UP|P1 DOWN|
//	|....|
//	|B.U.|
//	[/Input]
//
// A Movie opened with Open() is for playback. The frame cursor starts before
// the first frame and Step() must be called before the first call to Key().
//
// A Movie created with Create() is for recording. Keys are set for the
// current frame with SetKey() and Step() commits the frame to the log. The
// file is written when the Movie is closed.
package movie
