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

// Package toy is a small deterministic emulated system. It exists so that
// recording and replaying can be exercised without the ROM of a commercial
// game.
//
// A Toy ROM begins with the six byte magic "TOYROM" and a one byte version,
// followed by the random seed (two bytes, big-endian), the number of lives
// and the number of hazards. The remainder of the ROM is the title.
//
// The running program is a single screen game in which up to two players
// dodge falling hazards. Every hazard that reaches the bottom of the screen
// scores one point. Touching a hazard loses a life. All game state is in the
// 64 bytes of RAM, which makes the RAM the entire save state:
//
//	0-1	frame counter (little-endian)
//	2-3	player 1 x and y
//	4-5	player 2 x and y
//	8-15	hazard x and y, four hazards
//	16-17	score (big-endian)
//	18	lives
//	19-20	random number generator (little-endian)
//	21	tone
//	22	level
//	23	game over flag
//	24-25	audio phase (little-endian)
//	26	number of active hazards
//	27-28	random seed, as found in the ROM (big-endian)
//	29	starting lives, as found in the ROM
package toy
