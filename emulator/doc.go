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

// Package emulator is the boundary between a game integration and the core
// that runs it. An Emulator is made for a game found in the integrations of
// an Environment. Each Step() runs the core for one frame and reports the
// frame image, the reward and done flags judged by the scenario, and the
// values of the integration's memory variables.
//
// Cores are chosen by the system name at the end of the game name. The Toy
// core is always available. Other cores can be added with RegisterCore().
//
// An Emulator in record mode writes a movie of every episode into a
// directory. The movie has one frame for the Reset() and one for each Step().
package emulator
