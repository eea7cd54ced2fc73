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

// Package random provides the random number source for an environment. It is
// used when recording sessions with generated input, such as the sessions
// used to test replay fidelity.
//
// A Random instance is seeded from a base seed and a caller supplied seed.
// The base seed is taken from the clock when the program starts. Setting the
// ZeroSeed field means that the base seed is ignored and the sequence depends
// only on the caller's seed. This is required whenever a sequence must be
// reproduced exactly.
package random
