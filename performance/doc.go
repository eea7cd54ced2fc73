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

// Package performance contains helper functions relating to the performance
// of replays.
//
// RunProfiler() runs a function while collecting CPU, memory or trace
// profiles, as requested by the Profile flags. Profiles are written to files
// with names beginning with the supplied header and can be examined with the
// pprof and trace tools of the Go toolchain.
//
// CalcFPS() calculates the frames-per-second of a replay along with how that
// compares to the frame rate of the original recording.
package performance
