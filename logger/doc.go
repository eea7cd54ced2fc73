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

// Package logger is the central log for the application. Log entries are
// stored in a bounded list and can be written to any io.Writer on demand, or
// echoed as they are added.
//
// Each entry has a tag and a detail. Tags are short and identify the area of
// the program making the entry, for example "replay" or "movie". Consecutive
// entries with the same tag and detail are folded into one entry with a
// repeat count.
//
// The package level functions all act on the central logger. Isolated loggers
// can be created with NewLogger(), which is useful for testing.
package logger
