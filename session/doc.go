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

// Package session reshapes the frames of a replay into a single Record. The
// Record has one sequence for every memory variable and one sequence for
// every action (button), each with one entry per frame. Metadata about the
// session is taken from the name of the recording's file, which follows the
// convention:
//
//	{subject}_{session}_..._{level}_{repetition}.{ext}
//
// For example, "sub-01_ses-002_20210601-120000_SuperMarioBros-Nes_Level1-1_012.bk2"
// is subject "sub-01", session "ses-002", level "Level1-1" and repetition
// "012".
package session
