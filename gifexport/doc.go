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

// Package gifexport writes a sequence of frames as a looping animated GIF.
//
// Frames are held in a Tensor, a four dimensional buffer indexed by frame,
// channel, row and column. A Tensor with no channel axis is a sequence of
// greyscale images. Only every fourth frame is written by default, which
// keeps the file small while still showing the movement of a replay.
//
// Values are normally in the range 0 to 255. If every value in the Tensor is
// in the range -0.5 to 0.5 then the Tensor is taken to be centred on zero and
// the values are mapped to the range 0 to 255 before encoding.
package gifexport
