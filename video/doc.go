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

// Package video encodes the frames and audio of a replay as an MP4 file. The
// encoding is done by the external ffmpeg program, which must be installed
// along with ffprobe.
//
// Frames are piped to a running ffmpeg process as raw RGBA data. Audio is
// written to a temporary WAV file. When the FFMPEG type is destroyed the two
// temporary files are muxed into the final video file, with the audio
// stretched to match the length of the video.
package video
