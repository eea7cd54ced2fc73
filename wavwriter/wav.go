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

// Package wavwriter allows writing of audio data to disk as a WAV file. Note
// that audio data is buffered in memory in its entirity, and written to disk
// when EndMixing() is called. It is therefore only suitable for recordings
// of a reasonable length.
package wavwriter

import (
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/jetsetilly/retroreplay/curated"
	"github.com/jetsetilly/retroreplay/logger"
)

// the audio data is always interleaved stereo
const numChannels = 2

const bitDepth = 16

// PCM format in the WAV header
const wavFormatPCM = 1

// WavWriter buffers the audio of a replay and writes it to a WAV file.
type WavWriter struct {
	filename string
	rate     float64
	buffer   []int
}

// New is the preferred method of initialisation for the WavWriter type.
func New(filename string) (*WavWriter, error) {
	aw := &WavWriter{
		filename: filename,
		buffer:   make([]int, 0),
	}

	return aw, nil
}

// SetAudio adds interleaved stereo samples to the buffer. The sample rate
// must not change between calls.
func (aw *WavWriter) SetAudio(samples []int16, rate float64) error {
	if aw.rate == 0 {
		aw.rate = rate
	} else if aw.rate != rate {
		return curated.Errorf("wavwriter: sample rate changed from %.0f to %.0f", aw.rate, rate)
	}

	for _, s := range samples {
		aw.buffer = append(aw.buffer, int(s))
	}

	return nil
}

// Samples returns the number of samples per channel in the buffer.
func (aw *WavWriter) Samples() int {
	return len(aw.buffer) / numChannels
}

// EndMixing writes the buffered audio to the file.
func (aw *WavWriter) EndMixing() (rerr error) {
	if aw.rate == 0 {
		return curated.Errorf("wavwriter: no audio")
	}

	f, err := os.Create(aw.filename)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf("wavwriter: %v", err)
		}
	}()

	enc := wav.NewEncoder(f, int(aw.rate), bitDepth, numChannels, wavFormatPCM)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: numChannels,
			SampleRate:  int(aw.rate),
		},
		Data:           aw.buffer,
		SourceBitDepth: bitDepth,
	}

	logger.Logf(logger.Allow, "wavwriter", "writing audio to %s", aw.filename)

	if err := enc.Write(buf); err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	if err := enc.Close(); err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	return nil
}
