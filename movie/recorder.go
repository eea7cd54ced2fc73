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

package movie

import (
	"os"

	"github.com/klauspost/compress/zip"

	"github.com/jetsetilly/retroreplay/curated"
	"github.com/jetsetilly/retroreplay/logger"
)

// SetKey sets the state of the button for the player in the frame being
// recorded. It has no effect on a playback movie.
func (mov *Movie) SetKey(button int, player int, pressed bool) {
	if !mov.recording {
		return
	}
	if button < 0 || button >= len(mov.buttons) || player < 0 || player >= mov.players {
		return
	}
	mov.current[player*len(mov.buttons)+button] = pressed
}

// write the movie to the file at mov.path.
func (mov *Movie) write() error {
	f, err := os.Create(mov.path)
	if err != nil {
		return curated.Errorf("movie: %v", err)
	}

	zw := zip.NewWriter(f)

	err = func() error {
		w, err := zw.Create(headerFile)
		if err != nil {
			return err
		}
		if err := writeHeader(w, mov); err != nil {
			return err
		}

		w, err = zw.Create(inputFile)
		if err != nil {
			return err
		}
		if err := writeInputLog(w, mov); err != nil {
			return err
		}

		if mov.state != nil {
			w, err = zw.Create(stateFile)
			if err != nil {
				return err
			}
			if err := writeState(w, mov.state); err != nil {
				return err
			}
		}

		return zw.Close()
	}()

	if err != nil {
		f.Close()
		return curated.Errorf("movie: %s: %v", mov.path, err)
	}

	if err := f.Close(); err != nil {
		return curated.Errorf("movie: %s: %v", mov.path, err)
	}

	logger.Logf(logger.Allow, "movie", "wrote %s", mov)

	return nil
}
