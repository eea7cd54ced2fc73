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
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"

	"github.com/jetsetilly/retroreplay/curated"
	"github.com/jetsetilly/retroreplay/logger"
)

// Movie is a recorded session. Either for playback or for recording.
type Movie struct {
	path string

	game     string
	platform string
	players  int

	// button names of a single player
	buttons []string

	// the emulator state at the start of the movie
	state []byte

	// every frame in the log. each entry has players*len(buttons) values
	frames [][]bool

	// playback position in the frames slice
	cursor int

	// recording movies only. the frame being built by SetKey()
	recording bool
	current   []bool
	closed    bool

	// playback movies only. set by Claim() and cleared by Release()
	claimed atomic.Bool
}

func (mov *Movie) String() string {
	return fmt.Sprintf("%s [%d players, %d frames]", mov.game, mov.players, len(mov.frames))
}

// Open a movie file for playback.
func Open(path string) (*Movie, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, curated.Errorf(NotAMovie, path, err)
	}
	defer zr.Close()

	mov := &Movie{
		path:   path,
		cursor: -1,
	}

	// the header must be read before the input log
	for _, name := range []string{headerFile, inputFile, stateFile} {
		f, err := zr.Open(name)
		if err != nil {
			if name == stateFile {
				continue
			}
			return nil, curated.Errorf(NotAMovie, path, err)
		}

		switch name {
		case headerFile:
			err = readHeader(f, mov)
		case inputFile:
			err = readInputLog(f, mov)
		case stateFile:
			mov.state, err = readState(f)
		}
		f.Close()

		if err != nil {
			return nil, curated.Errorf("movie: %s: %v", path, err)
		}
	}

	logger.Logf(logger.Allow, "movie", "opened %s", mov)

	return mov, nil
}

// Create a new movie for recording. The file at path is not written until
// the movie is closed. The buttons argument lists the buttons of a single
// player.
func Create(path string, game string, buttons []string, players int) (*Movie, error) {
	if players < 1 {
		return nil, curated.Errorf("movie: cannot record %d players", players)
	}
	if len(buttons) == 0 {
		return nil, curated.Errorf("movie: cannot record without buttons")
	}

	mov := &Movie{
		path:      path,
		game:      game,
		players:   players,
		buttons:   make([]string, len(buttons)),
		cursor:    -1,
		recording: true,
		current:   make([]bool, players*len(buttons)),
	}
	copy(mov.buttons, buttons)

	if i := strings.LastIndex(game, "-"); i != -1 {
		mov.platform = game[i+1:]
	}

	return mov, nil
}

// Path returns the location of the movie file.
func (mov *Movie) Path() string {
	return mov.path
}

// Game returns the name of the game the movie was recorded with.
func (mov *Movie) Game() string {
	return mov.game
}

// Platform returns the name of the emulated system.
func (mov *Movie) Platform() string {
	return mov.platform
}

// State returns the emulator state at the start of the movie. The returned
// slice should not be modified.
func (mov *Movie) State() []byte {
	return mov.state
}

// SetState sets the emulator state at the start of the movie.
func (mov *Movie) SetState(state []byte) {
	mov.state = make([]byte, len(state))
	copy(mov.state, state)
}

// Players returns the number of players in the movie.
func (mov *Movie) Players() int {
	return mov.players
}

// NumButtons returns the number of buttons for each player.
func (mov *Movie) NumButtons() int {
	return len(mov.buttons)
}

// Buttons returns a copy of the button names of a single player.
func (mov *Movie) Buttons() []string {
	b := make([]string, len(mov.buttons))
	copy(b, mov.buttons)
	return b
}

// NumFrames returns the number of frames in the input log.
func (mov *Movie) NumFrames() int {
	return len(mov.frames)
}

// IsRecording returns true if the movie was created with Create().
func (mov *Movie) IsRecording() bool {
	return mov.recording
}

// Close the movie. A recording movie is written to disk. Closing a movie more
// than once has no effect.
func (mov *Movie) Close() error {
	if !mov.recording || mov.closed {
		return nil
	}
	mov.closed = true
	return mov.write()
}

func readState(r io.Reader) ([]byte, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

func writeState(w io.Writer, state []byte) error {
	zw := gzip.NewWriter(w)
	if _, err := zw.Write(state); err != nil {
		return err
	}
	return zw.Close()
}
