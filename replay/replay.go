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

package replay

import (
	"fmt"
	"image"
	"io"
	"iter"

	"github.com/jetsetilly/retroreplay/curated"
	"github.com/jetsetilly/retroreplay/emulator"
	"github.com/jetsetilly/retroreplay/environment"
	"github.com/jetsetilly/retroreplay/integration"
	"github.com/jetsetilly/retroreplay/logger"
	"github.com/jetsetilly/retroreplay/movie"
)

// Sentinel patterns for replay errors.
const (
	EndOfLog       = "replay: end of input log"
	UnknownGame    = "replay: cannot resolve game (%s)"
	ButtonMismatch = "replay: input log has %d %s but the emulator has %d"
)

// Options for a replay.
type Options struct {
	// the game to use instead of the game named in the movie
	Game string

	// name of the scenario, or the path to a scenario file. the empty string
	// means the integration's default scenario
	Scenario string

	Inttype integration.Type

	// skip the first frame of the input log. recordings made by the emulator
	// in record mode have a first frame for the reset, which is performed
	// again by the replay
	SkipFirstStep bool

	// frames are produced without images
	NoRender bool
}

// DefaultOptions returns the options most suitable for recordings made by the
// emulator in record mode with custom integrations.
func DefaultOptions() Options {
	return Options{
		Inttype:       integration.CustomOnly,
		SkipFirstStep: true,
	}
}

// Movie is the recorded session being replayed.
type Movie interface {
	Game() string
	State() []byte
	Players() int

	// the number of buttons per player
	NumButtons() int

	// advance to the next frame. returns false at the end of the log
	Step() bool

	// state of the button for the player in the current frame
	Key(button int, player int) bool

	// a movie can only be read by one replay at a time. Claim() must fail
	// if the movie is claimed or has been stepped
	Claim() error
	Release()
}

// Emulator is the emulator the movie is replayed through.
type Emulator interface {
	SetInitialState(state []byte)
	Reset() error

	// button names of a single player
	Buttons() []string

	Step(pressed []bool) (emulator.Step, error)
}

// AudioSource is implemented by emulators that can report the audio of the
// most recent step.
type AudioSource interface {
	Audio() emulator.Audio
}

// Claimer is implemented by emulators that can only be used by one replay at
// a time.
type Claimer interface {
	Claim() error
	Release()
}

// PlayerCounter is implemented by emulators that have a fixed number of
// players.
type PlayerCounter interface {
	Players() int
}

// Annotations of a single frame.
type Annotations struct {
	Reward float64

	// terminated or truncated
	Done bool

	Info emulator.Info
}

// Frame is a single reconstructed frame.
type Frame struct {
	// position in the replayed sequence, starting at zero
	Index int

	// nil if the replay has the NoRender option
	Visual *image.RGBA

	// buttons of every player, player-major
	Pressed []bool

	Annotations Annotations

	// nil if the emulator does not implement AudioSource
	Sound *emulator.Audio
}

// Replay drives a movie and an emulator in lockstep.
type Replay struct {
	mov  Movie
	emu  Emulator
	opts Options

	players int
	buttons []string

	// the movie and emulator were created by Open() and will be closed by
	// Close()
	owned bool

	movClaimed bool
	claimer    Claimer
	index   int
	ended   bool
	closed  bool
}

func (rp *Replay) String() string {
	return fmt.Sprintf("%s: frame %d", rp.mov.Game(), rp.index)
}

// Open the movie file at path and replay it with an emulator made from the
// environment. The game is taken from the options or, if not set there, from
// the movie.
func Open(env *environment.Environment, path string, opts Options) (*Replay, error) {
	mov, err := movie.Open(path)
	if err != nil {
		return nil, err
	}

	game := opts.Game
	if game == "" {
		game = mov.Game()
	}
	if game == "" {
		return nil, curated.Errorf(UnknownGame, path)
	}

	emu, err := emulator.Make(env, game, emulator.Options{
		Scenario: opts.Scenario,
		Inttype:  opts.Inttype,
		NoRender: opts.NoRender,
		Players:  mov.Players(),
	})
	if err != nil {
		if curated.Is(err, integration.UnknownIntegration) {
			return nil, curated.Errorf("%v: %v", curated.Errorf(UnknownGame, game), err)
		}
		return nil, err
	}

	rp, err := New(mov, emu, opts)
	if err != nil {
		emu.Close()
		return nil, err
	}
	rp.owned = true

	logger.Logf(env, "replay", "replaying %s with %s", path, emu)

	return rp, nil
}

// New prepares a replay of the movie with the emulator. The emulator is
// reset to the state stored in the movie. The Game and Inttype options are
// not used. The caller remains responsible for closing the movie and the
// emulator.
//
// The movie, and the emulator if it implements Claimer, are claimed until the
// replay is closed. A movie that is claimed by another replay, or that has
// already been stepped, can not be used.
func New(mov Movie, emu Emulator, opts Options) (*Replay, error) {
	rp := &Replay{
		mov:     mov,
		emu:     emu,
		opts:    opts,
		players: mov.Players(),
		buttons: emu.Buttons(),
	}

	if err := mov.Claim(); err != nil {
		return nil, err
	}
	rp.movClaimed = true

	if c, ok := emu.(Claimer); ok {
		if err := c.Claim(); err != nil {
			rp.release()
			return nil, err
		}
		rp.claimer = c
	}

	if err := rp.setup(); err != nil {
		rp.release()
		return nil, err
	}

	return rp, nil
}

func (rp *Replay) setup() error {
	if rp.mov.NumButtons() != len(rp.buttons) {
		return curated.Errorf(ButtonMismatch, rp.mov.NumButtons(), "buttons per player", len(rp.buttons))
	}
	if pc, ok := rp.emu.(PlayerCounter); ok && pc.Players() != rp.players {
		return curated.Errorf(ButtonMismatch, rp.players, "players", pc.Players())
	}

	// the initial state must be set before the reset
	rp.emu.SetInitialState(rp.mov.State())
	if err := rp.emu.Reset(); err != nil {
		return err
	}

	// the first frame of the log was committed by the reset performed during
	// the recording. the emulator has been reset already so the frame is not
	// applied
	if rp.opts.SkipFirstStep {
		rp.mov.Step()
	}

	return nil
}

func (rp *Replay) release() {
	if rp.movClaimed {
		rp.mov.Release()
		rp.movClaimed = false
	}
	if rp.claimer != nil {
		rp.claimer.Release()
		rp.claimer = nil
	}
}

// Emulator returns the emulator used by the replay.
func (rp *Replay) Emulator() Emulator {
	return rp.emu
}

// Players returns the number of players in the replay.
func (rp *Replay) Players() int {
	return rp.players
}

// Buttons returns the button names of a single player.
func (rp *Replay) Buttons() []string {
	b := make([]string, len(rp.buttons))
	copy(b, rp.buttons)
	return b
}

// Actions returns a name for every entry in the Pressed field of a Frame.
// For a single player the names are the button names. For more than one
// player the button names are prefixed with the player number, for example
// "P2 UP".
func (rp *Replay) Actions() []string {
	if rp.players == 1 {
		return rp.Buttons()
	}
	a := make([]string, 0, rp.players*len(rp.buttons))
	for p := range rp.players {
		for _, b := range rp.buttons {
			a = append(a, fmt.Sprintf("P%d %s", p+1, b))
		}
	}
	return a
}

// Next returns the next frame. Returns an error with the EndOfLog pattern
// when the input log is exhausted.
func (rp *Replay) Next() (Frame, error) {
	if rp.ended || rp.closed {
		return Frame{}, curated.Errorf(EndOfLog)
	}

	if !rp.mov.Step() {
		rp.ended = true
		logger.Logf(logger.Allow, "replay", "end of input log after %d frames", rp.index)
		return Frame{}, curated.Errorf(EndOfLog)
	}

	nb := len(rp.buttons)
	pressed := make([]bool, rp.players*nb)
	for p := range rp.players {
		for b := range nb {
			pressed[p*nb+b] = rp.mov.Key(b, p)
		}
	}

	stp, err := rp.emu.Step(pressed)
	if err != nil {
		rp.ended = true
		return Frame{}, curated.Errorf("replay: frame %d: %v", rp.index, err)
	}

	frm := Frame{
		Index:   rp.index,
		Visual:  stp.Frame,
		Pressed: pressed,
		Annotations: Annotations{
			Reward: stp.Reward,
			Done:   stp.Done(),
			Info:   stp.Info,
		},
	}

	// audio is sampled immediately after the step
	if src, ok := rp.emu.(AudioSource); ok {
		a := src.Audio()
		frm.Sound = &a
	}

	rp.index++

	return frm, nil
}

// Frames returns an iterator over the remaining frames. The iterator stops
// at the end of the input log or after yielding an error. The iterator
// shares the position of the replay, so a second range over Frames()
// continues where the first stopped.
func (rp *Replay) Frames() iter.Seq2[Frame, error] {
	return func(yield func(Frame, error) bool) {
		for {
			frm, err := rp.Next()
			if err != nil {
				if !curated.Is(err, EndOfLog) {
					yield(Frame{}, err)
				}
				return
			}
			if !yield(frm, nil) {
				return
			}
		}
	}
}

// Index returns the number of frames produced so far.
func (rp *Replay) Index() int {
	return rp.index
}

// Close the replay. A replay created with Open() closes the movie and the
// emulator. Any claim on the emulator is released.
func (rp *Replay) Close() error {
	if rp.closed {
		return nil
	}
	rp.closed = true
	rp.release()

	if !rp.owned {
		return nil
	}

	var err error
	if c, ok := rp.emu.(io.Closer); ok {
		err = c.Close()
	}
	if c, ok := rp.mov.(io.Closer); ok {
		if e := c.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
