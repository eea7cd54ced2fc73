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

package emulator

import (
	"fmt"
	"image"
	"maps"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"golang.org/x/image/draw"

	"github.com/jetsetilly/retroreplay/curated"
	"github.com/jetsetilly/retroreplay/environment"
	"github.com/jetsetilly/retroreplay/integration"
	"github.com/jetsetilly/retroreplay/logger"
	"github.com/jetsetilly/retroreplay/movie"
)

// Sentinel patterns for emulator errors.
const (
	UnknownSystem  = "emulator: no core for system (%s)"
	AlreadyClaimed = "emulator: already claimed"
	TooManyPlayers = "emulator: %s supports %d players, not %d"
	ButtonCount    = "emulator: step: expected %d button values, got %d"
	NotReset       = "emulator: step before reset"
)

// PowerOn can be used as the State option to start from the power-on state
// of the core, regardless of the default state of the integration.
const PowerOn = "none"

// Options for Make().
type Options struct {
	// name of the scenario, or the path of a scenario file. the empty string
	// means the default scenario of the integration
	Scenario string

	// the integrations to search for the game. the zero value means
	// integration.Stable
	Inttype integration.Type

	// name of the state in the integration, or the path of a state file. the
	// empty string means the default state named in the integration's
	// metadata
	State string

	// directory to record movies to. the empty string means movies are not
	// recorded
	Record string

	// do not copy the frame image for each step
	NoRender bool

	// number of players. the zero value means one player
	Players int
}

// Info is the set of memory variables for a single step.
type Info map[string]int

// Keys returns the sorted variable names.
func (inf Info) Keys() []string {
	k := make([]string, 0, len(inf))
	for n := range inf {
		k = append(k, n)
	}
	sort.Strings(k)
	return k
}

// Step is the result of a call to Emulator.Step().
type Step struct {
	// the image at the end of the step. nil if the emulator was made with
	// the NoRender option
	Frame *image.RGBA

	Reward float64

	// the scenario's done condition has been met
	Terminated bool

	// the scenario's step limit has been reached
	Truncated bool

	Info Info
}

// Done is true if the episode has terminated or been truncated.
func (s Step) Done() bool {
	return s.Terminated || s.Truncated
}

// Audio is the sound generated by a single step.
type Audio struct {
	// interleaved stereo samples
	Samples []int16
	Rate    float64
}

// Emulator runs a single game.
type Emulator struct {
	env  *environment.Environment
	opts Options

	game     *integration.Game
	core     Core
	data     *integration.Data
	scenario *integration.Scenario

	players int
	buttons []string

	stateName    string
	initialState []byte

	// values of the data variables at the end of the previous step
	prev  map[string]int
	steps int
	ready bool

	audio Audio

	// record mode only
	mov     *movie.Movie
	movieID int

	claimed atomic.Bool
}

func (emu *Emulator) String() string {
	return fmt.Sprintf("%s [%s]", emu.game.Name, emu.game.Inttype)
}

// Make an emulator for the named game. The game is found in the
// integrations of the environment.
func Make(env *environment.Environment, game string, opts Options) (*Emulator, error) {
	if env == nil {
		env = environment.NewEnvironment("", nil, 0)
	}

	if opts.Inttype == 0 {
		opts.Inttype = integration.Stable
	}
	if opts.Players == 0 {
		opts.Players = 1
	}

	g, err := env.Integrations.Find(game, opts.Inttype)
	if err != nil {
		return nil, err
	}

	core, ok := newCore(g.System())
	if !ok {
		return nil, curated.Errorf(UnknownSystem, g.System())
	}

	if opts.Players < 1 || opts.Players > core.Players() {
		return nil, curated.Errorf(TooManyPlayers, g.System(), core.Players(), opts.Players)
	}

	rom, err := g.ROM()
	if err != nil {
		return nil, err
	}
	if err := core.Load(rom); err != nil {
		return nil, curated.Errorf("emulator: %s: %v", g.Name, err)
	}

	data, err := g.Data()
	if err != nil {
		return nil, err
	}

	scenario, err := g.Scenario(opts.Scenario)
	if err != nil {
		return nil, err
	}
	if err := scenario.Validate(data); err != nil {
		return nil, err
	}

	emu := &Emulator{
		env:      env,
		opts:     opts,
		game:     g,
		core:     core,
		data:     data,
		scenario: scenario,
		players:  opts.Players,
		buttons:  core.Buttons(),
	}

	if err := emu.loadState(opts.State); err != nil {
		return nil, err
	}

	if opts.Record != "" {
		if err := os.MkdirAll(opts.Record, 0o755); err != nil {
			return nil, curated.Errorf("emulator: record: %v", err)
		}
	}

	logger.Logf(env, "emulator", "made %s with scenario %s", emu, scenario.Name)

	return emu, nil
}

// loadState sets the initial state from the named state.
func (emu *Emulator) loadState(name string) error {
	if name == "" {
		md, err := emu.game.Metadata()
		if err != nil {
			return err
		}
		name = md.DefaultState
	}

	if name == "" || name == PowerOn {
		emu.stateName = PowerOn
		emu.initialState = emu.core.State()
		return nil
	}

	var state []byte

	if fi, err := os.Stat(name); err == nil && !fi.IsDir() {
		f, err := os.Open(name)
		if err != nil {
			return curated.Errorf("emulator: state: %v", err)
		}
		defer f.Close()
		state, err = integration.ReadState(f)
		if err != nil {
			return err
		}
	} else {
		state, err = emu.game.State(name)
		if err != nil {
			return err
		}
	}

	if err := emu.core.SetState(state); err != nil {
		return curated.Errorf("emulator: state %s: %v", name, err)
	}

	emu.stateName = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	emu.initialState = state

	return nil
}

// Game returns the integration being emulated.
func (emu *Emulator) Game() *integration.Game {
	return emu.game
}

// Scenario returns the scenario used to judge each step.
func (emu *Emulator) Scenario() *integration.Scenario {
	return emu.scenario
}

// Buttons returns a copy of the button names of a single player.
func (emu *Emulator) Buttons() []string {
	b := make([]string, len(emu.buttons))
	copy(b, emu.buttons)
	return b
}

// NumButtons returns the number of buttons of a single player.
func (emu *Emulator) NumButtons() int {
	return len(emu.buttons)
}

// Players returns the number of players.
func (emu *Emulator) Players() int {
	return emu.players
}

// SetInitialState sets the state used by the next call to Reset(). An empty
// state means Reset() leaves the core in its current state.
func (emu *Emulator) SetInitialState(state []byte) {
	emu.initialState = make([]byte, len(state))
	copy(emu.initialState, state)
}

// InitialState returns the state used by Reset().
func (emu *Emulator) InitialState() []byte {
	return emu.initialState
}

// Audio returns the sound generated by the most recent step or reset.
func (emu *Emulator) Audio() Audio {
	return emu.audio
}

// Memory returns a copy of the core's memory.
func (emu *Emulator) Memory() []byte {
	m := emu.core.Memory()
	c := make([]byte, len(m))
	copy(c, m)
	return c
}

// Claim the emulator for exclusive use. Fails with AlreadyClaimed if the
// emulator has not been released since the previous claim.
func (emu *Emulator) Claim() error {
	if !emu.claimed.CompareAndSwap(false, true) {
		return curated.Errorf(AlreadyClaimed)
	}
	return nil
}

// Release a claim made with Claim().
func (emu *Emulator) Release() {
	emu.claimed.Store(false)
}

// Close the emulator. In record mode the current movie is written.
func (emu *Emulator) Close() error {
	return emu.stopRecording()
}

func (emu *Emulator) stopRecording() error {
	if emu.mov == nil {
		return nil
	}
	err := emu.mov.Close()
	emu.mov = nil
	return err
}

// MoviePath returns the path of the movie being recorded. The empty string
// if the emulator is not recording.
func (emu *Emulator) MoviePath() string {
	if emu.mov == nil {
		return ""
	}
	return emu.mov.Path()
}

// copyFrame returns a copy of the core's frame with an opaque alpha channel.
func copyFrame(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Rect)
	draw.Draw(dst, dst.Rect, src, src.Rect.Min, draw.Src)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}

func copyAudio(core Core) Audio {
	a := core.Audio()
	s := make([]int16, len(a))
	copy(s, a)
	return Audio{Samples: s, Rate: core.AudioRate()}
}

func cloneInfo(m map[string]int) Info {
	return Info(maps.Clone(m))
}
