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
	"image"
	"sort"
	"sync"

	"github.com/jetsetilly/retroreplay/emulator/toy"
)

// Core is an emulated system.
type Core interface {
	// the button names of a single player
	Buttons() []string

	// the maximum number of players
	Players() int

	// load ROM data and enter the power-on state
	Load(rom []byte) error

	State() []byte
	SetState(state []byte) error

	// set buttons of a player for the next call to Run(). the pressed slice
	// is in the order of Buttons()
	SetButtons(player int, pressed []bool)

	// run for one frame
	Run()

	// the frame, audio and memory after the most recent Run(). the returned
	// values may be reused by the next call to Run()
	Frame() *image.RGBA
	Audio() []int16
	AudioRate() float64
	Memory() []byte
}

// CoreCreator creates a new instance of a Core.
type CoreCreator func() Core

var (
	coresCrit sync.Mutex
	cores     = map[string]CoreCreator{
		toy.System: func() Core { return toy.NewCore() },
	}
)

// RegisterCore makes a core available for the named system. Registering a
// system a second time replaces the earlier core.
func RegisterCore(system string, create CoreCreator) {
	coresCrit.Lock()
	defer coresCrit.Unlock()
	cores[system] = create
}

// Systems returns the sorted names of every system with a core.
func Systems() []string {
	coresCrit.Lock()
	defer coresCrit.Unlock()

	l := make([]string, 0, len(cores))
	for s := range cores {
		l = append(l, s)
	}
	sort.Strings(l)
	return l
}

func newCore(system string) (Core, bool) {
	coresCrit.Lock()
	defer coresCrit.Unlock()

	create, ok := cores[system]
	if !ok {
		return nil, false
	}
	return create(), true
}
