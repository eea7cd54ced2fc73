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
	"path/filepath"

	"github.com/jetsetilly/retroreplay/curated"
	"github.com/jetsetilly/retroreplay/logger"
	"github.com/jetsetilly/retroreplay/movie"
)

// Reset starts a new episode. The core is put into the initial state and run
// for one frame with no buttons pressed.
//
// In record mode the movie of the previous episode is written and a new
// movie is started. The first frame of the new movie is the frame run by
// Reset().
func (emu *Emulator) Reset() error {
	if err := emu.stopRecording(); err != nil {
		return err
	}

	if len(emu.initialState) > 0 {
		if err := emu.core.SetState(emu.initialState); err != nil {
			return curated.Errorf("emulator: reset: %v", err)
		}
	}

	released := make([]bool, len(emu.buttons))
	for p := range emu.players {
		emu.core.SetButtons(p, released)
	}
	emu.core.Run()

	if emu.opts.Record != "" {
		name := fmt.Sprintf("%s-%s-%06d.bk2", emu.game.Name, emu.stateName, emu.movieID)
		mov, err := movie.Create(filepath.Join(emu.opts.Record, name), emu.game.Name, emu.buttons, emu.players)
		if err != nil {
			return curated.Errorf("emulator: reset: %v", err)
		}
		mov.SetState(emu.initialState)
		mov.Step()
		emu.mov = mov
		emu.movieID++
		logger.Logf(emu.env, "emulator", "recording to %s", mov.Path())
	}

	var err error
	emu.prev, err = emu.data.Read(emu.core.Memory())
	if err != nil {
		return curated.Errorf("emulator: reset: %v", err)
	}

	emu.audio = copyAudio(emu.core)
	emu.steps = 0
	emu.ready = true

	return nil
}

// Step the emulation by one frame. The pressed slice has the buttons of
// every player, player-major. Its length must be Players()*NumButtons().
func (emu *Emulator) Step(pressed []bool) (Step, error) {
	if !emu.ready {
		return Step{}, curated.Errorf(NotReset)
	}

	nb := len(emu.buttons)
	if len(pressed) != emu.players*nb {
		return Step{}, curated.Errorf(ButtonCount, emu.players*nb, len(pressed))
	}

	if emu.mov != nil {
		for p := range emu.players {
			for b := range nb {
				emu.mov.SetKey(b, p, pressed[p*nb+b])
			}
		}
		emu.mov.Step()
	}

	for p := range emu.players {
		emu.core.SetButtons(p, pressed[p*nb:(p+1)*nb])
	}
	emu.core.Run()
	emu.steps++

	curr, err := emu.data.Read(emu.core.Memory())
	if err != nil {
		return Step{}, curated.Errorf("emulator: step: %v", err)
	}

	out, err := emu.scenario.Evaluate(emu.prev, curr, emu.steps)
	if err != nil {
		return Step{}, curated.Errorf("emulator: step: %v", err)
	}
	emu.prev = curr

	emu.audio = copyAudio(emu.core)

	stp := Step{
		Reward:     out.Reward,
		Terminated: out.Terminated,
		Truncated:  out.Truncated,
		Info:       cloneInfo(curr),
	}
	if !emu.opts.NoRender {
		stp.Frame = copyFrame(emu.core.Frame())
	}

	return stp, nil
}
