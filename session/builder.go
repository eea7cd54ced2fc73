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

package session

import (
	"iter"
	"slices"

	"github.com/jetsetilly/retroreplay/curated"
	"github.com/jetsetilly/retroreplay/logger"
	"github.com/jetsetilly/retroreplay/replay"
)

// Builder accumulates frames into a Record.
type Builder struct {
	rec *Record

	// the sequences of Presses in the order of Actions
	presses [][]bool
}

// NewBuilder is the preferred method of initialisation for the Builder type.
// The path is the path of the recording, from which the metadata is taken.
// The actions are the names of the entries in every press vector.
func NewBuilder(path string, actions []string) (*Builder, error) {
	md, err := ParseFilename(path)
	if err != nil {
		return nil, err
	}

	if len(actions) == 0 {
		return nil, curated.Errorf(BadActions, "no actions")
	}

	bld := &Builder{
		rec: &Record{
			Metadata: md,
			Actions:  slices.Clone(actions),
			Presses:  make(map[string][]bool, len(actions)),
		},
		presses: make([][]bool, len(actions)),
	}

	for _, a := range actions {
		if _, ok := bld.rec.Presses[a]; ok {
			return nil, curated.Errorf(BadActions, "duplicate action "+a)
		}
		bld.rec.Presses[a] = nil
	}

	return bld, nil
}

// Len returns the number of frames added so far.
func (bld *Builder) Len() int {
	return len(bld.rec.Rewards)
}

// Add the press vector and annotations of the next frame. The info keys of
// the first frame fix the keys for every following frame.
func (bld *Builder) Add(pressed []bool, ann replay.Annotations) error {
	frame := bld.Len()

	if len(pressed) != len(bld.rec.Actions) {
		return curated.Errorf(PressWidth, frame, len(pressed), len(bld.rec.Actions))
	}

	if frame == 0 {
		bld.rec.Keys = ann.Info.Keys()
		bld.rec.Variables = make(map[string][]int, len(bld.rec.Keys))
		for _, k := range bld.rec.Keys {
			bld.rec.Variables[k] = nil
		}
	} else {
		for _, k := range bld.rec.Keys {
			if _, ok := ann.Info[k]; !ok {
				return curated.Errorf(SchemaMismatch, frame, "missing key "+k)
			}
		}
		if len(ann.Info) != len(bld.rec.Keys) {
			for k := range ann.Info {
				if _, ok := bld.rec.Variables[k]; !ok {
					return curated.Errorf(SchemaMismatch, frame, "unexpected key "+k)
				}
			}
		}
	}

	for _, k := range bld.rec.Keys {
		bld.rec.Variables[k] = append(bld.rec.Variables[k], ann.Info[k])
	}
	for i, p := range pressed {
		bld.presses[i] = append(bld.presses[i], p)
	}
	bld.rec.Rewards = append(bld.rec.Rewards, ann.Reward)
	bld.rec.Done = append(bld.rec.Done, ann.Done)

	return nil
}

// Record returns the completed record. It is an error if no frames have been
// added. The builder should not be used after this call.
func (bld *Builder) Record() (*Record, error) {
	if bld.Len() == 0 {
		return nil, curated.Errorf(NoFrames)
	}
	for i, a := range bld.rec.Actions {
		bld.rec.Presses[a] = bld.presses[i]
	}
	return bld.rec, nil
}

// FromFrames builds a record from every frame in the sequence.
func FromFrames(frames iter.Seq2[replay.Frame, error], path string, actions []string) (*Record, error) {
	bld, err := NewBuilder(path, actions)
	if err != nil {
		return nil, err
	}

	for frm, err := range frames {
		if err != nil {
			return nil, err
		}
		if err := bld.Add(frm.Pressed, frm.Annotations); err != nil {
			return nil, err
		}
	}

	rec, err := bld.Record()
	if err != nil {
		return nil, err
	}

	logger.Logf(logger.Allow, "session", "built %s", rec)

	return rec, nil
}

// FromReplay runs the replay to the end of the input log and returns the
// record. The path is the path of the recording. The actions are the replay's
// actions.
func FromReplay(rp *replay.Replay, path string) (*Record, error) {
	return FromFrames(rp.Frames(), path, rp.Actions())
}
