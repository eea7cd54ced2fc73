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
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/jetsetilly/retroreplay/curated"
)

// Record is the column oriented form of a replayed session.
type Record struct {
	Metadata

	// the names of the actions, in the order of a frame's press vector
	Actions []string `json:"actions"`

	// the sorted names of the memory variables
	Keys []string `json:"keys"`

	// one sequence for each name in Keys
	Variables map[string][]int `json:"variables"`

	// one sequence for each name in Actions
	Presses map[string][]bool `json:"presses"`

	Rewards []float64 `json:"rewards"`
	Done    []bool    `json:"done"`
}

func (rec *Record) String() string {
	return fmt.Sprintf("%s %s %s %s: %d frames", rec.Subject, rec.Session, rec.Level, rec.Repetition, rec.Len())
}

// Len returns the number of frames in the record.
func (rec *Record) Len() int {
	return len(rec.Rewards)
}

// Variable returns the sequence of values for the named memory variable.
func (rec *Record) Variable(key string) ([]int, bool) {
	v, ok := rec.Variables[key]
	return v, ok
}

// Pressed returns the sequence of press states for the named action.
func (rec *Record) Pressed(action string) ([]bool, bool) {
	v, ok := rec.Presses[action]
	return v, ok
}

// Validate checks that every sequence in the record has one entry for each
// frame and that there is a sequence for every key and action.
func (rec *Record) Validate() error {
	n := rec.Len()
	if n == 0 {
		return curated.Errorf(NoFrames)
	}

	if len(rec.Done) != n {
		return curated.Errorf(SequenceLength, "sequence", "done", len(rec.Done), n)
	}

	if len(rec.Variables) != len(rec.Keys) {
		return curated.Errorf(SequenceLength, "record", "variables", len(rec.Variables), len(rec.Keys))
	}
	for _, k := range rec.Keys {
		v, ok := rec.Variables[k]
		if !ok {
			return curated.Errorf(SequenceLength, "variable", k, 0, n)
		}
		if len(v) != n {
			return curated.Errorf(SequenceLength, "variable", k, len(v), n)
		}
	}

	if len(rec.Presses) != len(rec.Actions) {
		return curated.Errorf(SequenceLength, "record", "actions", len(rec.Presses), len(rec.Actions))
	}
	for _, a := range rec.Actions {
		v, ok := rec.Presses[a]
		if !ok {
			return curated.Errorf(SequenceLength, "action", a, 0, n)
		}
		if len(v) != n {
			return curated.Errorf(SequenceLength, "action", a, len(v), n)
		}
	}

	return nil
}

// WriteJSON writes the record to w as JSON.
func (rec *Record) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return curated.Errorf("session: %v", err)
	}
	return nil
}

// ReadJSON reads a record written by WriteJSON. The record is validated.
func ReadJSON(r io.Reader) (*Record, error) {
	rec := &Record{}
	if err := json.NewDecoder(r).Decode(rec); err != nil {
		return nil, curated.Errorf("session: %v", err)
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}
