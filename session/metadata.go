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
	"path/filepath"
	"strings"

	"github.com/jetsetilly/retroreplay/curated"
)

// Sentinel patterns for session errors.
const (
	BadFilename    = "session: filename %s has %d parts, at least 4 are required"
	SchemaMismatch = "session: frame %d: %s"
	NoFrames       = "session: no frames"
	PressWidth     = "session: frame %d: %d presses for %d actions"
	SequenceLength = "session: %s %s has %d values, expected %d"
	BadActions     = "session: bad actions: %s"
)

// the minimum number of underscore separated parts in a filename
const minParts = 4

// Metadata of a session, taken from the filename of the recording.
type Metadata struct {
	Filename   string `json:"filename"`
	Subject    string `json:"subject"`
	Session    string `json:"session"`
	Level      string `json:"level"`
	Repetition string `json:"repetition"`
}

// ParseFilename extracts the Metadata from the filename part of path. The
// extension is the part of the filename after the final period.
func ParseFilename(path string) (Metadata, error) {
	base := filepath.Base(path)

	stem := base
	if i := strings.LastIndex(stem, "."); i != -1 {
		stem = stem[:i]
	}

	parts := strings.Split(stem, "_")
	if len(parts) < minParts {
		return Metadata{}, curated.Errorf(BadFilename, base, len(parts))
	}

	return Metadata{
		Filename:   base,
		Subject:    parts[0],
		Session:    parts[1],
		Level:      parts[len(parts)-2],
		Repetition: parts[len(parts)-1],
	}, nil
}
