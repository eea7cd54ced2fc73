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
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jetsetilly/retroreplay/curated"
)

// names of the files in the archive
const (
	headerFile = "Header.txt"
	inputFile  = "Input Log.txt"
	stateFile  = "Core.bin"
)

// header keys
const (
	keyVersion  = "MovieVersion"
	keyPlatform = "Platform"
	keyGame     = "GameName"
	keyPlayers  = "Players"
)

const movieVersion = "BizHawk v2.0.0"

const (
	inputBegin = "[Input]"
	inputEnd   = "[/Input]"
	logKey     = "LogKey:"
	released   = '.'
	groupSep   = "|"
)

// Sentinel patterns for movie errors.
const (
	NotAMovie    = "movie: %s: not a movie (%v)"
	NotClaimable = "movie: %s: cannot be claimed (%s)"
	BadHeader    = "movie: header: %s"
	BadInputLog  = "movie: input log: line %d: %s"
)

// mnemonic characters for common button names. buttons not in this list use
// the first character of their name
var mnemonics = map[string]byte{
	"UP":     'U',
	"DOWN":   'D',
	"LEFT":   'L',
	"RIGHT":  'R',
	"START":  'S',
	"SELECT": 's',
	"MODE":   'M',
	"L":      'l',
	"R":      'r',
}

func mnemonic(button string) byte {
	if m, ok := mnemonics[button]; ok {
		return m
	}
	if button == "" {
		return '?'
	}
	return button[0]
}

func writeHeader(w io.Writer, mov *Movie) error {
	_, err := fmt.Fprintf(w, "%s %s\n%s %s\n%s %s\n%s %d\n",
		keyVersion, movieVersion,
		keyPlatform, mov.platform,
		keyGame, mov.game,
		keyPlayers, mov.players)
	return err
}

func readHeader(r io.Reader, mov *Movie) error {
	var players string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		k, v, _ := strings.Cut(strings.TrimSpace(scanner.Text()), " ")
		v = strings.TrimSpace(v)
		switch k {
		case keyPlatform:
			mov.platform = v
		case keyGame:
			mov.game = v
		case keyPlayers:
			players = v
		}
	}
	if err := scanner.Err(); err != nil {
		return curated.Errorf(BadHeader, err)
	}

	if mov.game == "" {
		return curated.Errorf(BadHeader, "no game name")
	}

	// a missing players field means a single player recording
	mov.players = 1
	if players != "" {
		n, err := strconv.Atoi(players)
		if err != nil || n < 1 {
			return curated.Errorf(BadHeader, fmt.Sprintf("bad players field (%s)", players))
		}
		mov.players = n
	}

	return nil
}

func writeInputLog(w io.Writer, mov *Movie) error {
	b := bufio.NewWriter(w)

	b.WriteString(inputBegin)
	b.WriteString("\n")
	b.WriteString(logKey)
	for p := range mov.players {
		b.WriteString("#")
		for _, btn := range mov.buttons {
			fmt.Fprintf(b, "P%d %s%s", p+1, btn, groupSep)
		}
	}
	b.WriteString("\n")

	line := make([]byte, 0, mov.players*(len(mov.buttons)+1)+2)
	for _, f := range mov.frames {
		line = line[:0]
		line = append(line, groupSep...)
		for p := range mov.players {
			for i, btn := range mov.buttons {
				if f[p*len(mov.buttons)+i] {
					line = append(line, mnemonic(btn))
				} else {
					line = append(line, released)
				}
			}
			line = append(line, groupSep...)
		}
		line = append(line, '\n')
		b.Write(line)
	}

	b.WriteString(inputEnd)
	b.WriteString("\n")

	return b.Flush()
}

// parseLogKey returns the button names of each player.
func parseLogKey(key string) [][]string {
	var players [][]string
	for _, grp := range strings.Split(key, "#") {
		if strings.TrimSpace(grp) == "" {
			continue
		}
		var buttons []string
		for _, b := range strings.Split(grp, groupSep) {
			b = strings.TrimSpace(b)
			if b == "" {
				continue
			}
			// the player prefix is optional
			if p, name, ok := strings.Cut(b, " "); ok && strings.HasPrefix(p, "P") {
				b = name
			}
			buttons = append(buttons, b)
		}
		players = append(players, buttons)
	}
	return players
}

func readInputLog(r io.Reader, mov *Movie) error {
	scanner := bufio.NewScanner(r)

	var keyed bool
	var ln int

	for scanner.Scan() {
		ln++
		s := strings.TrimRight(scanner.Text(), "\r")

		switch {
		case s == "" || s == inputBegin || s == inputEnd:
			continue

		case strings.HasPrefix(s, logKey):
			players := parseLogKey(strings.TrimPrefix(s, logKey))
			if len(players) != mov.players {
				return curated.Errorf(BadInputLog, ln,
					fmt.Sprintf("log key has %d players but header has %d", len(players), mov.players))
			}
			for p := 1; p < len(players); p++ {
				if len(players[p]) != len(players[0]) {
					return curated.Errorf(BadInputLog, ln, "players have different numbers of buttons")
				}
			}
			mov.buttons = players[0]
			keyed = true

		case strings.HasPrefix(s, groupSep):
			if !keyed {
				return curated.Errorf(BadInputLog, ln, "frame before log key")
			}
			f, err := parseFrame(s, mov.players, len(mov.buttons))
			if err != nil {
				return curated.Errorf(BadInputLog, ln, err)
			}
			mov.frames = append(mov.frames, f)

		default:
			return curated.Errorf(BadInputLog, ln, "unrecognised line")
		}
	}

	if err := scanner.Err(); err != nil {
		return curated.Errorf(BadInputLog, ln, err)
	}

	if !keyed {
		return curated.Errorf(BadInputLog, ln, "no log key")
	}

	return nil
}

func parseFrame(s string, players int, buttons int) ([]bool, error) {
	groups := strings.Split(strings.Trim(s, groupSep), groupSep)
	if len(groups) != players {
		return nil, fmt.Errorf("expected %d groups, got %d", players, len(groups))
	}

	f := make([]bool, 0, players*buttons)
	for _, g := range groups {
		if len(g) != buttons {
			return nil, fmt.Errorf("expected %d buttons, got %d", buttons, len(g))
		}
		for i := range len(g) {
			f = append(f, g[i] != released && g[i] != ' ')
		}
	}
	return f, nil
}
