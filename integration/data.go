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

package integration

import (
	"sort"
	"strconv"

	"github.com/jetsetilly/retroreplay/curated"
)

// Sentinel patterns for data errors.
const (
	BadVariableType    = "integration: variable %s: bad type (%s)"
	VariableOutOfRange = "integration: variable %s: address %#x out of range"
)

// Variable is a named value stored in emulator memory.
//
// The Type field describes how to read the value from memory. It has three
// parts: the byte order, the kind and the size in bytes. For example, ">u2"
// is a big-endian unsigned 16 bit value.
//
//	byte order: '<' or '=' little-endian, '>' big-endian, '|' not applicable
//	kind: 'u' unsigned, 'i' signed, 'd' binary coded decimal
//	size: 1, 2 or 4
type Variable struct {
	Address int    `yaml:"address"`
	Type    string `yaml:"type"`

	bigEndian bool
	kind      byte
	size      int
}

func (v *Variable) parse(name string) error {
	if len(v.Type) != 3 {
		return curated.Errorf(BadVariableType, name, v.Type)
	}

	switch v.Type[0] {
	case '<', '|', '=':
		v.bigEndian = false
	case '>':
		v.bigEndian = true
	default:
		return curated.Errorf(BadVariableType, name, v.Type)
	}

	switch v.Type[1] {
	case 'u', 'i', 'd':
		v.kind = v.Type[1]
	default:
		return curated.Errorf(BadVariableType, name, v.Type)
	}

	sz, err := strconv.Atoi(v.Type[2:])
	if err != nil || (sz != 1 && sz != 2 && sz != 4) {
		return curated.Errorf(BadVariableType, name, v.Type)
	}
	v.size = sz

	// a multi-byte value must say what the byte order is
	if sz > 1 && v.Type[0] == '|' {
		return curated.Errorf(BadVariableType, name, v.Type)
	}

	if v.Address < 0 {
		return curated.Errorf(VariableOutOfRange, name, v.Address)
	}

	return nil
}

// read the variable from memory.
func (v Variable) read(name string, mem []byte) (int, error) {
	if v.Address+v.size > len(mem) {
		return 0, curated.Errorf(VariableOutOfRange, name, v.Address)
	}

	b := mem[v.Address : v.Address+v.size]

	// arrange bytes from most to least significant
	ordered := make([]byte, v.size)
	for i := range b {
		if v.bigEndian {
			ordered[i] = b[i]
		} else {
			ordered[v.size-1-i] = b[i]
		}
	}

	switch v.kind {
	case 'd':
		n := 0
		for _, o := range ordered {
			n = n*100 + int(o>>4)*10 + int(o&0x0f)
		}
		return n, nil

	case 'i':
		var n int64
		for _, o := range ordered {
			n = n<<8 | int64(o)
		}
		shift := 64 - 8*v.size
		return int(n << shift >> shift), nil
	}

	n := 0
	for _, o := range ordered {
		n = n<<8 | int(o)
	}
	return n, nil
}

// Data is the collection of memory variables for an integration. The values
// of the variables form the info mapping reported by every emulation step.
type Data struct {
	Info map[string]Variable `yaml:"info"`
}

func (d *Data) parse() error {
	for name, v := range d.Info {
		if err := v.parse(name); err != nil {
			return err
		}
		d.Info[name] = v
	}
	return nil
}

// Names returns the sorted names of the variables.
func (d *Data) Names() []string {
	n := make([]string, 0, len(d.Info))
	for k := range d.Info {
		n = append(n, k)
	}
	sort.Strings(n)
	return n
}

// Read all variables from memory. The returned map always has every variable
// in the Data.
func (d *Data) Read(mem []byte) (map[string]int, error) {
	vals := make(map[string]int, len(d.Info))
	for name, v := range d.Info {
		n, err := v.read(name, mem)
		if err != nil {
			return nil, err
		}
		vals[name] = n
	}
	return vals, nil
}
