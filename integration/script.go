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
	"io/fs"

	"github.com/Shopify/go-lua"

	"github.com/jetsetilly/retroreplay/curated"
)

// luaScript is the Lua state used by a scenario. Before any function is
// called the following globals are set:
//
//	data	table of variable values for the current step
//	prev	table of variable values for the previous step
//	steps	number of steps since reset
type luaScript struct {
	l *lua.State
}

func loadScripts(fsys fs.FS, names []string) (*luaScript, error) {
	s := &luaScript{l: lua.NewState()}
	lua.OpenLibraries(s.l)

	for _, n := range names {
		b, err := fs.ReadFile(fsys, n)
		if err != nil {
			return nil, curated.Errorf("lua: %v", err)
		}
		if err := lua.LoadBuffer(s.l, string(b), n, ""); err != nil {
			return nil, curated.Errorf("lua: %s: %v", n, err)
		}
		if err := s.l.ProtectedCall(0, 0, 0); err != nil {
			return nil, curated.Errorf("lua: %s: %v", n, err)
		}
	}

	return s, nil
}

func (s *luaScript) setTable(name string, vals map[string]int) {
	s.l.NewTable()
	for k, v := range vals {
		s.l.PushInteger(v)
		s.l.SetField(-2, k)
	}
	s.l.SetGlobal(name)
}

// call function fn and leave the single result on the stack.
func (s *luaScript) call(fn string, prev map[string]int, curr map[string]int, steps int) error {
	s.setTable("data", curr)
	s.setTable("prev", prev)
	s.l.PushInteger(steps)
	s.l.SetGlobal("steps")

	s.l.Global(fn)
	if s.l.TypeOf(-1) != lua.TypeFunction {
		s.l.Pop(1)
		return curated.Errorf("lua: %s is not a function", fn)
	}
	if err := s.l.ProtectedCall(0, 1, 0); err != nil {
		return curated.Errorf("lua: %s: %v", fn, err)
	}
	return nil
}

func (s *luaScript) reward(fn string, prev map[string]int, curr map[string]int, steps int) (float64, error) {
	if err := s.call(fn, prev, curr, steps); err != nil {
		return 0, err
	}
	defer s.l.Pop(1)

	v, ok := s.l.ToNumber(-1)
	if !ok {
		return 0, curated.Errorf("lua: %s did not return a number", fn)
	}
	return v, nil
}

func (s *luaScript) done(fn string, prev map[string]int, curr map[string]int, steps int) (bool, error) {
	if err := s.call(fn, prev, curr, steps); err != nil {
		return false, err
	}
	defer s.l.Pop(1)

	if s.l.TypeOf(-1) != lua.TypeBoolean {
		return false, curated.Errorf("lua: %s did not return a boolean", fn)
	}
	return s.l.ToBoolean(-1), nil
}
