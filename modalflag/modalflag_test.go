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

package modalflag_test

import (
	"testing"

	"github.com/jetsetilly/retroreplay/modalflag"
	"github.com/jetsetilly/retroreplay/test"
)

func TestNoModesNoFlags(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{})

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "")
	test.ExpectEquality(t, md.Path(), "")
	test.ExpectSuccess(t, md.Parsed())
}

func TestNoModes(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-render", "a.bk2", "b.bk2"})
	render := md.AddBool("render", false, "render frames")
	test.ExpectFailure(t, *render)

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, *render)
	test.ExpectSliceEquality(t, md.RemainingArgs(), []string{"a.bk2", "b.bk2"})
	test.ExpectEquality(t, md.GetArg(1), "b.bk2")
	test.ExpectEquality(t, md.GetArg(2), "")
}

func TestUnknownFlag(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-nosuchflag"})

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseError)
	test.ExpectFailure(t, err)
}

func TestModes(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"record", "-steps", "20", "Dodge-Toy"})
	md.AddSubModes("REPLAY", "RECORD")

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "RECORD")

	md.NewMode()
	steps := md.AddInt("steps", 100, "number of steps")
	p, err = md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, *steps, 20)
	test.ExpectSliceEquality(t, md.RemainingArgs(), []string{"Dodge-Toy"})
	test.ExpectEquality(t, md.Path(), "RECORD")
}

func TestDefaultMode(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-scenario", "survival", "a.bk2"})
	md.AddSubModes("REPLAY", "RECORD")

	// the flag belongs to the default mode
	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "REPLAY")

	md.NewMode()
	scenario := md.AddString("scenario", "", "scenario")
	p, err = md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, *scenario, "survival")
	test.ExpectSliceEquality(t, md.RemainingArgs(), []string{"a.bk2"})

	// an argument that is not a mode selects the default mode
	md.NewArgs([]string{"a.bk2"})
	md.AddSubModes("REPLAY", "RECORD")
	_, err = md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "REPLAY")
	test.ExpectSliceEquality(t, md.RemainingArgs(), []string{"a.bk2"})
}

func TestIsSetAndLists(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-integrations", "/a", "-integrations", "/b", "-skip=false"})
	dirs := md.AddStringList("integrations", "custom integration directory")
	skip := md.AddBool("skip", true, "skip first step")
	md.AddString("scenario", "", "scenario")

	_, err := md.Parse()
	test.DemandSuccess(t, err)
	test.ExpectSliceEquality(t, *dirs, []string{"/a", "/b"})
	test.ExpectFailure(t, *skip)
	test.ExpectSuccess(t, md.IsSet("skip"))
	test.ExpectFailure(t, md.IsSet("scenario"))
}

func TestNoHelpAvailable(t *testing.T) {
	tw := &test.CompareWriter{}

	md := modalflag.Modes{Output: tw}
	md.NewArgs([]string{"-help"})

	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)
	test.ExpectSuccess(t, tw.Compare("No help available\n"))
}

func TestHelpFlags(t *testing.T) {
	tw := &test.CompareWriter{}

	md := modalflag.Modes{Output: tw}
	md.NewArgs([]string{"-help"})
	md.AddBool("test", true, "test flag")

	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)

	expectedHelp := "Usage:\n" +
		"  -test\n" +
		"    	test flag (default true)\n"
	test.ExpectEquality(t, tw.String(), expectedHelp)
}

func TestHelpFlagsAndModes(t *testing.T) {
	tw := &test.CompareWriter{}

	md := modalflag.Modes{Output: tw}
	md.NewArgs([]string{"-help"})
	md.AddBool("test", true, "test flag")
	md.AddSubModes("replay", "record")

	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)

	expectedHelp := "Usage:\n" +
		"  -test\n" +
		"    	test flag (default true)\n" +
		"\n" +
		"  available modes: REPLAY, RECORD\n" +
		"    default: REPLAY\n"
	test.ExpectEquality(t, tw.String(), expectedHelp)
}
