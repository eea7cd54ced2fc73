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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// With flag.FlagSet you call Parse() with the array of strings as the only
// argument. With modalflag you first call NewArgs() with the array of
// arguments and then Parse() with no arguments:
//
//	md = Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("REPLAY", "RECORD", "REFORMAT")
//	_, _ = md.Parse()
//
// A mode is a command line argument that puts the program into a different
// mode of operation, with its own set of flags and arguments. After the first
// call to Parse(), Mode() returns the selected mode. The first sub-mode in
// the list is the default and is selected when the first argument after the
// flags is not a mode. Sub-mode comparisons are case insensitive.
//
// Each mode then starts a new layer of flags with NewMode() and parses again:
//
//	switch md.Mode() {
//	case "REPLAY":
//		md.NewMode()
//		scenario := md.AddString("scenario", "", "scenario name or path")
//		integrations := md.AddStringList("integrations", "custom integration directory")
//		p, err := md.Parse()
//		switch p {
//		case modalflag.ParseError:
//			return err
//		case modalflag.ParseHelp:
//			return nil
//		}
//		if md.IsSet("scenario") {
//			opts.Scenario = *scenario
//		}
//		replay(md.RemainingArgs())
//	}
//
// IsSet() distinguishes a flag given on the command line from the default
// value. This allows the command line to override settings from a
// configuration file only when the user has asked for it.
package modalflag
