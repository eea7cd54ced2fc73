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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error. The pattern is remembered and is
// what makes one curated error distinguishable from another:
//
//	const ButtonMismatch = "replay: recording has %d buttons, emulator has %d"
//
//	err := curated.Errorf(ButtonMismatch, 8, 12)
//	if curated.Is(err, ButtonMismatch) {
//		fmt.Println("true")
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain:
//
//	f := curated.Errorf("replay: %v", err)
//	curated.Has(f, ButtonMismatch) // true
//	curated.Is(f, ButtonMismatch)  // false
//
// Sentinel patterns are stored as exported string constants in the package
// that produces them.
//
// The Error() function normalises the message chain so that duplicate
// adjacent parts are removed. For example, wrapping an error that begins
// "replay: " in another "replay: %v" error produces one "replay: " prefix and
// not two. Parts are separated by the sub-string ": ".
//
// Curated errors also implement Unwrap() so that the standard errors.Is() and
// errors.As() functions can look inside any wrapped error values.
package curated
