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

// Package test contains helper functions for writing tests. The Expect*()
// functions report a failure with t.Errorf() and allow the test to continue.
// The Demand*() functions report with t.Fatalf() and stop the test
// immediately.
//
// The optional tags argument of each function is prepended to the failure
// message. It's useful for identifying which iteration of a loop failed.
package test
