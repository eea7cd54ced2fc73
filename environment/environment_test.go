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

package environment_test

import (
	"testing"

	"github.com/jetsetilly/retroreplay/environment"
	"github.com/jetsetilly/retroreplay/integration"
	"github.com/jetsetilly/retroreplay/test"
)

func TestIsolation(t *testing.T) {
	a := environment.NewEnvironment("", nil, 0)
	b := environment.NewEnvironment("second", nil, 0)

	a.Integrations.AddCustomPath(t.TempDir())
	test.ExpectEquality(t, len(a.Integrations.CustomPaths()), 1)
	test.ExpectEquality(t, len(b.Integrations.CustomPaths()), 0)

	test.ExpectSuccess(t, a.IsMainEmulation())
	test.ExpectFailure(t, b.IsMainEmulation())
	test.ExpectSuccess(t, b.IsEmulation("second"))
}

func TestSharedRegistry(t *testing.T) {
	reg := integration.NewRegistry()
	a := environment.NewEnvironment("a", reg, 0)
	b := environment.NewEnvironment("b", reg, 0)

	a.Integrations.AddCustomPath(t.TempDir())
	test.ExpectEquality(t, len(b.Integrations.CustomPaths()), 1)
}

func TestNormalise(t *testing.T) {
	a := environment.NewEnvironment("a", nil, 100)
	b := environment.NewEnvironment("b", nil, 100)
	a.Normalise()
	b.Normalise()

	for range 10 {
		test.ExpectEquality(t, a.Random.Intn(1000), b.Random.Intn(1000))
	}
}
