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

package paths_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/retroreplay/paths"
	"github.com/jetsetilly/retroreplay/test"
)

func TestLocalResourcePath(t *testing.T) {
	t.Chdir(t.TempDir())

	err := os.Mkdir(".retroreplay", 0o700)
	test.DemandSuccess(t, err)

	pth, err := paths.ResourcePath("config.yaml")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".retroreplay", "config.yaml"))

	pth, err = paths.ResourcePath("integrations", "Dodge-Toy")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".retroreplay", "integrations", "Dodge-Toy"))

	// the directory part of the resource should have been created
	fi, err := os.Stat(filepath.Join(".retroreplay", "integrations"))
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, fi.IsDir())
}

func TestUserResourcePath(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", cfg)
	t.Setenv("HOME", cfg)

	pth, err := paths.ResourcePath("sessions.db")
	test.ExpectSuccess(t, err)

	base, err := os.UserConfigDir()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(base, "retroreplay", "sessions.db"))
}
