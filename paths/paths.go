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

package paths

import (
	"os"
	"path/filepath"
)

const localResourcePath = ".retroreplay"
const userResourcePath = "retroreplay"

// ResourcePath returns the resource string (representing the resource to be
// loaded) prepended with the base path. Any directories in the path that don't
// exist are created. The last element of resource is treated as a file and is
// not created.
func ResourcePath(resource ...string) (string, error) {
	base, err := basePath()
	if err != nil {
		return "", err
	}

	p := filepath.Join(append([]string{base}, resource...)...)

	dir := p
	if len(resource) > 0 {
		dir = filepath.Dir(p)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}

	return p, nil
}

func basePath() (string, error) {
	if fi, err := os.Stat(localResourcePath); err == nil && fi.IsDir() {
		return localResourcePath, nil
	}

	cfg, err := os.UserConfigDir()
	if err != nil {
		return localResourcePath, nil
	}

	return filepath.Join(cfg, userResourcePath), nil
}
