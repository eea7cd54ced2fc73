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
	"os"
	"path/filepath"

	"github.com/jetsetilly/retroreplay/curated"
	"github.com/jetsetilly/retroreplay/logger"
)

// Export copies the named game, found using the Type, into a new directory
// inside dir. The directory has the name of the game, making dir suitable for
// use as a custom integration path. Returns the path of the new directory.
func (r *Registry) Export(game string, inttype Type, dir string) (string, error) {
	g, err := r.Find(game, inttype)
	if err != nil {
		return "", err
	}

	dest := filepath.Join(dir, g.Name)
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return "", curated.Errorf("integration: export: %v", err)
	}

	err = fs.WalkDir(g.fsys, ".", func(pth string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return os.MkdirAll(filepath.Join(dest, pth), 0o755)
		}
		b, err := fs.ReadFile(g.fsys, pth)
		if err != nil {
			return err
		}
		return os.WriteFile(filepath.Join(dest, pth), b, 0o644)
	})
	if err != nil {
		return "", curated.Errorf("integration: export: %v", err)
	}

	logger.Logf(logger.Allow, "integration", "exported %s to %s", g.Name, dest)

	return dest, nil
}
