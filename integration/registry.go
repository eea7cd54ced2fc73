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
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jetsetilly/retroreplay/curated"
)

//go:embed all:stable
var stableFS embed.FS

const stableRoot = "stable"

// Type selects which integrations are searched.
type Type int

// List of valid Type values.
const (
	Stable Type = 1 << iota
	Custom

	CustomOnly = Custom
	All        = Stable | Custom
)

func (t Type) String() string {
	switch t {
	case Stable:
		return "STABLE"
	case Custom:
		return "CUSTOM"
	case All:
		return "ALL"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType converts a string to an integration Type. The string is not case
// sensitive.
func ParseType(s string) (Type, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "STABLE":
		return Stable, nil
	case "CUSTOM", "CUSTOM_ONLY":
		return Custom, nil
	case "ALL":
		return All, nil
	}
	return 0, curated.Errorf(UnknownType, s)
}

// Sentinel patterns for integration errors.
const (
	UnknownIntegration = "integration: no %s integration for game %s"
	UnknownType        = "integration: unknown integration type (%s)"
	MissingScenario    = "integration: scenario %s not found for %s"
	MissingVariable    = "integration: scenario %s refers to unknown variable (%s)"
	MissingROM         = "integration: no ROM found for %s"
)

// Registry is the collection of places integrations are found.
type Registry struct {
	custom []string
}

// NewRegistry is the preferred method of initialisation for the Registry
// type. The new registry has no custom paths.
func NewRegistry(customPaths ...string) *Registry {
	r := &Registry{}
	for _, p := range customPaths {
		r.AddCustomPath(p)
	}
	return r
}

// AddCustomPath adds a directory to the list of custom integration paths.
// Paths added earlier are searched first. Adding a path more than once has no
// effect.
func (r *Registry) AddCustomPath(path string) {
	path = filepath.Clean(path)
	for _, p := range r.custom {
		if p == path {
			return
		}
	}
	r.custom = append(r.custom, path)
}

// CustomPaths returns a copy of the list of custom integration paths.
func (r *Registry) CustomPaths() []string {
	c := make([]string, len(r.custom))
	copy(c, r.custom)
	return c
}

// isIntegration returns true if the fs.FS has a data file.
func isIntegration(fsys fs.FS) bool {
	for _, ext := range fileExtensions {
		if _, err := fs.Stat(fsys, "data"+ext); err == nil {
			return true
		}
	}
	return false
}

// Find returns the named game from the integrations selected by Type. Custom
// integrations are searched before stable integrations.
func (r *Registry) Find(game string, inttype Type) (*Game, error) {
	if game == "" || strings.ContainsAny(game, `/\`) {
		return nil, curated.Errorf(UnknownIntegration, inttype, game)
	}

	if inttype&Custom == Custom {
		for _, p := range r.custom {
			dir := filepath.Join(p, game)
			fsys := os.DirFS(dir)
			if isIntegration(fsys) {
				return &Game{
					Name:    game,
					Inttype: Custom,
					Path:    dir,
					fsys:    fsys,
				}, nil
			}
		}
	}

	if inttype&Stable == Stable {
		fsys, err := fs.Sub(stableFS, stableRoot+"/"+game)
		if err == nil && isIntegration(fsys) {
			return &Game{
				Name:    game,
				Inttype: Stable,
				Path:    fmt.Sprintf("%s:%s", Stable, game),
				fsys:    fsys,
			}, nil
		}
	}

	return nil, curated.Errorf(UnknownIntegration, inttype, game)
}

// List returns the sorted names of all the games in the integrations selected
// by Type.
func (r *Registry) List(inttype Type) []string {
	found := make(map[string]bool)

	if inttype&Custom == Custom {
		for _, p := range r.custom {
			ents, err := os.ReadDir(p)
			if err != nil {
				continue
			}
			for _, e := range ents {
				if e.IsDir() && isIntegration(os.DirFS(filepath.Join(p, e.Name()))) {
					found[e.Name()] = true
				}
			}
		}
	}

	if inttype&Stable == Stable {
		ents, _ := fs.ReadDir(stableFS, stableRoot)
		for _, e := range ents {
			if e.IsDir() {
				found[e.Name()] = true
			}
		}
	}

	l := make([]string, 0, len(found))
	for g := range found {
		l = append(l, g)
	}
	sort.Strings(l)
	return l
}
