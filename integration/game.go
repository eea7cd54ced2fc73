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
	"bytes"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"
	"gopkg.in/yaml.v3"

	"github.com/jetsetilly/retroreplay/curated"
)

// data, scenario and metadata files can have any of these extensions. they
// are tried in order
var fileExtensions = []string{".json", ".yaml", ".yml"}

const stateExtension = ".state"

// Game is a single integration.
type Game struct {
	Name string

	// the source of the integration. either Stable or Custom
	Inttype Type

	// location of the integration. for custom integrations this is the
	// directory on disk
	Path string

	fsys fs.FS
}

// System returns the name of the emulated system. This is the part of the
// game name after the final hyphen.
func (g *Game) System() string {
	i := strings.LastIndex(g.Name, "-")
	if i == -1 {
		return ""
	}
	return g.Name[i+1:]
}

// ReadFile reads the named file from the integration.
func (g *Game) ReadFile(name string) ([]byte, error) {
	return fs.ReadFile(g.fsys, name)
}

// FS returns the integration as an fs.FS.
func (g *Game) FS() fs.FS {
	return g.fsys
}

// decode finds the named file, trying each of the file extensions in turn,
// and decodes it into v. JSON is a subset of YAML so the YAML decoder is used
// for both. returns fs.ErrNotExist if no file can be found.
func decode(fsys fs.FS, name string, v any) error {
	for _, ext := range fileExtensions {
		b, err := fs.ReadFile(fsys, name+ext)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(b, v); err != nil {
			return curated.Errorf("integration: %s%s: %v", name, ext, err)
		}
		return nil
	}
	return fs.ErrNotExist
}

// ROM returns the data of the ROM file. The ROM file is the first file with a
// basename of "rom".
func (g *Game) ROM() ([]byte, error) {
	ents, err := fs.ReadDir(g.fsys, ".")
	if err != nil {
		return nil, curated.Errorf("integration: %v", err)
	}
	for _, e := range ents {
		n := e.Name()
		if !e.IsDir() && strings.TrimSuffix(n, path.Ext(n)) == "rom" {
			return fs.ReadFile(g.fsys, n)
		}
	}
	return nil, curated.Errorf(MissingROM, g.Name)
}

// Data returns the memory variables of the integration.
func (g *Game) Data() (*Data, error) {
	d := &Data{}
	if err := decode(g.fsys, "data", d); err != nil {
		return nil, curated.Errorf("integration: %s: data: %v", g.Name, err)
	}
	if err := d.parse(); err != nil {
		return nil, curated.Errorf("integration: %s: %v", g.Name, err)
	}
	return d, nil
}

// Metadata returns the metadata of the integration. A missing metadata file
// is not an error.
func (g *Game) Metadata() (*Metadata, error) {
	md := &Metadata{}
	if err := decode(g.fsys, "metadata", md); err != nil && err != fs.ErrNotExist {
		return nil, err
	}
	return md, nil
}

// Scenario loads the named scenario. An empty name means the default
// scenario, called "scenario". If the name is the path of an existing file
// then that file is loaded instead of one from the integration. Scripts
// referred to by a scenario file on disk are loaded relative to that file.
func (g *Game) Scenario(name string) (*Scenario, error) {
	if name == "" {
		name = "scenario"
	}

	s := &Scenario{Name: name}

	var fsys fs.FS
	if fi, err := os.Stat(name); err == nil && !fi.IsDir() {
		b, err := os.ReadFile(name)
		if err != nil {
			return nil, curated.Errorf("integration: %v", err)
		}
		if err := yaml.Unmarshal(b, s); err != nil {
			return nil, curated.Errorf("integration: %s: %v", name, err)
		}
		fsys = os.DirFS(filepath.Dir(name))
	} else {
		err := decode(g.fsys, strings.TrimSuffix(name, path.Ext(name)), s)
		if err == fs.ErrNotExist {
			return nil, curated.Errorf(MissingScenario, name, g.Name)
		}
		if err != nil {
			return nil, err
		}
		fsys = g.fsys
	}

	if err := s.prepare(fsys); err != nil {
		return nil, err
	}

	return s, nil
}

// State returns the decompressed state of the named state file. The extension
// is optional.
func (g *Game) State(name string) ([]byte, error) {
	name = strings.TrimSuffix(name, stateExtension)
	f, err := g.fsys.Open(name + stateExtension)
	if err != nil {
		return nil, curated.Errorf("integration: %s: state %s: %v", g.Name, name, err)
	}
	defer f.Close()
	return ReadState(f)
}

// States returns the sorted names of the states in the integration, without
// extension.
func (g *Game) States() []string {
	var l []string
	ents, _ := fs.ReadDir(g.fsys, ".")
	for _, e := range ents {
		if !e.IsDir() && path.Ext(e.Name()) == stateExtension {
			l = append(l, strings.TrimSuffix(e.Name(), stateExtension))
		}
	}
	sort.Strings(l)
	return l
}

// ReadState decompresses state data. States are stored gzip compressed.
func ReadState(r io.Reader) ([]byte, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, curated.Errorf("integration: state: %v", err)
	}
	defer zr.Close()

	b, err := io.ReadAll(zr)
	if err != nil {
		return nil, curated.Errorf("integration: state: %v", err)
	}
	return b, nil
}

// WriteState compresses state data to the io.Writer.
func WriteState(w io.Writer, state []byte) error {
	zw := gzip.NewWriter(w)
	if _, err := io.Copy(zw, bytes.NewReader(state)); err != nil {
		return curated.Errorf("integration: state: %v", err)
	}
	if err := zw.Close(); err != nil {
		return curated.Errorf("integration: state: %v", err)
	}
	return nil
}

// Metadata for an integration.
type Metadata struct {
	// the state to use if no other state is specified. an empty string means
	// the emulated system's power-on state
	DefaultState string `yaml:"default_state"`
}
