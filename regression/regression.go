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

package regression

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/jetsetilly/retroreplay/curated"
	"github.com/jetsetilly/retroreplay/digest"
	"github.com/jetsetilly/retroreplay/environment"
	"github.com/jetsetilly/retroreplay/integration"
	"github.com/jetsetilly/retroreplay/replay"
)

// Sentinel patterns for regression errors.
const (
	NoEntry     = "regression: no entry with key %d"
	BadKey      = "regression: invalid key (%s)"
	Interrupted = "regression: interrupted"
)

// Regression is a single entry in the regression database.
type Regression struct {
	Key int `yaml:"key"`

	Movie    string `yaml:"movie"`
	Game     string `yaml:"game,omitempty"`
	Scenario string `yaml:"scenario,omitempty"`
	Inttype  string `yaml:"inttype"`
	Skip     bool   `yaml:"skip_first_step"`
	Notes    string `yaml:"notes,omitempty"`

	Frames    int    `yaml:"frames"`
	Video     string `yaml:"video"`
	Audio     string `yaml:"audio"`
	Telemetry string `yaml:"telemetry"`
}

func (reg Regression) String() string {
	s := fmt.Sprintf("%03d %s [%s] frames=%d", reg.Key, reg.Movie, reg.Inttype, reg.Frames)
	if reg.Scenario != "" {
		s = fmt.Sprintf("%s scenario=%s", s, reg.Scenario)
	}
	if reg.Notes != "" {
		s = fmt.Sprintf("%s (%s)", s, reg.Notes)
	}
	return s
}

// NewRegression creates an entry for the movie replayed with the options.
// The digests are not set until the entry is added to the database.
func NewRegression(movie string, opts replay.Options, notes string) Regression {
	return Regression{
		Movie:    movie,
		Game:     opts.Game,
		Scenario: opts.Scenario,
		Inttype:  opts.Inttype.String(),
		Skip:     opts.SkipFirstStep,
		Notes:    notes,
	}
}

func (reg Regression) options() (replay.Options, error) {
	t, err := integration.ParseType(reg.Inttype)
	if err != nil {
		return replay.Options{}, err
	}
	return replay.Options{
		Game:          reg.Game,
		Scenario:      reg.Scenario,
		Inttype:       t,
		SkipFirstStep: reg.Skip,
		NoRender:      false,
	}, nil
}

// regress replays the movie and returns the digests.
func (reg Regression) regress(ctx context.Context, env *environment.Environment) (digest.Result, error) {
	opts, err := reg.options()
	if err != nil {
		return digest.Result{}, err
	}

	// every replay starts from the same random state
	env.Normalise()

	rp, err := replay.Open(env, reg.Movie, opts)
	if err != nil {
		return digest.Result{}, err
	}
	defer rp.Close()

	return digest.Frames(func(yield func(replay.Frame, error) bool) {
		for frm, err := range rp.Frames() {
			if err == nil && ctx.Err() != nil {
				err = curated.Errorf(Interrupted)
			}
			if !yield(frm, err) || err != nil {
				return
			}
		}
	})
}

// the regression database file.
type regressionDB struct {
	Entries []Regression `yaml:"entries"`
}

func load(dbfile string) (*regressionDB, error) {
	db := &regressionDB{}

	d, err := os.ReadFile(dbfile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return db, nil
		}
		return nil, curated.Errorf("regression: %v", err)
	}

	if err := yaml.Unmarshal(d, db); err != nil {
		return nil, curated.Errorf("regression: %s: %v", dbfile, err)
	}

	return db, nil
}

func (db *regressionDB) save(dbfile string) error {
	d, err := yaml.Marshal(db)
	if err != nil {
		return curated.Errorf("regression: %v", err)
	}
	if err := os.WriteFile(dbfile, d, 0o600); err != nil {
		return curated.Errorf("regression: %v", err)
	}
	return nil
}

func (db *regressionDB) index(key int) int {
	return slices.IndexFunc(db.Entries, func(reg Regression) bool {
		return reg.Key == key
	})
}

// RegressList displays all entries in the database.
func RegressList(output io.Writer, dbfile string) error {
	db, err := load(dbfile)
	if err != nil {
		return err
	}

	if len(db.Entries) == 0 {
		fmt.Fprintln(output, "regression database is empty")
		return nil
	}

	for _, reg := range db.Entries {
		fmt.Fprintln(output, reg.String())
	}
	fmt.Fprintf(output, "Total: %d\n", len(db.Entries))

	return nil
}

// RegressAdd replays the movie of the entry and adds the entry, with the
// digests of the replay, to the database.
func RegressAdd(ctx context.Context, output io.Writer, dbfile string, env *environment.Environment, reg Regression) error {
	db, err := load(dbfile)
	if err != nil {
		return err
	}

	res, err := reg.regress(ctx, env)
	if err != nil {
		return err
	}

	reg.Frames = res.Frames
	reg.Video = res.Video
	reg.Audio = res.Audio
	reg.Telemetry = res.Telemetry

	reg.Key = 0
	for _, r := range db.Entries {
		reg.Key = max(reg.Key, r.Key+1)
	}

	db.Entries = append(db.Entries, reg)
	if err := db.save(dbfile); err != nil {
		return err
	}

	fmt.Fprintf(output, "added: %s\n", reg)

	return nil
}

// RegressDelete removes an entry from the database after confirmation. The
// confirmation reader should provide a line beginning with 'y' to confirm.
func RegressDelete(output io.Writer, confirmation io.Reader, dbfile string, key string) error {
	k, err := strconv.Atoi(key)
	if err != nil {
		return curated.Errorf(BadKey, key)
	}

	db, err := load(dbfile)
	if err != nil {
		return err
	}

	idx := db.index(k)
	if idx == -1 {
		return curated.Errorf(NoEntry, k)
	}

	fmt.Fprintf(output, "%s\ndelete? (y/n): ", db.Entries[idx])

	confirm := make([]byte, 32)
	n, err := confirmation.Read(confirm)
	if err != nil && !errors.Is(err, io.EOF) {
		return curated.Errorf("regression: %v", err)
	}

	if n > 0 && (confirm[0] == 'y' || confirm[0] == 'Y') {
		db.Entries = slices.Delete(db.Entries, idx, idx+1)
		if err := db.save(dbfile); err != nil {
			return err
		}
		fmt.Fprintf(output, "deleted test #%03d from regression database\n", k)
	}

	return nil
}

// RegressRun runs the entries in the database with the specified keys. An
// empty list of keys runs every entry. Returns the number of tests that
// passed and the number that failed. A test that cannot be replayed at all is
// a failure.
func RegressRun(ctx context.Context, output io.Writer, dbfile string, env *environment.Environment, keys []string) (int, int, error) {
	db, err := load(dbfile)
	if err != nil {
		return 0, 0, err
	}

	var filter []int
	for _, k := range keys {
		v, err := strconv.Atoi(k)
		if err != nil {
			return 0, 0, curated.Errorf(BadKey, k)
		}
		if db.index(v) == -1 {
			return 0, 0, curated.Errorf(NoEntry, v)
		}
		filter = append(filter, v)
	}

	var passed, failed int

	for _, reg := range db.Entries {
		if len(filter) > 0 && !slices.Contains(filter, reg.Key) {
			continue
		}

		res, err := reg.regress(ctx, env)
		if err != nil {
			if curated.Is(err, Interrupted) {
				return passed, failed, err
			}
			failed++
			fmt.Fprintf(output, "failure: %s: %v\n", reg, err)
			continue
		}

		var diffs []string
		if res.Frames != reg.Frames {
			diffs = append(diffs, fmt.Sprintf("frames %d", res.Frames))
		}
		if res.Video != reg.Video {
			diffs = append(diffs, "video")
		}
		if res.Audio != reg.Audio {
			diffs = append(diffs, "audio")
		}
		if res.Telemetry != reg.Telemetry {
			diffs = append(diffs, "telemetry")
		}

		if len(diffs) > 0 {
			failed++
			fmt.Fprintf(output, "failure: %s: %v\n", reg, diffs)
		} else {
			passed++
			fmt.Fprintf(output, "success: %s\n", reg)
		}
	}

	fmt.Fprintf(output, "regression tests: %d succeed, %d fail\n", passed, failed)

	return passed, failed, nil
}
