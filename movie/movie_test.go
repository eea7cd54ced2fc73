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

package movie_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"

	"github.com/jetsetilly/retroreplay/curated"
	"github.com/jetsetilly/retroreplay/movie"
	"github.com/jetsetilly/retroreplay/test"
)

var buttons = []string{"B", "A", "SELECT", "START", "UP", "DOWN", "LEFT", "RIGHT"}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Dodge-Toy-Start-000000.bk2")

	rec, err := movie.Create(path, "Dodge-Toy", buttons, 2)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, rec.IsRecording())
	test.ExpectEquality(t, rec.Platform(), "Toy")

	state := []byte{1, 2, 3, 4, 5}
	rec.SetState(state)

	// the recording is a diagonal pattern across both players
	const numFrames = 20
	for f := range numFrames {
		for p := range 2 {
			for b := range len(buttons) {
				rec.SetKey(b, p, (f+p+b)%3 == 0)
			}
		}
		test.ExpectEquality(t, rec.Key(f%len(buttons), 0), (f+f%len(buttons))%3 == 0)
		test.ExpectSuccess(t, rec.Step())
	}
	test.ExpectEquality(t, rec.NumFrames(), numFrames)
	test.DemandSuccess(t, rec.Close())

	// closing twice is not an error
	test.ExpectSuccess(t, rec.Close())
	test.ExpectFailure(t, rec.Step())

	mov, err := movie.Open(path)
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, mov.IsRecording())
	test.ExpectEquality(t, mov.Game(), "Dodge-Toy")
	test.ExpectEquality(t, mov.Platform(), "Toy")
	test.ExpectEquality(t, mov.Players(), 2)
	test.ExpectEquality(t, mov.NumButtons(), len(buttons))
	test.ExpectSliceEquality(t, mov.Buttons(), buttons)
	test.ExpectSliceEquality(t, mov.State(), state)
	test.ExpectEquality(t, mov.NumFrames(), numFrames)

	// no current frame before the first step
	test.ExpectEquality(t, mov.Frame(), -1)

	var f int
	for mov.Step() {
		for p := range 2 {
			for b := range len(buttons) {
				test.ExpectEquality(t, mov.Key(b, p), (f+p+b)%3 == 0, f, p, b)
			}
		}
		f++
	}
	test.ExpectEquality(t, f, numFrames)

	// stepping after the end continues to return false
	test.ExpectFailure(t, mov.Step())
	test.ExpectFailure(t, mov.Key(0, 0))
}

func TestKeyRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "range.bk2")

	rec, err := movie.Create(path, "Dodge-Toy", buttons, 1)
	test.DemandSuccess(t, err)
	rec.SetKey(0, 0, true)
	rec.SetKey(99, 0, true)
	rec.SetKey(0, 1, true)
	test.ExpectSuccess(t, rec.Step())
	test.DemandSuccess(t, rec.Close())

	mov, err := movie.Open(path)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, mov.Step())
	test.ExpectSuccess(t, mov.Key(0, 0))
	test.ExpectFailure(t, mov.Key(99, 0))
	test.ExpectFailure(t, mov.Key(0, 1))
	test.ExpectFailure(t, mov.Key(-1, 0))

	// no state was set so there is no state in the file
	test.ExpectEquality(t, len(mov.State()), 0)
}

func TestClaim(t *testing.T) {
	path := filepath.Join(t.TempDir(), "claim.bk2")

	rec, err := movie.Create(path, "Dodge-Toy", buttons, 1)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, curated.Is(rec.Claim(), movie.NotClaimable))
	test.ExpectSuccess(t, rec.Step())
	test.ExpectSuccess(t, rec.Step())
	test.DemandSuccess(t, rec.Close())

	mov, err := movie.Open(path)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, mov.Claim())
	test.ExpectSuccess(t, curated.Is(mov.Claim(), movie.NotClaimable))
	mov.Release()
	test.ExpectSuccess(t, mov.Claim())

	// a movie that has been stepped can not be claimed again
	test.ExpectSuccess(t, mov.Step())
	mov.Release()
	test.ExpectSuccess(t, curated.Is(mov.Claim(), movie.NotClaimable))
}

func TestCreate(t *testing.T) {
	_, err := movie.Create("x.bk2", "Dodge-Toy", buttons, 0)
	test.ExpectFailure(t, err)
	_, err = movie.Create("x.bk2", "Dodge-Toy", nil, 1)
	test.ExpectFailure(t, err)
}

func writeArchive(t *testing.T, files map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "handmade.bk2")
	f, err := os.Create(path)
	test.DemandSuccess(t, err)
	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		test.DemandSuccess(t, err)
		_, err = w.Write([]byte(content))
		test.DemandSuccess(t, err)
	}
	test.DemandSuccess(t, zw.Close())
	test.DemandSuccess(t, f.Close())

	return path
}

func TestHandmade(t *testing.T) {
	path := writeArchive(t, map[string]string{
		"Header.txt": "MovieVersion BizHawk v2.0.0\nPlatform Toy\nGameName Dodge-Toy\nPlayers 1\n",
		"Input Log.txt": "[Input]\r\nLogKey:#P1 UP|P1 DOWN|P1 LEFT|P1 RIGHT|\r\n" +
			"|....|\r\n|U..R|\r\n|.DL.|\r\n[/Input]\r\n",
	})

	mov, err := movie.Open(path)
	test.DemandSuccess(t, err)
	test.ExpectSliceEquality(t, mov.Buttons(), []string{"UP", "DOWN", "LEFT", "RIGHT"})

	expected := [][]bool{
		{false, false, false, false},
		{true, false, false, true},
		{false, true, true, false},
	}

	var f int
	for mov.Step() {
		for b := range 4 {
			test.ExpectEquality(t, mov.Key(b, 0), expected[f][b], f, b)
		}
		f++
	}
	test.ExpectEquality(t, f, len(expected))
}

func TestBadInputLog(t *testing.T) {
	header := "GameName Dodge-Toy\nPlayers 1\n"

	path := writeArchive(t, map[string]string{
		"Header.txt":    header,
		"Input Log.txt": "[Input]\n|....|\n[/Input]\n",
	})
	_, err := movie.Open(path)
	test.ExpectSuccess(t, curated.Has(err, movie.BadInputLog))

	path = writeArchive(t, map[string]string{
		"Header.txt":    header,
		"Input Log.txt": "[Input]\nLogKey:#P1 UP|P1 DOWN|\n|...|\n[/Input]\n",
	})
	_, err = movie.Open(path)
	test.ExpectSuccess(t, curated.Has(err, movie.BadInputLog))

	path = writeArchive(t, map[string]string{
		"Header.txt":    header,
		"Input Log.txt": "[Input]\nLogKey:#P1 UP|#P2 UP|\n|.|.|\n[/Input]\n",
	})
	_, err = movie.Open(path)
	test.ExpectSuccess(t, curated.Has(err, movie.BadInputLog))
}

func TestBadHeader(t *testing.T) {
	path := writeArchive(t, map[string]string{
		"Header.txt":    "Players 1\n",
		"Input Log.txt": "[Input]\nLogKey:#P1 UP|\n[/Input]\n",
	})
	_, err := movie.Open(path)
	test.ExpectSuccess(t, curated.Has(err, movie.BadHeader))
}

func TestNotAMovie(t *testing.T) {
	path := filepath.Join(t.TempDir(), "text.bk2")
	test.DemandSuccess(t, os.WriteFile(path, []byte("hello"), 0o644))
	_, err := movie.Open(path)
	test.ExpectSuccess(t, curated.Is(err, movie.NotAMovie))
}
