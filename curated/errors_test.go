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

package curated_test

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/jetsetilly/retroreplay/curated"
	"github.com/jetsetilly/retroreplay/test"
)

const testError = "test error: %s"
const testErrorB = "test error B: %s"

func TestDuplicateErrors(t *testing.T) {
	e := curated.Errorf(testError, "foo")
	test.ExpectEquality(t, e.Error(), "test error: foo")

	// packing errors of the same type next to each other causes
	// one of them to be dropped
	f := curated.Errorf(testError, e)
	test.ExpectEquality(t, f.Error(), "test error: foo")
}

func TestWrapping(t *testing.T) {
	e := curated.Errorf("replay: %v", curated.Errorf("replay: end of log"))
	test.ExpectEquality(t, e.Error(), "replay: end of log")

	e = curated.Errorf("session: %v", curated.Errorf("replay: end of log"))
	test.ExpectEquality(t, e.Error(), "session: replay: end of log")
}

func TestIs(t *testing.T) {
	e := curated.Errorf(testError, "foo")
	test.ExpectSuccess(t, curated.Is(e, testError))
	test.ExpectFailure(t, curated.Is(e, testErrorB))

	// Has() should fail because we haven't included testErrorB anywhere in the error
	test.ExpectFailure(t, curated.Has(e, testErrorB))

	// packing errors of different types next to each other
	f := curated.Errorf(testErrorB, e)
	test.ExpectFailure(t, curated.Is(f, testError))
	test.ExpectSuccess(t, curated.Is(f, testErrorB))
	test.ExpectSuccess(t, curated.Has(f, testError))
	test.ExpectSuccess(t, curated.Has(f, testErrorB))
	test.ExpectSuccess(t, curated.IsAny(f))

	// wrapped in a plain error
	g := fmt.Errorf("plain: %w", f)
	test.ExpectFailure(t, curated.IsAny(g))
	test.ExpectSuccess(t, curated.Has(g, testError))
}

func TestPlainErrors(t *testing.T) {
	e := errors.New("plain error")
	test.ExpectFailure(t, curated.IsAny(e))
	test.ExpectFailure(t, curated.Has(e, testError))
	test.ExpectFailure(t, curated.Is(nil, testError))

	f := curated.Errorf("movie: %v", io.ErrUnexpectedEOF)
	test.ExpectSuccess(t, errors.Is(f, io.ErrUnexpectedEOF))
}
