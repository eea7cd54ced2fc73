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
	"testing"

	"github.com/jetsetilly/retroreplay/curated"
	"github.com/jetsetilly/retroreplay/test"
)

func TestVariableTypes(t *testing.T) {
	mem := []byte{0x12, 0x34, 0xff, 0xfe, 0x99, 0x01, 0x00, 0x00}

	d := &Data{Info: map[string]Variable{
		"u1":    {Address: 0, Type: "|u1"},
		"u2be":  {Address: 0, Type: ">u2"},
		"u2le":  {Address: 0, Type: "<u2"},
		"i1":    {Address: 2, Type: "|i1"},
		"i2be":  {Address: 2, Type: ">i2"},
		"d2be":  {Address: 0, Type: ">d2"},
		"d1":    {Address: 4, Type: "=d1"},
		"u4le":  {Address: 4, Type: "<u4"},
		"i2le":  {Address: 2, Type: "<i2"},
		"uzero": {Address: 6, Type: ">u2"},
		"u2ne":  {Address: 0, Type: "=u2"},
		"i2ne":  {Address: 2, Type: "=i2"},
		"u4ne":  {Address: 4, Type: "=u4"},
	}}
	test.DemandSuccess(t, d.parse())

	vals, err := d.Read(mem)
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, vals["u1"], 0x12)
	test.ExpectEquality(t, vals["u2be"], 0x1234)
	test.ExpectEquality(t, vals["u2le"], 0x3412)
	test.ExpectEquality(t, vals["i1"], -1)
	test.ExpectEquality(t, vals["i2be"], -2)
	test.ExpectEquality(t, vals["i2le"], -257)
	test.ExpectEquality(t, vals["d2be"], 1234)
	test.ExpectEquality(t, vals["d1"], 99)
	test.ExpectEquality(t, vals["u4le"], 0x199)
	test.ExpectEquality(t, vals["uzero"], 0)

	// native byte order is little-endian
	test.ExpectEquality(t, vals["u2ne"], 0x3412)
	test.ExpectEquality(t, vals["i2ne"], -257)
	test.ExpectEquality(t, vals["u4ne"], 0x199)

	test.ExpectSliceEquality(t, d.Names()[:3], []string{"d1", "d2be", "i1"})
}

func TestBadVariables(t *testing.T) {
	for _, typ := range []string{"", "u1", ">x1", ">u3", "|u2", "|i4", ">u"} {
		d := &Data{Info: map[string]Variable{"v": {Address: 0, Type: typ}}}
		err := d.parse()
		test.ExpectSuccess(t, curated.Is(err, BadVariableType), typ)
	}

	d := &Data{Info: map[string]Variable{"v": {Address: 7, Type: ">u2"}}}
	test.DemandSuccess(t, d.parse())
	_, err := d.Read(make([]byte, 8))
	test.ExpectSuccess(t, curated.Is(err, VariableOutOfRange))

	d = &Data{Info: map[string]Variable{"v": {Address: -1, Type: "|u1"}}}
	test.ExpectSuccess(t, curated.Is(d.parse(), VariableOutOfRange))
}

func TestConditions(t *testing.T) {
	cases := []struct {
		c        Condition
		v        int
		expected bool
	}{
		{Condition{Op: "equal", Reference: 3}, 3, true},
		{Condition{Op: "equal", Reference: 3}, 2, false},
		{Condition{Op: "not-equal", Reference: 3}, 2, true},
		{Condition{Op: "less-than", Reference: 3}, 2, true},
		{Condition{Op: "less-than", Reference: 3}, 3, false},
		{Condition{Op: "greater-than", Reference: 3}, 4, true},
		{Condition{Op: "less-or-equal", Reference: 3}, 3, true},
		{Condition{Op: "greater-or-equal", Reference: 3}, 2, false},
		{Condition{Op: "zero"}, 0, true},
		{Condition{Op: "nonzero"}, 0, false},
		{Condition{Op: "negative"}, -1, true},
		{Condition{Op: "positive"}, 0, false},
	}
	for _, c := range cases {
		test.ExpectSuccess(t, c.c.valid(), c.c.Op)
		test.ExpectEquality(t, c.c.test(c.v), c.expected, c.c.Op, c.v)
	}
	test.ExpectFailure(t, Condition{Op: "bigger"}.valid())
}
