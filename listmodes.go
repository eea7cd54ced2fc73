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

package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/jetsetilly/retroreplay/database"
	"github.com/jetsetilly/retroreplay/emulator"
	"github.com/jetsetilly/retroreplay/integration"
	"github.com/jetsetilly/retroreplay/paths"
	"github.com/jetsetilly/retroreplay/regression"
	"github.com/jetsetilly/retroreplay/version"
)

func (l *launcher) list() error {
	l.md.NewMode()
	l.md.AddSubModes("GAMES", "RECORDS", "SYSTEMS")

	if ok, err := l.parse(); !ok {
		return err
	}

	switch l.md.Mode() {
	case "GAMES":
		l.md.NewMode()
		rf := l.addReplayFlags()
		if ok, err := l.parse(); !ok {
			return err
		}
		t, err := integration.ParseType(*rf.inttype)
		if err != nil {
			return err
		}
		for _, g := range l.environment(rf, 0).Integrations.List(t) {
			fmt.Fprintln(l.output, g)
		}

	case "SYSTEMS":
		for _, s := range emulator.Systems() {
			fmt.Fprintln(l.output, s)
		}

	case "RECORDS":
		return l.records()
	}

	return nil
}

func (l *launcher) records() error {
	l.md.NewMode()
	dbPath := l.md.AddString("db", l.cfg.Database, "session record database")
	subject := l.md.AddString("subject", "", "list only the records of the subject")
	get := l.md.AddString("get", "", "write the record with the id as JSON to stdout")
	del := l.md.AddString("delete", "", "delete the record with the id")

	if ok, err := l.parse(); !ok {
		return err
	}

	activity := database.ActivityReading
	if *del != "" {
		activity = database.ActivityModifying
	}

	db, err := database.StartSession(*dbPath, activity)
	if err != nil {
		return err
	}
	defer db.EndSession()

	switch {
	case *get != "":
		id, err := uuid.Parse(*get)
		if err != nil {
			return err
		}
		rec, err := db.Get(l.ctx, id)
		if err != nil {
			return err
		}
		return rec.WriteJSON(l.output)

	case *del != "":
		id, err := uuid.Parse(*del)
		if err != nil {
			return err
		}
		if err := db.Delete(l.ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(l.output, "deleted %s\n", id)

	case *subject != "":
		_, err := db.SelectSubject(l.ctx, func(ent database.Entry) error {
			fmt.Fprintln(l.output, ent)
			return nil
		}, *subject)
		return err

	default:
		return db.List(l.ctx, l.output)
	}

	return nil
}

func (l *launcher) regress() error {
	l.md.NewMode()
	dbfile := l.md.AddString("db", "", "regression database file (default is in the resource directory)")
	l.md.AddSubModes("RUN", "LIST", "ADD", "DELETE")

	if ok, err := l.parse(); !ok {
		return err
	}

	if *dbfile == "" {
		p, err := paths.ResourcePath("regressionDB.yaml")
		if err != nil {
			return err
		}
		*dbfile = p
	}

	switch l.md.Mode() {
	case "RUN":
		l.md.NewMode()
		rf := l.addReplayFlags()
		if ok, err := l.parse(); !ok {
			return err
		}
		_, failed, err := regression.RegressRun(l.ctx, l.output, *dbfile, l.environment(rf, 0), l.md.RemainingArgs())
		if err != nil {
			return err
		}
		if failed > 0 {
			return fmt.Errorf("%d regression tests failed", failed)
		}

	case "LIST":
		return regression.RegressList(l.output, *dbfile)

	case "ADD":
		l.md.NewMode()
		rf := l.addReplayFlags()
		notes := l.md.AddString("notes", "", "notes for the regression entry")
		path, err := l.singleMovie()
		if path == "" {
			return err
		}
		opts, err := l.replayOptions(rf)
		if err != nil {
			return err
		}
		reg := regression.NewRegression(path, opts, *notes)
		return regression.RegressAdd(l.ctx, l.output, *dbfile, l.environment(rf, 0), reg)

	case "DELETE":
		l.md.NewMode()
		if ok, err := l.parse(); !ok {
			return err
		}
		if len(l.md.RemainingArgs()) != 1 {
			return fmt.Errorf("regression entries can only be deleted one at a time")
		}
		return regression.RegressDelete(l.output, os.Stdin, *dbfile, l.md.GetArg(0))
	}

	return nil
}

func (l *launcher) version() error {
	l.md.NewMode()
	if ok, err := l.parse(); !ok {
		return err
	}
	fmt.Fprintln(l.output, version.String())
	return nil
}
