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

package database

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jetsetilly/retroreplay/curated"
)

const selectEntries = `SELECT id, added, filename, subject, session, level, repetition, frames, total_reward
	FROM records`

// SelectAll entries in the database in the order they were added. onSelect
// can be nil.
//
// The selection stops if onSelect() returns an error.
//
// Returns last matched entry in selection or an error with the last entry
// matched before the error occurred.
func (db *Session) SelectAll(ctx context.Context, onSelect func(Entry) error) (Entry, error) {
	return db.selectWhere(ctx, onSelect, "")
}

// SelectSubject matches entries for the named subject. onSelect can be nil.
func (db *Session) SelectSubject(ctx context.Context, onSelect func(Entry) error, subject string) (Entry, error) {
	return db.selectWhere(ctx, onSelect, "WHERE subject = ?", subject)
}

func (db *Session) selectWhere(ctx context.Context, onSelect func(Entry) error, where string, args ...any) (Entry, error) {
	var entry Entry

	if onSelect == nil {
		onSelect = func(_ Entry) error { return nil }
	}

	q := strings.TrimSpace(fmt.Sprintf("%s %s ORDER BY rowid", selectEntries, where))
	rows, err := db.db.QueryContext(ctx, q, args...)
	if err != nil {
		return entry, curated.Errorf("database: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var added int64
		var ent Entry

		err := rows.Scan(&id, &added, &ent.Filename, &ent.Subject, &ent.Session,
			&ent.Level, &ent.Repetition, &ent.Frames, &ent.TotalReward)
		if err != nil {
			return entry, curated.Errorf("database: %v", err)
		}

		ent.ID, err = uuid.Parse(id)
		if err != nil {
			return entry, curated.Errorf("database: %v", err)
		}
		ent.Added = time.UnixMilli(added).UTC()

		entry = ent
		if err := onSelect(entry); err != nil {
			return entry, err
		}
	}

	if err := rows.Err(); err != nil {
		return entry, curated.Errorf("database: %v", err)
	}

	return entry, nil
}

// List the entries in the order they were added.
func (db *Session) List(ctx context.Context, output io.Writer) error {
	n := 0
	_, err := db.SelectAll(ctx, func(ent Entry) error {
		n++
		_, err := fmt.Fprintf(output, "%03d %s\n", n, ent.String())
		return err
	})
	if err != nil {
		return err
	}

	if n == 0 {
		_, err := output.Write([]byte("database is empty\n"))
		return err
	}

	_, err = fmt.Fprintf(output, "Total: %d\n", n)
	return err
}
