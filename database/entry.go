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
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jetsetilly/retroreplay/curated"
	"github.com/jetsetilly/retroreplay/session"
)

// Entry is the summary of a session record stored in the database.
type Entry struct {
	ID    uuid.UUID
	Added time.Time

	session.Metadata

	Frames      int
	TotalReward float64
}

func (ent Entry) String() string {
	return fmt.Sprintf("%s %s %s %s %s: %d frames, reward %.2f",
		ent.ID, ent.Subject, ent.Session, ent.Level, ent.Repetition, ent.Frames, ent.TotalReward)
}

func totalReward(rec *session.Record) float64 {
	var t float64
	for _, r := range rec.Rewards {
		t += r
	}
	return t
}

// Add a session record to the database. Returns the new Entry.
func (db *Session) Add(ctx context.Context, rec *session.Record) (Entry, error) {
	if err := db.writable(); err != nil {
		return Entry{}, err
	}

	if err := rec.Validate(); err != nil {
		return Entry{}, err
	}

	var b bytes.Buffer
	if err := rec.WriteJSON(&b); err != nil {
		return Entry{}, err
	}
	payload := db.enc.EncodeAll(b.Bytes(), nil)

	ent := Entry{
		ID:          uuid.New(),
		Added:       time.Now().UTC(),
		Metadata:    rec.Metadata,
		Frames:      rec.Len(),
		TotalReward: totalReward(rec),
	}

	_, err := db.db.ExecContext(ctx,
		`INSERT INTO records (
		   id, added, filename, subject, session, level, repetition, frames, total_reward, payload
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ent.ID.String(),
		ent.Added.UnixMilli(),
		ent.Filename,
		ent.Subject,
		ent.Session,
		ent.Level,
		ent.Repetition,
		ent.Frames,
		ent.TotalReward,
		payload,
	)
	if err != nil {
		return Entry{}, curated.Errorf("database: %v", err)
	}

	return ent, nil
}

// Get the session record with the specified id.
func (db *Session) Get(ctx context.Context, id uuid.UUID) (*session.Record, error) {
	var payload []byte
	err := db.db.QueryRowContext(ctx, "SELECT payload FROM records WHERE id = ?", id.String()).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, curated.Errorf(NoEntry, id)
		}
		return nil, curated.Errorf("database: %v", err)
	}

	d, err := db.dec.DecodeAll(payload, nil)
	if err != nil {
		return nil, curated.Errorf("database: %v", err)
	}

	return session.ReadJSON(bytes.NewReader(d))
}

// Delete the entry with the specified id.
func (db *Session) Delete(ctx context.Context, id uuid.UUID) error {
	if err := db.writable(); err != nil {
		return err
	}

	res, err := db.db.ExecContext(ctx, "DELETE FROM records WHERE id = ?", id.String())
	if err != nil {
		return curated.Errorf("database: %v", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return curated.Errorf("database: %v", err)
	}
	if n == 0 {
		return curated.Errorf(NoEntry, id)
	}

	return nil
}
