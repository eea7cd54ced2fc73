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
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"

	"github.com/jetsetilly/retroreplay/curated"
	"github.com/jetsetilly/retroreplay/logger"
)

// Activity is used to specify the type of activity that will be happening
// during the database session.
type Activity int

// List of valid Activity values.
const (
	ActivityReading Activity = iota
	ActivityModifying
	ActivityCreating
)

func (a Activity) String() string {
	switch a {
	case ActivityReading:
		return "reading"
	case ActivityModifying:
		return "modifying"
	case ActivityCreating:
		return "creating"
	}
	return "unknown activity"
}

// Sentinel patterns for database errors.
const (
	NotAvailable = "database: not available (%s)"
	ReadOnly     = "database: session is %s only"
	NoEntry      = "database: no entry with id %s"
)

const schema = `CREATE TABLE IF NOT EXISTS records (
	id TEXT PRIMARY KEY,
	added INTEGER NOT NULL,
	filename TEXT NOT NULL,
	subject TEXT NOT NULL,
	session TEXT NOT NULL,
	level TEXT NOT NULL,
	repetition TEXT NOT NULL,
	frames INTEGER NOT NULL,
	total_reward REAL NOT NULL,
	payload BLOB NOT NULL
)`

// Session of a database. Only one goroutine should use a session at a time.
type Session struct {
	path     string
	activity Activity

	db *sql.DB

	enc *zstd.Encoder
	dec *zstd.Decoder
}

// StartSession opens the database at path. The database file will be created
// if activity is ActivityCreating.
func StartSession(path string, activity Activity) (*Session, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, curated.Errorf(NotAvailable, "no path")
	}
	path = filepath.Clean(path)

	if activity != ActivityCreating {
		if _, err := os.Stat(path); err != nil {
			return nil, curated.Errorf(NotAvailable, err)
		}
	}

	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, curated.Errorf("database: %v", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, curated.Errorf(NotAvailable, err)
	}

	if activity == ActivityCreating {
		if _, err := db.Exec(schema); err != nil {
			_ = db.Close()
			return nil, curated.Errorf("database: %v", err)
		}
	}

	sess := &Session{
		path:     path,
		activity: activity,
		db:       db,
	}

	sess.enc, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		_ = db.Close()
		return nil, curated.Errorf("database: %v", err)
	}

	sess.dec, err = zstd.NewReader(nil)
	if err != nil {
		_ = sess.enc.Close()
		_ = db.Close()
		return nil, curated.Errorf("database: %v", err)
	}

	logger.Logf(logger.Allow, "database", "%s %s", activity, path)

	return sess, nil
}

// EndSession closes the database.
func (db *Session) EndSession() error {
	db.dec.Close()
	if err := db.enc.Close(); err != nil {
		_ = db.db.Close()
		return curated.Errorf("database: %v", err)
	}
	if err := db.db.Close(); err != nil {
		return curated.Errorf("database: %v", err)
	}
	return nil
}

// NumEntries returns the number of entries in the database.
func (db *Session) NumEntries(ctx context.Context) (int, error) {
	var n int
	err := db.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records").Scan(&n)
	if err != nil {
		return 0, curated.Errorf("database: %v", err)
	}
	return n, nil
}

func (db *Session) writable() error {
	if db.activity == ActivityReading {
		return curated.Errorf(ReadOnly, db.activity)
	}
	return nil
}
