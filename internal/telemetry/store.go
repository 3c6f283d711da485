package telemetry

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/agbru/vedicmath/internal/classifier"
	apperrors "github.com/agbru/vedicmath/internal/errors"
	"github.com/agbru/vedicmath/internal/numeric"
	"github.com/agbru/vedicmath/internal/sutra"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id  TEXT PRIMARY KEY,
	label       TEXT NOT NULL,
	created_at  TEXT NOT NULL,
	dropped     INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS records (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id   TEXT NOT NULL,
	seq          INTEGER NOT NULL,
	timestamp_ns INTEGER NOT NULL,
	opkind       TEXT NOT NULL,
	a_tag        TEXT NOT NULL,
	a_val        TEXT NOT NULL,
	b_tag        TEXT NOT NULL,
	b_val        TEXT NOT NULL,
	r_tag        TEXT NOT NULL,
	r_val        TEXT NOT NULL,
	sutra        TEXT NOT NULL,
	confidence   REAL NOT NULL,
	reason       TEXT NOT NULL,
	fallback     INTEGER NOT NULL,
	elapsed_ns   INTEGER NOT NULL,
	mode         TEXT NOT NULL,
	platform_tag TEXT NOT NULL,
	FOREIGN KEY (session_id) REFERENCES sessions(session_id),
	UNIQUE (session_id, seq)
);

CREATE INDEX IF NOT EXISTS records_by_sutra ON records(session_id, sutra);
`

// Session describes one persisted log.
type Session struct {
	ID        string
	Label     string
	CreatedAt time.Time
	Records   int
	Dropped   uint64
}

// SQLiteStore persists telemetry sessions for offline analysis.
type SQLiteStore struct {
	db *sql.DB
}

// OpenStore opens (or creates) a SQLite database and runs migrations.
func OpenStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, apperrors.IOError{Op: "open telemetry db", Err: err}
	}
	// One connection serialises concurrent Save calls and keeps the
	// pragmas applied.
	db.SetMaxOpenConns(1)
	for _, stmt := range []string{"PRAGMA journal_mode=WAL", "PRAGMA foreign_keys=ON", schema} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, apperrors.IOError{Op: "migrate telemetry db", Err: err}
		}
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save stores a log under a new session id and returns that id. The
// records keep their append order through the seq column.
func (s *SQLiteStore) Save(label string, l *Log) (string, error) {
	id := uuid.New().String()
	tx, err := s.db.Begin()
	if err != nil {
		return "", apperrors.IOError{Op: "begin tx", Err: err}
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO sessions (session_id, label, created_at, dropped) VALUES (?, ?, ?, ?)`,
		id, label, time.Now().UTC().Format(time.RFC3339Nano), int64(l.Dropped()),
	)
	if err != nil {
		return "", apperrors.IOError{Op: "insert session", Err: err}
	}

	stmt, err := tx.Prepare(`INSERT INTO records (
		session_id, seq, timestamp_ns, opkind, a_tag, a_val, b_tag, b_val, r_tag, r_val,
		sutra, confidence, reason, fallback, elapsed_ns, mode, platform_tag
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", apperrors.IOError{Op: "prepare insert", Err: err}
	}
	defer stmt.Close()

	for i := range l.records {
		r := &l.records[i]
		_, err := stmt.Exec(
			id, i, r.Timestamp.UnixNano(), r.Op.String(),
			r.A.Tag().String(), r.A.String(),
			r.B.Tag().String(), r.B.String(),
			r.Result.Tag().String(), r.Result.String(),
			r.Sutra.String(), r.Confidence, r.Reason, r.Fallback,
			r.Elapsed.Nanoseconds(), r.Mode.String(), r.Platform.String(),
		)
		if err != nil {
			return "", apperrors.IOError{Op: fmt.Sprintf("insert record %d", i), Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", apperrors.IOError{Op: "commit", Err: err}
	}
	return id, nil
}

// Load returns the records of a session in append order.
func (s *SQLiteStore) Load(sessionID string) ([]Record, error) {
	rows, err := s.db.Query(
		`SELECT timestamp_ns, opkind, a_tag, a_val, b_tag, b_val, r_tag, r_val,
		        sutra, confidence, reason, fallback, elapsed_ns, mode, platform_tag
		 FROM records WHERE session_id = ? ORDER BY seq`, sessionID,
	)
	if err != nil {
		return nil, apperrors.IOError{Op: "query records", Err: err}
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			ts, elapsed                int64
			op, at, av, bt, bv, rt, rv string
			su, reason, mode, platform string
			confidence                 float64
			fallback                   bool
		)
		if err := rows.Scan(&ts, &op, &at, &av, &bt, &bv, &rt, &rv,
			&su, &confidence, &reason, &fallback, &elapsed, &mode, &platform); err != nil {
			return nil, apperrors.IOError{Op: "scan record", Err: err}
		}
		r, err := decodeRecord(op, at, av, bt, bv, rt, rv, su, mode, platform)
		if err != nil {
			return nil, fmt.Errorf("session %s: %w", sessionID, err)
		}
		r.Timestamp = time.Unix(0, ts)
		r.Confidence = confidence
		r.Reason = reason
		r.Fallback = fallback
		r.Elapsed = time.Duration(elapsed)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.IOError{Op: "iterate records", Err: err}
	}
	return out, nil
}

func decodeRecord(op, at, av, bt, bv, rt, rv, su, mode, platform string) (Record, error) {
	var r Record
	var err error
	if r.Op, err = numeric.ParseOpKind(op); err != nil {
		return r, err
	}
	if r.A, err = parseValue(at, av); err != nil {
		return r, err
	}
	if r.B, err = parseValue(bt, bv); err != nil {
		return r, err
	}
	if r.Result, err = parseValue(rt, rv); err != nil {
		return r, err
	}
	if r.Sutra, err = sutra.Parse(su); err != nil {
		return r, err
	}
	if r.Mode, err = classifier.ParseMode(mode); err != nil {
		return r, err
	}
	if r.Platform, err = ParsePlatform(platform); err != nil {
		return r, err
	}
	return r, nil
}

// Sessions lists stored sessions, oldest first.
func (s *SQLiteStore) Sessions() ([]Session, error) {
	rows, err := s.db.Query(
		`SELECT s.session_id, s.label, s.created_at, s.dropped, COUNT(r.id)
		 FROM sessions s LEFT JOIN records r ON r.session_id = s.session_id
		 GROUP BY s.session_id ORDER BY s.created_at, s.rowid`,
	)
	if err != nil {
		return nil, apperrors.IOError{Op: "query sessions", Err: err}
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var sess Session
		var created string
		var dropped int64
		if err := rows.Scan(&sess.ID, &sess.Label, &created, &dropped, &sess.Records); err != nil {
			return nil, apperrors.IOError{Op: "scan session", Err: err}
		}
		sess.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		sess.Dropped = uint64(dropped)
		out = append(out, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.IOError{Op: "iterate sessions", Err: err}
	}
	return out, nil
}

// SutraCounts returns the number of records per identity in a session.
func (s *SQLiteStore) SutraCounts(sessionID string) (map[sutra.Sutra]int, error) {
	rows, err := s.db.Query(
		`SELECT sutra, COUNT(*) FROM records WHERE session_id = ? GROUP BY sutra`, sessionID,
	)
	if err != nil {
		return nil, apperrors.IOError{Op: "query sutra counts", Err: err}
	}
	defer rows.Close()

	out := make(map[sutra.Sutra]int)
	for rows.Next() {
		var name string
		var n int
		if err := rows.Scan(&name, &n); err != nil {
			return nil, apperrors.IOError{Op: "scan sutra count", Err: err}
		}
		su, err := sutra.Parse(name)
		if err != nil {
			return nil, err
		}
		out[su] = n
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.IOError{Op: "iterate sutra counts", Err: err}
	}
	return out, nil
}
