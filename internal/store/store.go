// Package store persists questions, metadata, answers and the
// gazetteer in SQLite, behind the narrow question.Store interface.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/relieftools/surveygrid/internal/question"
)

// SQLiteStore implements question.Store with write-through persistence.
type SQLiteStore struct {
	db *sqlx.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS questions (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	code TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL DEFAULT '',
	type TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS question_metadata (
	question_id INTEGER NOT NULL,
	descriptor  TEXT NOT NULL,
	value       TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (question_id, descriptor)
);

CREATE TABLE IF NOT EXISTS answers (
	complete_id TEXT NOT NULL,
	question_id INTEGER NOT NULL,
	value       TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (complete_id, question_id)
);

CREATE TABLE IF NOT EXISTS locations (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	name        TEXT NOT NULL,
	alternative TEXT NOT NULL DEFAULT '',
	parent      TEXT NOT NULL DEFAULT '',
	level       TEXT NOT NULL DEFAULT '',
	lat         REAL NOT NULL DEFAULT 0,
	lon         REAL NOT NULL DEFAULT 0
);
`

// Open opens (creating if necessary) the SQLite database at dbPath.
func Open(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type questionRow struct {
	ID   int    `db:"id"`
	Code string `db:"code"`
	Name string `db:"name"`
	Type string `db:"type"`
}

func (r questionRow) toQuestion() *question.Question {
	return &question.Question{
		ID:   r.ID,
		Code: r.Code,
		Name: r.Name,
		Type: question.Kind(r.Type),
	}
}

func (s *SQLiteStore) QuestionByID(id int) (*question.Question, error) {
	var row questionRow
	err := s.db.Get(&row, "SELECT id, code, name, type FROM questions WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", question.ErrUnknownQuestion, id)
	}
	if err != nil {
		return nil, fmt.Errorf("question %d: %w", id, err)
	}
	return row.toQuestion(), nil
}

func (s *SQLiteStore) QuestionByCode(code string) (*question.Question, error) {
	var row questionRow
	err := s.db.Get(&row, "SELECT id, code, name, type FROM questions WHERE code = ?", code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", question.ErrUnknownCode, code)
	}
	if err != nil {
		return nil, fmt.Errorf("question %s: %w", code, err)
	}
	return row.toQuestion(), nil
}

// MetadataForQuestion returns the metadata map with surrounding double
// quotes stripped from each value, matching how form imports stored
// them.
func (s *SQLiteStore) MetadataForQuestion(id int) (map[string]string, error) {
	rows, err := s.db.Query("SELECT descriptor, value FROM question_metadata WHERE question_id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("metadata for question %d: %w", id, err)
	}
	defer rows.Close()
	meta := map[string]string{}
	for rows.Next() {
		var descriptor, value string
		if err := rows.Scan(&descriptor, &value); err != nil {
			return nil, err
		}
		meta[descriptor] = stripQuotes(value)
	}
	return meta, rows.Err()
}

func stripQuotes(v string) string {
	if len(v) >= 2 && strings.HasPrefix(v, `"`) && strings.HasSuffix(v, `"`) {
		return v[1 : len(v)-1]
	}
	return v
}

func (s *SQLiteStore) Answer(completeID string, questionID int) (string, bool, error) {
	var value string
	err := s.db.Get(&value, "SELECT value FROM answers WHERE complete_id = ? AND question_id = ?", completeID, questionID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("answer (%s, %d): %w", completeID, questionID, err)
	}
	return value, true, nil
}

func (s *SQLiteStore) SaveAnswer(completeID string, questionID int, value string) error {
	_, err := s.db.Exec("INSERT OR REPLACE INTO answers (complete_id, question_id, value) VALUES (?, ?, ?)",
		completeID, questionID, value)
	if err != nil {
		return fmt.Errorf("save answer (%s, %d): %w", completeID, questionID, err)
	}
	return nil
}

// UpsertQuestion inserts or updates a question record by code and
// replaces its metadata.
func (s *SQLiteStore) UpsertQuestion(q question.Question, meta map[string]string) (int, error) {
	existing, err := s.QuestionByCode(q.Code)
	switch {
	case err == nil:
		q.ID = existing.ID
		if _, err := s.db.Exec("UPDATE questions SET name = ?, type = ? WHERE id = ?",
			q.Name, string(q.Type), q.ID); err != nil {
			return 0, fmt.Errorf("update question %s: %w", q.Code, err)
		}
	case errors.Is(err, question.ErrUnknownCode):
		res, err := s.db.Exec("INSERT INTO questions (code, name, type) VALUES (?, ?, ?)",
			q.Code, q.Name, string(q.Type))
		if err != nil {
			return 0, fmt.Errorf("insert question %s: %w", q.Code, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, err
		}
		q.ID = int(id)
	default:
		return 0, err
	}

	if _, err := s.db.Exec("DELETE FROM question_metadata WHERE question_id = ?", q.ID); err != nil {
		return 0, fmt.Errorf("clear metadata %s: %w", q.Code, err)
	}
	for descriptor, value := range meta {
		if _, err := s.db.Exec("INSERT INTO question_metadata (question_id, descriptor, value) VALUES (?, ?, ?)",
			q.ID, descriptor, value); err != nil {
			return 0, fmt.Errorf("save metadata %s/%s: %w", q.Code, descriptor, err)
		}
	}
	return q.ID, nil
}

type locationRow struct {
	ID          int     `db:"id"`
	Name        string  `db:"name"`
	Alternative string  `db:"alternative"`
	Parent      string  `db:"parent"`
	Level       string  `db:"level"`
	Lat         float64 `db:"lat"`
	Lon         float64 `db:"lon"`
}

func (r locationRow) toLocation() question.Location {
	return question.Location{
		ID:          r.ID,
		Name:        r.Name,
		Alternative: r.Alternative,
		Parent:      r.Parent,
		Level:       r.Level,
		Lat:         r.Lat,
		Lon:         r.Lon,
	}
}

func (s *SQLiteStore) LocationByID(id int) ([]question.Location, error) {
	var rows []locationRow
	if err := s.db.Select(&rows, "SELECT id, name, alternative, parent, level, lat, lon FROM locations WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("location %d: %w", id, err)
	}
	return toLocations(rows), nil
}

// LocationsByName matches on the name or the alternative name,
// optionally constrained to children of a parent name.
func (s *SQLiteStore) LocationsByName(name, parent string) ([]question.Location, error) {
	query := "SELECT id, name, alternative, parent, level, lat, lon FROM locations WHERE (name = ? OR alternative = ?)"
	args := []any{name, name}
	if parent != "" {
		query += " AND parent = ?"
		args = append(args, parent)
	}
	var rows []locationRow
	if err := s.db.Select(&rows, query+" ORDER BY id", args...); err != nil {
		return nil, fmt.Errorf("locations named %s: %w", name, err)
	}
	return toLocations(rows), nil
}

func toLocations(rows []locationRow) []question.Location {
	out := make([]question.Location, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toLocation())
	}
	return out
}

// AddLocation inserts one gazetteer record and returns its id.
func (s *SQLiteStore) AddLocation(loc question.Location) (int, error) {
	res, err := s.db.Exec("INSERT INTO locations (name, alternative, parent, level, lat, lon) VALUES (?, ?, ?, ?, ?, ?)",
		loc.Name, loc.Alternative, loc.Parent, loc.Level, loc.Lat, loc.Lon)
	if err != nil {
		return 0, fmt.Errorf("add location %s: %w", loc.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

// AnswersForQuestion returns every stored answer for one question,
// ordered by complete id for deterministic analysis runs.
func (s *SQLiteStore) AnswersForQuestion(questionID int) ([]question.Answer, error) {
	rows, err := s.db.Query("SELECT complete_id, value FROM answers WHERE question_id = ? ORDER BY complete_id", questionID)
	if err != nil {
		return nil, fmt.Errorf("answers for question %d: %w", questionID, err)
	}
	defer rows.Close()
	var out []question.Answer
	for rows.Next() {
		var a question.Answer
		if err := rows.Scan(&a.CompleteID, &a.Value); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Questions returns every question record ordered by id, for layout
// passes over a whole survey.
func (s *SQLiteStore) Questions() ([]*question.Question, error) {
	var rows []questionRow
	if err := s.db.Select(&rows, "SELECT id, code, name, type FROM questions ORDER BY id"); err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	out := make([]*question.Question, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toQuestion())
	}
	return out, nil
}

// Ensure SQLiteStore satisfies the interface at compile time.
var _ question.Store = (*SQLiteStore)(nil)
