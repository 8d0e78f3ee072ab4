// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/muse/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrNotFound is returned when a poem ID has no record.
var ErrNotFound = errors.New("poem not found")

const (
	deviceSep  = ","
	// Fixed-width so lexical order matches chronological order.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// Store wraps SQLite access for saved poems.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS poems (
			id TEXT PRIMARY KEY,
			poet TEXT NOT NULL,
			corpus_path TEXT NOT NULL,
			text TEXT NOT NULL,
			devices TEXT NOT NULL,
			lines INTEGER NOT NULL,
			depth INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_poems_created_at ON poems(created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_poems_poet ON poems(poet);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SavePoem stores a poem. A missing ID or timestamp is filled in and the
// stored record is returned.
func (s *Store) SavePoem(ctx context.Context, rec model.PoemRecord) (model.PoemRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	rec.CreatedAt = rec.CreatedAt.UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO poems (id, poet, corpus_path, text, devices, lines, depth, seed, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Poet,
		rec.CorpusPath,
		rec.Text,
		strings.Join(rec.Devices, deviceSep),
		rec.Lines,
		rec.Depth,
		rec.Seed,
		rec.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return model.PoemRecord{}, err
	}
	return rec, nil
}

// GetPoem loads a single poem by ID.
func (s *Store) GetPoem(ctx context.Context, id string) (model.PoemRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, poet, corpus_path, text, devices, lines, depth, seed, created_at
		FROM poems WHERE id = ?`, id)
	rec, err := scanPoem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.PoemRecord{}, ErrNotFound
	}
	return rec, err
}

// DeletePoem removes a poem by ID.
func (s *Store) DeletePoem(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM poems WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListPoems returns poems filtered by the history config, oldest first.
func (s *Store) ListPoems(ctx context.Context, cfg model.HistoryConfig) ([]model.PoemRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Poet != "" {
		clauses = append(clauses, "poet = ?")
		args = append(args, cfg.Poet)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "created_at >= ?")
		args = append(args, cfg.Since.UTC().Format(timeLayout))
	}
	query := fmt.Sprintf(`SELECT id, poet, corpus_path, text, devices, lines, depth, seed, created_at
		FROM poems
		WHERE %s
		ORDER BY created_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var poems []model.PoemRecord
	for rows.Next() {
		rec, err := scanPoem(rows)
		if err != nil {
			return nil, err
		}
		poems = append(poems, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(poems) > cfg.Last {
		poems = poems[len(poems)-cfg.Last:]
	}
	return poems, nil
}

// ListPoets returns the distinct poets with saved poems.
func (s *Store) ListPoets(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT poet FROM poems ORDER BY poet ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var poets []string
	for rows.Next() {
		var poet string
		if err := rows.Scan(&poet); err != nil {
			return nil, err
		}
		poets = append(poets, poet)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return poets, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPoem(row scanner) (model.PoemRecord, error) {
	var rec model.PoemRecord
	var devices, createdAt string
	if err := row.Scan(&rec.ID, &rec.Poet, &rec.CorpusPath, &rec.Text, &devices, &rec.Lines, &rec.Depth, &rec.Seed, &createdAt); err != nil {
		return model.PoemRecord{}, err
	}
	if devices != "" {
		rec.Devices = strings.Split(devices, deviceSep)
	}
	parsed, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return model.PoemRecord{}, err
	}
	rec.CreatedAt = parsed
	return rec, nil
}
