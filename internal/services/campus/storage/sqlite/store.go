// Package sqlite archives semester checkpoints in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/louisbranch/campuslife/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/session"
	"github.com/louisbranch/campuslife/internal/services/campus/storage"
	"github.com/louisbranch/campuslife/internal/services/campus/storage/sqlite/migrations"
)

// ErrInvalidCheckpoint reports a checkpoint the schema rejects.
var ErrInvalidCheckpoint = errors.New("invalid checkpoint")

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Store is a SQLite checkpoint archive.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

var _ storage.CheckpointStore = (*Store)(nil)

// Open opens the archive at path and applies migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the database. It is nil-safe.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Checkpoint archives sess right after a semester ended. Replaying a
// semester replaces its checkpoint.
func (s *Store) Checkpoint(ctx context.Context, sess *session.Session, semesterGPA float64) error {
	return s.PutCheckpoint(ctx, storage.NewCheckpoint(sess, semesterGPA, s.now()))
}

// PutCheckpoint inserts or replaces the checkpoint for (player, semester).
func (s *Store) PutCheckpoint(ctx context.Context, checkpoint storage.Checkpoint) error {
	if strings.TrimSpace(checkpoint.Player) == "" {
		return fmt.Errorf("put checkpoint: player is required: %w", ErrInvalidCheckpoint)
	}
	data, err := storage.Encode(checkpoint.Snapshot)
	if err != nil {
		return err
	}
	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO checkpoints (player, semester, semester_gpa, cumulative_gpa, snapshot_json, created_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (player, semester) DO UPDATE SET
    semester_gpa = excluded.semester_gpa,
    cumulative_gpa = excluded.cumulative_gpa,
    snapshot_json = excluded.snapshot_json,
    created_at = excluded.created_at`,
		checkpoint.Player,
		checkpoint.Semester,
		checkpoint.SemesterGPA,
		checkpoint.CumulativeGPA,
		data,
		toMillis(checkpoint.CreatedAt),
	)
	if isConstraintError(err) {
		return fmt.Errorf("put checkpoint %s/%d: %w", checkpoint.Player, checkpoint.Semester, ErrInvalidCheckpoint)
	}
	if err != nil {
		return fmt.Errorf("put checkpoint: %w", err)
	}
	return nil
}

// GetCheckpoint returns one checkpoint or storage.ErrNotFound.
func (s *Store) GetCheckpoint(ctx context.Context, player string, semester int) (storage.Checkpoint, error) {
	row := s.sqlDB.QueryRowContext(ctx, `
SELECT player, semester, semester_gpa, cumulative_gpa, snapshot_json, created_at
FROM checkpoints WHERE player = ? AND semester = ?`, storage.PlayerKey(player), semester)
	checkpoint, err := scanCheckpoint(row)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.Checkpoint{}, fmt.Errorf("checkpoint %s/%d: %w", player, semester, storage.ErrNotFound)
	}
	return checkpoint, err
}

// ListCheckpoints returns player's checkpoints in semester order.
func (s *Store) ListCheckpoints(ctx context.Context, player string) ([]storage.Checkpoint, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT player, semester, semester_gpa, cumulative_gpa, snapshot_json, created_at
FROM checkpoints WHERE player = ? ORDER BY semester`, storage.PlayerKey(player))
	if err != nil {
		return nil, fmt.Errorf("list checkpoints: %w", err)
	}
	defer rows.Close()

	var out []storage.Checkpoint
	for rows.Next() {
		checkpoint, err := scanCheckpoint(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, checkpoint)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list checkpoints: %w", err)
	}
	return out, nil
}

// Players returns the archived player keys, sorted.
func (s *Store) Players(ctx context.Context) ([]string, error) {
	rows, err := s.sqlDB.QueryContext(ctx, "SELECT DISTINCT player FROM checkpoints ORDER BY player")
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	var players []string
	for rows.Next() {
		var player string
		if err := rows.Scan(&player); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, player)
	}
	return players, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCheckpoint(row rowScanner) (storage.Checkpoint, error) {
	var (
		checkpoint storage.Checkpoint
		data       []byte
		createdAt  int64
	)
	if err := row.Scan(
		&checkpoint.Player,
		&checkpoint.Semester,
		&checkpoint.SemesterGPA,
		&checkpoint.CumulativeGPA,
		&data,
		&createdAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Checkpoint{}, err
		}
		return storage.Checkpoint{}, fmt.Errorf("scan checkpoint: %w", err)
	}
	snap, err := storage.Decode(data)
	if err != nil {
		return storage.Checkpoint{}, err
	}
	checkpoint.Snapshot = snap
	checkpoint.CreatedAt = fromMillis(createdAt)
	return checkpoint, nil
}

func isConstraintError(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT || code == sqlite3.SQLITE_CONSTRAINT_CHECK || code == sqlite3.SQLITE_CONSTRAINT_NOTNULL
}
