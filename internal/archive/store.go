// Package archive stores generated level snapshots in SQLite or PostgreSQL,
// keyed by run seed and floor.
package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"

	"github.com/samdwyer/vaultdelve/internal/logger"
	"github.com/samdwyer/vaultdelve/internal/world"
)

// ErrNotFound is returned when no level is archived for a seed and floor.
var ErrNotFound = errors.New("level not archived")

// Summary describes an archived level without decoding its snapshot.
type Summary struct {
	Seed     int64
	Floor    int
	Rooms    int
	Locked   int
	Entities int
}

// Store persists level snapshots.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// Open connects to the configured database and creates the schema.
func Open(cfg Config) (*Store, error) {
	dialect := NewDialect(DialectType(cfg.Driver))

	var dsn string
	switch dialect.(type) {
	case *PostgresDialect:
		dsn = cfg.Postgres.DSN()
	default:
		if cfg.SQLitePath == "" {
			return nil, fmt.Errorf("sqlite archive needs a path")
		}
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create archive directory: %w", err)
		}
		dsn = cfg.SQLitePath
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	if _, ok := dialect.(*PostgresDialect); ok {
		db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.Postgres.ConnMaxLifetime)
	}

	for _, stmt := range dialect.InitStatements() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run %q: %w", stmt, err)
		}
	}

	s := &Store{db: db, dialect: dialect}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Debug("archive opened", "driver", dialect.DriverName())
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the schema if it doesn't exist.
func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS levels (
			seed BIGINT NOT NULL,
			floor INTEGER NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			rooms INTEGER NOT NULL,
			locked_rooms INTEGER NOT NULL,
			entities INTEGER NOT NULL,
			snapshot TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (seed, floor)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_levels_seed ON levels(seed)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) query(q string) string {
	return rebind(s.dialect, q)
}

// SaveLevel stores a snapshot under seed and its floor, replacing any
// earlier copy.
func (s *Store) SaveLevel(ctx context.Context, seed int64, snap world.Snapshot) error {
	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode floor %d: %w", snap.Floor, err)
	}

	locked := 0
	for _, r := range snap.Rooms {
		if r.Type == world.RoomLocked.String() {
			locked++
		}
	}

	_, err = s.db.ExecContext(ctx, s.query(`
		INSERT INTO levels (seed, floor, width, height, rooms, locked_rooms, entities, snapshot)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (seed, floor) DO UPDATE SET
			width = excluded.width,
			height = excluded.height,
			rooms = excluded.rooms,
			locked_rooms = excluded.locked_rooms,
			entities = excluded.entities,
			snapshot = excluded.snapshot`),
		seed, snap.Floor, snap.Width, snap.Height, len(snap.Rooms), locked, len(snap.Entities), string(data))
	if err != nil {
		return fmt.Errorf("save seed %d floor %d: %w", seed, snap.Floor, err)
	}

	logger.Debug("level archived", "seed", seed, "floor", snap.Floor, "bytes", len(data))
	return nil
}

// LoadLevel returns the snapshot archived for seed and floor.
func (s *Store) LoadLevel(ctx context.Context, seed int64, floor int) (world.Snapshot, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		s.query(`SELECT snapshot FROM levels WHERE seed = ? AND floor = ?`),
		seed, floor).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return world.Snapshot{}, fmt.Errorf("seed %d floor %d: %w", seed, floor, ErrNotFound)
	}
	if err != nil {
		return world.Snapshot{}, fmt.Errorf("load seed %d floor %d: %w", seed, floor, err)
	}

	var snap world.Snapshot
	if err := yaml.Unmarshal([]byte(data), &snap); err != nil {
		return world.Snapshot{}, fmt.Errorf("decode seed %d floor %d: %w", seed, floor, err)
	}
	return snap, nil
}

// ListLevels returns summaries of every floor archived for seed, in floor
// order.
func (s *Store) ListLevels(ctx context.Context, seed int64) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		s.query(`SELECT seed, floor, rooms, locked_rooms, entities FROM levels WHERE seed = ? ORDER BY floor`),
		seed)
	if err != nil {
		return nil, fmt.Errorf("list seed %d: %w", seed, err)
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.Seed, &sum.Floor, &sum.Rooms, &sum.Locked, &sum.Entities); err != nil {
			return nil, err
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// DeleteSeed removes every floor archived for seed and reports how many
// were removed.
func (s *Store) DeleteSeed(ctx context.Context, seed int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, s.query(`DELETE FROM levels WHERE seed = ?`), seed)
	if err != nil {
		return 0, fmt.Errorf("delete seed %d: %w", seed, err)
	}
	return res.RowsAffected()
}
