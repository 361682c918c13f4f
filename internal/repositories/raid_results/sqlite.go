package raidresults

import (
	"context"
	"database/sql"
	stderrors "errors"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/KirkDiggler/rpg-raid/internal/entities/raid"
	"github.com/KirkDiggler/rpg-raid/internal/errors"
	"github.com/KirkDiggler/rpg-raid/internal/repositories/raid_results/migrations"
)

// SQLiteRepository persists results in SQLite
type SQLiteRepository struct {
	db *sql.DB
}

// SQLiteConfig configures the SQLite ledger
type SQLiteConfig struct {
	// Path is the database file; ":memory:" is accepted for tests
	Path string
}

// Validate validates the SQLiteConfig
func (cfg *SQLiteConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if strings.TrimSpace(cfg.Path) == "" {
		return errors.InvalidArgument("storage path is required")
	}
	return nil
}

// NewSQLite opens the ledger and applies embedded migrations
func NewSQLite(ctx context.Context, cfg *SQLiteConfig) (*SQLiteRepository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	path := cfg.Path
	if path != ":memory:" {
		path = filepath.Clean(path)
	}
	dsn := path + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite db")
	}
	if path == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping sqlite db")
	}
	if err := applyMigrations(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "run migrations")
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the SQLite handle
func (r *SQLiteRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Create inserts one result
func (r *SQLiteRepository) Create(ctx context.Context, input *CreateInput) (*CreateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateResult(input.Result); err != nil {
		return nil, err
	}

	res := input.Result
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO raid_results (
		   id, raid_id, player_id, boss_id, victory,
		   damage_dealt, rounds_used, rating_delta, placement, created_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.ID, res.RaidID, res.PlayerID, res.BossID, boolToInt(res.Victory),
		res.DamageDealt, res.RoundsUsed, res.RatingDelta, res.Placement, toMillis(res.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, duplicate(res)
		}
		return nil, errors.Wrap(err, "create raid result")
	}

	return &CreateOutput{Result: res}, nil
}

// Get returns one result
func (r *SQLiteRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument("result ID is required")
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT id, raid_id, player_id, boss_id, victory,
		        damage_dealt, rounds_used, rating_delta, placement, created_at
		   FROM raid_results
		  WHERE id = ?`,
		input.ID,
	)

	res, err := scanResult(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundf("raid result %s not found", input.ID)
		}
		return nil, errors.Wrap(err, "get raid result")
	}

	return &GetOutput{Result: res}, nil
}

// ListByPlayer returns a player's results, newest first
func (r *SQLiteRepository) ListByPlayer(ctx context.Context, input *ListByPlayerInput) (*ListByPlayerOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, raid_id, player_id, boss_id, victory,
		        damage_dealt, rounds_used, rating_delta, placement, created_at
		   FROM raid_results
		  WHERE player_id = ?
		  ORDER BY created_at DESC, id DESC
		  LIMIT ?`,
		input.PlayerID, limitOrDefault(input.Limit),
	)
	if err != nil {
		return nil, errors.Wrap(err, "list raid results")
	}
	defer func() { _ = rows.Close() }()

	var results []*raid.Result
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan raid result")
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate raid results")
	}

	return &ListByPlayerOutput{Results: results}, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(row scanner) (*raid.Result, error) {
	var res raid.Result
	var victory int
	var createdAt int64
	if err := row.Scan(
		&res.ID,
		&res.RaidID,
		&res.PlayerID,
		&res.BossID,
		&victory,
		&res.DamageDealt,
		&res.RoundsUsed,
		&res.RatingDelta,
		&res.Placement,
		&createdAt,
	); err != nil {
		return nil, err
	}
	res.Victory = victory != 0
	res.CreatedAt = fromMillis(createdAt)
	return &res, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if stderrors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(v int64) time.Time {
	return time.UnixMilli(v).UTC()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
