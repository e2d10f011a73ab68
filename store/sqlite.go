package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

type entryModel struct {
	bun.BaseModel `bun:"table:kv_entries"`

	Key       string    `bun:"key,pk"`
	Value     []byte    `bun:"value,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

// SQLiteKV stores values in a sqlite table through bun.
type SQLiteKV struct {
	db *bun.DB
}

// OpenSQLite opens dsn with the sqlite3 driver and creates the table when
// it is missing.
func OpenSQLite(ctx context.Context, dsn string) (*SQLiteKV, error) {
	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	// sqlite serialises writers; one connection also keeps :memory: databases alive.
	sqldb.SetMaxOpenConns(1)

	kv, err := NewSQLiteKV(ctx, bun.NewDB(sqldb, sqlitedialect.New()))
	if err != nil {
		sqldb.Close()
		return nil, err
	}
	return kv, nil
}

// NewSQLiteKV wraps an existing bun database.
func NewSQLiteKV(ctx context.Context, db *bun.DB) (*SQLiteKV, error) {
	if db == nil {
		return nil, errors.New("store: sqlite adapter requires a database")
	}
	if _, err := db.NewCreateTable().Model((*entryModel)(nil)).IfNotExists().Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create kv table: %w", err)
	}
	return &SQLiteKV{db: db}, nil
}

func (s *SQLiteKV) Get(ctx context.Context, key string) ([]byte, error) {
	var model entryModel
	if err := s.db.NewSelect().Model(&model).Where("? = ?", bun.Ident("key"), key).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return model.Value, nil
}

func (s *SQLiteKV) Set(ctx context.Context, key string, value []byte) error {
	model := entryModel{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	_, err := s.db.NewInsert().
		Model(&model).
		On("CONFLICT (?) DO UPDATE", bun.Ident("key")).
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

func (s *SQLiteKV) Delete(ctx context.Context, key string) error {
	res, err := s.db.NewDelete().Model((*entryModel)(nil)).Where("? = ?", bun.Ident("key"), key).Exec(ctx)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteKV) Close() error {
	return s.db.Close()
}
