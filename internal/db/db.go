package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"tradejournal/internal/config"
)

// DB bundles the gorm handle with the underlying pool for the ops surface
// (readiness pings, connection limits, session settings).
type DB struct {
	Gorm *gorm.DB
	SQL  *sql.DB
}

// Open connects to Postgres and applies the pool limits from config. Query
// logging stays off; the application logs at the service layer instead, and
// the journal's queries are all short single-table statements.
func Open(cfg config.DBConfig) (*DB, error) {
	gdb, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("db: open: %w", err)
	}

	pool, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("db: pool handle: %w", err)
	}
	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	pool.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return &DB{Gorm: gdb, SQL: pool}, nil
}

func (d *DB) Close() error {
	if d == nil || d.SQL == nil {
		return nil
	}
	return d.SQL.Close()
}

func (d *DB) Ping(ctx context.Context) error {
	if d == nil || d.SQL == nil {
		return fmt.Errorf("db: not open")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return d.SQL.PingContext(ctx)
}

// SetTimezone pins the session timezone so trade_date columns compare the
// same way regardless of the server's locale.
func (d *DB) SetTimezone(tz string) error {
	if d == nil || d.SQL == nil || tz == "" {
		return nil
	}
	_, err := d.SQL.Exec("SET TIME ZONE '" + tz + "'")
	return err
}
