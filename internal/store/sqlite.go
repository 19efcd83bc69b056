// Package store 管理 SQLite 连接并持有事件日志的表结构。
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"shop-bench/internal/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS journal_events (
	id TEXT PRIMARY KEY,
	event_type TEXT NOT NULL,
	payload TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_journal_events_type ON journal_events(event_type);
`

// Store 封装 SQLite 连接。表结构在打开连接时就绪，
// 使用方只负责读写 journal_events。
type Store struct {
	db *sql.DB
}

// NewSQLite 打开数据库、应用 pragma 并初始化表结构。
func NewSQLite(cfg config.DatabaseConfig) (*Store, error) {
	dsn := cfg.Path
	if cfg.InMemory {
		dsn = ":memory:"
	} else if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("创建数据目录 %q 失败: %w", dir, err)
		}
	}

	busyTimeout := cfg.BusyTimeout
	if busyTimeout <= 0 {
		busyTimeout = 5 * time.Second
	}

	conn, err := sql.Open("sqlite3", fmt.Sprintf("%s?_busy_timeout=%d&_foreign_keys=on", dsn, busyTimeout.Milliseconds()))
	if err != nil {
		return nil, fmt.Errorf("打开事件库失败: %w", err)
	}

	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	synchronous := strings.ToUpper(cfg.Synchronous)
	if synchronous == "" {
		synchronous = "NORMAL"
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		fmt.Sprintf("PRAGMA synchronous=%s;", synchronous),
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("应用 %q 失败: %w", pragma, err)
		}
	}

	if _, err := conn.Exec(schema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("初始化事件表失败: %w", err)
	}

	return &Store{db: conn}, nil
}

// DB 返回底层 *sql.DB.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close 关闭数据库连接。
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
