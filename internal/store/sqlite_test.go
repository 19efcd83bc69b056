package store

import (
	"testing"
	"time"

	"shop-bench/internal/config"
)

func TestNewSQLiteCreatesJournalSchema(t *testing.T) {
	st, err := NewSQLite(config.DatabaseConfig{InMemory: true, MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("NewSQLite returned error: %v", err)
	}
	defer func() { _ = st.Close() }()

	// 建连即建表，直接写入应当成功。
	_, err = st.DB().Exec(
		`INSERT INTO journal_events (id, event_type, payload, created_at) VALUES (?, ?, ?, ?)`,
		"e1", "reconciliation", `{"seller":"alice"}`, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("insert into journal_events: %v", err)
	}

	var count int
	if err := st.DB().QueryRow(`SELECT COUNT(*) FROM journal_events`).Scan(&count); err != nil {
		t.Fatalf("count journal_events: %v", err)
	}
	if count != 1 {
		t.Errorf("row count = %d, want 1", count)
	}
}

func TestNewSQLiteAppliesSynchronousSetting(t *testing.T) {
	st, err := NewSQLite(config.DatabaseConfig{
		InMemory:     true,
		MaxOpenConns: 1,
		BusyTimeout:  time.Second,
		Synchronous:  "full",
	})
	if err != nil {
		t.Fatalf("NewSQLite returned error: %v", err)
	}
	defer func() { _ = st.Close() }()

	var mode int
	if err := st.DB().QueryRow(`PRAGMA synchronous;`).Scan(&mode); err != nil {
		t.Fatalf("read synchronous pragma: %v", err)
	}
	if mode != 2 { // 2 = FULL
		t.Errorf("synchronous = %d, want 2 (FULL)", mode)
	}
}
