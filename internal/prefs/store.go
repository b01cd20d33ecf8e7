package prefs

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"
)

var ErrNotFound = errors.New("preference not found")

type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
}

// SQLStore keeps preferences in the preferences table created by db.Open.
type SQLStore struct {
	DB *sql.DB
	// Postgres uses $n placeholders.
	Dollar bool
}

func NewSQLStore(db *sql.DB, postgres bool) *SQLStore {
	return &SQLStore{DB: db, Dollar: postgres}
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, error) {
	q := `SELECT value FROM preferences WHERE key = ?`
	if s.Dollar {
		q = `SELECT value FROM preferences WHERE key = $1`
	}
	var v string
	err := s.DB.QueryRowContext(ctx, q, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return v, err
}

func (s *SQLStore) Put(ctx context.Context, key, value string) error {
	q := `INSERT INTO preferences(key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if s.Dollar {
		q = `INSERT INTO preferences(key, value, updated_at) VALUES ($1, $2, $3)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	}
	_, err := s.DB.ExecContext(ctx, q, key, value, time.Now().Unix())
	return err
}

type MemoryStore struct {
	mu sync.RWMutex
	m  map[string]string
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{m: map[string]string{}} }

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *MemoryStore) Put(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}
