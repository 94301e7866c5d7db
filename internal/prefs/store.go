package prefs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/coursify/coursify/internal/database/repository"
	"github.com/coursify/coursify/internal/secrets"
)

const opTimeout = 2 * time.Second

// Store is the durable key-value store backed by the kv table.
// Values are sealed at rest. Calls are synchronous and bounded by a short
// timeout since sqlite is local.
type Store struct {
	repo *repository.KVRepo
}

func NewStore(repo *repository.KVRepo) *Store {
	return &Store{repo: repo}
}

// Get reports present=true whenever a row exists, even if it cannot be unsealed.
func (s *Store) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	e, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", false, fmt.Errorf("prefs get %s: %w", key, err)
	}
	if e == nil {
		return "", false, nil
	}
	plain, err := secrets.Open(e.Value)
	if err != nil {
		return "", true, fmt.Errorf("prefs unseal %s: %w", key, err)
	}
	return string(plain), true, nil
}

func (s *Store) Set(key, value string) error {
	sealed, err := secrets.Seal([]byte(value))
	if err != nil {
		return fmt.Errorf("prefs seal %s: %w", key, err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := s.repo.Upsert(ctx, key, sealed); err != nil {
		return fmt.Errorf("prefs set %s: %w", key, err)
	}
	return nil
}

func (s *Store) Clear(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := s.repo.Delete(ctx, key); err != nil {
		return fmt.Errorf("prefs clear %s: %w", key, err)
	}
	return nil
}

// Memory is an in-process Store for tests.
type Memory struct {
	mu   sync.Mutex
	data map[string]string
}

func NewMemory() *Memory {
	return &Memory{data: map[string]string{}}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *Memory) Clear(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
