package store

import "sync"

// MemoryCredentialStore keeps the credential in memory only. Used by tests
// and by scripted players that do not need to survive a restart.
type MemoryCredentialStore struct {
	mu  sync.RWMutex
	key string
}

func NewMemoryCredentialStore() *MemoryCredentialStore {
	return &MemoryCredentialStore{}
}

func (m *MemoryCredentialStore) Load() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.key, nil
}

func (m *MemoryCredentialStore) Save(key string) error {
	m.mu.Lock()
	m.key = key
	m.mu.Unlock()
	return nil
}

func (m *MemoryCredentialStore) Remove() error {
	return m.Save("")
}
