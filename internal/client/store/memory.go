package store

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/fileshare/internal/client/models"
	"github.com/dmitrijs2005/fileshare/internal/common"
)

// MemoryStore keeps the record for the lifetime of the process only.
type MemoryStore struct {
	mu  sync.Mutex
	rec models.SessionRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(ctx context.Context) (models.SessionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyRecord(m.rec), nil
}

func (m *MemoryStore) Save(ctx context.Context, rec models.SessionRecord) error {
	if rec.Empty() {
		return common.ErrEmptyToken
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec = copyRecord(rec)
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec = models.SessionRecord{}
	return nil
}

func copyRecord(rec models.SessionRecord) models.SessionRecord {
	if rec.User != nil {
		u := *rec.User
		rec.User = &u
	}
	return rec
}
