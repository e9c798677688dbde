package store

import (
	"context"

	"github.com/dmitrijs2005/fileshare/internal/client/models"
)

// Store is the Persistent Session Store contract.
//
// Load returns a zero record when nothing is stored. Save replaces the
// whole record; Clear removes it and is idempotent.
type Store interface {
	Load(ctx context.Context) (models.SessionRecord, error)
	Save(ctx context.Context, rec models.SessionRecord) error
	Clear(ctx context.Context) error
}
