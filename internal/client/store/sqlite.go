package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/fileshare/internal/client/models"
	"github.com/dmitrijs2005/fileshare/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/fileshare/internal/common"
	"github.com/dmitrijs2005/fileshare/internal/dbx"
)

var recordKeys = []string{common.TokenKey, common.UserKey, common.MustChangePasswordKey}

// SQLiteStore keeps the session record in the metadata table.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Load(ctx context.Context) (models.SessionRecord, error) {
	values, err := metadata.NewSQLiteRepository(s.db).GetMany(ctx, recordKeys...)
	if err != nil {
		return models.SessionRecord{}, err
	}

	var rec models.SessionRecord
	rec.Token = string(values[common.TokenKey])

	if raw := values[common.UserKey]; len(raw) > 0 && string(raw) != "null" {
		var u models.User
		if err := json.Unmarshal(raw, &u); err != nil {
			return models.SessionRecord{}, fmt.Errorf("decode stored user: %w", err)
		}
		rec.User = &u
	}

	rec.MustChangePassword = string(values[common.MustChangePasswordKey]) == "true"
	return rec, nil
}

func (s *SQLiteStore) Save(ctx context.Context, rec models.SessionRecord) error {
	if rec.Empty() {
		return common.ErrEmptyToken
	}

	user := []byte("null")
	if rec.User != nil {
		b, err := json.Marshal(rec.User)
		if err != nil {
			return fmt.Errorf("encode user: %w", err)
		}
		user = b
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.TokenKey, []byte(rec.Token)); err != nil {
			return err
		}
		if err := repo.Set(ctx, common.UserKey, user); err != nil {
			return err
		}
		return repo.Set(ctx, common.MustChangePasswordKey, []byte(strconv.FormatBool(rec.MustChangePassword)))
	})
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Delete(ctx, recordKeys...)
	})
}
