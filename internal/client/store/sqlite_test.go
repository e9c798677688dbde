package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/fileshare/internal/client/models"
	"github.com/dmitrijs2005/fileshare/internal/common"
)

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestOpen_CreatesMetadataAndGooseTables(t *testing.T) {
	db := openMemory(t)

	assert.True(t, tableExists(t, db, "metadata"))
	assert.True(t, tableExists(t, db, "goose_db_version"))
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	db := openMemory(t)

	require.NoError(t, RunMigrations(context.Background(), db))
	assert.True(t, tableExists(t, db, "metadata"))
}

func TestSQLiteStore_LoadEmpty(t *testing.T) {
	s := NewSQLiteStore(openMemory(t))

	rec, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, rec.Empty())
	assert.Nil(t, rec.User)
	assert.False(t, rec.MustChangePassword)
}

func TestSQLiteStore_SaveLoadRoundTrip(t *testing.T) {
	s := NewSQLiteStore(openMemory(t))
	ctx := context.Background()

	want := models.SessionRecord{Token: "tok-1", User: &models.User{Username: "alice"}, MustChangePassword: true}
	require.NoError(t, s.Save(ctx, want))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLiteStore_SaveWithoutUser(t *testing.T) {
	s := NewSQLiteStore(openMemory(t))
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, models.SessionRecord{Token: "tok"}))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", got.Token)
	assert.Nil(t, got.User)
}

func TestSQLiteStore_SaveRejectsEmptyToken(t *testing.T) {
	s := NewSQLiteStore(openMemory(t))

	err := s.Save(context.Background(), models.SessionRecord{User: &models.User{Username: "bob"}})
	require.ErrorIs(t, err, common.ErrEmptyToken)
}

func TestSQLiteStore_ClearRemovesRecordAndIsIdempotent(t *testing.T) {
	db := openMemory(t)
	s := NewSQLiteStore(db)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO metadata(key, value) VALUES ('unrelated', x'01')`)
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, models.SessionRecord{Token: "tok", User: &models.User{Username: "alice"}}))
	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Clear(ctx))

	rec, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.SessionRecord{}, rec)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM metadata WHERE key = 'unrelated'`).Scan(&n))
	assert.Equal(t, 1, n, "Clear must only remove session keys")
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.db")

	db, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, NewSQLiteStore(db).Save(ctx, models.SessionRecord{Token: "tok-1", User: &models.User{Username: "alice"}}))
	require.NoError(t, db.Close())

	db, err = Open(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	rec, err := NewSQLiteStore(db).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", rec.Token)
	require.NotNil(t, rec.User)
	assert.Equal(t, "alice", rec.User.Username)
}

func TestSQLiteStore_LoadCorruptUser(t *testing.T) {
	db := openMemory(t)
	_, err := db.Exec(`INSERT INTO metadata(key, value) VALUES ('token', 'tok'), ('user', '{oops')`)
	require.NoError(t, err)

	_, err = NewSQLiteStore(db).Load(context.Background())
	require.ErrorContains(t, err, "decode stored user")
}

func TestSQLiteStore_SaveRollsBackOnPartialFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO metadata").WithArgs(common.TokenKey, []byte("tok")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO metadata").WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	err = NewSQLiteStore(db).Save(context.Background(), models.SessionRecord{Token: "tok", User: &models.User{Username: "a"}})
	require.ErrorContains(t, err, "failed to set metadata[user]")
	require.NoError(t, mock.ExpectationsWereMet())
}
