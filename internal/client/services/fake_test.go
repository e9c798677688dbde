package services

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/fileshare/internal/client/client"
	"github.com/dmitrijs2005/fileshare/internal/client/models"
	"github.com/dmitrijs2005/fileshare/internal/client/session"
	"github.com/dmitrijs2005/fileshare/internal/client/store"
	"github.com/dmitrijs2005/fileshare/internal/logging"
)

// fakeClient implements client.Client for service unit tests.
type fakeClient struct {
	PingRet string
	PingErr error

	LoginRet *models.LoginResponse
	LoginErr error

	ChangePasswordErr  error
	ChangePasswordHook func()

	UploadRet *models.ShareResult
	UploadErr error

	UpdateShareErr error

	LastLoginUser      string
	LastLoginPassword  string
	LastToken          string
	LastNewPassword    string
	LastUploadNames    []string
	LastUploadContents []string
	LastSettings       models.ShareSettings
	Calls              int
}

func (f *fakeClient) Ping(ctx context.Context) (string, error) {
	f.Calls++
	return f.PingRet, f.PingErr
}

func (f *fakeClient) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	f.Calls++
	f.LastLoginUser, f.LastLoginPassword = username, password
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) ChangePassword(ctx context.Context, token, newPassword string) error {
	f.Calls++
	f.LastToken, f.LastNewPassword = token, newPassword
	if f.ChangePasswordHook != nil {
		f.ChangePasswordHook()
	}
	return f.ChangePasswordErr
}

func (f *fakeClient) Upload(ctx context.Context, token string, files []client.File) (*models.ShareResult, error) {
	f.Calls++
	f.LastToken = token
	for _, file := range files {
		data, err := io.ReadAll(file.Reader)
		if err != nil {
			return nil, err
		}
		f.LastUploadNames = append(f.LastUploadNames, file.Name)
		f.LastUploadContents = append(f.LastUploadContents, string(data))
	}
	return f.UploadRet, f.UploadErr
}

func (f *fakeClient) UpdateShare(ctx context.Context, token string, settings models.ShareSettings) error {
	f.Calls++
	f.LastToken = token
	f.LastSettings = settings
	return f.UpdateShareErr
}

var _ client.Client = (*fakeClient)(nil)

func newManager(t *testing.T) (*session.Manager, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	m := session.NewManager(st, logging.Discard())
	require.NoError(t, m.Initialize(context.Background()))
	return m, st
}

func loggedIn(t *testing.T, token string) *session.Manager {
	t.Helper()
	m, _ := newManager(t)
	require.NoError(t, m.Login(context.Background(), token, &models.User{Username: "alice"}, true))
	return m
}
