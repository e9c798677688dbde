package services

import (
	"context"
	"path/filepath"

	"github.com/dmitrijs2005/fileshare/internal/client/client"
	"github.com/dmitrijs2005/fileshare/internal/client/models"
	"github.com/dmitrijs2005/fileshare/internal/client/session"
	"github.com/dmitrijs2005/fileshare/internal/common"
	"github.com/dmitrijs2005/fileshare/internal/filex"
)

// MaxExpiryMinutes is the longest share lifetime the backend accepts.
const MaxExpiryMinutes = 1440

// ShareService uploads files and adjusts the resulting share.
type ShareService interface {
	Upload(ctx context.Context, paths []string) (*models.ShareResult, error)
	UpdateSettings(ctx context.Context, publicID, password string, expiresMinutes int) error
}

type shareService struct {
	client  client.Client
	session *session.Manager
}

func NewShareService(c client.Client, m *session.Manager) ShareService {
	return &shareService{client: c, session: m}
}

// Upload sends the files at paths as one share.
func (s *shareService) Upload(ctx context.Context, paths []string) (*models.ShareResult, error) {
	if len(paths) == 0 {
		return nil, common.ErrNoFiles
	}

	token, err := s.session.Token()
	if err != nil {
		return nil, err
	}

	opened, err := filex.OpenAll(paths)
	if err != nil {
		return nil, err
	}
	defer opened.Close()

	files := make([]client.File, len(opened))
	for i, f := range opened {
		files[i] = client.File{Name: filepath.Base(f.Name()), Reader: f}
	}

	return s.client.Upload(ctx, token, files)
}

// UpdateSettings changes the share password and lifetime. An empty password
// and zero minutes each mean "leave as is".
func (s *shareService) UpdateSettings(ctx context.Context, publicID, password string, expiresMinutes int) error {
	if publicID == "" {
		return common.ErrNoShare
	}
	if expiresMinutes < 0 {
		return common.ErrInvalidExpiry
	}
	if expiresMinutes > MaxExpiryMinutes {
		return common.ErrExpiryTooLong
	}

	token, err := s.session.Token()
	if err != nil {
		return err
	}

	settings := models.ShareSettings{PublicID: publicID}
	if password != "" {
		settings.Password = &password
	}
	if expiresMinutes > 0 {
		settings.ExpiresMinutes = &expiresMinutes
	}

	return s.client.UpdateShare(ctx, token, settings)
}
