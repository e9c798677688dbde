package client

import (
	"context"
	"io"

	"github.com/dmitrijs2005/fileshare/internal/client/models"
)

// Client is the backend API used by the feature services.
type Client interface {
	Ping(ctx context.Context) (string, error)
	Login(ctx context.Context, username, password string) (*models.LoginResponse, error)
	ChangePassword(ctx context.Context, token, newPassword string) error
	Upload(ctx context.Context, token string, files []File) (*models.ShareResult, error)
	UpdateShare(ctx context.Context, token string, settings models.ShareSettings) error
}

// File is one part of a multipart upload.
type File struct {
	Name   string
	Reader io.Reader
}

var _ Client = (*HTTPClient)(nil)
