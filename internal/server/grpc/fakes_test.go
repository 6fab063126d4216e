package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophdrive/internal/server/listing"
	"github.com/dmitrijs2005/gophdrive/internal/server/models"
	"github.com/dmitrijs2005/gophdrive/internal/server/services"
)

type fakeUsers struct {
	UserService

	regUser *models.User
	regErr  error

	tokens   *services.TokenPair
	loginErr error

	refreshErr error
	gotRefresh string
}

func (f *fakeUsers) Register(_ context.Context, username, _ string) (*models.User, error) {
	if f.regErr != nil {
		return nil, f.regErr
	}
	u := *f.regUser
	u.UserName = username
	return &u, nil
}

func (f *fakeUsers) Login(context.Context, string, string) (*services.TokenPair, error) {
	return f.tokens, f.loginErr
}

func (f *fakeUsers) RefreshToken(_ context.Context, token string) (*services.TokenPair, error) {
	f.gotRefresh = token
	return f.tokens, f.refreshErr
}

// fakeDrive records the user id of the last call and returns canned values.
type fakeDrive struct {
	DriveService

	lastUserID string
	err        error

	view     *listing.FolderView
	folder   *models.Folder
	parentID string
	file     *models.File
	download *services.Download
	uploaded []byte
}

func (f *fakeDrive) GetFolderView(_ context.Context, userID, _ string) (*listing.FolderView, error) {
	f.lastUserID = userID
	return f.view, f.err
}

func (f *fakeDrive) CreateFolder(_ context.Context, userID, _, name string) (*models.Folder, error) {
	f.lastUserID = userID
	if f.err != nil {
		return nil, f.err
	}
	return &models.Folder{ID: "new-id", UserID: userID, Name: name, DateModified: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)}, nil
}

func (f *fakeDrive) RenameFolder(_ context.Context, userID, _, _ string) (string, error) {
	f.lastUserID = userID
	return f.parentID, f.err
}

func (f *fakeDrive) DeleteFolder(_ context.Context, userID, _ string) (string, error) {
	f.lastUserID = userID
	return f.parentID, f.err
}

func (f *fakeDrive) UploadFile(_ context.Context, userID, _, _, _ string, data []byte) (*models.File, error) {
	f.lastUserID = userID
	f.uploaded = data
	return f.file, f.err
}

func (f *fakeDrive) DownloadFile(_ context.Context, userID, _ string) (*services.Download, error) {
	f.lastUserID = userID
	return f.download, f.err
}

func (f *fakeDrive) DeleteFile(_ context.Context, userID, _ string) (string, error) {
	f.lastUserID = userID
	return f.parentID, f.err
}
