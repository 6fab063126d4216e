package grpc

import (
	"context"

	"github.com/dmitrijs2005/gophdrive/internal/api"
	"github.com/dmitrijs2005/gophdrive/internal/server/listing"
	"github.com/dmitrijs2005/gophdrive/internal/server/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// fail logs err with its full context and returns the client-facing status.
func (s *GRPCServer) fail(ctx context.Context, method string, err error) error {
	st := toStatus(err)
	switch status.Code(st) {
	case codes.Internal, codes.Unavailable, codes.DataLoss:
		s.logger.Error(ctx, method+" failed", "error", err)
	default:
		s.logger.Info(ctx, method+" rejected", "error", err)
	}
	return st
}

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {

	return &api.PingResponse{Status: "OK"}, nil

}

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.RegisterResponse, error) {

	s.logger.Info(ctx, "Registration request")

	user, err := s.users.Register(ctx, req.Username, req.Password)
	if err != nil {
		return nil, s.fail(ctx, "Register", err)
	}

	s.logger.Info(ctx, "Registered", "username", user.UserName)
	return &api.RegisterResponse{UserID: user.ID}, nil

}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.TokenResponse, error) {

	tokens, err := s.users.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, s.fail(ctx, "Login", err)
	}

	return &api.TokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil

}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *api.RefreshTokenRequest) (*api.TokenResponse, error) {

	tokens, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, s.fail(ctx, "RefreshToken", err)
	}

	return &api.TokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil

}

func (s *GRPCServer) GetFolder(ctx context.Context, req *api.GetFolderRequest) (*api.FolderListing, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	view, err := s.drive.GetFolderView(ctx, userID, req.FolderID)
	if err != nil {
		return nil, s.fail(ctx, "GetFolder", err)
	}

	return toListing(view), nil
}

func (s *GRPCServer) CreateFolder(ctx context.Context, req *api.CreateFolderRequest) (*api.CreateFolderResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	folder, err := s.drive.CreateFolder(ctx, userID, req.ParentID, req.Name)
	if err != nil {
		return nil, s.fail(ctx, "CreateFolder", err)
	}

	return &api.CreateFolderResponse{Folder: api.FolderEntry{
		ID:       folder.ID,
		Name:     folder.Name,
		Modified: listing.FormatDate(folder.DateModified),
	}}, nil
}

func (s *GRPCServer) RenameFolder(ctx context.Context, req *api.RenameFolderRequest) (*api.FolderRef, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	parentID, err := s.drive.RenameFolder(ctx, userID, req.FolderID, req.Name)
	if err != nil {
		return nil, s.fail(ctx, "RenameFolder", err)
	}

	return &api.FolderRef{FolderID: parentID}, nil
}

func (s *GRPCServer) DeleteFolder(ctx context.Context, req *api.DeleteFolderRequest) (*api.FolderRef, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	parentID, err := s.drive.DeleteFolder(ctx, userID, req.FolderID)
	if err != nil {
		return nil, s.fail(ctx, "DeleteFolder", err)
	}

	return &api.FolderRef{FolderID: parentID}, nil
}

func (s *GRPCServer) UploadFile(ctx context.Context, req *api.UploadFileRequest) (*api.UploadFileResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	file, err := s.drive.UploadFile(ctx, userID, req.FolderID, req.Name, req.MimeType, req.Content)
	if err != nil {
		return nil, s.fail(ctx, "UploadFile", err)
	}

	return &api.UploadFileResponse{File: toFileEntry(file)}, nil
}

func (s *GRPCServer) DownloadFile(ctx context.Context, req *api.DownloadFileRequest) (*api.DownloadFileResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	d, err := s.drive.DownloadFile(ctx, userID, req.FileID)
	if err != nil {
		return nil, s.fail(ctx, "DownloadFile", err)
	}

	return &api.DownloadFileResponse{Name: d.Name, MimeType: d.MimeType, Content: d.Content}, nil
}

func (s *GRPCServer) DeleteFile(ctx context.Context, req *api.DeleteFileRequest) (*api.FolderRef, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	folderID, err := s.drive.DeleteFile(ctx, userID, req.FileID)
	if err != nil {
		return nil, s.fail(ctx, "DeleteFile", err)
	}

	return &api.FolderRef{FolderID: folderID}, nil
}

func toListing(v *listing.FolderView) *api.FolderListing {
	out := &api.FolderListing{
		FolderID: v.Folder.ID,
		Name:     v.Folder.Name,
		ParentID: v.ParentID(),
		IsRoot:   v.IsRoot(),
		Folders:  make([]api.FolderEntry, 0, v.FolderCount()),
		Files:    make([]api.FileEntry, 0, v.FileCount()),
	}
	for f := range v.Folders() {
		out.Folders = append(out.Folders, api.FolderEntry{ID: f.ID, Name: f.Name, Modified: f.Modified})
	}
	for f := range v.Files() {
		out.Files = append(out.Files, api.FileEntry{ID: f.ID, Name: f.Name, MimeType: f.MimeType, Size: f.Size, Bytes: f.Bytes, Modified: f.Modified})
	}
	return out
}

func toFileEntry(f *models.File) api.FileEntry {
	return api.FileEntry{
		ID:       f.ID,
		Name:     f.Name,
		MimeType: f.MimeType,
		Size:     listing.FormatSize(f.Size),
		Bytes:    f.Size,
		Modified: listing.FormatDate(f.DateModified),
	}
}
