package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophdrive/internal/common"
	"github.com/dmitrijs2005/gophdrive/internal/server/blobstore"
	"github.com/dmitrijs2005/gophdrive/internal/server/metrics"
	"github.com/dmitrijs2005/gophdrive/internal/server/models"
	"github.com/gabriel-vasile/mimetype"
)

const defaultMimeType = "application/octet-stream"

// Download is a file's content together with what a client needs to save it.
type Download struct {
	Name     string
	MimeType string
	Content  []byte
}

// UploadFile stores data as a new file in folderID. The blob is written
// first; the metadata row is created only once the blob is durable.
func (s *DriveService) UploadFile(ctx context.Context, userID, folderID, name, mimeType string, data []byte) (_ *models.File, err error) {
	defer func(start time.Time) { s.observe("UploadFile", start, err) }(time.Now())

	if int64(len(data)) > s.maxUploadSize {
		return nil, fmt.Errorf("upload user=%s size=%d limit=%d: %w", userID, len(data), s.maxUploadSize, common.ErrPayloadTooLarge)
	}

	if err := checkFileName(name); err != nil {
		return nil, err
	}

	folder, err := s.resolveFolder(ctx, userID, folderID)
	if err != nil {
		return nil, fmt.Errorf("upload user=%s folder=%s: %w", userID, folderID, err)
	}

	if mimeType == "" || mimeType == defaultMimeType {
		mimeType = mimetype.Detect(data).String()
	}

	key := newBlobKey(userID, name)
	if err := s.blobs.Put(ctx, key, data, mimeType); err != nil {
		return nil, fmt.Errorf("upload user=%s folder=%s: put blob: %w: %w", userID, folder.ID, common.ErrCollaboratorFailure, err)
	}

	file, err := s.files().Create(ctx, &models.File{
		UserID:   userID,
		FolderID: folder.ID,
		Name:     name,
		URL:      key,
		Size:     int64(len(data)),
		MimeType: mimeType,
	})
	if err != nil {
		s.logger.Error(ctx, "create file row failed", "user_id", userID, "folder_id", folder.ID, "error", err)
		if derr := s.blobs.Delete(context.WithoutCancel(ctx), key); derr != nil && !errors.Is(derr, blobstore.ErrBlobNotFound) {
			s.logger.Error(ctx, "orphan blob", "event", "orphan_blob", "user_id", userID, "folder_id", folder.ID, "key", key, "error", derr)
			s.metrics.StorageInconsistency(metrics.KindOrphanBlob)
		}
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("upload user=%s folder=%s: %w", userID, folder.ID, err)
		}
		return nil, fmt.Errorf("upload user=%s folder=%s: create file: %w: %w", userID, folder.ID, common.ErrCollaboratorFailure, err)
	}

	s.metrics.RecordBytes(metrics.DirectionUpload, len(data))
	return file, nil
}

// DownloadFile returns the content of a file owned by userID.
func (s *DriveService) DownloadFile(ctx context.Context, userID, fileID string) (_ *Download, err error) {
	defer func(start time.Time) { s.observe("DownloadFile", start, err) }(time.Now())

	file, err := s.getOwnedFile(ctx, userID, fileID)
	if err != nil {
		return nil, fmt.Errorf("download user=%s file=%s: %w", userID, fileID, err)
	}

	data, err := s.blobs.Get(ctx, file.URL)
	if err != nil {
		if errors.Is(err, blobstore.ErrBlobNotFound) {
			s.logger.Error(ctx, "orphan reference", "event", "orphan_reference", "user_id", userID, "file_id", file.ID, "key", file.URL)
			s.metrics.StorageInconsistency(metrics.KindOrphanReference)
			return nil, fmt.Errorf("download user=%s file=%s: %w", userID, fileID, common.ErrStorageInconsistency)
		}
		return nil, fmt.Errorf("download user=%s file=%s: %w: %w", userID, fileID, common.ErrCollaboratorFailure, err)
	}

	s.metrics.RecordBytes(metrics.DirectionDownload, len(data))
	return &Download{Name: file.Name, MimeType: file.MimeType, Content: data}, nil
}

// DeleteFile removes a file owned by userID and returns the id of the
// folder that contained it.
func (s *DriveService) DeleteFile(ctx context.Context, userID, fileID string) (_ string, err error) {
	defer func(start time.Time) { s.observe("DeleteFile", start, err) }(time.Now())

	file, err := s.getOwnedFile(ctx, userID, fileID)
	if err != nil {
		return "", fmt.Errorf("delete user=%s file=%s: %w", userID, fileID, err)
	}

	if err := s.removeFile(ctx, file); err != nil {
		return "", fmt.Errorf("delete user=%s file=%s: %w", userID, fileID, err)
	}

	return file.FolderID, nil
}

func (s *DriveService) getOwnedFile(ctx context.Context, userID, fileID string) (*models.File, error) {
	if !isValidID(fileID) {
		return nil, common.ErrorNotFound
	}
	file, err := s.files().GetOwned(ctx, userID, fileID)
	if err != nil {
		return nil, storeError(err)
	}
	return file, nil
}

// removeFile deletes the blob, then the metadata row. A missing blob counts
// as deleted so an interrupted delete can be retried.
func (s *DriveService) removeFile(ctx context.Context, file *models.File) error {
	if err := s.blobs.Delete(ctx, file.URL); err != nil && !errors.Is(err, blobstore.ErrBlobNotFound) {
		return fmt.Errorf("delete blob: %w: %w", common.ErrCollaboratorFailure, err)
	}

	if err := s.files().Delete(ctx, file.UserID, file.ID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// removed concurrently
			return nil
		}
		s.logger.Error(ctx, "orphan reference", "event", "orphan_reference", "user_id", file.UserID, "file_id", file.ID, "key", file.URL, "error", err)
		s.metrics.StorageInconsistency(metrics.KindOrphanReference)
		return fmt.Errorf("delete file row: %w", storeError(err))
	}
	return nil
}
