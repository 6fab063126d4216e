package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophdrive/internal/common"
	"github.com/dmitrijs2005/gophdrive/internal/logging"
	"github.com/dmitrijs2005/gophdrive/internal/server/blobstore"
	"github.com/dmitrijs2005/gophdrive/internal/server/config"
	"github.com/dmitrijs2005/gophdrive/internal/server/listing"
	"github.com/dmitrijs2005/gophdrive/internal/server/metrics"
	"github.com/dmitrijs2005/gophdrive/internal/server/models"
	"github.com/dmitrijs2005/gophdrive/internal/server/repositories/files"
	"github.com/dmitrijs2005/gophdrive/internal/server/repositories/folders"
	"github.com/dmitrijs2005/gophdrive/internal/server/repositories/repomanager"
)

// DriveService manages a user's folders and files. Metadata lives in the
// relational store and file contents in the blob store; every lookup is
// scoped to the calling user.
//
// Writes touching both stores are ordered so that a failure in between can
// only leave an unreferenced blob (upload) or a reference to a missing blob
// (delete). Both are logged and counted as storage inconsistencies.
type DriveService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	blobs         blobstore.Store
	maxUploadSize int64
	logger        logging.Logger
	metrics       metrics.Metrics
}

func NewDriveService(db *sql.DB, m repomanager.RepositoryManager, blobs blobstore.Store, cfg *config.Config,
	logger logging.Logger, mt metrics.Metrics) *DriveService {
	maxUpload := cfg.MaxUploadSize
	if maxUpload <= 0 {
		maxUpload = config.DefaultMaxUploadSize
	}
	return &DriveService{
		db:            db,
		repomanager:   m,
		blobs:         blobs,
		maxUploadSize: maxUpload,
		logger:        logger.With("module", "drive_service"),
		metrics:       mt,
	}
}

func (s *DriveService) folders() folders.Repository { return s.repomanager.Folders(s.db) }
func (s *DriveService) files() files.Repository     { return s.repomanager.Files(s.db) }

func (s *DriveService) observe(operation string, start time.Time, err error) {
	s.metrics.ObserveOperation(operation, time.Since(start), err)
}

// GetFolderView lists a folder owned by userID. folderID may be "home" or
// empty to address the root.
func (s *DriveService) GetFolderView(ctx context.Context, userID, folderID string) (_ *listing.FolderView, err error) {
	defer func(start time.Time) { s.observe("GetFolderView", start, err) }(time.Now())

	folder, err := s.resolveFolder(ctx, userID, folderID)
	if err != nil {
		return nil, fmt.Errorf("get folder user=%s folder=%s: %w", userID, folderID, err)
	}

	children, err := s.folders().ListChildren(ctx, userID, folder.ID)
	if err != nil {
		return nil, fmt.Errorf("list folders user=%s folder=%s: %w", userID, folder.ID, storeError(err))
	}

	contents, err := s.files().ListByFolder(ctx, userID, folder.ID)
	if err != nil {
		return nil, fmt.Errorf("list files user=%s folder=%s: %w", userID, folder.ID, storeError(err))
	}

	return listing.NewFolderView(folder, children, contents), nil
}

// resolveFolder returns the root for a root selector and otherwise the
// folder with id folderID if userID owns it.
func (s *DriveService) resolveFolder(ctx context.Context, userID, folderID string) (*models.Folder, error) {
	var (
		folder *models.Folder
		err    error
	)
	switch {
	case isRootSelector(folderID):
		folder, err = s.folders().GetRoot(ctx, userID)
	case !isValidID(folderID):
		return nil, common.ErrorNotFound
	default:
		folder, err = s.folders().GetOwned(ctx, userID, folderID)
	}
	if err != nil {
		return nil, storeError(err)
	}
	return folder, nil
}

// storeError keeps domain sentinels and marks everything else as a
// failure of the backing store.
func storeError(err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound),
		errors.Is(err, common.ErrorAlreadyExists),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return err
	}
	return fmt.Errorf("%w: %w", common.ErrCollaboratorFailure, err)
}
