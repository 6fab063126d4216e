package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophdrive/internal/common"
	"github.com/dmitrijs2005/gophdrive/internal/server/models"
)

// CreateFolder adds a folder named name under parentID. Siblings may share
// a name.
func (s *DriveService) CreateFolder(ctx context.Context, userID, parentID, name string) (_ *models.Folder, err error) {
	defer func(start time.Time) { s.observe("CreateFolder", start, err) }(time.Now())

	clean, err := cleanFolderName(name)
	if err != nil {
		return nil, err
	}

	parent, err := s.resolveFolder(ctx, userID, parentID)
	if err != nil {
		return nil, fmt.Errorf("create folder user=%s parent=%s: %w", userID, parentID, err)
	}

	folder, err := s.folders().Create(ctx, &models.Folder{UserID: userID, ParentID: &parent.ID, Name: clean})
	if err != nil {
		return nil, fmt.Errorf("create folder user=%s parent=%s: %w", userID, parent.ID, storeError(err))
	}
	return folder, nil
}

// RenameFolder changes a folder's name and returns its parent's id. The
// root folder cannot be renamed.
func (s *DriveService) RenameFolder(ctx context.Context, userID, folderID, name string) (_ string, err error) {
	defer func(start time.Time) { s.observe("RenameFolder", start, err) }(time.Now())

	folder, err := s.modifiableFolder(ctx, userID, folderID)
	if err != nil {
		return "", fmt.Errorf("rename folder user=%s folder=%s: %w", userID, folderID, err)
	}

	clean, err := cleanFolderName(name)
	if err != nil {
		return "", err
	}

	renamed, err := s.folders().Rename(ctx, userID, folder.ID, clean)
	if err != nil {
		return "", fmt.Errorf("rename folder user=%s folder=%s: %w", userID, folder.ID, storeError(err))
	}
	return *renamed.ParentID, nil
}

// DeleteFolder removes a folder with everything below it and returns the
// parent's id, or "home" when the parent is the root.
//
// The subtree is removed depth first: child folders, then files (blob,
// then row), then the folder itself. A failure stops the walk; whatever was
// not deleted is still reachable from folderID, so calling DeleteFolder
// again resumes the work.
func (s *DriveService) DeleteFolder(ctx context.Context, userID, folderID string) (_ string, err error) {
	defer func(start time.Time) { s.observe("DeleteFolder", start, err) }(time.Now())

	folder, err := s.modifiableFolder(ctx, userID, folderID)
	if err != nil {
		return "", fmt.Errorf("delete folder user=%s folder=%s: %w", userID, folderID, err)
	}

	parent, err := s.folders().GetOwned(ctx, userID, *folder.ParentID)
	if err != nil {
		return "", fmt.Errorf("delete folder user=%s folder=%s: parent: %w", userID, folder.ID, storeError(err))
	}

	if err := s.removeTree(ctx, folder); err != nil {
		return "", fmt.Errorf("delete folder user=%s folder=%s: %w", userID, folder.ID, err)
	}

	if parent.IsRoot() {
		return common.RootFolderSelector, nil
	}
	return parent.ID, nil
}

// modifiableFolder resolves a non-root folder owned by userID.
func (s *DriveService) modifiableFolder(ctx context.Context, userID, folderID string) (*models.Folder, error) {
	if isRootSelector(folderID) {
		return nil, common.ErrRootFolderProtected
	}
	folder, err := s.resolveFolder(ctx, userID, folderID)
	if err != nil {
		return nil, err
	}
	if folder.IsRoot() {
		return nil, common.ErrRootFolderProtected
	}
	return folder, nil
}

func (s *DriveService) removeTree(ctx context.Context, folder *models.Folder) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	children, err := s.folders().ListChildren(ctx, folder.UserID, folder.ID)
	if err != nil {
		return fmt.Errorf("list folders folder=%s: %w", folder.ID, storeError(err))
	}
	for _, child := range children {
		if err := s.removeTree(ctx, child); err != nil {
			return err
		}
	}

	contents, err := s.files().ListByFolder(ctx, folder.UserID, folder.ID)
	if err != nil {
		return fmt.Errorf("list files folder=%s: %w", folder.ID, storeError(err))
	}
	for _, f := range contents {
		if err := s.removeFile(ctx, f); err != nil {
			return fmt.Errorf("file=%s: %w", f.ID, err)
		}
	}

	if err := s.folders().Delete(ctx, folder.UserID, folder.ID); err != nil {
		return fmt.Errorf("delete folder row folder=%s: %w", folder.ID, storeError(err))
	}
	return nil
}
