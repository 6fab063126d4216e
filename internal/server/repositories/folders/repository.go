package folders

import (
	"context"

	"github.com/dmitrijs2005/gophdrive/internal/server/models"
)

// Repository stores the folder tree. Every lookup takes the owner's id so
// foreign and missing folders are indistinguishable (common.ErrorNotFound).
type Repository interface {
	CreateRoot(ctx context.Context, userID string) (*models.Folder, error)
	Create(ctx context.Context, folder *models.Folder) (*models.Folder, error)
	GetOwned(ctx context.Context, userID, id string) (*models.Folder, error)
	GetRoot(ctx context.Context, userID string) (*models.Folder, error)
	ListChildren(ctx context.Context, userID, parentID string) ([]*models.Folder, error)
	// Rename changes a non-root folder's name and returns the updated row.
	Rename(ctx context.Context, userID, id, name string) (*models.Folder, error)
	// Delete removes a non-root folder. The schema refuses folders that still
	// have children or files.
	Delete(ctx context.Context, userID, id string) error
}
