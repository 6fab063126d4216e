package files

import (
	"context"

	"github.com/dmitrijs2005/gophdrive/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, file *models.File) (*models.File, error)
	GetOwned(ctx context.Context, userID, id string) (*models.File, error)
	ListByFolder(ctx context.Context, userID, folderID string) ([]*models.File, error)
	Delete(ctx context.Context, userID, id string) error
	// ListURLs returns every blob key referenced by a file row.
	ListURLs(ctx context.Context) ([]string, error)
}
