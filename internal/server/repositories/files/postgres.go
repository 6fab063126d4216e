// Package files provides a PostgreSQL-backed repository for file metadata.
package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophdrive/internal/common"
	"github.com/dmitrijs2005/gophdrive/internal/dbx"
	"github.com/dmitrijs2005/gophdrive/internal/server/models"
)

// PostgresRepository implements file storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const fileColumns = `id, user_id, folder_id, name, url, size, mime_type, date_modified`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFile(row rowScanner) (*models.File, error) {
	var f models.File
	if err := row.Scan(&f.ID, &f.UserID, &f.FolderID, &f.Name, &f.URL, &f.Size, &f.MimeType, &f.DateModified); err != nil {
		return nil, err
	}
	return &f, nil
}

// Create inserts a file row and returns it with the generated id and
// modification time. A folder that vanished or belongs to another user
// fails the composite foreign key and is reported as common.ErrorNotFound.
func (r *PostgresRepository) Create(ctx context.Context, file *models.File) (*models.File, error) {
	query := `
		INSERT INTO files (user_id, folder_id, name, url, size, mime_type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + fileColumns

	f, err := scanFile(r.db.QueryRowContext(ctx, query,
		file.UserID, file.FolderID, file.Name, file.URL, file.Size, file.MimeType))
	if err != nil {
		switch {
		case dbx.IsForeignKeyViolation(err):
			return nil, common.ErrorNotFound
		case dbx.IsUniqueViolation(err):
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}

// GetOwned returns file id only if it belongs to userID.
func (r *PostgresRepository) GetOwned(ctx context.Context, userID, id string) (*models.File, error) {
	query := `SELECT ` + fileColumns + ` FROM files
		WHERE id = $1 AND user_id = $2`

	f, err := scanFile(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}

// ListByFolder returns the files directly inside folderID ordered by name, then id.
func (r *PostgresRepository) ListByFolder(ctx context.Context, userID, folderID string) ([]*models.File, error) {
	query := `SELECT ` + fileColumns + ` FROM files
		WHERE user_id = $1 AND folder_id = $2
		ORDER BY name, id`

	rows, err := r.db.QueryContext(ctx, query, userID, folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}
	defer rows.Close()

	var result []*models.File
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes the metadata row. Exactly one row must be affected.
func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM files WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	ra, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	switch ra {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("wrong rows affected count: %d", ra)
	}
}

func (r *PostgresRepository) ListURLs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT url FROM files`)
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		urls = append(urls, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return urls, nil
}
