// Package folders provides a PostgreSQL-backed repository for the per-user
// folder tree.
package folders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophdrive/internal/common"
	"github.com/dmitrijs2005/gophdrive/internal/dbx"
	"github.com/dmitrijs2005/gophdrive/internal/server/models"
)

// PostgresRepository implements folder storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const folderColumns = `id, user_id, parent_id, name, date_modified`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFolder(row rowScanner) (*models.Folder, error) {
	var (
		f      models.Folder
		parent sql.NullString
	)
	if err := row.Scan(&f.ID, &f.UserID, &parent, &f.Name, &f.DateModified); err != nil {
		return nil, err
	}
	if parent.Valid {
		f.ParentID = &parent.String
	}
	return &f, nil
}

func (r *PostgresRepository) queryOne(ctx context.Context, query string, args ...any) (*models.Folder, error) {
	f, err := scanFolder(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}

// CreateRoot inserts the user's "home" folder. A second root for the same
// user is rejected by the schema and reported as common.ErrorAlreadyExists.
func (r *PostgresRepository) CreateRoot(ctx context.Context, userID string) (*models.Folder, error) {
	query := `
		INSERT INTO folders (user_id, parent_id, name)
		VALUES ($1, NULL, $2)
		RETURNING ` + folderColumns

	f, err := scanFolder(r.db.QueryRowContext(ctx, query, userID, models.RootFolderName))
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}

// Create inserts a child folder. The composite foreign key rejects parents
// that do not belong to folder.UserID; that case is reported as not found.
func (r *PostgresRepository) Create(ctx context.Context, folder *models.Folder) (*models.Folder, error) {
	if folder.ParentID == nil {
		return nil, errors.New("parent id is required")
	}

	query := `
		INSERT INTO folders (user_id, parent_id, name)
		VALUES ($1, $2, $3)
		RETURNING ` + folderColumns

	f, err := scanFolder(r.db.QueryRowContext(ctx, query, folder.UserID, *folder.ParentID, folder.Name))
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}

// GetOwned returns folder id only if it belongs to userID.
func (r *PostgresRepository) GetOwned(ctx context.Context, userID, id string) (*models.Folder, error) {
	query := `SELECT ` + folderColumns + ` FROM folders
		WHERE id = $1 AND user_id = $2`
	return r.queryOne(ctx, query, id, userID)
}

// GetRoot returns the user's "home" folder.
func (r *PostgresRepository) GetRoot(ctx context.Context, userID string) (*models.Folder, error) {
	query := `SELECT ` + folderColumns + ` FROM folders
		WHERE user_id = $1 AND parent_id IS NULL AND name = 'home'`
	return r.queryOne(ctx, query, userID)
}

// ListChildren returns the direct subfolders of parentID ordered by name, then id.
func (r *PostgresRepository) ListChildren(ctx context.Context, userID, parentID string) ([]*models.Folder, error) {
	query := `SELECT ` + folderColumns + ` FROM folders
		WHERE user_id = $1 AND parent_id = $2
		ORDER BY name, id`

	rows, err := r.db.QueryContext(ctx, query, userID, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to select folders: %w", err)
	}
	defer rows.Close()

	var result []*models.Folder
	for rows.Next() {
		f, err := scanFolder(rows)
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

// Rename updates name and date_modified. The root never matches.
func (r *PostgresRepository) Rename(ctx context.Context, userID, id, name string) (*models.Folder, error) {
	query := `
		UPDATE folders SET name = $3, date_modified = now()
		WHERE id = $1 AND user_id = $2 AND parent_id IS NOT NULL
		RETURNING ` + folderColumns
	return r.queryOne(ctx, query, id, userID, name)
}

// Delete removes a non-root folder. Zero affected rows means the folder is
// missing, foreign or the root.
func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	query := `
		DELETE FROM folders
		WHERE id = $1 AND user_id = $2 AND parent_id IS NOT NULL
	`
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
