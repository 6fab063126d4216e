package files

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophdrive/internal/common"
	"github.com/dmitrijs2005/gophdrive/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresRepository(db), mock, db
}

var columns = []string{"id", "user_id", "folder_id", "name", "url", "size", "mime_type", "date_modified"}

const insertQuery = `INSERT INTO files \(user_id, folder_id, name, url, size, mime_type\)\s+VALUES \(\$1, \$2, \$3, \$4, \$5, \$6\)\s+RETURNING id`

func sample() *models.File {
	return &models.File{
		UserID:   "u1",
		FolderID: "f1",
		Name:     "report.pdf",
		URL:      "users/u1/01H_report.pdf",
		Size:     42,
		MimeType: "application/pdf",
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	in := sample()
	now := time.Now()
	mock.ExpectQuery(insertQuery).
		WithArgs(in.UserID, in.FolderID, in.Name, in.URL, in.Size, in.MimeType).
		WillReturnRows(sqlmock.NewRows(columns).AddRow("file-1", "u1", "f1", "report.pdf", in.URL, int64(42), "application/pdf", now))

	got, err := repo.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "file-1", got.ID)
	assert.Equal(t, in.URL, got.URL)
	assert.Equal(t, int64(42), got.Size)
	assert.True(t, got.DateModified.Equal(now))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		wantIs error
	}{
		{name: "folder gone", err: &pgconn.PgError{Code: "23503"}, wantIs: common.ErrorNotFound},
		{name: "duplicate url", err: &pgconn.PgError{Code: "23505"}, wantIs: common.ErrorAlreadyExists},
		{name: "db down", err: errors.New("db down")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, db := newRepoWithMock(t)
			defer db.Close()

			mock.ExpectQuery(insertQuery).WillReturnError(tt.err)

			_, err := repo.Create(context.Background(), sample())
			require.Error(t, err)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			} else {
				assert.Regexp(t, regexp.MustCompile(`db error: .*db down`), err.Error())
			}
		})
	}
}

func TestGetOwned(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `SELECT id, user_id, folder_id, name, url, size, mime_type, date_modified FROM files\s+WHERE id = \$1 AND user_id = \$2`
	mock.ExpectQuery(q).WithArgs("file-1", "u1").
		WillReturnRows(sqlmock.NewRows(columns).AddRow("file-1", "u1", "f1", "a.txt", "k", int64(1), "text/plain", time.Now()))
	mock.ExpectQuery(q).WithArgs("file-1", "u2").WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(q).WithArgs("file-1", "u3").WillReturnError(errors.New("db err"))

	got, err := repo.GetOwned(context.Background(), "u1", "file-1")
	require.NoError(t, err)
	assert.Equal(t, "a.txt", got.Name)

	_, err = repo.GetOwned(context.Background(), "u2", "file-1")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = repo.GetOwned(context.Background(), "u3", "file-1")
	assert.Regexp(t, `db error: .*db err`, err.Error())
}

func TestListByFolder(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(columns).
		AddRow("1", "u1", "f1", "a.txt", "k1", int64(1), "text/plain", time.Now()).
		AddRow("2", "u1", "f1", "b.txt", "k2", int64(2), "text/plain", time.Now())
	mock.ExpectQuery(`WHERE user_id = \$1 AND folder_id = \$2\s+ORDER BY name, id`).
		WithArgs("u1", "f1").
		WillReturnRows(rows)

	got, err := repo.ListByFolder(context.Background(), "u1", "f1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a.txt", got[0].Name)
	assert.Equal(t, "b.txt", got[1].Name)
}

func TestListByFolder_ScanError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(columns).
		AddRow("1", "u1", "f1", "a.txt", "k1", "not-a-number", "text/plain", time.Now())
	mock.ExpectQuery(`ORDER BY name, id`).WithArgs("u1", "f1").WillReturnRows(rows)

	_, err := repo.ListByFolder(context.Background(), "u1", "f1")
	assert.Error(t, err)
}

func TestDelete(t *testing.T) {
	q := `DELETE FROM files WHERE id = \$1 AND user_id = \$2`

	t.Run("deleted", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()
		mock.ExpectExec(q).WithArgs("file-1", "u1").WillReturnResult(sqlmock.NewResult(0, 1))
		assert.NoError(t, repo.Delete(context.Background(), "u1", "file-1"))
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()
		mock.ExpectExec(q).WithArgs("file-1", "u1").WillReturnResult(sqlmock.NewResult(0, 0))
		assert.ErrorIs(t, repo.Delete(context.Background(), "u1", "file-1"), common.ErrorNotFound)
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()
		mock.ExpectExec(q).WithArgs("file-1", "u1").WillReturnError(errors.New("db err"))
		err := repo.Delete(context.Background(), "u1", "file-1")
		require.Error(t, err)
		assert.Regexp(t, `db error: .*db err`, err.Error())
	})

	t.Run("rows affected error", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()
		mock.ExpectExec(q).WithArgs("file-1", "u1").WillReturnResult(sqlmock.NewErrorResult(errors.New("rows-err")))
		err := repo.Delete(context.Background(), "u1", "file-1")
		require.Error(t, err)
		assert.Regexp(t, `failed to get rows affected: .*rows-err`, err.Error())
	})
}

func TestListURLs(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT url FROM files`).
		WillReturnRows(sqlmock.NewRows([]string{"url"}).AddRow("k1").AddRow("k2"))

	got, err := repo.ListURLs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"k1", "k2"}, got)
}

func TestListURLs_QueryError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT url FROM files`).WillReturnError(errors.New("db err"))

	_, err := repo.ListURLs(context.Background())
	require.Error(t, err)
	assert.Regexp(t, `failed to select files: .*db err`, err.Error())
}
