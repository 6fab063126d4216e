package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophdrive/internal/common"
	"github.com/dmitrijs2005/gophdrive/internal/logging"
	"github.com/dmitrijs2005/gophdrive/internal/server/auth"
	"github.com/dmitrijs2005/gophdrive/internal/server/config"
	"github.com/dmitrijs2005/gophdrive/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "k"

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func newUserService(t *testing.T, db *sql.DB, store *memStore) *UserService {
	t.Helper()
	cfg := &config.Config{
		SecretKey:                    testSecret,
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
	}
	return NewUserService(db, &memRepoManager{store}, cfg, logging.NewNopLogger())
}

func fastHash(t *testing.T) {
	t.Helper()
	prev := hashPassword
	hashPassword = func(pw string) ([]byte, error) {
		return bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	}
	t.Cleanup(func() { hashPassword = prev })
}

func TestRegister_CreatesUserAndRoot(t *testing.T) {
	fastHash(t)
	db, mock := newSQLMockDB(t)
	store := newMemStore()
	svc := newUserService(t, db, store)

	mock.ExpectBegin()
	mock.ExpectCommit()

	user, err := svc.Register(context.Background(), "  alice ", "password123")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.UserName)
	assert.NotEqual(t, []byte("password123"), user.PasswordHash)

	ok, err := auth.CheckPassword(user.PasswordHash, "password123")
	require.NoError(t, err)
	assert.True(t, ok)

	root, err := (&memFolders{store}).GetRoot(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RootFolderName, root.Name)
	assert.Nil(t, root.ParentID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_Validation(t *testing.T) {
	fastHash(t)

	tests := []struct {
		name      string
		username  string
		password  string
		wantField string
	}{
		{name: "short username", username: "al", password: "password123", wantField: "username"},
		{name: "long username", username: "abcdefghijklmnopq", password: "password123", wantField: "username"},
		{name: "blank username", username: "   ", password: "password123", wantField: "username"},
		{name: "short password", username: "alice", password: "short", wantField: "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newSQLMockDB(t)
			svc := newUserService(t, db, newMemStore())

			_, err := svc.Register(context.Background(), tt.username, tt.password)
			require.ErrorIs(t, err, common.ErrorValidation)

			var verr *common.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Fields[0].Field)

			// rejected before touching the database
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRegister_DuplicateUser(t *testing.T) {
	fastHash(t)
	db, mock := newSQLMockDB(t)
	store := newMemStore()
	store.addUser("alice")
	svc := newUserService(t, db, store)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Register(context.Background(), "alice", "password123")
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_RootFolderFailureRollsBack(t *testing.T) {
	fastHash(t)
	db, mock := newSQLMockDB(t)
	store := newMemStore()
	store.rootCreateErr = errors.New("db down")
	svc := newUserService(t, db, store)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Register(context.Background(), "alice", "password123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create root folder")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_BeginFails(t *testing.T) {
	fastHash(t)
	db, mock := newSQLMockDB(t)
	svc := newUserService(t, db, newMemStore())

	mock.ExpectBegin().WillReturnError(errors.New("no connection"))

	_, err := svc.Register(context.Background(), "alice", "password123")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorAlreadyExists)
}

func registerUser(t *testing.T, store *memStore, name, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u, err := (&memUsers{store}).Create(context.Background(), &models.User{UserName: name, PasswordHash: hash})
	require.NoError(t, err)
	return u
}

func TestLogin(t *testing.T) {
	db, _ := newSQLMockDB(t)
	store := newMemStore()
	user := registerUser(t, store, "alice", "password123")
	svc := newUserService(t, db, store)

	pair, err := svc.Login(context.Background(), "alice", "password123")
	require.NoError(t, err)

	uid, err := auth.GetUserIDFromToken(pair.AccessToken, []byte(testSecret))
	require.NoError(t, err)
	assert.Equal(t, user.ID, uid)

	stored, err := (&memTokens{store}).Find(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.UserID)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), stored.Expires, time.Minute)
}

func TestLogin_Unauthorized(t *testing.T) {
	db, _ := newSQLMockDB(t)
	store := newMemStore()
	registerUser(t, store, "alice", "password123")
	svc := newUserService(t, db, store)

	_, err := svc.Login(context.Background(), "alice", "wrong-password")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	_, err = svc.Login(context.Background(), "mallory", "password123")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestLogin_CorruptHash(t *testing.T) {
	db, _ := newSQLMockDB(t)
	store := newMemStore()
	_, err := (&memUsers{store}).Create(context.Background(), &models.User{UserName: "alice", PasswordHash: []byte("garbage")})
	require.NoError(t, err)
	svc := newUserService(t, db, store)

	_, err = svc.Login(context.Background(), "alice", "password123")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestRefreshToken_Rotates(t *testing.T) {
	db, mock := newSQLMockDB(t)
	store := newMemStore()
	registerUser(t, store, "alice", "password123")
	svc := newUserService(t, db, store)

	first, err := svc.Login(context.Background(), "alice", "password123")
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()

	second, err := svc.RefreshToken(context.Background(), first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.NotEmpty(t, second.AccessToken)
	require.NoError(t, mock.ExpectationsWereMet())

	// the old token is gone; reusing it fails without opening a transaction
	_, err = svc.RefreshToken(context.Background(), first.RefreshToken)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshToken_UnknownAndExpired(t *testing.T) {
	db, mock := newSQLMockDB(t)
	store := newMemStore()
	store.tokens["stale"] = &models.RefreshToken{ID: "1", UserID: "u", Token: "stale", Expires: time.Now().Add(-time.Minute)}
	svc := newUserService(t, db, store)

	_, err := svc.RefreshToken(context.Background(), "nope")
	assert.ErrorIs(t, err, common.ErrInvalidToken)

	_, err = svc.RefreshToken(context.Background(), "stale")
	assert.ErrorIs(t, err, common.ErrRefreshTokenExpired)

	require.NoError(t, mock.ExpectationsWereMet())
}
