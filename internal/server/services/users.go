// Package services contains server-side business logic: UserService for
// registration and tokens, DriveService for the folder and file hierarchy.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophdrive/internal/common"
	"github.com/dmitrijs2005/gophdrive/internal/dbx"
	"github.com/dmitrijs2005/gophdrive/internal/logging"
	"github.com/dmitrijs2005/gophdrive/internal/server/auth"
	"github.com/dmitrijs2005/gophdrive/internal/server/config"
	"github.com/dmitrijs2005/gophdrive/internal/server/models"
	"github.com/dmitrijs2005/gophdrive/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserService provides authentication-related operations:
// - Register: create users together with their root folder
// - Login: verify credentials and mint tokens
// - RefreshToken: rotate refresh tokens and mint new access tokens
type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	logger                       logging.Logger
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		logger:                       logger.With("module", "user_service"),
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// hashPassword is a seam for tests.
var hashPassword = auth.HashPassword

// Register validates the credentials and creates the user and its "home"
// folder in one transaction.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	in := credentialsInput{UserName: strings.TrimSpace(username), Password: strings.TrimSpace(password)}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var user *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		u, err := s.repomanager.Users(tx).Create(ctx, &models.User{UserName: in.UserName, PasswordHash: hash})
		if err != nil {
			return err
		}
		if _, err := s.repomanager.Folders(tx).CreateRoot(ctx, u.ID); err != nil {
			return fmt.Errorf("create root folder: %w", err)
		}
		user = u
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user %s: %w", in.UserName, err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// Login checks the password and issues a token pair. Unknown users and
// wrong passwords are both reported as common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByLogin(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("%w: %w", common.ErrCollaboratorFailure, err)
	}

	ok, err := auth.CheckPassword(user.PasswordHash, strings.TrimSpace(password))
	if err != nil {
		s.logger.Error(ctx, "password check failed", "user_id", user.ID, "error", err)
		return nil, common.ErrorUnauthorized
	}
	if !ok {
		return nil, common.ErrorUnauthorized
	}

	return s.generateTokenPair(ctx, s.db, user.ID)
}

// RefreshToken consumes refreshToken and returns a new pair. A token can be
// used once: rotation deletes it in the same transaction that stores its
// successor.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	token, err := s.repomanager.RefreshTokens(s.db).Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}

	if token.Expired(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	var tokenPair *TokenPair

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.RefreshTokens(tx).Delete(ctx, refreshToken); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrInvalidToken
			}
			return fmt.Errorf("error deleting refresh token: %w", err)
		}

		tokenPair, err = s.generateTokenPair(ctx, tx, token.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return tokenPair, nil
}

func (s *UserService) generateTokenPair(ctx context.Context, db dbx.DBTX, userID string) (*TokenPair, error) {
	accessToken, err := auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	refreshToken, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}

	err = s.repomanager.RefreshTokens(db).Create(ctx, userID, refreshToken, s.refreshTokenValidityDuration)
	if err != nil {
		s.logger.Error(ctx, "store refresh token", "user_id", userID, "error", err)
		return nil, common.ErrorInternal
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
