package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophdrive/internal/dbx"
	"github.com/dmitrijs2005/gophdrive/internal/server/repositories/files"
	"github.com/dmitrijs2005/gophdrive/internal/server/repositories/folders"
	"github.com/dmitrijs2005/gophdrive/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/gophdrive/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX so services can run
// the same code against *sql.DB or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Folders(db dbx.DBTX) folders.Repository
	Files(db dbx.DBTX) files.Repository
}
