package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/eosbot/internal/bot/repositories/accountorders"
	"github.com/dmitrijs2005/eosbot/internal/bot/repositories/ramorders"
	"github.com/dmitrijs2005/eosbot/internal/bot/repositories/users"
	"github.com/dmitrijs2005/eosbot/internal/dbx"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	AccountOrders(db dbx.DBTX) accountorders.Repository
	RAMOrders(db dbx.DBTX) ramorders.Repository
}
