package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/eosbot/internal/bot/models"
	"github.com/dmitrijs2005/eosbot/internal/bot/repositories/accountorders"
	"github.com/dmitrijs2005/eosbot/internal/bot/repositories/ramorders"
	"github.com/dmitrijs2005/eosbot/internal/bot/repositories/users"
	"github.com/dmitrijs2005/eosbot/internal/common"
	"github.com/dmitrijs2005/eosbot/internal/dbx"
	"github.com/dmitrijs2005/eosbot/internal/eos"
)

type fakeUsersRepo struct {
	user *models.User
	err  error

	credential struct {
		name, publicKey, encryptedKey, permission string
		set                                       bool
	}
	selection struct {
		name, permission string
		set              bool
	}
	cleared bool
	ensured []int64
}

func (f *fakeUsersRepo) Ensure(ctx context.Context, userID int64) error {
	f.ensured = append(f.ensured, userID)
	return f.err
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, userID int64) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.user == nil {
		return nil, common.ErrorNotFound
	}
	return f.user, nil
}

func (f *fakeUsersRepo) SetCredential(ctx context.Context, userID int64, name, publicKey, encryptedKey, permission string) error {
	if f.err != nil {
		return f.err
	}
	f.credential.name = name
	f.credential.publicKey = publicKey
	f.credential.encryptedKey = encryptedKey
	f.credential.permission = permission
	f.credential.set = true
	return nil
}

func (f *fakeUsersRepo) SetAccountSelection(ctx context.Context, userID int64, name, permission string) error {
	f.selection.name = name
	f.selection.permission = permission
	f.selection.set = true
	return f.err
}

func (f *fakeUsersRepo) ClearCredential(ctx context.Context, userID int64) error {
	if f.err != nil {
		return f.err
	}
	f.cleared = true
	return nil
}

func (f *fakeUsersRepo) SetSessionExpiration(ctx context.Context, userID int64, expiresAt time.Time) error {
	return f.err
}

type fakeAccountOrdersRepo struct {
	pending *models.AccountOrder
	err     error

	created   *models.AccountOrder
	activated []int64
	deleted   bool
}

func (f *fakeAccountOrdersRepo) Create(ctx context.Context, order *models.AccountOrder) (*models.AccountOrder, error) {
	if f.err != nil {
		return nil, f.err
	}
	order.OrderID = 1
	f.created = order
	return order, nil
}

func (f *fakeAccountOrdersRepo) GetPendingByUser(ctx context.Context, userID int64) (*models.AccountOrder, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.pending == nil {
		return nil, common.ErrorNotFound
	}
	return f.pending, nil
}

func (f *fakeAccountOrdersRepo) MarkActivated(ctx context.Context, orderID int64) error {
	f.activated = append(f.activated, orderID)
	return f.err
}

func (f *fakeAccountOrdersRepo) DeletePendingByUser(ctx context.Context, userID int64) error {
	f.deleted = true
	return f.err
}

type fakeRAMOrdersRepo struct {
	pendingCount int
	totalCount   int
	page         []*models.RAMOrder
	err          error

	created     []*models.RAMOrder
	lastLimit   int
	lastOffset  int
	clearedUser int64
}

func (f *fakeRAMOrdersRepo) Create(ctx context.Context, order *models.RAMOrder) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, order)
	return nil
}

func (f *fakeRAMOrdersRepo) CountPending(ctx context.Context, userID int64) (int, error) {
	return f.pendingCount, f.err
}

func (f *fakeRAMOrdersRepo) CountAll(ctx context.Context, userID int64) (int, error) {
	return f.totalCount, f.err
}

func (f *fakeRAMOrdersRepo) ListPage(ctx context.Context, userID int64, limit, offset int) ([]*models.RAMOrder, error) {
	f.lastLimit = limit
	f.lastOffset = offset
	return f.page, f.err
}

func (f *fakeRAMOrdersRepo) DeleteAllByUser(ctx context.Context, userID int64) error {
	f.clearedUser = userID
	return f.err
}

type fakeRepoManager struct {
	usersRepo         *fakeUsersRepo
	accountOrdersRepo *fakeAccountOrdersRepo
	ramOrdersRepo     *fakeRAMOrdersRepo
}

func (f *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }

func (f *fakeRepoManager) Users(db dbx.DBTX) users.Repository { return f.usersRepo }

func (f *fakeRepoManager) AccountOrders(db dbx.DBTX) accountorders.Repository {
	return f.accountOrdersRepo
}

func (f *fakeRepoManager) RAMOrders(db dbx.DBTX) ramorders.Repository { return f.ramOrdersRepo }

type fakeChain struct {
	exists      bool
	existsErr   error
	accounts    []eos.AccountPermission
	accountsErr error
	keys        eos.KeyPair
	name        string
	publicKey   string
	balance     float64
	usage       eos.ResourceUsage
	ramPrice    float64
	txID        string
	txErr       error

	lastSigningKey string
	lastFrom       string
	lastTo         string
	lastAmount     float64
	lastMemo       string
	lastBytes      uint32
}

func (f *fakeChain) AccountExists(ctx context.Context, name string) (bool, error) {
	return f.exists, f.existsErr
}

func (f *fakeChain) AccountsForKey(ctx context.Context, publicKey string) ([]eos.AccountPermission, error) {
	return f.accounts, f.accountsErr
}

func (f *fakeChain) GenerateKeyPair() (eos.KeyPair, error) { return f.keys, nil }

func (f *fakeChain) GenerateAccountName() string { return f.name }

func (f *fakeChain) PublicKeyForPrivate(wif string) (string, error) {
	if f.publicKey == "" {
		return "", errors.New("invalid key")
	}
	return f.publicKey, nil
}

func (f *fakeChain) Balance(ctx context.Context, account string) (float64, error) {
	return f.balance, nil
}

func (f *fakeChain) Resources(ctx context.Context, account string) (eos.ResourceUsage, error) {
	return f.usage, nil
}

func (f *fakeChain) RAMPrice(ctx context.Context) (float64, error) { return f.ramPrice, nil }

func (f *fakeChain) Transfer(ctx context.Context, signingKey, from, to string, amount float64, memo string) (string, error) {
	f.lastSigningKey, f.lastFrom, f.lastTo, f.lastAmount, f.lastMemo = signingKey, from, to, amount, memo
	return f.txID, f.txErr
}

func (f *fakeChain) BuyRAM(ctx context.Context, signingKey, payer, receiver string, eosAmount float64) (string, error) {
	f.lastSigningKey, f.lastFrom, f.lastTo, f.lastAmount = signingKey, payer, receiver, eosAmount
	return f.txID, f.txErr
}

func (f *fakeChain) BuyRAMBytes(ctx context.Context, signingKey, payer, receiver string, bytes uint32) (string, error) {
	f.lastSigningKey, f.lastFrom, f.lastTo, f.lastBytes = signingKey, payer, receiver, bytes
	return f.txID, f.txErr
}

type fakeSigner struct {
	key     string
	active  bool
	revoked []int64
}

func (f *fakeSigner) PrivateKey(userID int64) (string, bool) { return f.key, f.active }

func (f *fakeSigner) Revoke(userID int64) { f.revoked = append(f.revoked, userID) }
