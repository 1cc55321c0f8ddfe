package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/eosbot/internal/bot/models"
	"github.com/dmitrijs2005/eosbot/internal/eos"
	"github.com/dmitrijs2005/eosbot/internal/vault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWalletService(t *testing.T, rm *fakeRepoManager, chain *fakeChain, signer *fakeSigner) (*WalletService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewWalletService(db, rm, chain, signer), mock
}

func TestImport_SingleAccount(t *testing.T) {
	rm := &fakeRepoManager{usersRepo: &fakeUsersRepo{}}
	chain := &fakeChain{
		publicKey: "EOS6MRy...",
		accounts:  []eos.AccountPermission{{Account: "alice12345xy", Permission: "active"}},
	}
	s, _ := newWalletService(t, rm, chain, &fakeSigner{})

	accounts, err := s.Import(context.Background(), 7, "5KQwr...", "hunter2")
	require.NoError(t, err)
	require.Len(t, accounts, 1)

	cred := rm.usersRepo.credential
	require.True(t, cred.set)
	assert.Equal(t, "alice12345xy", cred.name)
	assert.Equal(t, "active", cred.permission)
	assert.Equal(t, "EOS6MRy...", cred.publicKey)

	// stored ciphertext must decrypt back to the imported key
	plain, err := vault.Decrypt(cred.encryptedKey, "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "5KQwr...", plain)
}

func TestImport_MultipleAccounts_StoresPlaceholders(t *testing.T) {
	rm := &fakeRepoManager{usersRepo: &fakeUsersRepo{}}
	chain := &fakeChain{
		publicKey: "EOS6MRy...",
		accounts: []eos.AccountPermission{
			{Account: "alice12345xy", Permission: "active"},
			{Account: "bob123451234", Permission: "owner"},
		},
	}
	s, _ := newWalletService(t, rm, chain, &fakeSigner{})

	accounts, err := s.Import(context.Background(), 7, "5KQwr...", "hunter2")
	require.NoError(t, err)
	assert.Len(t, accounts, 2)

	cred := rm.usersRepo.credential
	require.True(t, cred.set)
	assert.Equal(t, "-", cred.name)
	assert.Equal(t, "-", cred.permission)
}

func TestImport_NoAccounts(t *testing.T) {
	rm := &fakeRepoManager{usersRepo: &fakeUsersRepo{}}
	chain := &fakeChain{publicKey: "EOS6MRy..."}
	s, _ := newWalletService(t, rm, chain, &fakeSigner{})

	_, err := s.Import(context.Background(), 7, "5KQwr...", "hunter2")
	assert.ErrorIs(t, err, ErrNoAccountsForKey)
	assert.False(t, rm.usersRepo.credential.set)
}

func TestSelectAccount(t *testing.T) {
	rm := &fakeRepoManager{usersRepo: &fakeUsersRepo{}}
	s, _ := newWalletService(t, rm, &fakeChain{}, &fakeSigner{})

	require.NoError(t, s.SelectAccount(context.Background(), 7, "bob123451234", "owner"))
	assert.Equal(t, "bob123451234", rm.usersRepo.selection.name)
	assert.Equal(t, "owner", rm.usersRepo.selection.permission)
}

func TestCreateAccountOrder(t *testing.T) {
	rm := &fakeRepoManager{accountOrdersRepo: &fakeAccountOrdersRepo{}}
	chain := &fakeChain{
		name: "newname12345",
		keys: eos.KeyPair{PrivateKey: "5KNew...", PublicKey: "EOS7New..."},
	}
	s, _ := newWalletService(t, rm, chain, &fakeSigner{})

	order, err := s.CreateAccountOrder(context.Background(), 7, "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "newname12345", order.AccountName)
	assert.Equal(t, "EOS7New...", order.PublicKey)
	require.NotNil(t, rm.accountOrdersRepo.created)

	plain, err := vault.Decrypt(order.EncryptedPrivateKey, "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "5KNew...", plain)
}

func TestCreateAccountOrder_AlreadyPending(t *testing.T) {
	rm := &fakeRepoManager{accountOrdersRepo: &fakeAccountOrdersRepo{
		pending: &models.AccountOrder{OrderID: 1, UserID: 7},
	}}
	s, _ := newWalletService(t, rm, &fakeChain{}, &fakeSigner{})

	_, err := s.CreateAccountOrder(context.Background(), 7, "hunter2")
	assert.ErrorIs(t, err, ErrOrderAlreadyPending)
}

func TestCreateAccountOrder_NameTaken(t *testing.T) {
	rm := &fakeRepoManager{accountOrdersRepo: &fakeAccountOrdersRepo{}}
	chain := &fakeChain{name: "newname12345", exists: true}
	s, _ := newWalletService(t, rm, chain, &fakeSigner{})

	_, err := s.CreateAccountOrder(context.Background(), 7, "hunter2")
	assert.ErrorIs(t, err, ErrAccountAlreadyExists)
	assert.Nil(t, rm.accountOrdersRepo.created)
}

func TestActivate_PromotesOrderInOneTransaction(t *testing.T) {
	pending := &models.AccountOrder{
		OrderID: 3, UserID: 7, AccountName: "newname12345",
		PublicKey: "EOS7New...", EncryptedPrivateKey: "ct",
	}
	rm := &fakeRepoManager{
		usersRepo:         &fakeUsersRepo{},
		accountOrdersRepo: &fakeAccountOrdersRepo{pending: pending},
	}
	chain := &fakeChain{exists: true}
	s, mock := newWalletService(t, rm, chain, &fakeSigner{})

	mock.ExpectBegin()
	mock.ExpectCommit()

	order, err := s.Activate(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(3), order.OrderID)

	cred := rm.usersRepo.credential
	require.True(t, cred.set)
	assert.Equal(t, "newname12345", cred.name)
	assert.Equal(t, "active", cred.permission)
	assert.Equal(t, []int64{3}, rm.accountOrdersRepo.activated)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestActivate_NoPendingOrder(t *testing.T) {
	rm := &fakeRepoManager{accountOrdersRepo: &fakeAccountOrdersRepo{}}
	s, _ := newWalletService(t, rm, &fakeChain{}, &fakeSigner{})

	_, err := s.Activate(context.Background(), 7)
	assert.ErrorIs(t, err, ErrNoPendingOrder)
}

func TestActivate_AccountNotYetCreated(t *testing.T) {
	rm := &fakeRepoManager{
		usersRepo:         &fakeUsersRepo{},
		accountOrdersRepo: &fakeAccountOrdersRepo{pending: &models.AccountOrder{OrderID: 3}},
	}
	chain := &fakeChain{exists: false}
	s, _ := newWalletService(t, rm, chain, &fakeSigner{})

	_, err := s.Activate(context.Background(), 7)
	assert.ErrorIs(t, err, ErrAccountNotYetCreated)
	assert.Empty(t, rm.accountOrdersRepo.activated, "order must stay pending")
}

func TestDeleteAccount_ClearsCredentialAndSession(t *testing.T) {
	rm := &fakeRepoManager{usersRepo: &fakeUsersRepo{}}
	signer := &fakeSigner{}
	s, _ := newWalletService(t, rm, &fakeChain{}, signer)

	require.NoError(t, s.DeleteAccount(context.Background(), 7))
	assert.True(t, rm.usersRepo.cleared)
	assert.Equal(t, []int64{7}, signer.revoked)
}

func TestTransfer_RequiresActiveSession(t *testing.T) {
	rm := &fakeRepoManager{usersRepo: &fakeUsersRepo{}}
	s, _ := newWalletService(t, rm, &fakeChain{}, &fakeSigner{active: false})

	_, err := s.Transfer(context.Background(), 7, "bob123451234", 1.5, "")
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestTransfer_SignsWithSessionKey(t *testing.T) {
	user := &models.User{
		UserID:              7,
		AccountName:         sql.NullString{String: "alice12345xy", Valid: true},
		PublicKey:           sql.NullString{String: "EOS6MRy...", Valid: true},
		EncryptedPrivateKey: sql.NullString{String: "ct", Valid: true},
		PermissionName:      sql.NullString{String: "active", Valid: true},
	}
	rm := &fakeRepoManager{usersRepo: &fakeUsersRepo{user: user}}
	chain := &fakeChain{txID: "txid123"}
	s, _ := newWalletService(t, rm, chain, &fakeSigner{key: "5KQwr...", active: true})

	txID, err := s.Transfer(context.Background(), 7, "bob123451234", 1.5, "lunch")
	require.NoError(t, err)
	assert.Equal(t, "txid123", txID)
	assert.Equal(t, "5KQwr...", chain.lastSigningKey)
	assert.Equal(t, "alice12345xy", chain.lastFrom)
	assert.Equal(t, "bob123451234", chain.lastTo)
	assert.Equal(t, 1.5, chain.lastAmount)
	assert.Equal(t, "lunch", chain.lastMemo)
}

func TestBuyRAMBytes_SignsWithSessionKey(t *testing.T) {
	user := &models.User{
		UserID:              7,
		AccountName:         sql.NullString{String: "alice12345xy", Valid: true},
		PublicKey:           sql.NullString{String: "EOS6MRy...", Valid: true},
		EncryptedPrivateKey: sql.NullString{String: "ct", Valid: true},
		PermissionName:      sql.NullString{String: "active", Valid: true},
	}
	rm := &fakeRepoManager{usersRepo: &fakeUsersRepo{user: user}}
	chain := &fakeChain{txID: "txid456"}
	s, _ := newWalletService(t, rm, chain, &fakeSigner{key: "5KQwr...", active: true})

	txID, err := s.BuyRAMBytes(context.Background(), 7, "alice12345xy", 8192)
	require.NoError(t, err)
	assert.Equal(t, "txid456", txID)
	assert.Equal(t, uint32(8192), chain.lastBytes)
}

func TestBalance_NoAccount(t *testing.T) {
	rm := &fakeRepoManager{usersRepo: &fakeUsersRepo{user: &models.User{UserID: 7}}}
	s, _ := newWalletService(t, rm, &fakeChain{}, &fakeSigner{})

	_, err := s.Balance(context.Background(), 7)
	assert.ErrorIs(t, err, ErrNoAccount)
}
