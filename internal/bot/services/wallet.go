// Package services contains the bot's business logic. This file implements
// WalletService: key import, provisional account orders, activation, and
// session-gated signing operations.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/eosbot/internal/bot/models"
	"github.com/dmitrijs2005/eosbot/internal/bot/repositories/repomanager"
	"github.com/dmitrijs2005/eosbot/internal/common"
	"github.com/dmitrijs2005/eosbot/internal/dbx"
	"github.com/dmitrijs2005/eosbot/internal/eos"
	"github.com/dmitrijs2005/eosbot/internal/vault"
)

// placeholder marks an import that still awaits an account selection.
const placeholder = "-"

// Signer hands out decrypted keys and revokes sessions. Satisfied by
// session.Authorizer.
type Signer interface {
	PrivateKey(userID int64) (string, bool)
	Revoke(userID int64)
}

// WalletService manages the user's credential and everything signed with it.
type WalletService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	chain       eos.Chain
	signer      Signer
}

func NewWalletService(db *sql.DB, m repomanager.RepositoryManager, chain eos.Chain, signer Signer) *WalletService {
	return &WalletService{db: db, repomanager: m, chain: chain, signer: signer}
}

// Ensure registers the user row if it does not exist yet.
func (s *WalletService) Ensure(ctx context.Context, userID int64) error {
	return s.repomanager.Users(s.db).Ensure(ctx, userID)
}

// User loads the user's stored state.
func (s *WalletService) User(ctx context.Context, userID int64) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, userID)
}

// Import encrypts the WIF key under the password and binds it to the
// account it controls. With exactly one candidate the credential is
// complete; with several, the key material is stored with placeholders and
// the caller must follow up with SelectAccount.
func (s *WalletService) Import(ctx context.Context, userID int64, wif, password string) ([]eos.AccountPermission, error) {
	publicKey, err := s.chain.PublicKeyForPrivate(wif)
	if err != nil {
		return nil, fmt.Errorf("deriving public key: %w", err)
	}

	accounts, err := s.chain.AccountsForKey(ctx, publicKey)
	if err != nil {
		return nil, fmt.Errorf("looking up accounts: %w", err)
	}
	if len(accounts) == 0 {
		return nil, ErrNoAccountsForKey
	}

	ciphertext, err := vault.Encrypt(wif, password)
	if err != nil {
		return nil, fmt.Errorf("encrypting key: %w", err)
	}

	repo := s.repomanager.Users(s.db)
	if len(accounts) == 1 {
		err = repo.SetCredential(ctx, userID, accounts[0].Account, publicKey, ciphertext, accounts[0].Permission)
	} else {
		err = repo.SetCredential(ctx, userID, placeholder, publicKey, ciphertext, placeholder)
	}
	if err != nil {
		return nil, fmt.Errorf("storing credential: %w", err)
	}
	return accounts, nil
}

// SelectAccount completes a multi-account import.
func (s *WalletService) SelectAccount(ctx context.Context, userID int64, name, permission string) error {
	return s.repomanager.Users(s.db).SetAccountSelection(ctx, userID, name, permission)
}

// CreateAccountOrder generates a candidate name and key pair, encrypts the
// key under the password and records an unactivated order. The caller pays
// for the account out of band.
func (s *WalletService) CreateAccountOrder(ctx context.Context, userID int64, password string) (*models.AccountOrder, error) {
	repo := s.repomanager.AccountOrders(s.db)

	if _, err := repo.GetPendingByUser(ctx, userID); err == nil {
		return nil, ErrOrderAlreadyPending
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	name := s.chain.GenerateAccountName()
	exists, err := s.chain.AccountExists(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("checking candidate name: %w", err)
	}
	if exists {
		return nil, ErrAccountAlreadyExists
	}

	keys, err := s.chain.GenerateKeyPair()
	if err != nil {
		return nil, fmt.Errorf("generating key pair: %w", err)
	}
	ciphertext, err := vault.Encrypt(keys.PrivateKey, password)
	if err != nil {
		return nil, fmt.Errorf("encrypting key: %w", err)
	}

	order := &models.AccountOrder{
		UserID:              userID,
		AccountName:         name,
		PublicKey:           keys.PublicKey,
		EncryptedPrivateKey: ciphertext,
	}
	return repo.Create(ctx, order)
}

// Activate promotes the pending order to the live credential once the
// account shows up on-chain. The credential write and the order flag move
// in one transaction.
func (s *WalletService) Activate(ctx context.Context, userID int64) (*models.AccountOrder, error) {
	order, err := s.repomanager.AccountOrders(s.db).GetPendingByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrNoPendingOrder
		}
		return nil, err
	}

	exists, err := s.chain.AccountExists(ctx, order.AccountName)
	if err != nil {
		return nil, fmt.Errorf("checking account: %w", err)
	}
	if !exists {
		return nil, ErrAccountNotYetCreated
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Users(tx).SetCredential(ctx, userID,
			order.AccountName, order.PublicKey, order.EncryptedPrivateKey, "active"); err != nil {
			return err
		}
		return s.repomanager.AccountOrders(tx).MarkActivated(ctx, order.OrderID)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// PendingOrder returns the user's unactivated order, ErrNoPendingOrder if
// there is none.
func (s *WalletService) PendingOrder(ctx context.Context, userID int64) (*models.AccountOrder, error) {
	order, err := s.repomanager.AccountOrders(s.db).GetPendingByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrNoPendingOrder
		}
		return nil, err
	}
	return order, nil
}

// DeletePendingOrder discards the user's unactivated order.
func (s *WalletService) DeletePendingOrder(ctx context.Context, userID int64) error {
	return s.repomanager.AccountOrders(s.db).DeletePendingByUser(ctx, userID)
}

// DeleteAccount clears the stored credential and drops any live session.
func (s *WalletService) DeleteAccount(ctx context.Context, userID int64) error {
	if err := s.repomanager.Users(s.db).ClearCredential(ctx, userID); err != nil {
		return err
	}
	s.signer.Revoke(userID)
	return nil
}

// Balance returns the liquid EOS balance of the user's account.
func (s *WalletService) Balance(ctx context.Context, userID int64) (float64, error) {
	account, err := s.accountName(ctx, userID)
	if err != nil {
		return 0, err
	}
	return s.chain.Balance(ctx, account)
}

// Resources returns the RAM/NET/CPU usage of the user's account.
func (s *WalletService) Resources(ctx context.Context, userID int64) (eos.ResourceUsage, error) {
	account, err := s.accountName(ctx, userID)
	if err != nil {
		return eos.ResourceUsage{}, err
	}
	return s.chain.Resources(ctx, account)
}

// RAMPrice quotes the current RAM price in EOS per KiB.
func (s *WalletService) RAMPrice(ctx context.Context) (float64, error) {
	return s.chain.RAMPrice(ctx)
}

// Transfer signs and broadcasts a token transfer from the user's account.
func (s *WalletService) Transfer(ctx context.Context, userID int64, to string, amount float64, memo string) (string, error) {
	key, from, err := s.signingContext(ctx, userID)
	if err != nil {
		return "", err
	}
	return s.chain.Transfer(ctx, key, from, to, amount, memo)
}

// BuyRAM spends eosAmount EOS of the user's balance on RAM for receiver.
func (s *WalletService) BuyRAM(ctx context.Context, userID int64, receiver string, eosAmount float64) (string, error) {
	key, payer, err := s.signingContext(ctx, userID)
	if err != nil {
		return "", err
	}
	return s.chain.BuyRAM(ctx, key, payer, receiver, eosAmount)
}

// BuyRAMBytes buys an exact byte amount of RAM for receiver.
func (s *WalletService) BuyRAMBytes(ctx context.Context, userID int64, receiver string, bytes uint32) (string, error) {
	key, payer, err := s.signingContext(ctx, userID)
	if err != nil {
		return "", err
	}
	return s.chain.BuyRAMBytes(ctx, key, payer, receiver, bytes)
}

func (s *WalletService) accountName(ctx context.Context, userID int64) (string, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if !user.HasAccount() {
		return "", ErrNoAccount
	}
	return user.AccountName.String, nil
}

func (s *WalletService) signingContext(ctx context.Context, userID int64) (key, account string, err error) {
	key, ok := s.signer.PrivateKey(userID)
	if !ok {
		return "", "", ErrSessionExpired
	}
	account, err = s.accountName(ctx, userID)
	if err != nil {
		return "", "", err
	}
	return key, account, nil
}
