package services

import "errors"

var (
	// ErrNoAccountsForKey means the imported key controls no on-chain account.
	ErrNoAccountsForKey = errors.New("no accounts found for this key")

	// ErrOrderAlreadyPending means the user already holds an unactivated
	// account order.
	ErrOrderAlreadyPending = errors.New("an account order is already pending")

	// ErrAccountAlreadyExists means the candidate account name is taken
	// on-chain.
	ErrAccountAlreadyExists = errors.New("account name already exists")

	// ErrNoPendingOrder means there is no unactivated order to act on.
	ErrNoPendingOrder = errors.New("no pending account order")

	// ErrAccountNotYetCreated means the ordered account is still absent
	// on-chain; the order stays pending.
	ErrAccountNotYetCreated = errors.New("account not yet created on-chain")

	// ErrSessionExpired means a signing operation was attempted without an
	// active session.
	ErrSessionExpired = errors.New("session expired")

	// ErrNoAccount means the user has no stored account credential.
	ErrNoAccount = errors.New("no account configured")

	// ErrPendingLimitExceeded means the user is at the pending RAM order cap.
	ErrPendingLimitExceeded = errors.New("pending order limit exceeded")
)
