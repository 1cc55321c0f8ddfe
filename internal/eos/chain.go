// Package eos is the blockchain collaborator boundary: account lookups,
// balances, resource usage, key material and signed transactions. The rest
// of the bot consumes the Chain interface; the nodeos-backed implementation
// lives in client.go.
package eos

import "context"

// KeyPair is a freshly generated private/public key pair in the chain's
// text encodings (WIF private key, EOS/PUB public key).
type KeyPair struct {
	PrivateKey string
	PublicKey  string
}

// AccountPermission names one on-chain permission that a key controls.
type AccountPermission struct {
	Account    string
	Permission string
}

// Resource is one used/max pair from the account's resource limits.
type Resource struct {
	Used int64
	Max  int64
}

// ResourceUsage bundles the three metered account resources. RAM is in
// bytes, Net in bytes, CPU in microseconds.
type ResourceUsage struct {
	RAM Resource
	Net Resource
	CPU Resource
}

// Chain is the contract the bot's flows consume. Signing calls take the
// decrypted private key explicitly; only the session authorizer may hand
// it out.
type Chain interface {
	// AccountExists reports whether name is registered on-chain.
	AccountExists(ctx context.Context, name string) (bool, error)

	// AccountsForKey lists account/permission pairs controlled by the
	// given public key.
	AccountsForKey(ctx context.Context, publicKey string) ([]AccountPermission, error)

	// GenerateKeyPair creates a new random key pair. Pure local operation.
	GenerateKeyPair() (KeyPair, error)

	// GenerateAccountName proposes a random 12-character candidate name.
	GenerateAccountName() string

	// PublicKeyForPrivate derives the public key from a WIF private key.
	PublicKeyForPrivate(wif string) (string, error)

	// Balance returns the liquid EOS balance of account.
	Balance(ctx context.Context, account string) (float64, error)

	// Resources returns the account's RAM/NET/CPU usage and quotas.
	Resources(ctx context.Context, account string) (ResourceUsage, error)

	// RAMPrice quotes the current RAM price in EOS per KiB.
	RAMPrice(ctx context.Context) (float64, error)

	// Transfer moves amount EOS from from to to, signed with signingKey.
	Transfer(ctx context.Context, signingKey, from, to string, amount float64, memo string) (string, error)

	// BuyRAM spends eosAmount EOS of payer's balance on RAM for receiver.
	BuyRAM(ctx context.Context, signingKey, payer, receiver string, eosAmount float64) (string, error)

	// BuyRAMBytes buys an exact byte amount of RAM for receiver.
	BuyRAMBytes(ctx context.Context, signingKey, payer, receiver string, bytes uint32) (string, error)
}
