package models

// AccountOrder is a provisional account-creation order: a generated name
// and key pair waiting for the user to fund on-chain registration. At
// most one unactivated order exists per user.
type AccountOrder struct {
	OrderID             int64
	UserID              int64
	AccountName         string
	PublicKey           string
	EncryptedPrivateKey string
	Activated           bool
}
