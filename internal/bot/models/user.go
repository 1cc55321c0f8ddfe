// Package models defines the typed row entities owned by the persistence
// store. Fields that are null until an account exists use database/sql
// nullable types so the invariants around set/cleared-together columns
// stay visible at the type level.
package models

import "database/sql"

// User is one row of the users table: the chat identity plus, once an
// account is imported or created, its credential. The three account
// fields and the permission are always written and cleared together.
type User struct {
	UserID              int64
	AccountName         sql.NullString
	PublicKey           sql.NullString
	EncryptedPrivateKey sql.NullString
	PermissionName      sql.NullString
	SessionExpiration   sql.NullTime
}

// HasAccount reports whether a full credential is present.
func (u *User) HasAccount() bool {
	return u.AccountName.Valid && u.PublicKey.Valid && u.EncryptedPrivateKey.Valid
}
