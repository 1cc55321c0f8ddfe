// Package vault encrypts and decrypts a private key at rest under a
// user-chosen password. Keys are derived with argon2id and the payload is
// sealed with AES-256-GCM; the random salt and nonce are embedded in the
// ciphertext, so the output is self-contained and safe to store in a TEXT
// column.
package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"errors"

	"github.com/dmitrijs2005/eosbot/internal/common"
	"golang.org/x/crypto/argon2"
)

// ErrDecryptionFailed signals a wrong password or corrupted ciphertext.
// No partial plaintext is ever returned alongside it.
var ErrDecryptionFailed = errors.New("decryption failed")

const (
	saltSize  = 16
	nonceSize = 12
	keySize   = 32
)

func deriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, keySize)
}

// Encrypt seals privateKey under password. A fresh salt and nonce are
// generated per call, so the same inputs never produce the same output.
func Encrypt(privateKey, password string) (string, error) {
	salt := common.GenerateRandByteArray(saltSize)
	nonce := common.GenerateRandByteArray(nonceSize)

	key := deriveKey([]byte(password), salt)
	defer common.WipeByteArray(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	ciphertext := aesgcm.Seal(nil, nonce, []byte(privateKey), nil)

	packed := make([]byte, 0, saltSize+nonceSize+len(ciphertext))
	packed = append(packed, salt...)
	packed = append(packed, nonce...)
	packed = append(packed, ciphertext...)

	return base64.StdEncoding.EncodeToString(packed), nil
}

// Decrypt reverses Encrypt. Any malformed input, truncated payload or
// authentication failure (wrong password, tampered data) yields
// ErrDecryptionFailed.
func Decrypt(ciphertext, password string) (string, error) {
	packed, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	if len(packed) < saltSize+nonceSize {
		return "", ErrDecryptionFailed
	}

	salt := packed[:saltSize]
	nonce := packed[saltSize : saltSize+nonceSize]
	sealed := packed[saltSize+nonceSize:]

	key := deriveKey([]byte(password), salt)
	defer common.WipeByteArray(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", ErrDecryptionFailed
	}

	plaintext, err := aesgcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrDecryptionFailed
	}

	return string(plaintext), nil
}
