package eos

import (
	"crypto/rand"
	"math/big"
)

// EOS account names are exactly 12 characters from a-z and 1-5.
const nameAlphabet = "abcdefghijklmnopqrstuvwxyz12345"

const nameLength = 12

// randomAccountName produces a candidate account name. The first character
// is always a letter so the name reads like a handle rather than a number.
func randomAccountName() string {
	letters := nameAlphabet[:26]

	b := make([]byte, nameLength)
	b[0] = letters[randIndex(len(letters))]
	for i := 1; i < nameLength; i++ {
		b[i] = nameAlphabet[randIndex(len(nameAlphabet))]
	}
	return string(b)
}

func randIndex(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}
	return int(v.Int64())
}
