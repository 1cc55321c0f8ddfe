package session

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/eosbot/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// UnlockGrant is what a redeemed unlock token yields.
type UnlockGrant struct {
	ChatID   int64
	UserID   int64
	Password string
}

type unlockHold struct {
	token    string
	chatID   int64
	userID   int64
	password string
	exp      time.Time
}

// TokenIssuer mints one-shot unlock tokens for duration-picker callbacks.
// The password never leaves the process: callback data carries only the
// JTI, and the signed token plus password stay server-side until redeemed.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	mu    sync.Mutex
	holds map[string]unlockHold
}

func NewTokenIssuer(secret []byte, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
		holds:  make(map[string]unlockHold),
	}
}

// IssueUnlockToken signs an HS256 token for the pending unlock and returns
// its JTI, the handle embedded in callback data.
func (i *TokenIssuer) IssueUnlockToken(chatID, userID int64, password string) (string, error) {
	jti := uuid.NewString()
	exp := i.now().Add(i.ttl)

	claims := jwt.RegisteredClaims{
		ID:        jti,
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(i.now()),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", err
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	i.pruneLocked()
	i.holds[jti] = unlockHold{
		token: token, chatID: chatID, userID: userID,
		password: password, exp: exp,
	}
	return jti, nil
}

// RedeemUnlockToken consumes the hold behind the JTI after verifying the
// stored token's signature and expiry. A JTI redeems at most once.
func (i *TokenIssuer) RedeemUnlockToken(jti string) (UnlockGrant, error) {
	i.mu.Lock()
	hold, ok := i.holds[jti]
	delete(i.holds, jti)
	i.mu.Unlock()

	if !ok {
		return UnlockGrant{}, common.ErrInvalidToken
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(hold.token, claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, common.ErrInvalidToken
			}
			return i.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return UnlockGrant{}, common.ErrTokenExpired
		}
		return UnlockGrant{}, common.ErrInvalidToken
	}
	if claims.ID != jti {
		return UnlockGrant{}, common.ErrInvalidToken
	}

	return UnlockGrant{ChatID: hold.chatID, UserID: hold.userID, Password: hold.password}, nil
}

// pruneLocked drops expired holds. Callers hold i.mu.
func (i *TokenIssuer) pruneLocked() {
	now := i.now()
	for jti, hold := range i.holds {
		if now.After(hold.exp) {
			delete(i.holds, jti)
		}
	}
}
