package usecase

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"trustlens/pkg/errors"
)

// SessionUseCase turns a wallet address into an explicit session token so
// every mutating operation carries its caller identity instead of relying
// on ambient connection state. Proving control of the address (signature
// challenge) is out of scope here.
type SessionUseCase struct {
	jwtSecret string
	jwtExpiry int64
}

func NewSessionUseCase(jwtSecret string, jwtExpiry int64) *SessionUseCase {
	return &SessionUseCase{
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
	}
}

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// ValidAddress reports whether the string is a 0x-prefixed 20-byte hex
// wallet address, in any letter case.
func ValidAddress(address string) bool {
	return addressPattern.MatchString(address)
}

type Session struct {
	Address   string `json:"address"`
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

func (uc *SessionUseCase) IssueSession(address string) (*Session, error) {
	if !ValidAddress(address) {
		return nil, errors.BadRequest("Invalid wallet address", nil)
	}
	address = strings.ToLower(address)

	now := time.Now()
	expiresAt := now.Add(time.Duration(uc.jwtExpiry) * time.Second)

	claims := jwt.RegisteredClaims{
		Subject:   address,
		ID:        uuid.New().String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(uc.jwtSecret))
	if err != nil {
		return nil, errors.Internal("Failed to sign session token", err)
	}

	return &Session{
		Address:   address,
		Token:     signed,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}

// VerifySession returns the wallet address carried by a session token.
func (uc *SessionUseCase) VerifySession(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(uc.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.Unauthorized("Invalid or expired session", err)
	}

	return claims.Subject, nil
}
