// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidToken    = errors.New("invalid token")
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidCode     = errors.New("invalid verification code")
	ErrNoSecret        = errors.New("no signing secret configured")
)

// Password length limits. bcrypt rejects input longer than maxPasswordBytes.
const (
	MinPasswordLen   = 6
	MaxPasswordLen   = 100
	maxPasswordBytes = 72
)

// CodeLength is the number of digits in a verification code
const CodeLength = 6

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashPassword returns a bcrypt hash of password at the given cost.
// A cost of 0 uses bcrypt.DefaultCost.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares a password against a stored bcrypt hash
func CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidPassword
	}
	return nil
}

// ValidPasswordLength reports whether password is within the accepted length
func ValidPasswordLength(password string) bool {
	n := len([]rune(password))
	return n >= MinPasswordLen && n <= MaxPasswordLen && len(password) <= maxPasswordBytes
}

// Claims carried by an access token. Subject is the decimal user ID.
type Claims struct {
	jwt.RegisteredClaims
}

// UserID parses the subject claim
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidToken
	}
	return id, nil
}

// IssueToken signs an HS256 access token for userID valid for ttl
func IssueToken(secret string, userID int64, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrNoSecret
	}
	now := time.Now().UTC()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates an access token and returns its user ID.
// Expired, malformed and wrongly signed tokens all yield ErrInvalidToken.
func ParseToken(secret, tokenString string) (int64, error) {
	if secret == "" {
		return 0, ErrNoSecret
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}
	return claims.UserID()
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header value
func BearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

// GenerateVerificationCode returns a random zero-padded numeric code
func GenerateVerificationCode() (string, error) {
	limit := big.NewInt(1)
	for i := 0; i < CodeLength; i++ {
		limit.Mul(limit, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%0*d", CodeLength, n.Int64()), nil
}

// HashCode creates an HMAC of a verification code bound to an email and purpose
func HashCode(email, purpose, code, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(strings.ToLower(email)))
	h.Write([]byte{0})
	h.Write([]byte(purpose))
	h.Write([]byte{0})
	h.Write([]byte(code))
	sum := h.Sum(nil)
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateCode checks a submitted code against a stored hash
func ValidateCode(email, purpose, code, storedHash, secret string) error {
	expected := HashCode(email, purpose, code, secret)
	if !hmac.Equal([]byte(storedHash), []byte(expected)) {
		return ErrInvalidCode
	}
	return nil
}
