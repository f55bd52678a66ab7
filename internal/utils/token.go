package utils // package utils provides helpers for ids, tokens and hashing

import (
	"crypto/rand"   // secure random bytes for ids
	"crypto/sha256" // SHA-256 hashing for session keys
	"encoding/hex"  // hex encoding
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/navetta/shuttle-booking/internal/model"
)

// SessionToken is a signed bearer token handed to a client at login.
// The Token field holds the serialized JWT, Exp its UTC expiry. The
// server keeps a matching session record keyed by HashToken(Token);
// the JWT alone is not enough to act, which is what makes logout an
// actual revocation.
type SessionToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewSessionToken builds and signs an HS256 JWT for a user. Claims
// are subject (the user id), role, expiration and issued-at.
func NewSessionToken(secret string, u model.User, ttl time.Duration) (SessionToken, error) {
	exp := time.Now().UTC().Add(ttl)
	claims := jwt.MapClaims{
		"sub":  u.ID,
		"role": u.Role,
		"exp":  exp.Unix(),
		"iat":  time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, Exp: exp}, nil
}

// ParseSessionToken validates the signature and expiry of a raw token
// and returns the subject (user id) claim. The caller still has to
// resolve the live session; a valid signature on its own proves
// nothing once the user has logged out.
func ParseSessionToken(secret, raw string) (string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return "", fmt.Errorf("invalid session token")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid session claims")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", fmt.Errorf("session token missing subject")
	}
	return sub, nil
}

// HashToken returns the SHA-256 hash of a raw token as a hex string.
// Session records are keyed by this hash so a leaked session dump
// cannot be replayed as bearer tokens.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// NewID returns a fresh record id of the form "<prefix>_<hex>", with
// 12 bytes of cryptographically secure randomness. Collisions are
// not rechecked against the store.
func NewID(prefix string) (string, error) {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return prefix + "_" + hex.EncodeToString(buf), nil
}
