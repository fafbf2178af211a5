package session

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Signer issues and verifies writer tokens. A writer token proves that its
// holder opened the session and may stream into it or close it.
type Signer struct {
	secret []byte
}

// NewSigner creates a Signer for the given secret. An empty secret produces
// a random per-process one, which invalidates tokens across restarts.
func NewSigner(secret string) (*Signer, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("failed to generate token secret: %w", err)
		}
	}
	return &Signer{secret: key}, nil
}

// Sign returns a writer token bound to the named session.
func (s *Signer) Sign(name string) (string, error) {
	claims := jwt.MapClaims{
		"sid":  name,
		"role": "writer",
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks that token is a valid writer token for the named session.
func (s *Signer) Verify(name, token string) error {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return ErrInvalidToken
	}
	if sid, _ := claims["sid"].(string); sid != name {
		return ErrInvalidToken
	}
	if role, _ := claims["role"].(string); role != "writer" {
		return ErrInvalidToken
	}

	return nil
}
