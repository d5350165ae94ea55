package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cwrk-planet/conference-service/internal/domain"
)

var ErrInvalidToken = errors.New("invalid token")

// Используется SigningMethodHS256
type TokenSigner struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewTokenSigner(secret, issuer string, ttl time.Duration) *TokenSigner {
	return &TokenSigner{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

type Claims struct {
	jwt.RegisteredClaims
	DisplayName string `json:"name,omitempty"`
}

// Sign выпускает JWT с sub=userID и exp=now+ttl.
func (s *TokenSigner) Sign(userID, displayName string, now time.Time) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		DisplayName: displayName,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(s.secret)
}

// ParseAndValidate возвращает пользователя из токена. DisplayName может
// быть пустым — фолбэк на "Anonymous" делает вызывающий слой.
func (s *TokenSigner) ParseAndValidate(tokenStr string) (*domain.User, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &domain.User{
		ID:          claims.Subject,
		DisplayName: claims.DisplayName,
	}, nil
}
