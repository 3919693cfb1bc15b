package jwt

import (
	"errors"
	"time"

	"github.com/NeuralTrust/FraudShield/pkg/config"
	"github.com/golang-jwt/jwt/v5"
)

const issuer = "fraudshield"

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
	ErrMissingKey   = errors.New("jwt secret key is not configured")
)

//go:generate mockery --name=Manager --dir=. --output=mocks/ --filename=jwt_manager_mock.go --case=underscore
type (
	Manager interface {
		CreateToken(subject string, ttl time.Duration) (string, error)
		ValidateToken(tokenString string) error
		DecodeToken(tokenString string) (*Claims, error)
	}
	manager struct {
		config *config.ServerConfig
	}
)

func NewJwtManager(config *config.ServerConfig) Manager {
	return &manager{
		config: config,
	}
}

type Claims struct {
	jwt.RegisteredClaims
}

// CreateToken signs an HS256 token for subject. A non-positive ttl produces
// a token without expiry.
func (m *manager) CreateToken(subject string, ttl time.Duration) (string, error) {
	if m.config.SecretKey == "" {
		return "", ErrMissingKey
	}
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   issuer,
			Subject:  subject,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.config.SecretKey))
}

func (m *manager) ValidateToken(tokenString string) error {
	_, err := m.DecodeToken(tokenString)
	return err
}

func (m *manager) DecodeToken(tokenString string) (*Claims, error) {
	if m.config.SecretKey == "" {
		return nil, ErrMissingKey
	}
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return []byte(m.config.SecretKey), nil
		},
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
