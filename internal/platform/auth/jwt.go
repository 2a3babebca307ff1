package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tecsoqr/internal/platform/config"
)

const issuer = "tecsoqr"

var ErrInvalidToken = errors.New("invalid token")

// DownloadClaims authorize one anonymous fetch of a stored code's image.
type DownloadClaims struct {
	CodeID string `json:"cid"`
	jwt.RegisteredClaims
}

type TokenService struct {
	config config.JWTConfig
	now    func() time.Time
}

func NewTokenService(cfg config.JWTConfig) *TokenService {
	if cfg.DownloadTokenTTL <= 0 {
		cfg.DownloadTokenTTL = 15 * time.Minute
	}
	return &TokenService{config: cfg, now: time.Now}
}

func (s *TokenService) GenerateDownloadToken(codeID string) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.config.DownloadTokenTTL)
	claims := DownloadClaims{
		CodeID: codeID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   codeID,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func (s *TokenService) ValidateDownloadToken(tokenString string) (*DownloadClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &DownloadClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.config.Secret), nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(s.now))

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*DownloadClaims); ok && token.Valid && claims.CodeID != "" {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
