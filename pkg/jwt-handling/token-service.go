package jwthandling

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TOKEN_PURPOSE_VERIFICATION = "verification"
	TOKEN_PURPOSE_SESSION      = "session"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
	ErrEmptySignKey = errors.New("token sign key must not be empty")
)

// Information a registration confirmation token encodes
type VerificationClaims struct {
	Email   string `json:"correoElectronico"`
	Code    string `json:"codigoUnico"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// Information a session token encodes
type SessionClaims struct {
	AccountID string `json:"userId"`
	Purpose   string `json:"purpose"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 tokens with a single shared secret.
type TokenService struct {
	signKey []byte
}

func NewTokenService(signKey string) (*TokenService, error) {
	if signKey == "" {
		return nil, ErrEmptySignKey
	}
	return &TokenService{signKey: []byte(signKey)}, nil
}

func (ts *TokenService) sign(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ts.signKey)
}

func (ts *TokenService) parse(tokenString string, claims jwt.Claims) error {
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ts.signKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrTokenExpired
		}
		return fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	return nil
}

func registeredClaims(subject string, ttl time.Duration) jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

func (ts *TokenService) GenerateVerificationToken(email string, code string, ttl time.Duration) (string, error) {
	claims := VerificationClaims{
		Email:            email,
		Code:             code,
		Purpose:          TOKEN_PURPOSE_VERIFICATION,
		RegisteredClaims: registeredClaims(email, ttl),
	}
	return ts.sign(claims)
}

func (ts *TokenService) ValidateVerificationToken(tokenString string) (*VerificationClaims, error) {
	claims := &VerificationClaims{}
	if err := ts.parse(tokenString, claims); err != nil {
		return nil, err
	}
	if claims.Purpose != TOKEN_PURPOSE_VERIFICATION {
		return nil, fmt.Errorf("%w: wrong token purpose", ErrTokenInvalid)
	}
	if claims.Email == "" || claims.Code == "" {
		return nil, fmt.Errorf("%w: missing claims", ErrTokenInvalid)
	}
	return claims, nil
}

func (ts *TokenService) GenerateSessionToken(accountID string, ttl time.Duration) (string, error) {
	claims := SessionClaims{
		AccountID:        accountID,
		Purpose:          TOKEN_PURPOSE_SESSION,
		RegisteredClaims: registeredClaims(accountID, ttl),
	}
	return ts.sign(claims)
}

func (ts *TokenService) ValidateSessionToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if err := ts.parse(tokenString, claims); err != nil {
		return nil, err
	}
	if claims.Purpose != TOKEN_PURPOSE_SESSION {
		return nil, fmt.Errorf("%w: wrong token purpose", ErrTokenInvalid)
	}
	if claims.AccountID == "" {
		return nil, fmt.Errorf("%w: missing claims", ErrTokenInvalid)
	}
	return claims, nil
}
