package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleOperator is the only role issued: a dashboard operator reading the
// scan journal and the attendance reports.
const RoleOperator = "operator"

// Token use values. The protected endpoints accept access tokens only;
// the refresh endpoint accepts refresh tokens only.
const (
	UseAccess  = "access"
	UseRefresh = "refresh"
)

// Pair holds the access and refresh tokens issued to an operator.
type Pair struct {
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
}

// Claims is the signed JWT payload. The operator id rides in the
// registered subject claim.
type Claims struct {
	Role string `json:"role"`
	Use  string `json:"use"`
	jwt.RegisteredClaims
}

// OperatorID returns the subject the token was issued to.
func (c Claims) OperatorID() string {
	return c.Subject
}

// IssueOperator signs an access and refresh token pair for an operator.
func IssueOperator(operatorID, issuer, key string, accessTTL, refreshTTL time.Duration) (Pair, error) {
	now := time.Now()
	accessExp := now.Add(accessTTL)
	refreshExp := now.Add(refreshTTL)

	access, err := sign(operatorID, issuer, key, UseAccess, now, accessExp)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := sign(operatorID, issuer, key, UseRefresh, now, refreshExp)
	if err != nil {
		return Pair{}, err
	}

	return Pair{
		AccessToken:  access,
		RefreshToken: refresh,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
	}, nil
}

// Refresh exchanges a valid refresh token for a fresh pair.
func Refresh(refreshToken, issuer, key string, accessTTL, refreshTTL time.Duration) (Pair, error) {
	claims, err := Parse(refreshToken, key, issuer, UseRefresh)
	if err != nil {
		return Pair{}, err
	}
	return IssueOperator(claims.Subject, issuer, key, accessTTL, refreshTTL)
}

func sign(operatorID, issuer, key, use string, now, exp time.Time) (string, error) {
	claims := Claims{
		Role: RoleOperator,
		Use:  use,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   operatorID,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
}

// Parse validates a token and returns its claims. The use argument pins
// which kind of token is acceptable, so a refresh token cannot be replayed
// against the protected endpoints.
func Parse(tokenStr, key, issuer, use string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(key), nil
	})
	if err != nil {
		return Claims{}, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return Claims{}, errors.New("invalid token")
	}
	if issuer != "" && claims.Issuer != issuer {
		return Claims{}, errors.New("issuer mismatch")
	}
	if claims.Use != use {
		return Claims{}, fmt.Errorf("token is not a %s token", use)
	}
	return *claims, nil
}
