package auth

import (
	"errors"
	"time"

	"uniconnect/config"
	"uniconnect/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// Claims identify a caller of the API. Gateway and admin tokens name a
// service in Subject; user tokens also carry UserID and may only read that
// user's event stream.
type Claims struct {
	UserID int64  `json:"user_id,omitempty"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

var ErrInvalidToken = errors.New("invalid token")

var ErrUnknownRole = errors.New("unknown role")

func validRole(role string) bool {
	switch role {
	case domain.RoleGateway, domain.RoleAdmin, domain.RoleUser:
		return true
	}
	return false
}

// GenerateToken signs a token for subject. A zero expiry falls back to the
// configured one.
func GenerateToken(cfg *config.JWTConfig, subject, role string, userID int64, expiry time.Duration) (string, error) {
	if !validRole(role) {
		return "", ErrUnknownRole
	}
	if role == domain.RoleUser && userID == 0 {
		return "", errors.New("user token requires a user id")
	}
	if expiry <= 0 {
		expiry = cfg.Expiry
	}
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    cfg.Issuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

func ParseToken(cfg *config.JWTConfig, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || !validRole(claims.Role) {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
