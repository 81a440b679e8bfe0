package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenCodec signs and verifies the bearer tokens issued at login.
type TokenCodec struct {
	Key []byte
	TTL time.Duration
}

type userClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func (c TokenCodec) Encode(username string) (string, error) {
	claims := userClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(c.TTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "paperdesk",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.Key)
}

func (c TokenCodec) Decode(bearer string) (string, error) {
	claims := userClaims{}

	token, err := jwt.ParseWithClaims(bearer, &claims, func(token *jwt.Token) (interface{}, error) {
		return c.Key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(*userClaims); ok && token.Valid {
		return claims.Username, nil
	}

	return "", errors.New("could not get claims")
}
