package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleClaim es la clave con la que el panel Angular lee los roles del token.
const RoleClaim = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"

// ErrEmptySecret se devuelve cuando no hay secreto configurado.
var ErrEmptySecret = errors.New("jwt: secret vacío")

// Claims incluye los claims estándar JWT más los campos que consumen los guards del panel.
type Claims struct {
	jwt.RegisteredClaims
	NameID   string   `json:"nameid"`
	Email    string   `json:"email"`
	FullName string   `json:"name"`
	Roles    []string `json:"http://schemas.microsoft.com/ws/2008/06/identity/claims/role"`
}

// HasRole indica si el token contiene alguno de los roles indicados.
func (c *Claims) HasRole(roles ...string) bool {
	for _, have := range c.Roles {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Subject datos del usuario a firmar.
type Subject struct {
	UserID   string
	Email    string
	FullName string
	Roles    []string
}

// Generate genera un token HS256 con id, email, nombre y roles del usuario.
func Generate(secret string, sub Subject, issuer string, expMinutes int) (string, error) {
	return generateAt(secret, sub, issuer, expMinutes, time.Now())
}

func generateAt(secret string, sub Subject, issuer string, expMinutes int, now time.Time) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	roles := sub.Roles
	if roles == nil {
		roles = []string{}
	}
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   sub.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		NameID:   sub.UserID,
		Email:    sub.Email,
		FullName: sub.FullName,
		Roles:    roles,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida firma y expiración y devuelve los claims.
func Parse(secret, tokenString string) (*Claims, error) {
	return parse(secret, tokenString)
}

// ParseExpired valida solo la firma: se usa para renovar un token ya vencido.
func ParseExpired(secret, tokenString string) (*Claims, error) {
	return parse(secret, tokenString, jwt.WithoutClaimsValidation())
}

func parse(secret, tokenString string, opts ...jwt.ParserOption) (*Claims, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	if claims.Subject == "" && claims.NameID != "" {
		claims.Subject = claims.NameID
	}
	return claims, nil
}
