package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más la identidad resuelta por la capa
// de autorización: usuario, tenant, tienda asignada, nivel de privilegio y rol.
// Level: 1 = super admin global (root), 2 = admin de tenant, 3+ = personal de tienda.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	TenantID string `json:"tenant_id"`
	StoreID  string `json:"store_id,omitempty"`
	Level    int    `json:"level"`
	Role     string `json:"role"`
	IsRoot   bool   `json:"is_root,omitempty"`
}

// Identity datos de identidad que viajan dentro del token.
type Identity struct {
	UserID   string
	TenantID string
	StoreID  string
	Level    int
	Role     string
	IsRoot   bool
}

// Generate genera un token JWT firmado con la identidad del usuario.
func Generate(secret string, id Identity, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:   id.UserID,
		TenantID: id.TenantID,
		StoreID:  id.StoreID,
		Level:    id.Level,
		Role:     id.Role,
		IsRoot:   id.IsRoot,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve la identidad contenida.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (*Identity, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return &Identity{
		UserID:   claims.UserID,
		TenantID: claims.TenantID,
		StoreID:  claims.StoreID,
		Level:    claims.Level,
		Role:     claims.Role,
		IsRoot:   claims.IsRoot,
	}, nil
}
