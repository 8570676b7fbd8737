package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/EmmanuelQuintero/Control-Plus-7/config"
)

var (
	ErrTokenExpirado = errors.New("token expirado")
	ErrTokenInvalido = errors.New("token inválido")
)

// Claims declaraciones personalizadas del JWT
type Claims struct {
	IDUsuario int64  `json:"id_usuario"`
	Rol       string `json:"rol"`
	TokenType string `json:"token_type"` // "access" | "refresh"
	jwtv5.RegisteredClaims
}

// Manager administrador de tokens JWT
type Manager struct {
	secret          []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewManager crea el administrador de JWT
func NewManager(cfg *config.AuthConfig) *Manager {
	return &Manager{
		secret:          []byte(cfg.JWTSecret),
		accessTokenTTL:  cfg.AccessTokenTTL,
		refreshTokenTTL: cfg.RefreshTokenTTL,
	}
}

// GenerateAccessToken genera un access token
func (m *Manager) GenerateAccessToken(idUsuario int64, rol string) (string, error) {
	return m.generate(idUsuario, rol, "access", m.accessTokenTTL)
}

// GenerateRefreshToken genera un refresh token
func (m *Manager) GenerateRefreshToken(idUsuario int64, rol string) (string, error) {
	return m.generate(idUsuario, rol, "refresh", m.refreshTokenTTL)
}

func (m *Manager) generate(idUsuario int64, rol, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		IDUsuario: idUsuario,
		Rol:       rol,
		TokenType: tokenType,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(ttl)),
			Issuer:    "control-plus",
		},
	}

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseToken interpreta y valida un token
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwtv5.ParseWithClaims(tokenString, &Claims{}, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalido
		}
		return m.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrTokenExpirado
		}
		return nil, ErrTokenInvalido
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalido
	}

	return claims, nil
}
