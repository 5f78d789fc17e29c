package service

import (
	"alcyxob/coach-log/internal/domain"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrAuthenticationFailed = errors.New("authentication failed: invalid role or PIN")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
	ErrInvalidToken         = errors.New("invalid token")
	ErrTokenExpired         = errors.New("token has expired")
)

const tokenIssuer = "coach-log"

// TokenClaims is the JWT payload. Only the role matters: there is a single
// session, so tokens identify who is acting, not which account.
type TokenClaims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Login(role domain.Role, pin string) (token string, err error)
	ParseToken(token string) (domain.Role, error)
}

// authService implements the AuthService interface.
type authService struct {
	jwtSecret     []byte
	jwtExpiration time.Duration
	pinHashes     map[domain.Role]string
	now           func() time.Time
}

// NewAuthService creates a new instance of authService. pinHashes maps a
// role to the bcrypt hash of its PIN; roles without a hash cannot log in.
func NewAuthService(jwtSecret string, jwtExpiration time.Duration, pinHashes map[domain.Role]string) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = 12 * time.Hour
	}
	return &authService{
		jwtSecret:     []byte(jwtSecret),
		jwtExpiration: jwtExpiration,
		pinHashes:     pinHashes,
		now:           time.Now,
	}
}

// HashPIN returns the bcrypt hash to put into auth.coach_pin_hash / auth.client_pin_hash.
func HashPIN(pin string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash pin: %w", err)
	}
	return string(hashed), nil
}

// Login checks the PIN of a role and issues a signed token for it.
func (s *authService) Login(role domain.Role, pin string) (string, error) {
	if !role.Valid() || pin == "" {
		return "", ErrAuthenticationFailed
	}
	hash, ok := s.pinHashes[role]
	if !ok || hash == "" {
		return "", ErrAuthenticationFailed
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)); err != nil {
		return "", ErrAuthenticationFailed
	}

	token, err := s.generateJWT(role)
	if err != nil {
		return "", ErrTokenGeneration
	}
	return token, nil
}

func (s *authService) generateJWT(role domain.Role) (string, error) {
	now := s.now()
	claims := &TokenClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   string(role),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ParseToken validates the signature and expiry and returns the role claim.
func (s *authService) ParseToken(tokenString string) (domain.Role, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || !claims.Role.Valid() {
		return "", ErrInvalidToken
	}
	return claims.Role, nil
}
