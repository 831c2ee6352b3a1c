package auth

import (
	"errors"
	"fmt"
	"log"
	"time"

	"student-registry/models"

	"github.com/golang-jwt/jwt/v4"
)

// Issuer - поле iss во всех токенах реестра
const Issuer = "student-registry"

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrNotOperator  = errors.New("token does not belong to the operator")
)

// OperatorClaims - токен единственного оператора. Email хранится в Subject
type OperatorClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (c *OperatorClaims) Email() string {
	return c.Subject
}

// TokenService выдаёт и проверяет HS256 токены оператора
type TokenService struct {
	secret []byte
	ttl    time.Duration
	parser *jwt.Parser
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}
}

// Issue подписывает токен для оператора и возвращает момент его истечения
func (s *TokenService) Issue(operator models.User) (string, time.Time, error) {
	if operator.Role != models.RoleOperator {
		return "", time.Time{}, fmt.Errorf("%w: role %q", ErrNotOperator, operator.Role)
	}

	now := time.Now()
	expiresAt := now.Add(s.ttl)
	claims := OperatorClaims{
		Role: operator.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   operator.Email,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		log.Printf("❌ Error signing token for %s: %v", operator.Email, err)
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify проверяет подпись, срок, издателя и роль
func (s *TokenService) Verify(tokenString string) (*OperatorClaims, error) {
	claims := &OperatorClaims{}
	token, err := s.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if !claims.VerifyIssuer(Issuer, true) {
		return nil, fmt.Errorf("%w: issuer %q", ErrInvalidToken, claims.Issuer)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}
	if claims.Role != models.RoleOperator {
		return nil, fmt.Errorf("%w: role %q", ErrNotOperator, claims.Role)
	}
	return claims, nil
}
