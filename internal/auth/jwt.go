package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/LucasBeserra/magnetic-report-api/internal/config"
	"github.com/LucasBeserra/magnetic-report-api/internal/constant"
	"github.com/LucasBeserra/magnetic-report-api/internal/util"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var (
	ErrInvalidToken   = errors.New("jwt token is not valid")
	ErrWrongTokenType = errors.New("invalid jwt token type")
)

const jtiLength = 21

type JWT struct {
	logger    *zap.SugaredLogger
	jwtSecret string
	ttl       map[constant.JWTType]time.Duration
	now       func() time.Time
}

type JWTInterface interface {
	GenerateToken(payload JWTPayload, tokenType constant.JWTType) (*IssuedToken, error)
	GenerateRefreshAndAccessToken(payload JWTPayload) (*TokenPair, error)
	// Verifies the signature and expiry and rejects any token whose type is not tokenType.
	VerifyJwtToken(token string, tokenType constant.JWTType) (*JWTClaims, error)
}

func NewJwt(cfg config.AuthConfig, logger *zap.SugaredLogger) *JWT {
	// For unit test
	if logger == nil {
		logger = util.NewLogger("test")
	}

	if cfg.JWT_SECRET == "" {
		logger.Warn("AUTH_JWT_SECRET is empty, issued tokens cannot be signed")
	}

	return &JWT{
		jwtSecret: cfg.JWT_SECRET,
		logger:    logger,
		ttl: map[constant.JWTType]time.Duration{
			constant.JWT_TYPE_ACCESS:         withDefault(cfg.AccessTokenTTL, 30*time.Minute),
			constant.JWT_TYPE_REFRESH:        withDefault(cfg.RefreshTokenTTL, 7*24*time.Hour),
			constant.JWT_TYPE_EMAIL_VERIFY:   withDefault(cfg.VerifyTokenTTL, 24*time.Hour),
			constant.JWT_TYPE_PASSWORD_RESET: withDefault(cfg.ResetTokenTTL, time.Hour),
		},
		now: time.Now,
	}
}

func withDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

type JWTPayload struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

type JWTClaims struct {
	User JWTPayload       `json:"user"`
	Type constant.JWTType `json:"type"`
	jwt.RegisteredClaims
}

type IssuedToken struct {
	Token     string
	ID        string
	ExpiresAt time.Time
}

type TokenPair struct {
	Access  IssuedToken
	Refresh IssuedToken
}

func (j JWT) GenerateToken(payload JWTPayload, tokenType constant.JWTType) (*IssuedToken, error) {
	ttl, ok := j.ttl[tokenType]
	if !ok {
		return nil, fmt.Errorf("unknown token type %q", tokenType)
	}
	if j.jwtSecret == "" {
		return nil, errors.New("jwt secret is not configured")
	}

	jti, err := util.GenerateNChar(jtiLength)
	if err != nil {
		return nil, err
	}

	now := j.now()
	expiresAt := now.Add(ttl)
	claims := JWTClaims{
		User: payload,
		Type: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   payload.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(j.jwtSecret))
	if err != nil {
		return nil, err
	}

	return &IssuedToken{Token: signed, ID: jti, ExpiresAt: expiresAt}, nil
}

func (j JWT) GenerateRefreshAndAccessToken(payload JWTPayload) (*TokenPair, error) {
	j.logger.Debugf("Generate refresh and access token for userId: %s", payload.ID)

	refresh, err := j.GenerateToken(payload, constant.JWT_TYPE_REFRESH)
	if err != nil {
		return nil, err
	}

	access, err := j.GenerateToken(payload, constant.JWT_TYPE_ACCESS)
	if err != nil {
		return nil, err
	}

	return &TokenPair{Access: *access, Refresh: *refresh}, nil
}

func (j JWT) VerifyJwtToken(token string, tokenType constant.JWTType) (*JWTClaims, error) {
	claims := &JWTClaims{}
	parsedToken, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(j.jwtSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(j.now), jwt.WithExpirationRequired())
	if err != nil {
		j.logger.Debugf("Failed to verify jwt token. Error: %v", err)
		return nil, err
	}

	if !parsedToken.Valid {
		j.logger.Debug("Jwt token is not valid")
		return nil, ErrInvalidToken
	}

	if claims.Type != tokenType {
		j.logger.Debugf("Jwt token type %q, expected %q", claims.Type, tokenType)
		return nil, ErrWrongTokenType
	}

	if claims.User.ID == "" || claims.User.ID != claims.Subject {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
