package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/LucasBeserra/magnetic-report-api/internal/config"
	"github.com/LucasBeserra/magnetic-report-api/internal/constant"
	"github.com/golang-jwt/jwt/v5"
)

func newTestJWT() *JWT {
	return NewJwt(config.AuthConfig{JWT_SECRET: "test-secret"}, nil)
}

var testPayload = JWTPayload{ID: "id1234", Email: "test@gmail.com", FullName: "Test User"}

// Perform token generation and verify the generated token to ensure VerifyJwtToken is correct
func TestJWT(t *testing.T) {
	jwtService := newTestJWT()

	pair, err := jwtService.GenerateRefreshAndAccessToken(testPayload)
	if err != nil {
		t.Fatalf("An error occurred during refresh token and access token generation. Error: %v", err)
	}

	if pair.Access.ID == pair.Refresh.ID || len(pair.Access.ID) != jtiLength {
		t.Errorf("expected distinct %d char token ids, got %q and %q", jtiLength, pair.Access.ID, pair.Refresh.ID)
	}

	claims, err := jwtService.VerifyJwtToken(pair.Refresh.Token, constant.JWT_TYPE_REFRESH)
	if err != nil {
		t.Fatalf("An error occurred during refresh token verification. Error: %v", err)
	}
	if claims.ID != pair.Refresh.ID || claims.Subject != testPayload.ID || claims.User != testPayload {
		t.Errorf("unexpected refresh claims: %+v", claims)
	}

	if _, err := jwtService.VerifyJwtToken(pair.Access.Token, constant.JWT_TYPE_ACCESS); err != nil {
		t.Errorf("An error occurred during access token verification. Error: %v", err)
	}
}

func TestJWTRejectsOtherKinds(t *testing.T) {
	jwtService := newTestJWT()
	kinds := []constant.JWTType{
		constant.JWT_TYPE_ACCESS,
		constant.JWT_TYPE_REFRESH,
		constant.JWT_TYPE_EMAIL_VERIFY,
		constant.JWT_TYPE_PASSWORD_RESET,
	}

	for _, issued := range kinds {
		token, err := jwtService.GenerateToken(testPayload, issued)
		if err != nil {
			t.Fatal(err)
		}

		for _, expected := range kinds {
			t.Run(string(issued)+" as "+string(expected), func(t *testing.T) {
				_, err := jwtService.VerifyJwtToken(token.Token, expected)
				if issued == expected && err != nil {
					t.Errorf("VerifyJwtToken() error = %v", err)
				}
				if issued != expected && !errors.Is(err, ErrWrongTokenType) {
					t.Errorf("VerifyJwtToken() error = %v, want ErrWrongTokenType", err)
				}
			})
		}
	}
}

func TestJWTExpiry(t *testing.T) {
	jwtService := newTestJWT()
	issuedAt := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	jwtService.now = func() time.Time { return issuedAt }

	tests := []struct {
		kind  constant.JWTType
		valid time.Duration
	}{
		{constant.JWT_TYPE_ACCESS, 30 * time.Minute},
		{constant.JWT_TYPE_REFRESH, 7 * 24 * time.Hour},
		{constant.JWT_TYPE_EMAIL_VERIFY, 24 * time.Hour},
		{constant.JWT_TYPE_PASSWORD_RESET, time.Hour},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			jwtService.now = func() time.Time { return issuedAt }
			token, err := jwtService.GenerateToken(testPayload, tt.kind)
			if err != nil {
				t.Fatal(err)
			}
			if !token.ExpiresAt.Equal(issuedAt.Add(tt.valid)) {
				t.Errorf("ExpiresAt = %v, want %v", token.ExpiresAt, issuedAt.Add(tt.valid))
			}

			jwtService.now = func() time.Time { return issuedAt.Add(tt.valid - time.Minute) }
			if _, err := jwtService.VerifyJwtToken(token.Token, tt.kind); err != nil {
				t.Errorf("token should still be valid: %v", err)
			}

			jwtService.now = func() time.Time { return issuedAt.Add(tt.valid + time.Minute) }
			if _, err := jwtService.VerifyJwtToken(token.Token, tt.kind); !errors.Is(err, jwt.ErrTokenExpired) {
				t.Errorf("expected expired error, got %v", err)
			}
		})
	}
}

func TestJWTRejectsForeignSignature(t *testing.T) {
	token, err := NewJwt(config.AuthConfig{JWT_SECRET: "other-secret"}, nil).GenerateToken(testPayload, constant.JWT_TYPE_ACCESS)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := newTestJWT().VerifyJwtToken(token.Token, constant.JWT_TYPE_ACCESS); !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
		t.Errorf("expected signature error, got %v", err)
	}
}
