package util

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func contextWithAuthorization(header string) *gin.Context {
	gin.SetMode(gin.TestMode)
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		ctx.Request.Header.Set("Authorization", header)
	}
	return ctx
}

func TestReadSchemeToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		scheme  string
		want    string
		wantErr error
	}{
		{"bearer", "Bearer abc", SchemeBearer, "abc", nil},
		{"scheme is case insensitive", "bearer abc", SchemeBearer, "abc", nil},
		{"refresh", "Refresh xyz", SchemeRefresh, "xyz", nil},
		{"missing header", "", SchemeBearer, "", ErrNoAuthorizationHeader},
		{"missing token", "Bearer", SchemeBearer, "", ErrBadAuthorizationHeader},
		{"blank token", "Bearer    ", SchemeBearer, "", ErrBadAuthorizationHeader},
		{"wrong scheme", "Refresh abc", SchemeBearer, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadSchemeToken(contextWithAuthorization(tt.header), tt.scheme)
			if got != tt.want {
				t.Errorf("token = %q, want %q", got, tt.want)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.want == "" && err == nil {
				t.Errorf("expected an error")
			}
		})
	}
}
