package util

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	SchemeBearer  = "Bearer"
	SchemeRefresh = "Refresh"
)

var (
	ErrNoAuthorizationHeader  = errors.New("no authorization header specified")
	ErrBadAuthorizationHeader = errors.New("wrong authorization header format")
)

// Splits "Authorization: <scheme> <token>". The scheme is returned as sent.
func ReadAuthorizationHeader(ctx *gin.Context) (string, string, error) {
	header := strings.TrimSpace(ctx.GetHeader("Authorization"))
	if header == "" {
		return "", "", ErrNoAuthorizationHeader
	}

	scheme, token, ok := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !ok || token == "" {
		return "", "", ErrBadAuthorizationHeader
	}

	return scheme, token, nil
}

// Reads the token sent under the given scheme, compared case-insensitively.
func ReadSchemeToken(ctx *gin.Context, scheme string) (string, error) {
	got, token, err := ReadAuthorizationHeader(ctx)
	if err != nil {
		return "", err
	}

	if !strings.EqualFold(got, scheme) {
		return "", fmt.Errorf("invalid token type; expected '%s'", scheme)
	}

	return token, nil
}

func ReadBearerToken(ctx *gin.Context) (string, error) {
	return ReadSchemeToken(ctx, SchemeBearer)
}

// Refresh tokens travel as "Authorization: Refresh <token>" so they can never
// be mistaken for an access token by the auth middleware.
func ReadRefreshToken(ctx *gin.Context) (string, error) {
	return ReadSchemeToken(ctx, SchemeRefresh)
}
