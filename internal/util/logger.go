package util

import (
	"strings"

	"go.uber.org/zap"
)

// Production builds log JSON at info level; anything else gets the
// human-readable development encoder at debug level.
func NewLogger(env string) *zap.SugaredLogger {
	if strings.EqualFold(env, "production") {
		return zap.Must(zap.NewProduction()).Sugar()
	}

	return zap.Must(zap.NewDevelopment()).Sugar()
}
