package middleware

import (
	"net/http"

	"github.com/LucasBeserra/magnetic-report-api/internal/constant"
	"github.com/LucasBeserra/magnetic-report-api/internal/util"
	"github.com/gin-gonic/gin"
)

func (m Middleware) AuthMiddleware(ctx *gin.Context) {
	if !m.app.Config.Auth.Enabled {
		ctx.Next()
		return
	}

	m.RequireAccessToken(ctx)
}

// RequireAccessToken ignores AUTH_ENABLED, used by routes that only make sense
// for a signed in user.
func (m Middleware) RequireAccessToken(ctx *gin.Context) {
	token, err := util.ReadBearerToken(ctx)
	if err != nil {
		m.app.Logger.Debugf("Failed to read token: %v", err)
		util.ResponseFailed(ctx, http.StatusUnauthorized, "", util.GenerateErrorMessages(err, "unauthorized"), nil)
		return
	}

	claim, err := m.app.JWTService.VerifyJwtToken(token, constant.JWT_TYPE_ACCESS)
	if err != nil {
		m.app.Logger.Debugf("Failed to verify token: %v", err)
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Invalid token", util.GenerateErrorMessages(err, "unauthorized"), nil)
		return
	}

	ctx.Set("user", claim.User)
	ctx.Next()
}
