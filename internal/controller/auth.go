package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/LucasBeserra/magnetic-report-api/internal/auth"
	"github.com/LucasBeserra/magnetic-report-api/internal/constant"
	"github.com/LucasBeserra/magnetic-report-api/internal/mailer"
	"github.com/LucasBeserra/magnetic-report-api/internal/model"
	"github.com/LucasBeserra/magnetic-report-api/internal/repository"
	"github.com/LucasBeserra/magnetic-report-api/internal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthController struct {
	*baseController
}

const (
	ErrInvalidCredentials = "invalid email or password"
	ErrUserInactive       = "user account is inactive"
	ErrUserNotVerified    = "email address is not verified"
	ErrInvalidAuthToken   = "token is invalid or expired"
	ErrFailedToIssueToken = "failed to issue token"
)

func (ac AuthController) Register(ctx *gin.Context) {
	type Request struct {
		Email    string `json:"email" form:"email" binding:"required,email,max=255"`
		Password string `json:"password" form:"password" binding:"required,min=8,max=72"`
		FullName string `json:"fullName" form:"fullName" binding:"required,strNotEmpty,cmin=2,max=200"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		ac.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	hashed, err := util.HashPassword(body.Password)
	if err != nil {
		ac.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to register", util.GenerateErrorMessages(err), nil)
		return
	}

	user := model.User{
		Email:          body.Email,
		HashedPassword: hashed,
		FullName:       body.FullName,
		IsActive:       true,
	}
	if err := ac.app.Repository.User.CheckDupAndCreate(ctx, nil, &user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			util.ResponseFailed(ctx, http.StatusConflict, "Email already registered", util.GenerateErrorMessages(err, "email"), nil)
			return
		}

		ac.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to register", util.GenerateErrorMessages(err), nil)
		return
	}

	ac.sendVerificationMail(user)

	util.ResponseCreated(ctx, gin.H{
		"user": user,
	})
}

func (ac AuthController) Login(ctx *gin.Context) {
	type Request struct {
		Email    string `json:"email" form:"email" binding:"required,email"`
		Password string `json:"password" form:"password" binding:"required"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	user, err := ac.app.Repository.User.GetByEmail(ctx, nil, body.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.ResponseFailed(ctx, http.StatusUnauthorized, "Login failed", util.GenerateErrorMessages(errors.New(ErrInvalidCredentials), "email"), nil)
			return
		}

		ac.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Login failed", util.GenerateErrorMessages(err), nil)
		return
	}

	ok, err := util.ComparePassword(user.HashedPassword, body.Password)
	if err != nil {
		ac.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Login failed", util.GenerateErrorMessages(err), nil)
		return
	}
	if !ok {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Login failed", util.GenerateErrorMessages(errors.New(ErrInvalidCredentials), "email"), nil)
		return
	}

	if !user.IsActive {
		util.ResponseFailed(ctx, http.StatusForbidden, "Login failed", util.GenerateErrorMessages(errors.New(ErrUserInactive), "email"), nil)
		return
	}
	if ac.app.Config.Auth.RequireVerifiedLogin && !user.IsVerified {
		util.ResponseFailed(ctx, http.StatusForbidden, "Login failed", util.GenerateErrorMessages(errors.New(ErrUserNotVerified), "email"), nil)
		return
	}

	pair, err := ac.app.Repository.JWT.GenRefreshAndAccessToken(ctx, nil, *user)
	if err != nil {
		ac.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Login failed", util.GenerateErrorMessages(errors.New(ErrFailedToIssueToken)), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"accessToken":  pair.Access.Token,
		"refreshToken": pair.Refresh.Token,
		"user":         user,
	})
}

func (ac AuthController) RefreshAccessToken(ctx *gin.Context) {
	refreshToken, err := util.ReadRefreshToken(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "", util.GenerateErrorMessages(err, "refreshToken"), nil)
		return
	}

	jwtClaims, err := ac.app.JWTService.VerifyJwtToken(refreshToken, constant.JWT_TYPE_REFRESH)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "", util.GenerateErrorMessages(err, "refreshToken"), nil)
		return
	}

	pair, err := ac.app.Repository.JWT.RefreshToken(ctx, nil, jwtClaims.ID)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, repository.ErrTokenRevoked), errors.Is(err, repository.ErrInactiveUser):
			util.ResponseFailed(ctx, http.StatusUnauthorized, "", util.GenerateErrorMessages(err, "refreshToken"), nil)
		default:
			ac.app.Logger.Error(err)
			util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
		}
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"refreshToken": pair.Refresh.Token,
		"accessToken":  pair.Access.Token,
	})
}

func (ac AuthController) Logout(ctx *gin.Context) {
	refreshToken, err := util.ReadRefreshToken(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "", util.GenerateErrorMessages(err, "refreshToken"), nil)
		return
	}

	jwtClaims, err := ac.app.JWTService.VerifyJwtToken(refreshToken, constant.JWT_TYPE_REFRESH)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "", util.GenerateErrorMessages(err, "refreshToken"), nil)
		return
	}

	if err := ac.app.Repository.JWT.DeleteToken(ctx, nil, jwtClaims.ID); err != nil {
		ac.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to logout", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, nil)
}

func (ac AuthController) VerifyEmail(ctx *gin.Context) {
	type Request struct {
		Token string `json:"token" form:"token" binding:"required"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	claims, err := ac.app.JWTService.VerifyJwtToken(body.Token, constant.JWT_TYPE_EMAIL_VERIFY)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Email verification failed", util.GenerateErrorMessages(errors.New(ErrInvalidAuthToken), "token"), nil)
		return
	}

	if err := ac.app.Repository.User.MarkVerified(ctx, nil, claims.User.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.ResponseFailed(ctx, http.StatusBadRequest, "Email verification failed", util.GenerateErrorMessages(errors.New(ErrInvalidAuthToken), "token"), nil)
			return
		}

		ac.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Email verification failed", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, nil)
}

// ResendVerification answers the same way whether or not the email is known.
func (ac AuthController) ResendVerification(ctx *gin.Context) {
	type Request struct {
		Email string `json:"email" form:"email" binding:"required,email"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	user, err := ac.app.Repository.User.GetByEmail(ctx, nil, body.Email)
	switch {
	case err == nil:
		if !user.IsVerified && user.IsActive {
			ac.sendVerificationMail(*user)
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		ac.app.Logger.Error(err)
	}

	util.ResponseSuccess(ctx, nil)
}

// ForgotPassword always succeeds so the response does not reveal which emails exist.
func (ac AuthController) ForgotPassword(ctx *gin.Context) {
	type Request struct {
		Email string `json:"email" form:"email" binding:"required,email"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	user, err := ac.app.Repository.User.GetByEmail(ctx, nil, body.Email)
	switch {
	case err == nil:
		if user.IsActive {
			ac.sendResetPasswordMail(*user)
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		ac.app.Logger.Error(err)
	}

	util.ResponseSuccess(ctx, nil)
}

func (ac AuthController) ResetPassword(ctx *gin.Context) {
	type Request struct {
		Token       string `json:"token" form:"token" binding:"required"`
		NewPassword string `json:"newPassword" form:"newPassword" binding:"required,min=8,max=72"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	claims, err := ac.app.JWTService.VerifyJwtToken(body.Token, constant.JWT_TYPE_PASSWORD_RESET)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Password reset failed", util.GenerateErrorMessages(errors.New(ErrInvalidAuthToken), "token"), nil)
		return
	}

	hashed, err := util.HashPassword(body.NewPassword)
	if err != nil {
		ac.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Password reset failed", util.GenerateErrorMessages(err), nil)
		return
	}

	err = ac.app.Repository.DB.Transaction(func(tx *gorm.DB) error {
		if err := ac.app.Repository.User.UpdatePassword(ctx, tx, claims.User.ID, hashed); err != nil {
			return err
		}
		// every session opened with the old password ends here
		return ac.app.Repository.JWT.RevokeAllForUser(ctx, tx, claims.User.ID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.ResponseFailed(ctx, http.StatusBadRequest, "Password reset failed", util.GenerateErrorMessages(errors.New(ErrInvalidAuthToken), "token"), nil)
			return
		}

		ac.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Password reset failed", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, nil)
}

func (ac AuthController) Me(ctx *gin.Context) {
	authUser, err := ac.getAuthUser(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
		return
	}

	user, err := ac.app.Repository.User.GetById(ctx, nil, authUser.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
			return
		}

		ac.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"user": user,
	})
}

// Mail failures are logged, never surfaced to the caller.
func (ac AuthController) sendVerificationMail(user model.User) {
	token, err := ac.app.JWTService.GenerateToken(auth.JWTPayload{ID: user.ID, Email: user.Email, FullName: user.FullName}, constant.JWT_TYPE_EMAIL_VERIFY)
	if err != nil {
		ac.app.Logger.Errorf("Failed to issue email verification token for %s: %v", user.ID, err)
		return
	}

	_, err = ac.app.Mailer.Send(mailer.VERIFY_EMAIL_TEMPLATE, user.FullName, user.Email, mailer.VerifyEmailData{
		AppName:   util.GetAppName(),
		FullName:  user.FullName,
		VerifyURL: util.FrontendLink(ac.app.Config.FrontendURL, "/verify-email", token.Token),
		ExpiresIn: util.DescribeDuration(time.Until(token.ExpiresAt).Round(time.Minute)),
	})
	if err != nil {
		ac.app.Logger.Errorf("Failed to send verification mail to %s: %v", user.ID, err)
	}
}

func (ac AuthController) sendResetPasswordMail(user model.User) {
	token, err := ac.app.JWTService.GenerateToken(auth.JWTPayload{ID: user.ID, Email: user.Email, FullName: user.FullName}, constant.JWT_TYPE_PASSWORD_RESET)
	if err != nil {
		ac.app.Logger.Errorf("Failed to issue password reset token for %s: %v", user.ID, err)
		return
	}

	_, err = ac.app.Mailer.Send(mailer.RESET_PASSWORD_TEMPLATE, user.FullName, user.Email, mailer.ResetPasswordData{
		AppName:   util.GetAppName(),
		FullName:  user.FullName,
		ResetURL:  util.FrontendLink(ac.app.Config.FrontendURL, "/reset-password", token.Token),
		ExpiresIn: util.DescribeDuration(time.Until(token.ExpiresAt).Round(time.Minute)),
	})
	if err != nil {
		ac.app.Logger.Errorf("Failed to send password reset mail to %s: %v", user.ID, err)
	}
}
