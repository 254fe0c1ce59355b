package controller

import (
	"encoding/json"
	"errors"
	"fmt"

	appcontext "github.com/LucasBeserra/magnetic-report-api/internal/app_context"
	"github.com/LucasBeserra/magnetic-report-api/internal/auth"
	"github.com/LucasBeserra/magnetic-report-api/internal/util"
	"github.com/gin-gonic/gin"
)

type baseController struct {
	app *appcontext.Application
}

type Controller struct {
	Index   *IndexController
	Auth    *AuthController
	Client  *ClientController
	Product *ProductController
	Report  *ReportController
	Photo   *PhotoController
}

func newBaseController(app *appcontext.Application) *baseController {
	return &baseController{app: app}
}

func NewController(app *appcontext.Application) *Controller {
	bc := newBaseController(app)

	return &Controller{
		Index:   &IndexController{baseController: bc},
		Auth:    &AuthController{baseController: bc},
		Client:  &ClientController{baseController: bc},
		Product: &ProductController{baseController: bc},
		Report:  &ReportController{baseController: bc},
		Photo:   &PhotoController{baseController: bc},
	}
}

func (b *baseController) getAuthUser(ctx *gin.Context) (*auth.JWTPayload, error) {
	user, exists := ctx.Get("user")
	if !exists {
		return nil, errors.New("user not found in context")
	}

	if payload, ok := user.(auth.JWTPayload); ok {
		return &payload, nil
	}

	jsonUser, err := json.Marshal(user)
	if err != nil {
		return nil, err
	}

	var authUser *auth.JWTPayload
	err = json.Unmarshal(jsonUser, &authUser)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	return authUser, nil
}

type paginationQuery struct {
	Page     uint `form:"page" binding:"omitempty,gte=1"`
	PageSize uint `form:"pageSize" binding:"omitempty,gte=1"`
}

func (p paginationQuery) normalize() (uint, uint) {
	return util.NormalizePagination(p.Page, p.PageSize)
}
