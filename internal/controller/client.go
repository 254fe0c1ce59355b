package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/LucasBeserra/magnetic-report-api/internal/model"
	"github.com/LucasBeserra/magnetic-report-api/internal/repository"
	"github.com/LucasBeserra/magnetic-report-api/internal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ClientController struct {
	*baseController
}

const (
	ErrClientIdRequired = "client id is required"
	ErrClientNotFound   = "client not found"
)

func (cc ClientController) CreateClient(ctx *gin.Context) {
	type Request struct {
		Name    string  `json:"name" form:"name" binding:"required,strNotEmpty,cmin=2,cmax=200"`
		Email   *string `json:"email" form:"email" binding:"omitempty,email,max=255"`
		Phone   string  `json:"phone" form:"phone" binding:"max=50"`
		Company string  `json:"company" form:"company" binding:"max=200"`
		Address string  `json:"address" form:"address"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		cc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	client, err := cc.app.Repository.Client.Create(ctx, nil, &model.Client{
		Name:    strings.TrimSpace(body.Name),
		Email:   body.Email,
		Phone:   body.Phone,
		Company: body.Company,
		Address: body.Address,
	})
	if err != nil {
		if errors.Is(err, repository.ErrClientEmailTaken) {
			util.ResponseFailed(ctx, http.StatusConflict, "Failed to create client", util.GenerateErrorMessages(err, "email"), nil)
			return
		}

		cc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to create client", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseCreated(ctx, gin.H{
		"client": client,
	})
}

func (cc ClientController) GetClientList(ctx *gin.Context) {
	type Request struct {
		paginationQuery
		Search string `form:"search" binding:"max=200"`
	}
	var params Request

	if err := ctx.ShouldBindQuery(&params); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	page, pageSize := params.normalize()
	clients, total, err := cc.app.Repository.Client.List(ctx, nil, params.Search, page, pageSize)
	if err != nil {
		cc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get clients", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, util.PageData("clients", clients, total, page, pageSize))
}

func (cc ClientController) GetClientById(ctx *gin.Context) {
	clientId := ctx.Params.ByName("clientId")
	if clientId == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Client id is required", util.GenerateErrorMessages(errors.New(ErrClientIdRequired), "clientId"), nil)
		return
	}

	client, err := cc.app.Repository.Client.GetById(ctx, nil, clientId)
	if err != nil {
		cc.clientFailed(ctx, "Failed to get client", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"client": client,
	})
}

func (cc ClientController) UpdateClient(ctx *gin.Context) {
	type Request struct {
		Name    *string `json:"name" form:"name" binding:"omitempty,strNotEmpty,cmin=2,cmax=200"`
		Email   *string `json:"email" form:"email" binding:"omitempty,email,max=255"`
		Phone   *string `json:"phone" form:"phone" binding:"omitempty,max=50"`
		Company *string `json:"company" form:"company" binding:"omitempty,max=200"`
		Address *string `json:"address" form:"address"`
	}
	var body Request

	clientId := ctx.Params.ByName("clientId")
	if clientId == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Client id is required", util.GenerateErrorMessages(errors.New(ErrClientIdRequired), "clientId"), nil)
		return
	}

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	fields := map[string]any{}
	if body.Name != nil {
		fields["name"] = strings.TrimSpace(*body.Name)
	}
	if body.Email != nil {
		fields["email"] = body.Email
	}
	if body.Phone != nil {
		fields["phone"] = *body.Phone
	}
	if body.Company != nil {
		fields["company"] = *body.Company
	}
	if body.Address != nil {
		fields["address"] = *body.Address
	}

	client, err := cc.app.Repository.Client.Update(ctx, nil, clientId, fields)
	if err != nil {
		cc.clientFailed(ctx, "Failed to update client", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"client": client,
	})
}

func (cc ClientController) DeleteClient(ctx *gin.Context) {
	clientId := ctx.Params.ByName("clientId")
	if clientId == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Client id is required", util.GenerateErrorMessages(errors.New(ErrClientIdRequired), "clientId"), nil)
		return
	}

	if err := cc.app.Repository.Client.Delete(ctx, nil, clientId); err != nil {
		cc.clientFailed(ctx, "Failed to delete client", err)
		return
	}

	util.ResponseSuccess(ctx, nil)
}

func (cc ClientController) clientFailed(ctx *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		util.ResponseFailed(ctx, http.StatusNotFound, message, util.GenerateErrorMessages(errors.New(ErrClientNotFound), "clientId"), nil)
	case errors.Is(err, repository.ErrClientEmailTaken):
		util.ResponseFailed(ctx, http.StatusConflict, message, util.GenerateErrorMessages(err, "email"), nil)
	case errors.Is(err, repository.ErrClientHasReports):
		util.ResponseFailed(ctx, http.StatusConflict, message, util.GenerateErrorMessages(err, "clientId"), nil)
	default:
		cc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, message, util.GenerateErrorMessages(err), nil)
	}
}
