package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/LucasBeserra/magnetic-report-api/internal/model"
	"github.com/LucasBeserra/magnetic-report-api/internal/repository"
	"github.com/LucasBeserra/magnetic-report-api/internal/util"
	"github.com/LucasBeserra/magnetic-report-api/pkg/report"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProductController struct {
	*baseController
}

const (
	ErrProductIdRequired = "product id is required"
	ErrProductNotFound   = "product not found"
)

func (pc ProductController) CreateProduct(ctx *gin.Context) {
	type Request struct {
		Name        string               `json:"name" form:"name" binding:"required,strNotEmpty,cmax=200"`
		Code        string               `json:"code" form:"code" binding:"required,strNotEmpty,cmax=100"`
		Description string               `json:"description" form:"description"`
		Category    string               `json:"category" form:"category" binding:"max=100"`
		Template    *report.ColumnSchema `json:"template" form:"template"`
	}
	var body Request

	if err := ctx.ShouldBindJSON(&body); err != nil {
		pc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	var template report.ColumnSchema
	if body.Template != nil {
		template = *body.Template
	}
	if err := template.Validate(); err != nil {
		util.ResponseFailed(ctx, http.StatusUnprocessableEntity, "Invalid template", util.GenerateErrorMessages(err, "template"), nil)
		return
	}

	product, err := pc.app.Repository.Product.Create(ctx, nil, &model.Product{
		Name:        strings.TrimSpace(body.Name),
		Code:        strings.TrimSpace(body.Code),
		Description: body.Description,
		Category:    body.Category,
		Template:    datatypes.NewJSONType(template),
	})
	if err != nil {
		pc.productFailed(ctx, "Failed to create product", err)
		return
	}

	util.ResponseCreated(ctx, gin.H{
		"product": product,
	})
}

func (pc ProductController) GetProductList(ctx *gin.Context) {
	type Request struct {
		paginationQuery
		Search   string `form:"search" binding:"max=200"`
		Category string `form:"category" binding:"max=100"`
	}
	var params Request

	if err := ctx.ShouldBindQuery(&params); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	page, pageSize := params.normalize()
	products, total, err := pc.app.Repository.Product.List(ctx, nil, params.Search, params.Category, page, pageSize)
	if err != nil {
		pc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get products", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, util.PageData("products", products, total, page, pageSize))
}

func (pc ProductController) GetProductById(ctx *gin.Context) {
	productId := ctx.Params.ByName("productId")
	if productId == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Product id is required", util.GenerateErrorMessages(errors.New(ErrProductIdRequired), "productId"), nil)
		return
	}

	product, err := pc.app.Repository.Product.GetById(ctx, nil, productId)
	if err != nil {
		pc.productFailed(ctx, "Failed to get product", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"product": product,
	})
}

// UpdateProduct only changes the template for reports created afterwards;
// stored report tables are never rewritten.
func (pc ProductController) UpdateProduct(ctx *gin.Context) {
	type Request struct {
		Name        *string              `json:"name" binding:"omitempty,strNotEmpty,cmax=200"`
		Code        *string              `json:"code" binding:"omitempty,strNotEmpty,cmax=100"`
		Description *string              `json:"description"`
		Category    *string              `json:"category" binding:"omitempty,max=100"`
		Template    *report.ColumnSchema `json:"template"`
	}
	var body Request

	productId := ctx.Params.ByName("productId")
	if productId == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Product id is required", util.GenerateErrorMessages(errors.New(ErrProductIdRequired), "productId"), nil)
		return
	}

	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	fields := map[string]any{}
	if body.Name != nil {
		fields["name"] = strings.TrimSpace(*body.Name)
	}
	if body.Code != nil {
		fields["code"] = strings.TrimSpace(*body.Code)
	}
	if body.Description != nil {
		fields["description"] = *body.Description
	}
	if body.Category != nil {
		fields["category"] = *body.Category
	}
	if body.Template != nil {
		if err := body.Template.Validate(); err != nil {
			util.ResponseFailed(ctx, http.StatusUnprocessableEntity, "Invalid template", util.GenerateErrorMessages(err, "template"), nil)
			return
		}
		fields["template"] = datatypes.NewJSONType(*body.Template)
	}

	product, err := pc.app.Repository.Product.Update(ctx, nil, productId, fields)
	if err != nil {
		pc.productFailed(ctx, "Failed to update product", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"product": product,
	})
}

func (pc ProductController) DeleteProduct(ctx *gin.Context) {
	productId := ctx.Params.ByName("productId")
	if productId == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Product id is required", util.GenerateErrorMessages(errors.New(ErrProductIdRequired), "productId"), nil)
		return
	}

	if err := pc.app.Repository.Product.Delete(ctx, nil, productId); err != nil {
		pc.productFailed(ctx, "Failed to delete product", err)
		return
	}

	util.ResponseSuccess(ctx, nil)
}

func (pc ProductController) productFailed(ctx *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		util.ResponseFailed(ctx, http.StatusNotFound, message, util.GenerateErrorMessages(errors.New(ErrProductNotFound), "productId"), nil)
	case errors.Is(err, repository.ErrProductCodeTaken):
		util.ResponseFailed(ctx, http.StatusConflict, message, util.GenerateErrorMessages(err, "code"), nil)
	case errors.Is(err, repository.ErrProductHasReports):
		util.ResponseFailed(ctx, http.StatusConflict, message, util.GenerateErrorMessages(err, "productId"), nil)
	default:
		pc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, message, util.GenerateErrorMessages(err), nil)
	}
}
