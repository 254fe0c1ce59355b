package util

import (
	"net/http"

	constant "github.com/LucasBeserra/magnetic-report-api/internal/constant"
	"github.com/gin-gonic/gin"
)

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func BuildResponseSuccess(data any) Response {
	if data == nil {
		data = gin.H{}
	}

	return Response{
		Success: true,
		Message: constant.REQUEST_SUCCESSFUL,
		Data:    data,
	}
}

func ResponseSuccess(ctx *gin.Context, data any) {
	ctx.JSON(http.StatusOK, BuildResponseSuccess(data))
	ctx.Abort()
}

func ResponseCreated(ctx *gin.Context, data any) {
	ctx.JSON(http.StatusCreated, BuildResponseSuccess(data))
	ctx.Abort()
}

// err is usually the []ApiError from GenerateErrorMessages; a bare error is
// converted here so the envelope always carries a list.
func BuildResponseFailed(message string, err any, data any) Response {
	if message == "" {
		message = constant.REQUEST_UNSUCCESSFUL
	}

	var errs any
	switch e := err.(type) {
	case nil:
		errs = []ApiError{}
	case error:
		errs = GenerateErrorMessages(e)
	default:
		errs = e
	}

	if data == nil {
		data = gin.H{}
	}

	return Response{
		Success: false,
		Message: message,
		Errors:  errs,
		Data:    data,
	}
}

func ResponseFailed(ctx *gin.Context, code int, message string, err any, data any) {
	ctx.JSON(code, BuildResponseFailed(message, err, data))
	ctx.Abort()
}

// PageData is the list envelope shared by every list endpoint, with the items
// under key.
func PageData(key string, items any, total int64, page, pageSize uint) gin.H {
	return gin.H{
		key:         items,
		"total":     total,
		"page":      page,
		"pageSize":  pageSize,
		"totalPage": CalculateTotalPage(total, pageSize),
	}
}
