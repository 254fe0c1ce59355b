package controller

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/LucasBeserra/magnetic-report-api/internal/model"
	"github.com/LucasBeserra/magnetic-report-api/internal/repository"
	"github.com/LucasBeserra/magnetic-report-api/internal/util"
	"github.com/LucasBeserra/magnetic-report-api/pkg/report"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ReportController struct {
	*baseController
}

const (
	ErrReportIdRequired = "report id is required"
	ErrReportNotFound   = "report not found"
	ErrCSVFileRequired  = "a .csv file is required"

	HeaderReportPages         = "X-Report-Pages"
	HeaderReportSkippedPhotos = "X-Report-Skipped-Photos"
)

// Table problems that the client can fix map to 422.
func isTableError(err error) bool {
	return errors.Is(err, report.ErrMalformedTable) ||
		errors.Is(err, report.ErrSchemaMismatch) ||
		errors.Is(err, report.ErrCellType)
}

func (rc ReportController) CreateReport(ctx *gin.Context) {
	type Request struct {
		OrderCode   string            `json:"orderCode" binding:"required,strNotEmpty,cmax=100"`
		Title       string            `json:"title" binding:"required,strNotEmpty,cmax=200"`
		Description string            `json:"description"`
		Notes       string            `json:"notes"`
		Status      string            `json:"status" binding:"max=50"`
		ClientID    string            `json:"clientId" binding:"required"`
		ProductID   string            `json:"productId" binding:"required"`
		Table       *report.TableData `json:"table"`
	}
	var body Request

	if err := ctx.ShouldBindJSON(&body); err != nil {
		rc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	if _, err := rc.app.Repository.Client.GetById(ctx, nil, body.ClientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.ResponseFailed(ctx, http.StatusNotFound, "Failed to create report", util.GenerateErrorMessages(errors.New(ErrClientNotFound), "clientId"), nil)
			return
		}
		rc.reportFailed(ctx, "Failed to create report", err)
		return
	}

	product, err := rc.app.Repository.Product.GetById(ctx, nil, body.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.ResponseFailed(ctx, http.StatusNotFound, "Failed to create report", util.GenerateErrorMessages(errors.New(ErrProductNotFound), "productId"), nil)
			return
		}
		rc.reportFailed(ctx, "Failed to create report", err)
		return
	}

	if err := body.Table.Validate(); err != nil {
		util.ResponseFailed(ctx, http.StatusUnprocessableEntity, "Invalid table", util.GenerateErrorMessages(err, "table"), nil)
		return
	}
	if err := product.Schema().Check(body.Table); err != nil {
		util.ResponseFailed(ctx, http.StatusUnprocessableEntity, "Table does not follow the product template", util.GenerateErrorMessages(err, "table"), nil)
		return
	}

	created, err := rc.app.Repository.Report.Create(ctx, nil, &model.Report{
		OrderCode:   strings.TrimSpace(body.OrderCode),
		Title:       strings.TrimSpace(body.Title),
		Description: body.Description,
		Notes:       body.Notes,
		Status:      strings.TrimSpace(body.Status),
		ClientID:    body.ClientID,
		ProductID:   body.ProductID,
		Table:       datatypes.NewJSONType(body.Table),
	})
	if err != nil {
		rc.reportFailed(ctx, "Failed to create report", err)
		return
	}

	full, err := rc.app.Repository.Report.GetById(ctx, nil, created.ID)
	if err != nil {
		rc.reportFailed(ctx, "Failed to create report", err)
		return
	}

	util.ResponseCreated(ctx, gin.H{
		"report": rc.withPhotoURLs(ctx, full),
	})
}

func (rc ReportController) GetReportList(ctx *gin.Context) {
	type Request struct {
		paginationQuery
		Status    string `form:"status" binding:"max=50"`
		ClientID  string `form:"clientId"`
		ProductID string `form:"productId"`
	}
	var params Request

	if err := ctx.ShouldBindQuery(&params); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	page, pageSize := params.normalize()
	reports, total, err := rc.app.Repository.Report.List(ctx, nil, repository.ReportFilter{
		Status:    params.Status,
		ClientID:  params.ClientID,
		ProductID: params.ProductID,
	}, page, pageSize)
	if err != nil {
		rc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get reports", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, util.PageData("reports", reports, total, page, pageSize))
}

func (rc ReportController) GetReportById(ctx *gin.Context) {
	reportId := ctx.Params.ByName("reportId")
	if reportId == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Report id is required", util.GenerateErrorMessages(errors.New(ErrReportIdRequired), "reportId"), nil)
		return
	}

	rep, err := rc.app.Repository.Report.GetById(ctx, nil, reportId)
	if err != nil {
		rc.reportFailed(ctx, "Failed to get report", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"report": rc.withPhotoURLs(ctx, rep),
	})
}

func (rc ReportController) UpdateReport(ctx *gin.Context) {
	type Request struct {
		OrderCode   *string           `json:"orderCode" binding:"omitempty,strNotEmpty,cmax=100"`
		Title       *string           `json:"title" binding:"omitempty,strNotEmpty,cmax=200"`
		Description *string           `json:"description"`
		Notes       *string           `json:"notes"`
		Status      *string           `json:"status" binding:"omitempty,strNotEmpty,max=50"`
		ClientID    *string           `json:"clientId" binding:"omitempty,strNotEmpty"`
		ProductID   *string           `json:"productId" binding:"omitempty,strNotEmpty"`
		Table       *report.TableData `json:"table"`
	}
	var body Request

	reportId := ctx.Params.ByName("reportId")
	if reportId == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Report id is required", util.GenerateErrorMessages(errors.New(ErrReportIdRequired), "reportId"), nil)
		return
	}

	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	current, err := rc.app.Repository.Report.GetById(ctx, nil, reportId)
	if err != nil {
		rc.reportFailed(ctx, "Failed to update report", err)
		return
	}

	fields := map[string]any{}
	if body.OrderCode != nil {
		fields["order_code"] = strings.TrimSpace(*body.OrderCode)
	}
	if body.Title != nil {
		fields["title"] = strings.TrimSpace(*body.Title)
	}
	if body.Description != nil {
		fields["description"] = *body.Description
	}
	if body.Notes != nil {
		fields["notes"] = *body.Notes
	}
	if body.Status != nil {
		fields["status"] = strings.TrimSpace(*body.Status)
	}

	if body.ClientID != nil && *body.ClientID != current.ClientID {
		if _, err := rc.app.Repository.Client.GetById(ctx, nil, *body.ClientID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				util.ResponseFailed(ctx, http.StatusNotFound, "Failed to update report", util.GenerateErrorMessages(errors.New(ErrClientNotFound), "clientId"), nil)
				return
			}
			rc.reportFailed(ctx, "Failed to update report", err)
			return
		}
		fields["client_id"] = *body.ClientID
	}

	product := current.Product
	productChanged := body.ProductID != nil && *body.ProductID != current.ProductID
	if productChanged {
		product, err = rc.app.Repository.Product.GetById(ctx, nil, *body.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				util.ResponseFailed(ctx, http.StatusNotFound, "Failed to update report", util.GenerateErrorMessages(errors.New(ErrProductNotFound), "productId"), nil)
				return
			}
			rc.reportFailed(ctx, "Failed to update report", err)
			return
		}
		fields["product_id"] = product.ID
	}

	schema := &report.ColumnSchema{}
	if product != nil {
		schema = product.Schema()
	}

	switch {
	case body.Table != nil:
		// columns kept from an older template only count for the same product
		previous := current.Table.Data()
		if productChanged {
			previous = nil
		}
		if err := schema.CheckRevision(previous, body.Table); err != nil {
			util.ResponseFailed(ctx, http.StatusUnprocessableEntity, "Invalid table", util.GenerateErrorMessages(err, "table"), nil)
			return
		}
		fields["table_data"] = datatypes.NewJSONType(body.Table)
	case productChanged:
		if err := schema.Check(current.Table.Data()); err != nil {
			util.ResponseFailed(ctx, http.StatusUnprocessableEntity, "Stored table does not fit the new product", util.GenerateErrorMessages(err, "table"), nil)
			return
		}
	}

	updated, err := rc.app.Repository.Report.Update(ctx, nil, reportId, fields)
	if err != nil {
		rc.reportFailed(ctx, "Failed to update report", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"report": rc.withPhotoURLs(ctx, updated),
	})
}

// ImportTableCSV replaces the report table with an uploaded CSV, under the
// same rules as a table sent through UpdateReport.
func (rc ReportController) ImportTableCSV(ctx *gin.Context) {
	reportId := ctx.Params.ByName("reportId")
	if reportId == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Report id is required", util.GenerateErrorMessages(errors.New(ErrReportIdRequired), "reportId"), nil)
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "No csv uploaded", util.GenerateErrorMessages(errors.New(ErrCSVFileRequired), "file"), nil)
		return
	}
	if util.FileExtension(fileHeader.Filename) != "csv" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid file type", util.GenerateErrorMessages(errors.New(ErrCSVFileRequired), "file"), nil)
		return
	}
	if fileHeader.Size > rc.app.Config.Storage.MaxFileSize {
		util.ResponseFailed(ctx, http.StatusRequestEntityTooLarge, "File too large", util.GenerateErrorMessages(fmt.Errorf(ErrPhotoFileTooLarge, rc.app.Config.Storage.MaxFileSize), "file"), nil)
		return
	}

	current, err := rc.app.Repository.Report.GetById(ctx, nil, reportId)
	if err != nil {
		rc.reportFailed(ctx, "Failed to import table", err)
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		rc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to read csv", util.GenerateErrorMessages(err), nil)
		return
	}
	defer src.Close()

	table, err := report.ReadTableCSV(src)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnprocessableEntity, "Invalid csv", util.GenerateErrorMessages(err, "file"), nil)
		return
	}

	schema := &report.ColumnSchema{}
	if current.Product != nil {
		schema = current.Product.Schema()
	}
	if err := schema.CheckRevision(current.Table.Data(), table); err != nil {
		util.ResponseFailed(ctx, http.StatusUnprocessableEntity, "Invalid table", util.GenerateErrorMessages(err, "table"), nil)
		return
	}

	updated, err := rc.app.Repository.Report.Update(ctx, nil, reportId, map[string]any{
		"table_data": datatypes.NewJSONType(table),
	})
	if err != nil {
		rc.reportFailed(ctx, "Failed to import table", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"report": rc.withPhotoURLs(ctx, updated),
	})
}

func (rc ReportController) DeleteReport(ctx *gin.Context) {
	reportId := ctx.Params.ByName("reportId")
	if reportId == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Report id is required", util.GenerateErrorMessages(errors.New(ErrReportIdRequired), "reportId"), nil)
		return
	}

	result, err := rc.app.Repository.Report.Delete(ctx, reportId)
	if err != nil {
		rc.reportFailed(ctx, "Failed to delete report", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"orphanedFiles": len(result.Orphans),
	})
}

// RenderReportPdf publishes the report under the render output directory and
// serves the published file.
func (rc ReportController) RenderReportPdf(ctx *gin.Context) {
	reportId := ctx.Params.ByName("reportId")
	if reportId == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Report id is required", util.GenerateErrorMessages(errors.New(ErrReportIdRequired), "reportId"), nil)
		return
	}

	rep, err := rc.app.Repository.Report.GetForRender(ctx, reportId)
	if err != nil {
		rc.reportFailed(ctx, "Failed to render report", err)
		return
	}

	renderer := rc.app.Renderer
	result, err := renderer.RenderToFile(ctx, rep.ToView(), renderer.OutputPath(rep.OrderCode))
	if err != nil {
		var re *report.RenderError
		if errors.As(err, &re) && re.Kind == report.KindStructural {
			util.ResponseFailed(ctx, http.StatusUnprocessableEntity, "Report cannot be rendered", util.GenerateErrorMessages(err, "table"), nil)
			return
		}

		rc.app.Logger.Errorw("Failed to render report", "reportId", reportId, "error", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to render report", util.GenerateErrorMessages(err), nil)
		return
	}

	skipped := result.Skipped()
	for _, s := range skipped {
		rc.app.Logger.Warnw("Photo skipped while rendering",
			"reportId", reportId, "photoId", s.Photo.ID, "storagePath", s.Photo.StoragePath, "reason", s.Reason, "error", s.Err)
	}
	for _, w := range result.Warnings {
		rc.app.Logger.Warnw("Render warning", "reportId", reportId, "warning", w)
	}

	ctx.Header(HeaderReportPages, fmt.Sprintf("%d", result.Pages))
	ctx.Header(HeaderReportSkippedPhotos, fmt.Sprintf("%d", len(skipped)))
	ctx.FileAttachment(result.Path, filepath.Base(result.Path))
}

func (rc ReportController) withPhotoURLs(ctx *gin.Context, rep *model.Report) *model.Report {
	for i := range rep.Photos {
		rep.Photos[i].URL = rc.photoURL(ctx, rep.Photos[i])
	}
	return rep
}

func (rc ReportController) reportFailed(ctx *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		util.ResponseFailed(ctx, http.StatusNotFound, message, util.GenerateErrorMessages(errors.New(ErrReportNotFound), "reportId"), nil)
	case errors.Is(err, repository.ErrOrderCodeTaken):
		util.ResponseFailed(ctx, http.StatusConflict, message, util.GenerateErrorMessages(err, "orderCode"), nil)
	case isTableError(err):
		util.ResponseFailed(ctx, http.StatusUnprocessableEntity, message, util.GenerateErrorMessages(err, "table"), nil)
	default:
		rc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, message, util.GenerateErrorMessages(err), nil)
	}
}
