package controller

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/LucasBeserra/magnetic-report-api/internal/model"
	"github.com/LucasBeserra/magnetic-report-api/internal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PhotoController struct {
	*baseController
}

const (
	ErrPhotoIdRequired      = "photo id is required"
	ErrPhotoNotFound        = "photo not found"
	ErrPhotoFileRequired    = "photo file is required"
	ErrPhotoFileType        = "file type not allowed, accepted: %s"
	ErrPhotoFileTooLarge    = "file exceeds the maximum size of %d bytes"
	ErrPhotoCaptionTooLarge = "caption must be at most 500 characters"
	maxCaptionLength        = 500
)

func photoStorageName(reportId, storedName string) string {
	return path.Join("reports", reportId, storedName)
}

// The url is best effort; a storage hiccup leaves it empty rather than failing the request.
func (b *baseController) photoURL(ctx *gin.Context, photo model.Photo) string {
	url, err := b.app.Storage.URL(ctx, photo.StoragePath)
	if err != nil {
		b.app.Logger.Warnw("Failed to build photo url", "photoId", photo.ID, "error", err)
		return ""
	}
	return url
}

func (pc PhotoController) UploadPhoto(ctx *gin.Context) {
	storageCfg := pc.app.Config.Storage

	reportId := ctx.Params.ByName("reportId")
	if reportId == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Report id is required", util.GenerateErrorMessages(errors.New(ErrReportIdRequired), "reportId"), nil)
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "No photo uploaded", util.GenerateErrorMessages(errors.New(ErrPhotoFileRequired), "file"), nil)
		return
	}

	if !util.IsAllowedExtension(fileHeader.Filename, storageCfg.AllowedExtensions) {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid file type", util.GenerateErrorMessages(fmt.Errorf(ErrPhotoFileType, strings.Join(storageCfg.AllowedExtensions, ", ")), "file"), nil)
		return
	}

	if fileHeader.Size > storageCfg.MaxFileSize {
		util.ResponseFailed(ctx, http.StatusRequestEntityTooLarge, "File too large", util.GenerateErrorMessages(fmt.Errorf(ErrPhotoFileTooLarge, storageCfg.MaxFileSize), "file"), nil)
		return
	}

	caption := strings.TrimSpace(ctx.PostForm("caption"))
	if len([]rune(caption)) > maxCaptionLength {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid caption", util.GenerateErrorMessages(errors.New(ErrPhotoCaptionTooLarge), "caption"), nil)
		return
	}

	if _, err := pc.app.Repository.Report.GetById(ctx, nil, reportId); err != nil {
		pc.photoFailed(ctx, "Failed to upload photo", err, ErrReportNotFound, "reportId")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		pc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to read photo", util.GenerateErrorMessages(err), nil)
		return
	}
	defer src.Close()

	raw, err := io.ReadAll(io.LimitReader(src, storageCfg.MaxFileSize+1))
	if err != nil {
		pc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to read photo", util.GenerateErrorMessages(err), nil)
		return
	}
	if int64(len(raw)) > storageCfg.MaxFileSize {
		util.ResponseFailed(ctx, http.StatusRequestEntityTooLarge, "File too large", util.GenerateErrorMessages(fmt.Errorf(ErrPhotoFileTooLarge, storageCfg.MaxFileSize), "file"), nil)
		return
	}

	data, ext, mimeType := raw, util.FileExtension(fileHeader.Filename), http.DetectContentType(raw)
	optimized, err := util.OptimizeImage(raw, storageCfg.MaxImageWidth, storageCfg.JPEGQuality)
	if err != nil {
		pc.app.Logger.Warnw("Failed to optimize photo, storing the original", "reportId", reportId, "file", fileHeader.Filename, "error", err)
	} else {
		data, ext, mimeType = optimized.Data, optimized.Ext, optimized.MimeType
	}

	storedName := util.UniqueFileName(ext)
	storagePath, err := pc.app.Storage.Save(ctx, photoStorageName(reportId, storedName), bytes.NewReader(data), int64(len(data)), mimeType)
	if err != nil {
		pc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to store photo", util.GenerateErrorMessages(err), nil)
		return
	}

	photo, err := pc.app.Repository.Photo.Create(ctx, nil, &model.Photo{
		OriginalName: fileHeader.Filename,
		StoredName:   storedName,
		StoragePath:  storagePath,
		SizeBytes:    int64(len(data)),
		MimeType:     mimeType,
		Caption:      caption,
		ReportID:     reportId,
	})
	if err != nil {
		// the record failed, do not leave the file behind
		if delErr := pc.app.Storage.Delete(ctx, storagePath); delErr != nil {
			pc.app.Logger.Errorw("Failed to clean up stored photo", "storagePath", storagePath, "error", delErr)
		}
		pc.photoFailed(ctx, "Failed to upload photo", err, ErrReportNotFound, "reportId")
		return
	}

	photo.URL = pc.photoURL(ctx, *photo)
	util.ResponseCreated(ctx, gin.H{
		"photo": photo,
	})
}

func (pc PhotoController) GetPhotoList(ctx *gin.Context) {
	reportId := ctx.Params.ByName("reportId")
	if reportId == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Report id is required", util.GenerateErrorMessages(errors.New(ErrReportIdRequired), "reportId"), nil)
		return
	}

	if _, err := pc.app.Repository.Report.GetById(ctx, nil, reportId); err != nil {
		pc.photoFailed(ctx, "Failed to get photos", err, ErrReportNotFound, "reportId")
		return
	}

	photos, err := pc.app.Repository.Photo.ListByReport(ctx, nil, reportId)
	if err != nil {
		pc.photoFailed(ctx, "Failed to get photos", err, ErrReportNotFound, "reportId")
		return
	}

	for i := range photos {
		photos[i].URL = pc.photoURL(ctx, photos[i])
	}

	util.ResponseSuccess(ctx, gin.H{
		"photos": photos,
	})
}

func (pc PhotoController) DeletePhoto(ctx *gin.Context) {
	reportId := ctx.Params.ByName("reportId")
	photoId := ctx.Params.ByName("photoId")
	if photoId == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Photo id is required", util.GenerateErrorMessages(errors.New(ErrPhotoIdRequired), "photoId"), nil)
		return
	}

	photo, err := pc.app.Repository.Photo.GetById(ctx, nil, reportId, photoId)
	if err != nil {
		pc.photoFailed(ctx, "Failed to delete photo", err, ErrPhotoNotFound, "photoId")
		return
	}

	if err := pc.app.Repository.Photo.Delete(ctx, photo); err != nil {
		pc.photoFailed(ctx, "Failed to delete photo", err, ErrPhotoNotFound, "photoId")
		return
	}

	util.ResponseSuccess(ctx, nil)
}

func (pc PhotoController) photoFailed(ctx *gin.Context, message string, err error, notFound string, field string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.ResponseFailed(ctx, http.StatusNotFound, message, util.GenerateErrorMessages(errors.New(notFound), field), nil)
		return
	}

	pc.app.Logger.Error(err)
	util.ResponseFailed(ctx, http.StatusInternalServerError, message, util.GenerateErrorMessages(err), nil)
}
