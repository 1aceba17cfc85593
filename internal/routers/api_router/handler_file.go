package api_router

import (
	"io"
	"net/http"

	"github.com/micbed86/FancyNote-sub000/global"
	"github.com/micbed86/FancyNote-sub000/internal/dto"
	"github.com/micbed86/FancyNote-sub000/pkg/app"
	"github.com/micbed86/FancyNote-sub000/pkg/code"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FileUpload stores one attachment for a note.
// POST /api/file/upload  (multipart: file + noteId + kind)
func (h *Handler) FileUpload(c *gin.Context) {
	response := app.NewResponse(c)

	param := dto.FileUploadRequest{}
	valid, errs := app.BindAndValid(c, &param)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails("file is required"))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.ToResponse(code.ErrorFileUploadFail.WithDetails(err.Error()))
		return
	}
	defer f.Close()

	result, errCode := h.svc.FileUpload(
		app.GetUID(c), &param,
		fileHeader.Filename, fileHeader.Size,
		fileHeader.Header.Get("Content-Type"), f,
	)
	if errCode != nil {
		global.Log().Error("FileHandler.Upload err",
			zap.Int64("noteId", param.NoteID),
			zap.String("err", errCode.Error()),
		)
		response.ToResponse(errCode)
		return
	}
	response.ToResponse(code.Success.WithData(result))
}

// FileGet streams one attachment. Access is granted by a short-lived
// file token instead of the user session, so external fetchers (model
// providers resolving image URLs) can read exactly one object.
// GET /api/file?path=...&token=...
func (h *Handler) FileGet(c *gin.Context) {
	response := app.NewResponse(c)

	param := dto.FileGetRequest{}
	valid, errs := app.BindAndValid(c, &param)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	rc, errCode := h.svc.FileOpen(param.Path, param.Token)
	if errCode != nil {
		response.ToResponse(errCode)
		return
	}
	defer rc.Close()

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		global.Log().Warn("FileHandler.Get stream err",
			zap.String("path", param.Path),
			zap.Error(err),
		)
	}
}
