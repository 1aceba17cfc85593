package api_router

import (
	"github.com/micbed86/FancyNote-sub000/global"
	"github.com/micbed86/FancyNote-sub000/internal/dto"
	"github.com/micbed86/FancyNote-sub000/pkg/app"
	"github.com/micbed86/FancyNote-sub000/pkg/code"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NoteCreate stores a new note.
// POST /api/note
func (h *Handler) NoteCreate(c *gin.Context) {
	response := app.NewResponse(c)

	param := dto.NoteCreateRequest{}
	valid, errs := app.BindAndValid(c, &param)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	note, errCode := h.svc.NoteCreate(app.GetUID(c), &param)
	if errCode != nil {
		global.Log().Error("NoteHandler.Create err", zap.String("err", errCode.Error()))
		response.ToResponse(errCode)
		return
	}
	response.ToResponse(code.Success.WithData(note))
}

// NoteGet fetches one note.
// GET /api/note/:noteId
func (h *Handler) NoteGet(c *gin.Context) {
	response := app.NewResponse(c)

	param := dto.NoteGetRequest{}
	if err := c.ShouldBindUri(&param); err != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(err.Error()))
		return
	}

	note, errCode := h.svc.NoteGet(app.GetUID(c), param.NoteID)
	if errCode != nil {
		response.ToResponse(errCode)
		return
	}
	response.ToResponse(code.Success.WithData(note))
}

// NoteList returns one page of notes.
// GET /api/note/list
func (h *Handler) NoteList(c *gin.Context) {
	response := app.NewResponse(c)

	notes, total, errCode := h.svc.NoteList(app.GetUID(c), app.GetPage(c), app.GetPageSize(c))
	if errCode != nil {
		global.Log().Error("NoteHandler.List err", zap.String("err", errCode.Error()))
		response.ToResponse(errCode)
		return
	}
	response.ToResponseList(code.Success, notes, int(total))
}

// NoteUpdate overwrites user-editable fields.
// POST /api/note/update
func (h *Handler) NoteUpdate(c *gin.Context) {
	response := app.NewResponse(c)

	param := dto.NoteUpdateRequest{}
	valid, errs := app.BindAndValid(c, &param)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	if errCode := h.svc.NoteUpdate(app.GetUID(c), &param); errCode != nil {
		response.ToResponse(errCode)
		return
	}
	response.ToResponse(code.Success)
}

// NoteDelete removes a note and its attachments.
// POST /api/note/delete
func (h *Handler) NoteDelete(c *gin.Context) {
	response := app.NewResponse(c)

	param := dto.NoteDeleteRequest{}
	valid, errs := app.BindAndValid(c, &param)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	if errCode := h.svc.NoteDelete(app.GetUID(c), param.NoteID); errCode != nil {
		response.ToResponse(errCode)
		return
	}
	response.ToResponse(code.Success)
}

// NoteWeb creates a note from a scraped web page.
// POST /api/note/web
func (h *Handler) NoteWeb(c *gin.Context) {
	response := app.NewResponse(c)

	param := dto.NoteWebRequest{}
	valid, errs := app.BindAndValid(c, &param)
	if !valid {
		response.ToResponse(code.ErrorScrapeInvalidURL.WithDetails(errs.Errors()...))
		return
	}

	note, errCode := h.svc.NoteCreateFromWeb(c.Request.Context(), app.GetUID(c), &param)
	if errCode != nil {
		global.Log().Error("NoteHandler.Web err", zap.String("err", errCode.Error()))
		response.ToResponse(errCode)
		return
	}
	response.ToResponse(code.Success.WithData(note))
}
