package api_router

import (
	"github.com/micbed86/FancyNote-sub000/global"
	"github.com/micbed86/FancyNote-sub000/internal/dto"
	"github.com/micbed86/FancyNote-sub000/pkg/app"
	"github.com/micbed86/FancyNote-sub000/pkg/code"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NoteProcess starts the enrichment pipeline and acknowledges
// immediately; the result arrives through note status and
// notifications.
// POST /api/note/process
func (h *Handler) NoteProcess(c *gin.Context) {
	response := app.NewResponse(c)

	param := dto.NoteProcessRequest{}
	valid, errs := app.BindAndValid(c, &param)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	ack, errCode := h.svc.TriggerProcess(app.GetUID(c), &param)
	if errCode != nil {
		global.Log().Error("ProcessHandler.NoteProcess err",
			zap.Int64("noteId", param.NoteID),
			zap.String("err", errCode.Error()),
		)
		response.ToResponse(errCode)
		return
	}
	response.ToResponse(code.SuccessProcessingStarted.WithData(ack))
}

// NoteProcessUpdate re-runs enrichment with a user instruction.
// POST /api/note/process/update
func (h *Handler) NoteProcessUpdate(c *gin.Context) {
	response := app.NewResponse(c)

	param := dto.NoteProcessUpdateRequest{}
	valid, errs := app.BindAndValid(c, &param)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	ack, errCode := h.svc.TriggerProcessUpdate(app.GetUID(c), &param)
	if errCode != nil {
		global.Log().Error("ProcessHandler.NoteProcessUpdate err",
			zap.Int64("noteId", param.NoteID),
			zap.String("err", errCode.Error()),
		)
		response.ToResponse(errCode)
		return
	}
	response.ToResponse(code.SuccessProcessingStarted.WithData(ack))
}
