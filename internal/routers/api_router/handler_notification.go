package api_router

import (
	"github.com/micbed86/FancyNote-sub000/internal/dto"
	"github.com/micbed86/FancyNote-sub000/pkg/app"
	"github.com/micbed86/FancyNote-sub000/pkg/code"

	"github.com/gin-gonic/gin"
)

// NotificationList returns one page of the user's notifications.
// GET /api/notification/list
func (h *Handler) NotificationList(c *gin.Context) {
	response := app.NewResponse(c)

	list, total, errCode := h.svc.NotificationList(app.GetUID(c), app.GetPage(c), app.GetPageSize(c))
	if errCode != nil {
		response.ToResponse(errCode)
		return
	}
	response.ToResponseList(code.Success, list, int(total))
}

// NotificationRead flags one notification as seen.
// POST /api/notification/read
func (h *Handler) NotificationRead(c *gin.Context) {
	response := app.NewResponse(c)

	param := dto.NotificationReadRequest{}
	valid, errs := app.BindAndValid(c, &param)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	if errCode := h.svc.NotificationMarkRead(app.GetUID(c), param.ID); errCode != nil {
		response.ToResponse(errCode)
		return
	}
	response.ToResponse(code.Success)
}
