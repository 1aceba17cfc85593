package api_router

import (
	"github.com/micbed86/FancyNote-sub000/global"
	"github.com/micbed86/FancyNote-sub000/internal/dto"
	"github.com/micbed86/FancyNote-sub000/pkg/app"
	"github.com/micbed86/FancyNote-sub000/pkg/code"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserRegister creates an account.
// POST /api/user/register
func (h *Handler) UserRegister(c *gin.Context) {
	response := app.NewResponse(c)

	param := dto.UserRegisterRequest{}
	valid, errs := app.BindAndValid(c, &param)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	result, errCode := h.svc.Register(&param, app.GetRequestIP(c))
	if errCode != nil {
		global.Log().Error("UserHandler.Register err", zap.String("err", errCode.Error()))
		response.ToResponse(errCode)
		return
	}
	response.ToResponse(code.Success.WithData(result))
}

// UserLogin checks credentials and issues a token.
// POST /api/user/login
func (h *Handler) UserLogin(c *gin.Context) {
	response := app.NewResponse(c)

	param := dto.UserLoginRequest{}
	valid, errs := app.BindAndValid(c, &param)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	result, errCode := h.svc.Login(&param, app.GetRequestIP(c))
	if errCode != nil {
		response.ToResponse(errCode)
		return
	}
	response.ToResponse(code.Success.WithData(result))
}

// UserProfile returns the account with settings and credits.
// GET /api/user/profile
func (h *Handler) UserProfile(c *gin.Context) {
	response := app.NewResponse(c)

	result, errCode := h.svc.Profile(app.GetUID(c))
	if errCode != nil {
		global.Log().Error("UserHandler.Profile err", zap.String("err", errCode.Error()))
		response.ToResponse(errCode)
		return
	}
	response.ToResponse(code.Success.WithData(result))
}

// UserSettings stores the per-user AI configuration.
// POST /api/user/settings
func (h *Handler) UserSettings(c *gin.Context) {
	response := app.NewResponse(c)

	param := dto.UserSettingsRequest{}
	valid, errs := app.BindAndValid(c, &param)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	if errCode := h.svc.UpdateSettings(app.GetUID(c), &param); errCode != nil {
		response.ToResponse(errCode)
		return
	}
	response.ToResponse(code.Success)
}
