// Package api_router contains the gin handlers for the public API.
package api_router

import (
	"github.com/micbed86/FancyNote-sub000/internal/service"
)

// Handler carries the service layer into the route functions.
type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}
