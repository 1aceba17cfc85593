// Package routers assembles the gin engine: middleware chain first,
// then the route table.
package routers

import (
	"time"

	"github.com/micbed86/FancyNote-sub000/internal/middleware"
	"github.com/micbed86/FancyNote-sub000/internal/routers/api_router"
	"github.com/micbed86/FancyNote-sub000/internal/service"
	"github.com/micbed86/FancyNote-sub000/pkg/limiter"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config is the router-level configuration.
type Config struct {
	RunMode        string        `yaml:"run-mode" default:"release"`
	AppName        string        `yaml:"app-name" default:"fancynote"`
	Version        string        `yaml:"-"`
	RequestTimeout time.Duration `yaml:"request-timeout" default:"60s"`
}

// process triggers are the expensive endpoints, bound tighter than the
// rest of the API
var methodLimiter = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/api/note/process",
		FillInterval: time.Second,
		Capacity:     10,
		Quantum:      10,
	},
)

// NewRouter builds the engine with the full middleware chain and all
// API routes.
func NewRouter(cfg Config, svc *service.Service) *gin.Engine {
	gin.SetMode(cfg.RunMode)

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.AppInfo(cfg.AppName, cfg.Version))
	r.Use(middleware.Cors())
	r.Use(middleware.Tracer())
	r.Use(middleware.Lang())
	r.Use(middleware.AccessLog())
	r.Use(middleware.RateLimiter(methodLimiter))
	r.Use(middleware.ContextTimeout(cfg.RequestTimeout))

	h := api_router.NewHandler(svc)
	auth := middleware.UserAuthToken(svc.TokenManager())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.POST("/user/register", h.UserRegister)
		api.POST("/user/login", h.UserLogin)

		// file retrieval authenticates through the short-lived file
		// token carried in the query string
		api.GET("/file", h.FileGet)

		authed := api.Group("", auth)
		{
			authed.GET("/user/profile", h.UserProfile)
			authed.POST("/user/settings", h.UserSettings)

			authed.POST("/note", h.NoteCreate)
			authed.GET("/note/list", h.NoteList)
			authed.GET("/note/:noteId", h.NoteGet)
			authed.POST("/note/update", h.NoteUpdate)
			authed.POST("/note/delete", h.NoteDelete)
			authed.POST("/note/web", h.NoteWeb)

			authed.POST("/note/process", h.NoteProcess)
			authed.POST("/note/process/update", h.NoteProcessUpdate)

			authed.POST("/file/upload", h.FileUpload)

			authed.GET("/notification/list", h.NotificationList)
			authed.POST("/notification/read", h.NotificationRead)
		}
	}

	return r
}
