package http

import (
	stdhttp "net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"warisin/internal/adapters/http/middleware"
	"warisin/internal/application"
	"warisin/internal/domain"
)

type Handlers struct {
	Auth         *AuthHandler
	Profiles     *ProfileHandler
	Categories   *CategoryHandler
	Programs     *ProgramHandler
	Applications *ApplicationHandler
	Dashboard    *DashboardHandler
	Uploads      *UploadHandler
	Descriptions *DescriptionHandler
}

// Middleware holds the cross-cutting pieces built by the caller. Nil entries
// are skipped.
type Middleware struct {
	XRay           echo.MiddlewareFunc
	RequestLogger  echo.MiddlewareFunc
	Metrics        echo.MiddlewareFunc
	Session        echo.MiddlewareFunc
	GenerateLimit  echo.MiddlewareFunc
	MetricsHandler stdhttp.Handler
}

func use(e *echo.Echo, mws ...echo.MiddlewareFunc) {
	for _, mw := range mws {
		if mw != nil {
			e.Use(mw)
		}
	}
}

func NewRouter(h Handlers, m Middleware) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = newValidator()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	use(e, m.XRay, m.RequestLogger, m.Metrics, m.Session)

	e.GET("/healthz", health)
	if m.MetricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(m.MetricsHandler))
	}

	session := middleware.RequireSession()
	artisan := middleware.RequireRole(domain.RoleArtisan)
	applicant := middleware.RequireRole(domain.RoleApplicant)

	api := e.Group("/api")
	api.POST("/login", h.Auth.Login)
	api.POST("/logout", h.Auth.Logout)
	api.GET("/me", h.Auth.Me, session)
	api.PUT("/profile", h.Auth.UpdateProfile, session)

	api.PUT("/profile/artisan", h.Profiles.UpsertArtisan, artisan)
	api.GET("/artisans/:id", h.Profiles.GetArtisan)
	api.PUT("/profile/applicant", h.Profiles.UpsertApplicant, applicant)
	api.GET("/applicants/:id/profile", h.Profiles.GetApplicant, session)

	api.GET("/categories", h.Categories.List)
	api.POST("/categories", h.Categories.Create, artisan)

	api.GET("/programs", h.Programs.List)
	api.GET("/programs/:id", h.Programs.Get)
	api.POST("/programs", h.Programs.Create, artisan)
	api.POST("/program/gallery", h.Programs.Create, artisan)
	api.PUT("/programs/:id", h.Programs.Update, artisan)
	api.POST("/programs/:id/open", h.Programs.SetOpen, artisan)
	api.GET("/artisan/programs", h.Programs.ListMine, artisan)

	api.GET("/programs/:id/applications", h.Applications.ListByProgram, artisan)
	api.GET("/programs/:id/eligibility", h.Applications.Eligibility, applicant)
	api.POST("/apply", h.Applications.Apply, applicant)
	api.GET("/applicant/applications", h.Applications.ListMine, applicant)
	api.GET("/applications/:id", h.Applications.Get, session)
	api.POST("/application/approve", h.Applications.Approve(), artisan)
	api.POST("/application/reject", h.Applications.Reject(), artisan)
	api.POST("/application/complete", h.Applications.Complete(), artisan)

	api.GET("/dashboard/artisan", h.Dashboard.Artisan, artisan)
	api.GET("/dashboard/applicant", h.Dashboard.Applicant, applicant)

	limit := echomw.BodyLimit(strconv.FormatInt(application.MaxUploadBytes()>>20+1, 10) + "M")
	api.POST("/upload/:kind", h.Uploads.Upload, session, limit)
	api.DELETE("/upload", h.Uploads.Delete, session)

	generate := []echo.MiddlewareFunc{artisan}
	if m.GenerateLimit != nil {
		generate = append(generate, m.GenerateLimit)
	}
	api.POST("/generate-description", h.Descriptions.Generate, generate...)
	return e
}
