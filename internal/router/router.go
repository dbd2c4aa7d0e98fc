package router

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/unipub/pubmeta-api/internal/handler"
	"github.com/unipub/pubmeta-api/internal/middleware"
	"github.com/unipub/pubmeta-api/internal/service"
	"github.com/unipub/pubmeta-api/pkg/config"
	"github.com/unipub/pubmeta-api/pkg/logger"
	corsmiddleware "github.com/unipub/pubmeta-api/pkg/middleware/cors"
	reqidmiddleware "github.com/unipub/pubmeta-api/pkg/middleware/requestid"
)

// Handlers bundles the resource handlers the router mounts.
type Handlers struct {
	Journals     *handler.JournalHandler
	Faculties    *handler.FacultyHandler
	Institutes   *handler.InstituteHandler
	Divisions    *handler.DivisionHandler
	Publications *handler.PublicationHandler
}

// New builds the gin engine with middleware, operational endpoints and the
// versioned API routes mounted under cfg.APIPrefix.
func New(cfg *config.Config, logr *zap.Logger, metricsSvc *service.MetricsService, h Handlers) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	journals := api.Group("/journals")
	{
		journals.GET("", h.Journals.List)
		journals.POST("", h.Journals.Create)
		journals.GET("/export", h.Journals.Export)
		journals.GET("/issn/:issn", h.Journals.GetByISSN)
		journals.GET("/eissn/:eissn", h.Journals.GetByEISSN)
		journals.GET("/like/:text", h.Journals.Search)
		journals.GET("/:id", h.Journals.Get)
		journals.PUT("/:id", h.Journals.Update)
		journals.DELETE("/:id", h.Journals.Delete)
	}

	faculties := api.Group("/faculties")
	{
		faculties.GET("", h.Faculties.List)
		faculties.POST("", h.Faculties.Create)
		faculties.GET("/like/:text", h.Faculties.Search)
		faculties.GET("/:id", h.Faculties.Get)
		faculties.GET("/:id/institutes", h.Faculties.ListInstitutes)
		faculties.PUT("/:id", h.Faculties.Update)
		faculties.DELETE("/:id", h.Faculties.Delete)
	}

	institutes := api.Group("/institutes")
	{
		institutes.GET("", h.Institutes.List)
		institutes.POST("", h.Institutes.Create)
		institutes.GET("/like/:text", h.Institutes.Search)
		institutes.GET("/:id", h.Institutes.Get)
		institutes.GET("/:id/divisions", h.Institutes.ListDivisions)
		institutes.PUT("/:id", h.Institutes.Update)
		institutes.DELETE("/:id", h.Institutes.Delete)
	}

	divisions := api.Group("/divisions")
	{
		divisions.GET("", h.Divisions.List)
		divisions.POST("", h.Divisions.Create)
		divisions.GET("/like/:text", h.Divisions.Search)
		divisions.GET("/:id", h.Divisions.Get)
		divisions.PUT("/:id", h.Divisions.Update)
		divisions.DELETE("/:id", h.Divisions.Delete)
	}

	publications := api.Group("/publications")
	{
		publications.GET("", h.Publications.List)
		publications.POST("", h.Publications.Create)
		publications.GET("/like/:text", h.Publications.Search)
		publications.GET("/:id", h.Publications.Get)
		publications.PUT("/:id", h.Publications.Update)
		publications.DELETE("/:id", h.Publications.Delete)
	}

	if cfg.Client.Dir != "" {
		mountClient(r, cfg.Client.Dir)
	}

	return r
}

// mountClient serves a built single-page client bundle. Unknown non-API
// routes fall back to index.html so client-side routing keeps working.
func mountClient(r *gin.Engine, dir string) {
	r.Static("/assets", filepath.Join(dir, "assets"))
	r.StaticFile("/", filepath.Join(dir, "index.html"))
	r.StaticFile("/favicon.ico", filepath.Join(dir, "favicon.ico"))

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "route not found"}})
			return
		}
		c.File(filepath.Join(dir, "index.html"))
	})
}
