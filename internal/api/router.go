package api

import (
	"net/http"
	"os"
	"strings"

	"ercot-lmp-viewer/internal/api/handlers"
	"ercot-lmp-viewer/internal/api/middleware"
	"ercot-lmp-viewer/internal/api/models"
	"ercot-lmp-viewer/internal/series"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
)

// Options wires the router's collaborators.
type Options struct {
	Service      series.Service
	Logger       log.Logger
	NodesFile    string
	DefaultNode  string
	SourceNodes  []string
	MaxRangeDays int
	CORSOrigins  []string
	StaticDir    string
	Metrics      http.Handler // optional; served on /metrics
}

// NewRouter builds the HTTP API.
func NewRouter(o Options) *gin.Engine {
	logger := o.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS(o.CORSOrigins))

	seriesHandler := handlers.NewSeriesHandler(o.Service, o.MaxRangeDays)
	nodeHandler := handlers.NewNodeHandler(o.NodesFile, o.DefaultNode, o.SourceNodes)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if o.Metrics != nil {
		router.GET("/metrics", gin.WrapH(o.Metrics))
	}

	api := router.Group("/api/v1")
	{
		api.GET("/markets", handlers.ListMarkets)
		api.GET("/nodes", nodeHandler.ListNodes)

		api.GET("/series", seriesHandler.GetSeries)
		api.GET("/series/export", seriesHandler.ExportCSV)
		api.GET("/series/chart", seriesHandler.GetChart)
	}

	// Serve a built front-end (if present) with SPA routing.
	if o.StaticDir != "" {
		if info, err := os.Stat(o.StaticDir); err == nil && info.IsDir() {
			router.Static("/assets", o.StaticDir+"/assets")
			router.StaticFile("/favicon.ico", o.StaticDir+"/favicon.ico")
			router.NoRoute(func(c *gin.Context) {
				if strings.HasPrefix(c.Request.URL.Path, "/api") {
					notFound(c)
					return
				}
				c.File(o.StaticDir + "/index.html")
			})
			_ = level.Info(logger).Log("msg", "serving static files", "dir", o.StaticDir)
			return router
		}
		_ = level.Info(logger).Log("msg", "static directory not found, skipping static file serving", "dir", o.StaticDir)
	}
	router.NoRoute(notFound)
	return router
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, models.ErrorResponse{
		Error: models.ErrorDetail{Code: "NOT_FOUND", Message: "Not found"},
	})
}
