package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ercot-lmp-viewer/internal/api"
	"ercot-lmp-viewer/internal/config"
	"ercot-lmp-viewer/internal/data"
	"ercot-lmp-viewer/internal/model"
	"ercot-lmp-viewer/internal/series"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var serviceVersion = "dev"

func main() {
	printVersion := flag.Bool("version", false, "print version and exit")
	cfgPath := flag.String("config", os.Getenv("LMP_CONFIG"), "Path to YAML config (optional)")
	envFile := flag.String("env-file", ".env", "Path to .env file (optional)")
	flag.Parse()

	if *printVersion {
		fmt.Println(serviceVersion)
		os.Exit(0)
	}

	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stdout))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
	_ = level.Info(logger).Log("msg", "initializing", "version", serviceVersion)

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		_ = level.Error(logger).Log("msg", "failed to load env file", "file", *envFile, "err", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		_ = level.Error(logger).Log("msg", "failed to load configuration", "err", err)
		os.Exit(1)
	}
	if !cfg.Production() {
		logger = level.NewFilter(logger, level.AllowDebug())
	} else {
		logger = level.NewFilter(logger, level.AllowInfo())
	}

	src, err := series.OpenSource(cfg.Source)
	if err != nil {
		_ = level.Error(logger).Log("msg", "failed to open price source", "type", cfg.Source.Type, "err", err)
		os.Exit(1)
	}
	var sourceNodes []string
	if fsrc, ok := src.(*data.FileSource); ok {
		sourceNodes = fsrc.Nodes()
	}
	loc := model.ReferenceZone(cfg.Market.UTCOffsetHours)
	_ = level.Info(logger).Log("msg", "price source ready", "source", src.Name(), "zone", loc, "nodes", len(sourceNodes))

	var svc series.Service = series.NewBuilder(src, loc)
	svc = series.NewLoggingMiddleware(log.With(logger, "component", "series"), svc)
	svc = series.NewInstrumentingMiddleware(
		kitprometheus.NewCounterFrom(prometheus.CounterOpts{
			Namespace: cfg.Metrics.Namespace,
			Subsystem: cfg.Metrics.Subsystem,
			Name:      "request_count",
			Help:      "Number of series queries.",
		}, series.MetricLabels),
		kitprometheus.NewHistogramFrom(prometheus.HistogramOpts{
			Namespace: cfg.Metrics.Namespace,
			Subsystem: cfg.Metrics.Subsystem,
			Name:      "request_duration_seconds",
			Help:      "Series query latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, series.MetricLabels),
		svc,
	)

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(api.Options{
		Service:      svc,
		Logger:       log.With(logger, "component", "http"),
		NodesFile:    cfg.NodesFile,
		DefaultNode:  cfg.Market.DefaultNode,
		SourceNodes:  sourceNodes,
		MaxRangeDays: cfg.Market.MaxRangeDays,
		CORSOrigins:  cfg.Server.CORSOrigins,
		StaticDir:    cfg.Server.StaticDir,
		Metrics:      promhttp.Handler(),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		_ = level.Info(logger).Log("msg", "starting API server", "addr", server.Addr, "env", cfg.Server.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = level.Error(logger).Log("msg", "server failure", "err", err)
			os.Exit(1)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM, syscall.SIGINT)

	defer func(sig os.Signal) {
		_ = level.Info(logger).Log("msg", "received signal, exiting", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			_ = level.Error(logger).Log("msg", "server shutdown failure", "err", err)
		}

		_ = level.Info(logger).Log("msg", "goodbye")
	}(<-c)
}
