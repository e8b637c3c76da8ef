package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"timetableweaver/internal/engine"
	"timetableweaver/pkg/config"
	"timetableweaver/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("cannot load configuration: %v", err)
	}

	zapLogger, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("cannot initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	ttl, err := time.ParseDuration(cfg.Engine.ProposalTTL)
	if err != nil {
		zapLogger.Warn("invalid proposal TTL, using 30m", zap.String("value", cfg.Engine.ProposalTTL))
		ttl = 30 * time.Minute
	}

	srv := &server{
		logger: zapLogger,
		store:  newProposalStore(ttl),
		defaults: engine.Options{
			Seed:        cfg.Engine.Seed,
			MaxIters:    cfg.Engine.MaxIters,
			MaxStagnant: cfg.Engine.MaxStagnant,
		},
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	router := newRouter(srv)

	address := fmt.Sprintf(":%v", cfg.Port)
	zapLogger.Info("server listening", zap.String("address", address), zap.String("env", cfg.Env))
	if err := router.Run(address); err != nil {
		zapLogger.Fatal("server stopped", zap.Error(err))
	}
}

func newRouter(srv *server) *gin.Engine {
	router := gin.New()
	router.Use(logger.GinMiddleware(srv.logger), gin.Recovery())

	router.GET("/health", srv.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.POST("/schedules", srv.handleGenerate)
	router.GET("/schedules/:id", srv.handleGetProposal)
	return router
}
