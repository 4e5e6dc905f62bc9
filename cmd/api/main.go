package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/motorvia/autocare-scheduler/internal/config"
	dbpkg "github.com/motorvia/autocare-scheduler/internal/db"
	"github.com/motorvia/autocare-scheduler/internal/logger"
	"github.com/motorvia/autocare-scheduler/internal/middleware"
	"github.com/motorvia/autocare-scheduler/internal/routes"
)

func main() {

	cfg := config.Load()
	log := logger.New()
	defer log.Sync()

	db := dbpkg.NewDB(cfg)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	reminders := routes.RegisterRoutes(r, db, cfg, log)
	reminders.Start()
	defer reminders.Stop()

	log.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
