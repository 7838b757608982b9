package main

import (
	"flag"
	"log/slog"
	"os"

	"daily-board/internal/calendar"
	"daily-board/internal/config"
	"daily-board/internal/handler"
	"daily-board/internal/logger"
	"daily-board/internal/middleware"
	"daily-board/internal/model"
	"daily-board/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
	flag.Parse()

	cfg := config.Load(*configFile)
	logger.Init(cfg.Log)
	db, err := cfg.OpenGormDB()
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	if err := model.Migrate(db); err != nil {
		slog.Error("migrate failed", "err", err)
		os.Exit(1)
	}

	store := service.NewLedgerStore(db)
	registry := service.NewTaskRegistry(db, cfg.Teams.TerminalStatuses)
	reconciler := service.NewReconciler(store, registry)
	rollover := service.NewRollover(store)
	gate := service.NewLockGate(calendar.Today)
	dailySvc := service.NewDailyService(store, registry, reconciler, rollover, gate, calendar.Today)
	authSvc := service.NewAuthService(db)

	secret := []byte(cfg.Auth.JWTSecret)
	authH := handler.NewAuthHandler(authSvc, secret)
	dailyH := handler.NewDailyHandler(dailySvc)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.POST("/api/login", authH.Login)
	api := r.Group("/api", middleware.JWTAuth(secret))
	api.GET("/week/:date", dailyH.Week)
	api.GET("/reports/:date", dailyH.OpenDay)
	api.GET("/reports/:date/raw", dailyH.GetDailyReport)
	api.POST("/reports/rollover", dailyH.Rollover)
	api.POST("/reports/:date/toggle", dailyH.ToggleTask)
	api.POST("/reports/:date/toggle-cross", dailyH.ToggleTaskAcrossDays)
	api.POST("/reports/:date/assign", dailyH.AssignTask)
	api.POST("/reports/:date/absence", dailyH.MarkAbsent)
	api.POST("/reports/:date/attendance", dailyH.UpdateCheckInOut)

	slog.Info("server starting", "addr", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		slog.Error("server failed", "err", err)
	}
}
