package main

import (
	"time"

	"go.uber.org/zap"

	"github.com/cppla/socialapi/config"
	"github.com/cppla/socialapi/models"
	"github.com/cppla/socialapi/routes"
	"github.com/cppla/socialapi/session"
	"github.com/cppla/socialapi/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}
	defer func() { _ = utils.Logger.Sync() }()

	db := config.InitDatabase(models.All()...)

	ttl := time.Duration(cfg.SessionTTLMinutes) * time.Minute
	var sessions session.Store
	var cache *utils.Cache
	if rc := utils.GetRedis(); rc != nil {
		cache = utils.NewCache(rc, time.Duration(cfg.PostCacheSeconds)*time.Second)
		if cfg.SessionBackend == "redis" {
			sessions = session.NewRedisStore(rc, ttl)
		}
	}
	if sessions == nil {
		sessions = session.NewMemoryStore(ttl)
	}

	r := routes.SetupRouter(db, sessions, cache)

	utils.Logger.Info("starting server",
		zap.String("port", cfg.AppPort),
		zap.String("db_driver", cfg.DBDriver),
		zap.String("session_backend", cfg.SessionBackend),
		zap.Duration("session_ttl", ttl),
	)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Logger.Fatal("server stopped with error", zap.Error(err))
	}
}
