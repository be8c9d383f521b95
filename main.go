package main

import (
	"context"
	"time"

	"kvboard/config"
	"kvboard/kv"
	"kvboard/routes"
	"kvboard/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	kvs := kv.NewRedis(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := kvs.Ping(ctx); err != nil {
		utils.Sugar.Warnf("redis ping failed, continuing anyway: %v", err)
	}
	cancel()

	r := routes.SetupRouter(kvs)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
