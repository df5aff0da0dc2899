package main

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"ride-fetch/internal/middleware/logger"
	"ride-fetch/internal/ride_fetch/api"
	"ride-fetch/internal/ride_fetch/helper"
	"ride-fetch/internal/ride_fetch/processor"
	"ride-fetch/internal/ride_fetch/scheduler"
	"ride-fetch/pkg/config"
)

func main() {
	cfg, err := config.LoadConfig("config/1-config.yaml")
	if err != nil {
		panic(err)
	}

	log, err := logger.NewLogger(cfg.Log.Path)
	if err != nil {
		panic(err)
	}
	defer func(log *zap.Logger) {
		_ = log.Sync()
	}(log)

	ctx := context.Background()

	log.Info("Starting Ride Fetch Service...")
	if err := helper.ConfigureTimeLocation("Asia/Shanghai"); err != nil {
		panic(err)
	}

	stores := helper.MustMongo(
		ctx,
		cfg.Mongo.Host,
		cfg.Mongo.DBName,
		cfg.Mongo.Username,
		cfg.Mongo.Password,
		cfg.Mongo.AuthSource,
	)

	httpClient := &http.Client{Timeout: 10 * time.Second}
	worker := &scheduler.Worker{
		Log:      log,
		Fetcher:  processor.NewContentFetcher(log, stores, httpClient, cfg.Gather.UserAgent, cfg.Gather.Cookie),
		Rides:    processor.NewRideProcessor(log, stores),
		Interval: time.Duration(cfg.Gather.IntervalMinutes) * time.Minute,
	}
	go worker.Run(ctx)

	srv := &api.Server{Log: log, Stores: stores}
	r := srv.Router()
	_ = r.SetTrustedProxies(nil)

	addr := cfg.Server.Addr
	if addr == "" {
		addr = ":8080"
	}
	log.Info("Ride Fetch Service is running", zap.String("address", addr))
	_ = r.Run(addr)
}
