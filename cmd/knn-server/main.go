package main

import (
	"knn_recommender/internal/catalog"
	"knn_recommender/internal/engine"
	"knn_recommender/internal/logger"
	"knn_recommender/internal/server"
)

func main() {
	// 1. 初始化配置
	cfg := InitServerConfig()
	logger.SetDebug(cfg.Server.Debug)

	// 2. 生成曲库
	ranges := cfg.Catalog.Genres
	if len(ranges) == 0 {
		ranges = catalog.DefaultRanges()
	}

	songs, err := catalog.Generate(cfg.Catalog.Count, ranges, cfg.Catalog.Seed)
	if err != nil {
		logger.Fatal("Failed to generate catalog: %v", err)
	}
	logger.Info("Generated catalog: %d songs, %d genres, seed=%d",
		len(songs), len(ranges), cfg.Catalog.Seed)

	// 3. 初始化推荐引擎
	eng := engine.New(songs)

	// 4. 启动 HTTP Server
	srv := server.NewServer(eng, server.CatalogDefaults{
		Count:  cfg.Catalog.Count,
		Seed:   cfg.Catalog.Seed,
		Ranges: ranges,
	})
	logger.Info("Starting HTTP server on port %s...", cfg.Server.Port)
	if err := srv.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Server failed: %v", err)
	}
}
