package main

import (
	"fmt"

	"agrostore/api"
	"agrostore/internal/auth"
	"agrostore/internal/config"
	"agrostore/internal/docstore"
	"agrostore/internal/media"
	"agrostore/internal/products"
	"agrostore/internal/sales"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Errorf("error loading configuration: %v", err))
	}

	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Errorf("error creating logger: %v", err))
	}
	defer logger.Sync()

	store := docstore.NewMemoryStore()
	objects := media.NewDiskStore(cfg.StorageDir, cfg.PublicBaseURL)

	salesService := sales.NewService(store, logger)
	if cfg.SerializeStock {
		salesService.UseGuard(sales.NewProductGuard())
	}

	gin.SetMode(cfg.GinMode)
	r := gin.Default()
	api.InitRoutes(r, api.Deps{
		Sales:      salesService,
		Catalog:    products.NewService(store, objects, logger),
		Auth:       auth.NewService(store, cfg.JWTSecret, cfg.TokenTTL, logger),
		Uploader:   media.NewUploader(objects, logger),
		Logger:     logger,
		StorageDir: cfg.StorageDir,
	})

	if err := r.Run(cfg.Addr()); err != nil {
		panic(fmt.Errorf("error trying to start server: %v", err))
	}
}
