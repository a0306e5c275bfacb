package main

import (
	"context"
	"time"

	sitesvc "souk_commerce/internal/api/site/service"
	"souk_commerce/internal/logger"
)

// InitDefaultData seed các dữ liệu mặc định cần có để hệ thống chạy được.
// Hiện tại chỉ gồm document cấu hình cửa hàng (singleton, isSystem).
func InitDefaultData() {
	log := logger.GetAppLogger()

	configService, err := sitesvc.NewConfigService()
	if err != nil {
		log.Fatalf("Failed to create config service: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := configService.EnsureDefault(ctx); err != nil {
		log.Fatalf("Failed to ensure default site config: %v", err)
	}
	log.Info("Default site config ensured")
}
