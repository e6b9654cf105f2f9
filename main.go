// @title DriveFlow 驾校管理平台 API
// @version 1.0
// @description 驾校一体化管理平台的后端服务器，覆盖报名、排课与课程考核评分。

// @contact.name API支持
// @contact.email support@driveflow.cn

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"driveflow_backend/internal/app"
	"driveflow_backend/internal/config"
	"driveflow_backend/pkg/logger"
	"flag"
	"log"
)

func main() {
	// 命令行参数
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移，完成后退出")
	migrate := flag.Bool("migrate", false, "启动时强制执行数据库迁移（即使是 release 模式）")
	seed := flag.Bool("seed", false, "导入准驾车型目录与考核评分表后退出")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 设置运行时标志
	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly
	cfg.SeedOnly = *seed

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	// 迁移或数据导入完成后直接退出
	if *migrateOnly {
		log.Println("数据库迁移完成，退出程序")
		return
	}
	if *seed {
		log.Println("基础数据导入完成，退出程序")
		return
	}

	application.Run()
}
