// 批量导出所有班级报告
//
// 报告写入配置的存储（本地目录或 MinIO），适合学期结束时归档。
//
// 用法: go run scripts/export_reports.go

package main

import (
	"context"
	"log"
	"os"

	"mathtatag_backend/internal/config"
	"mathtatag_backend/internal/model"
	"mathtatag_backend/internal/repository"
	"mathtatag_backend/internal/service"
	"mathtatag_backend/internal/util"
	"mathtatag_backend/pkg/database"
	"mathtatag_backend/pkg/logger"

	"gopkg.in/yaml.v3"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = util.StorageLocal
	}
	if cfg.Storage.LocalPath == "" {
		cfg.Storage.LocalPath = "./uploads"
	}
	cfg.Scoring = cfg.Scoring.WithDefaults()

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	classrooms := repository.NewClassroomRepository(db)
	learners := repository.NewLearnerRepository(db)
	tasks := repository.NewHomeTaskRepository(db)
	cache := repository.NewDashboardCache(nil, 0)

	dashboard := service.NewDashboardService(users, classrooms, learners, tasks, cache, service.NewScoringSettings(cfg.Scoring))
	reports := service.NewReportService(dashboard, service.NewStorageProvider(ctx, &cfg))

	all, err := classrooms.FindAll(ctx)
	if err != nil {
		log.Fatalf("读取班级失败: %v", err)
	}

	actor := service.Actor{Role: model.Admin}
	failed := 0
	for _, c := range all {
		export, err := reports.ExportClass(ctx, actor, c.ID)
		if err != nil {
			log.Printf("班级 %d 导出失败: %v", c.ID, err)
			failed++
			continue
		}
		log.Printf("班级 %d -> %s (%d bytes)", c.ID, export.Key, export.Size)
	}

	log.Printf("完成！共 %d 个班级，失败 %d 个", len(all), failed)
}
