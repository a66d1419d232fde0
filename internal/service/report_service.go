package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"mathtatag_backend/internal/model"
	"mathtatag_backend/internal/util"
	"mathtatag_backend/pkg/logger"

	"go.uber.org/zap"
)

// ClassReport 导出的班级报告
type ClassReport struct {
	GeneratedAt time.Time             `json:"generatedAt"`
	Dashboard   *model.ClassDashboard `json:"dashboard"`
}

type ReportExport struct {
	Key  string `json:"key"`
	URL  string `json:"url"`
	Size int    `json:"size"`
}

type ReportService struct {
	Dashboard *DashboardService
	Storage   StorageProvider
	now       func() time.Time
}

func NewReportService(dashboard *DashboardService, storage StorageProvider) *ReportService {
	return &ReportService{Dashboard: dashboard, Storage: storage, now: time.Now}
}

// ExportClass 生成班级报告 JSON 并写入存储
func (s *ReportService) ExportClass(ctx context.Context, actor Actor, classroomID uint) (*ReportExport, error) {
	dashboard, err := s.Dashboard.Class(ctx, actor, classroomID)
	if err != nil {
		return nil, err
	}

	at := s.now().UTC()
	data, err := json.MarshalIndent(ClassReport{GeneratedAt: at, Dashboard: dashboard}, "", "  ")
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("reports/class-%d/%s.json", classroomID, at.Format(util.StampFormat))
	url, err := s.Storage.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), util.MimeJSON)
	if err != nil {
		return nil, fmt.Errorf("upload report: %w", err)
	}

	logger.Log.Info("Class report exported", zap.Uint("classroomID", classroomID), zap.String("key", key))
	return &ReportExport{Key: key, URL: url, Size: len(data)}, nil
}
