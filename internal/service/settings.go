package service

import (
	"sync"

	"mathtatag_backend/internal/config"
)

// ScoringSettings 可热更新的计分参数
type ScoringSettings struct {
	mu  sync.RWMutex
	cfg config.ScoringConfig
}

func NewScoringSettings(cfg config.ScoringConfig) *ScoringSettings {
	return &ScoringSettings{cfg: cfg.WithDefaults()}
}

func (s *ScoringSettings) Get() config.ScoringConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

func (s *ScoringSettings) Update(cfg config.ScoringConfig) {
	s.mu.Lock()
	s.cfg = cfg.WithDefaults()
	s.mu.Unlock()
}
