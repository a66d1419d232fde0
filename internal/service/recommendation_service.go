package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mathtatag_backend/internal/config"
	"mathtatag_backend/internal/importer"
	"mathtatag_backend/internal/scoring"
	"mathtatag_backend/pkg/logger"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// PersonalizationClient 调用外部任务个性化接口 POST {base}/predict
type PersonalizationClient struct {
	Client  *resty.Client
	BaseURL string
}

func NewPersonalizationClient(cfg config.PersonalizationConfig) *PersonalizationClient {
	if cfg.BaseURL == "" {
		return nil
	}
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(cfg.Retries).
		SetRetryWaitTime(1500 * time.Millisecond).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		})
	return &PersonalizationClient{
		Client:  client,
		BaseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// Predict 返回接口生成的任务；响应可以是 {"tasks":[...]} 或直接是数组
func (c *PersonalizationClient) Predict(ctx context.Context, pattern, numbers int, incomeBracket string) ([]scoring.Recommendation, error) {
	resp, err := c.Client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"pattern_score":     pattern,
			"subtraction_score": numbers,
			"income_bracket":    scoring.IncomeLevel(incomeBracket),
		}).
		Post(c.BaseURL + "/predict")
	if err != nil {
		return nil, err
	}

	body := resp.String()
	if !gjson.Valid(body) {
		return nil, fmt.Errorf("personalization api returned invalid JSON (status %d)", resp.StatusCode())
	}
	if resp.IsError() {
		msg := gjson.Get(body, "error").String()
		if msg == "" {
			msg = resp.Status()
		}
		return nil, fmt.Errorf("personalization api: %s", msg)
	}

	list := gjson.Get(body, "tasks")
	if !list.IsArray() {
		list = gjson.Parse(body)
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("personalization api returned no task list")
	}

	tasks, err := importer.ParseTasks([]byte(list.Raw))
	if err != nil {
		return nil, err
	}
	items := make([]gjson.Result, 0, len(tasks))
	for _, item := range list.Array() {
		if item.Type != gjson.Null {
			items = append(items, item)
		}
	}
	recs := make([]scoring.Recommendation, 0, len(tasks))
	for i, t := range tasks {
		// 新生成的任务一律从未完成开始
		t.Status, t.PreRating, t.PostRating = scoring.TaskNotDone, nil, nil
		recs = append(recs, scoring.Recommendation{
			Task:     t,
			Priority: scoring.Priority(items[i].Get("priority").String()),
			Category: items[i].Get("category").String(),
		})
	}
	return recs, nil
}

// RecommendationService 优先使用外部接口，失败或未配置时退回本地规则
type RecommendationService struct {
	Client *PersonalizationClient
}

func NewRecommendationService(client *PersonalizationClient) *RecommendationService {
	return &RecommendationService{Client: client}
}

func (s *RecommendationService) Recommend(ctx context.Context, pattern, numbers int, incomeBracket string) []scoring.Recommendation {
	if s.Client != nil {
		recs, err := s.Client.Predict(ctx, pattern, numbers, incomeBracket)
		if err == nil && len(recs) > 0 {
			return recs
		}
		logger.Log.Warn("Personalization api unavailable, using built-in rules", zap.Error(err))
	}
	return scoring.Recommend(pattern, numbers, incomeBracket)
}
