package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mathtatag_backend/internal/model"
	"mathtatag_backend/internal/scoring"
	"mathtatag_backend/internal/service"
	"mathtatag_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRespondErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		err  error
		want int
	}{
		{scoring.ErrInvalidRating, http.StatusBadRequest},
		{util.ErrInvalidSubScore, http.StatusBadRequest},
		{util.ErrInvalidSchedule, http.StatusBadRequest},
		{util.ErrInvalidCredentials, http.StatusUnauthorized},
		{util.ErrPermissionDenied, http.StatusForbidden},
		{util.ErrClassroomNotFound, http.StatusNotFound},
		{util.ErrNoGuardian, http.StatusNotFound},
		{scoring.ErrTaskAlreadyComplete, http.StatusConflict},
		{fmt.Errorf("record: %w", util.ErrScoreAlreadyRecorded), http.StatusConflict},
		{util.ErrEmailRegistered, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(w)
		respondError(ctx, tc.err)
		assert.Equal(t, tc.want, w.Code, tc.err.Error())

		var resp util.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, tc.want, resp.Code)
	}
}

// memoryTasks 只实现任务推进所需的存储
type memoryTasks struct {
	tasks map[uint]*model.HomeTask
}

func (m *memoryTasks) FindByID(_ context.Context, id uint) (*model.HomeTask, error) {
	t, ok := m.tasks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memoryTasks) FindByGuardian(_ context.Context, guardianID uint) ([]*model.HomeTask, error) {
	var out []*model.HomeTask
	for _, t := range m.tasks {
		if t.GuardianID == guardianID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memoryTasks) FindByGuardians(ctx context.Context, ids []uint) ([]*model.HomeTask, error) {
	return nil, nil
}

func (m *memoryTasks) Save(_ context.Context, t *model.HomeTask) error {
	cp := *t
	m.tasks[t.ID] = &cp
	return nil
}

func (m *memoryTasks) ReplaceForGuardian(context.Context, uint, []*model.HomeTask) error {
	return nil
}

func newParentRouter(store *memoryTasks, guardianID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := NewParentController(service.NewTaskService(store, nil, nil, nil, nil), nil)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(util.ContextUserKey, &util.Claims{UserID: guardianID, Role: model.Parent})
	})
	r.GET("/api/parent/tasks", ctrl.ListTasks)
	r.POST("/api/parent/tasks/:id/advance", ctrl.AdvanceTask)
	r.PUT("/api/parent/tasks/:id", ctrl.ReplaceTask)
	return r
}

func do(r *gin.Engine, method, url, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdvanceTaskEndpoint(t *testing.T) {
	store := &memoryTasks{tasks: map[uint]*model.HomeTask{
		1: {BaseModel: model.BaseModel{ID: 1}, GuardianID: 7, Title: "Count coins", Status: scoring.TaskNotDone, Week: 1, Quarter: 1},
	}}
	r := newParentRouter(store, 7)

	w := do(r, http.MethodPost, "/api/parent/tasks/1/advance", `{"rating": 9}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/parent/tasks/1/advance", `{"rating": 4}`)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data model.HomeTask `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, scoring.TaskOngoing, resp.Data.Status)

	w = do(r, http.MethodPost, "/api/parent/tasks/1/advance", `{"rating": 5}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodPost, "/api/parent/tasks/1/advance", `{"rating": 5}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(r, http.MethodPost, "/api/parent/tasks/2/advance", `{"rating": 5}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodPost, "/api/parent/tasks/abc/advance", `{"rating": 5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReplaceTaskEndpoint(t *testing.T) {
	store := &memoryTasks{tasks: map[uint]*model.HomeTask{
		3: {BaseModel: model.BaseModel{ID: 3}, GuardianID: 7, Title: "Old", Status: scoring.TaskNotDone, Week: 1, Quarter: 1},
	}}
	r := newParentRouter(store, 7)

	w := do(r, http.MethodPut, "/api/parent/tasks/3", `{"title": "New", "status": "notdone", "week": 12, "quarter": 1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPut, "/api/parent/tasks/3", `{"title": "New", "status": "ongoing", "preRating": 2, "week": 4, "quarter": 2}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Nil(t, store.tasks[3].PreRating)

	w = do(r, http.MethodPut, "/api/parent/tasks/3", `{"title": "New", "week": 4, "quarter": 2}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, scoring.TaskNotDone, store.tasks[3].Status)
	assert.Equal(t, "New", store.tasks[3].Title)
	assert.Equal(t, 2, store.tasks[3].Quarter)

	w = do(r, http.MethodGet, "/api/parent/tasks", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"New"`)
}
