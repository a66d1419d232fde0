package service

import (
	"context"
	"testing"

	"mathtatag_backend/internal/importer"
	"mathtatag_backend/internal/model"
	"mathtatag_backend/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legacyExport = `{
  "Classes": {"SNES-A-2025": {"id": "SNES-A-2025", "school": "San Nicolas ES", "section": "A"}},
  "Students": {
    "S1": {"id": "S1", "nickname": "Ana", "classId": "SNES-A-2025", "parentId": "P1",
           "preScore": {"pattern": 3, "numbers": 4}, "postScore": {"pattern": 8, "numbers": 9}},
    "S2": {"id": "S2", "nickname": "Ben", "classId": "SNES-A-2025", "preScore": 15},
    "S3": {"id": "S3", "nickname": "Cara", "classId": "OTHER-B-2025"}
  },
  "Parents": {
    "P1": {"parentId": "P1", "name": "Ana's Parent", "studentId": "S1", "householdIncome": "₱10,001–15,000",
           "tasks": [{"task_title": "Count coins"}, {"title": "Bead patterns", "preRating": 3}]}
  }
}`

func newImportService(e *env) *ImportService {
	return NewImportService(e.users, e.classrooms, e.learners, e.tasks, e.cache)
}

func TestImport(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	teacher := e.addUser(model.Teacher, "T", "t@school.ph")

	result, err := newImportService(e).Import(ctx, teacher.ID, []byte(legacyExport))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Classrooms)
	assert.Equal(t, 1, result.Guardians)
	assert.Equal(t, 2, result.Learners)
	assert.Equal(t, 2, result.Tasks)
	assert.Len(t, result.Warnings, 2)

	classes, _ := e.classrooms.FindByTeacher(ctx, teacher.ID)
	require.Len(t, classes, 1)
	assert.Equal(t, "A", classes[0].Name)

	parent, err := e.users.FindByEmail(ctx, "p1@"+importedEmailDomain)
	require.NoError(t, err)
	assert.Equal(t, model.Parent, parent.Role)
	assert.True(t, parent.Disabled)
	assert.Equal(t, "₱10,001–15,000", parent.HouseholdIncome)

	ana, err := e.learners.FindByGuardian(ctx, parent.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", ana.Nickname)
	assert.Equal(t, 17, ana.PostScore.Total())
	assert.NotNil(t, ana.PreTakenAt)

	learners, _ := e.learners.FindByClassroom(ctx, classes[0].ID)
	require.Len(t, learners, 2)
	// 超出范围的旧格式成绩被丢弃
	assert.Nil(t, learners[1].PreScore)

	tasks, _ := e.tasks.FindByGuardian(ctx, parent.ID)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Count coins", tasks[0].Title)
	assert.Equal(t, ana.ID, tasks[0].LearnerID)
	assert.Equal(t, scoring.TaskOngoing, tasks[1].Status)
	assert.Equal(t, 2, tasks[1].Week)

	// 再次导入复用班级与家长账号
	result, err = newImportService(e).Import(ctx, teacher.ID, []byte(legacyExport))
	require.NoError(t, err)
	assert.Equal(t, 0, result.Classrooms)
	assert.Equal(t, 0, result.Guardians)
	assert.Equal(t, 0, result.Learners)
	assert.Equal(t, 2, result.Matched)

	learners, _ = e.learners.FindByClassroom(ctx, classes[0].ID)
	assert.Len(t, learners, 2)
	summary := scoring.Summarize(model.Records(learners, nil), 7)
	assert.Equal(t, 2, summary.Total)
}

func TestImportFillsMissingScoresOnReimport(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	teacher := e.addUser(model.Teacher, "T", "t@school.ph")
	svc := newImportService(e)

	first := `{"Classes": [{"id": "C-A-1", "section": "A"}],
	  "Students": [{"id": "S1", "nickname": "Ana", "classId": "C-A-1", "preScore": {"pattern": 3, "numbers": 4}}]}`
	_, err := svc.Import(ctx, teacher.ID, []byte(first))
	require.NoError(t, err)

	second := `{"Classes": [{"id": "C-A-1", "section": "A"}],
	  "Students": [{"id": "S1", "nickname": "Ana", "classId": "C-A-1",
	    "preScore": {"pattern": 1, "numbers": 1}, "postScore": {"pattern": 8, "numbers": 9}}]}`
	result, err := svc.Import(ctx, teacher.ID, []byte(second))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Matched)

	classes, _ := e.classrooms.FindByTeacher(ctx, teacher.ID)
	require.Len(t, classes, 1)
	learners, _ := e.learners.FindByClassroom(ctx, classes[0].ID)
	require.Len(t, learners, 1)
	// 已有前测不被覆盖，缺失的后测补齐
	assert.Equal(t, 7, learners[0].PreScore.Total())
	require.NotNil(t, learners[0].PostScore)
	assert.Equal(t, 17, learners[0].PostScore.Total())
}

func TestImportChecksTasks(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	teacher := e.addUser(model.Teacher, "T", "t@school.ph")

	doc := `{
	  "Classes": [{"id": "C-A-1", "section": "A"}],
	  "Students": [{"id": "S1", "nickname": "Ana", "classId": "C-A-1", "parentId": "P1"}],
	  "Parents": [{"parentId": "P1", "email": "p1@home.ph", "studentId": "S1", "tasks": [
	    {"title": "Out of schedule", "week": 12, "quarter": 7, "preRating": 9, "status": "done"},
	    {"title": "Bad rating", "week": 1, "quarter": 1, "preRating": 9},
	    {"title": "Post only", "week": 1, "quarter": 1, "postRating": 4},
	    {"title": "Claims done", "week": 2, "quarter": 1, "preRating": 3, "status": "done"},
	    {"title": "Fine", "week": 3, "quarter": 1}
	  ]}]
	}`
	result, err := newImportService(e).Import(ctx, teacher.ID, []byte(doc))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Tasks)
	assert.Len(t, result.Warnings, 4)

	parent, err := e.users.FindByEmail(ctx, "p1@home.ph")
	require.NoError(t, err)
	tasks, _ := e.tasks.FindByGuardian(ctx, parent.ID)
	require.Len(t, tasks, 2)
	for _, task := range tasks {
		assert.GreaterOrEqual(t, task.Week, 1)
		assert.LessOrEqual(t, task.Week, 8)
		assert.Equal(t, 1, task.Quarter)
		assert.Equal(t, scoring.DeriveStatus(task.PreRating, task.PostRating), task.Status)
	}
	assert.Equal(t, "Claims done", tasks[0].Title)
	assert.Equal(t, scoring.TaskOngoing, tasks[0].Status)
}

func TestImportInvalidDocument(t *testing.T) {
	e := newEnv()
	_, err := newImportService(e).Import(context.Background(), 1, []byte("{"))
	assert.ErrorIs(t, err, importer.ErrInvalidDocument)
}
