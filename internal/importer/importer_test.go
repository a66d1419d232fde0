package importer

import (
	"testing"

	"mathtatag_backend/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const export = `{
  "Classes": {
    "SNES-A-2025": {"id": "SNES-A-2025", "school": "San Nicolas ES", "section": "A", "studentIds": ["S2", "S1"]}
  },
  "Students": {
    "S2": {"id": "S2", "nickname": "Ben", "classId": "SNES-A-2025", "parentId": "P2", "preScore": 6},
    "S1": {"id": "S1", "nickname": "Ana", "classId": "SNES-A-2025", "parentId": "P1",
           "preScore": {"pattern": 3, "numbers": 4}, "postScore": {"pattern": 8, "numbers": 9}}
  },
  "Parents": {
    "P1": {"parentId": "P1", "name": "Ana's Parent", "studentId": "S1", "householdIncome": "₱20,001-₱40,000",
           "tasks": [
             {"task_title": "Count coins", "task_details": "Use real coins", "task_objective": "Numbers"},
             {"title": "Bead patterns", "preRating": 3},
             {"title": "Sort spoons", "preRating": 2, "postRating": 4, "week": 5, "quarter": 2},
             {"title": "Shapes", "status": "done", "preRating": 1, "postRating": 1}
           ]}
  }
}`

func TestParseDocument(t *testing.T) {
	doc, err := Parse([]byte(export))
	require.NoError(t, err)

	require.Len(t, doc.Classes, 1)
	assert.Equal(t, ClassRecord{ExternalID: "SNES-A-2025", Name: "A", School: "San Nicolas ES"}, doc.Classes[0])

	require.Len(t, doc.Learners, 2)
	ana, ben := doc.Learners[0], doc.Learners[1]
	assert.Equal(t, "S1", ana.ExternalID)
	assert.Equal(t, &scoring.SubScore{Pattern: 3, Numbers: 4}, ana.Pre)
	assert.Equal(t, &scoring.SubScore{Pattern: 8, Numbers: 9}, ana.Post)

	// 旧格式数字成绩计入 pattern，缺失的后测保持为空
	assert.Equal(t, &scoring.SubScore{Pattern: 6}, ben.Pre)
	assert.Nil(t, ben.Post)
	assert.Equal(t, "P2", ben.ParentID)

	require.Len(t, doc.Parents, 1)
	assert.Equal(t, "S1", doc.Parents[0].LearnerID)
	assert.Equal(t, "₱20,001-₱40,000", doc.Parents[0].HouseholdIncome)
}

func TestParseTaskNormalization(t *testing.T) {
	doc, err := Parse([]byte(export))
	require.NoError(t, err)
	tasks := doc.Parents[0].Tasks
	require.Len(t, tasks, 4)

	assert.Equal(t, "Count coins", tasks[0].Title)
	assert.Equal(t, "Use real coins", tasks[0].Details)
	assert.Equal(t, "Numbers", tasks[0].Objective)
	assert.Equal(t, scoring.TaskNotDone, tasks[0].Status)
	assert.Equal(t, 1, tasks[0].Week)
	assert.Equal(t, 1, tasks[0].Quarter)

	assert.Equal(t, scoring.TaskOngoing, tasks[1].Status)
	assert.Equal(t, 2, tasks[1].Week)

	assert.Equal(t, scoring.TaskDone, tasks[2].Status)
	assert.Equal(t, 5, tasks[2].Week)
	assert.Equal(t, 2, tasks[2].Quarter)

	assert.Equal(t, scoring.TaskDone, tasks[3].Status)
}

func TestParseTasksObjectForm(t *testing.T) {
	raw := `{"b": {"title": "second"}, "a": {"title": "first"}}`
	tasks, err := ParseTasks([]byte(raw))
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "first", tasks[0].Title)
	assert.Equal(t, "second", tasks[1].Title)
}

func TestParseDefaultWeekWraps(t *testing.T) {
	raw := `[{},{},{},{},{},{},{},{},{}]`
	tasks, err := ParseTasks([]byte(raw))
	require.NoError(t, err)
	require.Len(t, tasks, 9)
	assert.Equal(t, 8, tasks[7].Week)
	assert.Equal(t, 1, tasks[8].Week)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte(`{not json`))
	assert.ErrorIs(t, err, ErrInvalidDocument)

	_, err = Parse([]byte(`[1,2]`))
	assert.ErrorIs(t, err, ErrInvalidDocument)

	_, err = ParseTasks([]byte(`nope`))
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestParseEmptyScoreObject(t *testing.T) {
	doc, err := Parse([]byte(`{"Students": [{"id": "x", "preScore": {}}]}`))
	require.NoError(t, err)
	require.Len(t, doc.Learners, 1)
	assert.Nil(t, doc.Learners[0].Pre)
	assert.Equal(t, "x", doc.Learners[0].Nickname)
}
