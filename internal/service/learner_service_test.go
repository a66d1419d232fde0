package service

import (
	"context"
	"testing"

	"mathtatag_backend/internal/model"
	"mathtatag_backend/internal/scoring"
	"mathtatag_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollChecksOwnership(t *testing.T) {
	e := newEnv()
	svc := e.learnerService()
	ctx := context.Background()

	owner := e.addUser(model.Teacher, "Owner", "owner@school.ph")
	other := e.addUser(model.Teacher, "Other", "other@school.ph")
	admin := e.addUser(model.Admin, "Admin", "admin@school.ph")
	class := e.addClassroom(owner.ID, "Grade 1 - A")

	learner, err := svc.Enroll(ctx, Actor{UserID: owner.ID, Role: model.Teacher}, class.ID, " Ana ")
	require.NoError(t, err)
	assert.Equal(t, "Ana", learner.Nickname)
	assert.Nil(t, learner.PreScore)
	assert.Nil(t, learner.PostScore)

	_, err = svc.Enroll(ctx, Actor{UserID: other.ID, Role: model.Teacher}, class.ID, "Ben")
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	_, err = svc.Enroll(ctx, Actor{UserID: admin.ID, Role: model.Admin}, class.ID, "Cara")
	assert.NoError(t, err)

	_, err = svc.Enroll(ctx, Actor{UserID: owner.ID, Role: model.Teacher}, 404, "Dan")
	assert.ErrorIs(t, err, util.ErrClassroomNotFound)
}

func TestRecordScoreOnce(t *testing.T) {
	e := newEnv()
	svc := e.learnerService()
	ctx := context.Background()

	teacher := e.addUser(model.Teacher, "T", "t@school.ph")
	class := e.addClassroom(teacher.ID, "A")
	l := e.addLearner(class.ID, "Ana", nil, nil)
	actor := Actor{UserID: teacher.ID, Role: model.Teacher}

	_, err := svc.RecordScore(ctx, actor, l.ID, scoring.PreTest, scoring.SubScore{Pattern: 11, Numbers: 0})
	assert.ErrorIs(t, err, util.ErrInvalidSubScore)

	_, err = svc.RecordScore(ctx, actor, l.ID, scoring.PreTest, scoring.SubScore{Pattern: -1, Numbers: 3})
	assert.ErrorIs(t, err, util.ErrInvalidSubScore)

	updated, err := svc.RecordScore(ctx, actor, l.ID, scoring.PreTest, scoring.SubScore{Pattern: 3, Numbers: 4})
	require.NoError(t, err)
	require.NotNil(t, updated.PreScore)
	assert.Equal(t, 7, updated.PreScore.Total())
	assert.NotNil(t, updated.PreTakenAt)
	assert.Nil(t, updated.PostScore)

	_, err = svc.RecordScore(ctx, actor, l.ID, scoring.PreTest, scoring.SubScore{Pattern: 9, Numbers: 9})
	assert.ErrorIs(t, err, util.ErrScoreAlreadyRecorded)

	// 后测不依赖前测
	l2 := e.addLearner(class.ID, "Ben", nil, nil)
	updated, err = svc.RecordScore(ctx, actor, l2.ID, scoring.PostTest, scoring.SubScore{Pattern: 5, Numbers: 5})
	require.NoError(t, err)
	assert.Nil(t, updated.PreScore)
	assert.Equal(t, 10, updated.PostScore.Total())

	_, err = svc.RecordScore(ctx, actor, "missing", scoring.PreTest, scoring.SubScore{})
	assert.ErrorIs(t, err, util.ErrLearnerNotFound)

	assert.Equal(t, 2, e.cache.invalidations)
}

func TestLinkGuardian(t *testing.T) {
	e := newEnv()
	svc := e.learnerService()
	ctx := context.Background()

	teacher := e.addUser(model.Teacher, "T", "t@school.ph")
	parent := e.addUser(model.Parent, "P", "p@home.ph")
	class := e.addClassroom(teacher.ID, "A")
	l := e.addLearner(class.ID, "Ana", nil, nil)
	actor := Actor{UserID: teacher.ID, Role: model.Teacher}

	linked, err := svc.LinkGuardian(ctx, actor, l.ID, "P@home.ph")
	require.NoError(t, err)
	require.NotNil(t, linked.GuardianID)
	assert.Equal(t, parent.ID, *linked.GuardianID)

	found, err := e.learners.FindByGuardian(ctx, parent.ID)
	require.NoError(t, err)
	assert.Equal(t, l.ID, found.ID)

	_, err = svc.LinkGuardian(ctx, actor, l.ID, "t@school.ph")
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	_, err = svc.LinkGuardian(ctx, actor, l.ID, "ghost@home.ph")
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestScoringSettingsUpdate(t *testing.T) {
	s := NewScoringSettings(scoringConfig(0, 0))
	assert.Equal(t, 20, s.Get().TestTotal)

	s.Update(scoringConfig(30, 10))
	assert.Equal(t, 30, s.Get().TestTotal)
	assert.Equal(t, 10, s.Get().PassThreshold)
	assert.Equal(t, 8, s.Get().WeekCount)
}
