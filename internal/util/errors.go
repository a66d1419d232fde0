package util

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailRegistered      = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrAccountDisabled      = errors.New("account disabled")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrClassroomNotFound    = errors.New("classroom not found")
	ErrLearnerNotFound      = errors.New("learner not found")
	ErrTaskNotFound         = errors.New("task not found")
	ErrScoreAlreadyRecorded = errors.New("score already recorded")
	ErrInvalidSubScore      = errors.New("pattern and numbers must be between 0 and 10")
	ErrInvalidSchedule      = errors.New("week must be 1-8 and quarter 1-4")
	ErrNoGuardian           = errors.New("learner has no guardian linked")
	ErrInvalidTaskStatus    = errors.New("status must be notdone, ongoing or done")
	ErrTaskStatusLocked     = errors.New("task status and ratings change only by advancing the task")
)
