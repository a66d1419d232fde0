package scoring

// DefaultWeekCount 每个季度的周数
const DefaultWeekCount = 8

const (
	MinRating = 1
	MaxRating = 5
)

// TaskStatus 家庭任务的生命周期状态，只能向前推进
type TaskStatus string

const (
	TaskNotDone TaskStatus = "notdone"
	TaskOngoing TaskStatus = "ongoing"
	TaskDone    TaskStatus = "done"
)

func (s TaskStatus) Valid() bool {
	return s == TaskNotDone || s == TaskOngoing || s == TaskDone
}

// Task 家庭任务在计算层的视图
type Task struct {
	Title      string     `json:"title"`
	Details    string     `json:"details"`
	Objective  string     `json:"objective"`
	Status     TaskStatus `json:"status"`
	PreRating  *int       `json:"preRating,omitempty"`
	PostRating *int       `json:"postRating,omitempty"`
	Week       int        `json:"week"`
	Quarter    int        `json:"quarter"`
}

// OverallProgress 已完成任务占比（整数百分比），无任务时为 0
func OverallProgress(tasks []Task) int {
	return percentDone(tasks)
}

// QuarterProgress 指定季度内已完成任务占比
func QuarterProgress(tasks []Task, quarter int) int {
	return percentDone(filterQuarter(tasks, quarter))
}

// WeeklyProgress 指定季度第 1..weekCount 周的完成率，始终返回 weekCount 个值，
// 没有任务的周记为 0。weekCount <= 0 时使用 DefaultWeekCount。
func WeeklyProgress(tasks []Task, quarter, weekCount int) []int {
	if weekCount <= 0 {
		weekCount = DefaultWeekCount
	}
	done := make([]int, weekCount)
	total := make([]int, weekCount)
	for _, t := range filterQuarter(tasks, quarter) {
		if t.Week < 1 || t.Week > weekCount {
			continue
		}
		total[t.Week-1]++
		if t.Status == TaskDone {
			done[t.Week-1]++
		}
	}
	out := make([]int, weekCount)
	for i := range out {
		if total[i] > 0 {
			out[i] = roundInt(float64(done[i]) / float64(total[i]) * 100)
		}
	}
	return out
}

// AdvanceStatus 提交评分推进任务状态：
// notdone 记录前评分进入 ongoing，ongoing 记录后评分进入 done。
// 返回新的任务副本，出错时原样返回输入。
func AdvanceStatus(task Task, rating int) (Task, error) {
	if rating < MinRating || rating > MaxRating {
		return task, ErrInvalidRating
	}
	next := task.clone()
	switch task.Status {
	case TaskDone:
		return task, ErrTaskAlreadyComplete
	case TaskOngoing:
		next.PostRating = intPtr(rating)
		next.Status = TaskDone
	default:
		next.PreRating = intPtr(rating)
		next.Status = TaskOngoing
	}
	return next, nil
}

// DeriveStatus 旧数据缺少状态时根据评分推导
func DeriveStatus(preRating, postRating *int) TaskStatus {
	switch {
	case preRating == nil:
		return TaskNotDone
	case postRating == nil:
		return TaskOngoing
	default:
		return TaskDone
	}
}

func (t Task) clone() Task {
	c := t
	if t.PreRating != nil {
		c.PreRating = intPtr(*t.PreRating)
	}
	if t.PostRating != nil {
		c.PostRating = intPtr(*t.PostRating)
	}
	return c
}

func filterQuarter(tasks []Task, quarter int) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Quarter == quarter {
			out = append(out, t)
		}
	}
	return out
}

func percentDone(tasks []Task) int {
	if len(tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range tasks {
		if t.Status == TaskDone {
			done++
		}
	}
	return roundInt(float64(done) / float64(len(tasks)) * 100)
}

func intPtr(v int) *int {
	return &v
}
