// Package importer 将旧版实时数据库导出的 JSON 规整为本系统的记录。
// 旧数据没有固定结构：节点可能是以 ID 为键的对象，也可能是数组；
// 成绩可能是 {pattern,numbers} 对象或单个数字；任务字段存在别名。
package importer

import (
	"errors"
	"fmt"
	"sort"

	"mathtatag_backend/internal/scoring"

	"github.com/tidwall/gjson"
)

var ErrInvalidDocument = errors.New("import document is not valid JSON")

type ClassRecord struct {
	ExternalID string
	Name       string
	School     string
}

type LearnerRecord struct {
	ExternalID string
	Nickname   string
	ClassID    string
	ParentID   string
	Pre        *scoring.SubScore
	Post       *scoring.SubScore
}

type ParentRecord struct {
	ExternalID      string
	Name            string
	Email           string
	Contact         string
	HouseholdIncome string
	LearnerID       string
	Tasks           []scoring.Task
}

// Document 一次导入的全部内容，各切片按外部 ID 排序
type Document struct {
	Classes  []ClassRecord
	Learners []LearnerRecord
	Parents  []ParentRecord
}

// Parse 解析完整导出，顶层键为 Classes / Students / Parents（大小写不敏感）
func Parse(raw []byte) (*Document, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrInvalidDocument
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: top level must be an object", ErrInvalidDocument)
	}

	doc := &Document{}
	eachNode(lookup(root, "Classes", "classes"), func(key string, v gjson.Result) {
		doc.Classes = append(doc.Classes, parseClass(key, v))
	})
	eachNode(lookup(root, "Students", "students", "learners"), func(key string, v gjson.Result) {
		doc.Learners = append(doc.Learners, parseLearner(key, v))
	})
	eachNode(lookup(root, "Parents", "parents"), func(key string, v gjson.Result) {
		doc.Parents = append(doc.Parents, parseParent(key, v))
	})

	sort.SliceStable(doc.Classes, func(i, j int) bool { return doc.Classes[i].ExternalID < doc.Classes[j].ExternalID })
	sort.SliceStable(doc.Learners, func(i, j int) bool { return doc.Learners[i].ExternalID < doc.Learners[j].ExternalID })
	sort.SliceStable(doc.Parents, func(i, j int) bool { return doc.Parents[i].ExternalID < doc.Parents[j].ExternalID })
	return doc, nil
}

// ParseTasks 只解析任务列表（对象或数组）
func ParseTasks(raw []byte) ([]scoring.Task, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrInvalidDocument
	}
	return parseTasks(gjson.ParseBytes(raw)), nil
}

func parseClass(key string, v gjson.Result) ClassRecord {
	c := ClassRecord{
		ExternalID: firstString(v, "id"),
		School:     firstString(v, "school"),
	}
	if c.ExternalID == "" {
		c.ExternalID = key
	}
	c.Name = firstString(v, "name", "section")
	if c.Name == "" {
		c.Name = c.ExternalID
	}
	return c
}

func parseLearner(key string, v gjson.Result) LearnerRecord {
	l := LearnerRecord{
		ExternalID: firstString(v, "id", "studentId", "studentNumber"),
		Nickname:   firstString(v, "nickname", "name"),
		ClassID:    firstString(v, "classId"),
		ParentID:   firstString(v, "parentId"),
		Pre:        parseSubScore(v.Get("preScore")),
		Post:       parseSubScore(v.Get("postScore")),
	}
	if l.ExternalID == "" {
		l.ExternalID = key
	}
	if l.Nickname == "" {
		l.Nickname = l.ExternalID
	}
	return l
}

func parseParent(key string, v gjson.Result) ParentRecord {
	p := ParentRecord{
		ExternalID:      firstString(v, "parentId", "id"),
		Name:            firstString(v, "name"),
		Email:           firstString(v, "email"),
		Contact:         firstString(v, "contact"),
		HouseholdIncome: firstString(v, "householdIncome", "income"),
		LearnerID:       firstString(v, "studentId"),
		Tasks:           parseTasks(v.Get("tasks")),
	}
	if p.ExternalID == "" {
		p.ExternalID = key
	}
	return p
}

// parseSubScore 数字视为旧格式：全部计入 pattern
func parseSubScore(v gjson.Result) *scoring.SubScore {
	switch {
	case !v.Exists() || v.Type == gjson.Null:
		return nil
	case v.Type == gjson.Number:
		return &scoring.SubScore{Pattern: int(v.Int())}
	case v.IsObject():
		p, n := v.Get("pattern"), v.Get("numbers")
		if !p.Exists() && !n.Exists() {
			return nil
		}
		return &scoring.SubScore{Pattern: int(p.Int()), Numbers: int(n.Int())}
	}
	return nil
}

func parseTasks(v gjson.Result) []scoring.Task {
	var tasks []scoring.Task
	idx := 0
	eachNode(v, func(_ string, t gjson.Result) {
		tasks = append(tasks, parseTask(idx, t))
		idx++
	})
	return tasks
}

func parseTask(idx int, v gjson.Result) scoring.Task {
	t := scoring.Task{
		Title:      firstString(v, "title", "task_title"),
		Details:    firstString(v, "details", "task_details"),
		Objective:  firstString(v, "objective", "task_objective"),
		PreRating:  optionalInt(v.Get("preRating")),
		PostRating: optionalInt(v.Get("postRating")),
		Week:       idx%scoring.DefaultWeekCount + 1,
		Quarter:    1,
	}

	if w := v.Get("week"); w.Type == gjson.Number {
		t.Week = int(w.Int())
	}
	if q := v.Get("quarter"); q.Type == gjson.Number {
		t.Quarter = int(q.Int())
	}

	status := scoring.TaskStatus(firstString(v, "status"))
	if status.Valid() {
		t.Status = status
	} else {
		t.Status = scoring.DeriveStatus(t.PreRating, t.PostRating)
	}
	return t
}

// eachNode 依次访问数组元素或对象成员；对象按键排序以保证顺序稳定
func eachNode(v gjson.Result, fn func(key string, v gjson.Result)) {
	switch {
	case v.IsArray():
		for i, item := range v.Array() {
			if item.Type == gjson.Null {
				continue
			}
			fn(fmt.Sprint(i), item)
		}
	case v.IsObject():
		m := v.Map()
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fn(k, m[k])
		}
	}
}

func lookup(root gjson.Result, names ...string) gjson.Result {
	for _, n := range names {
		if r := root.Get(n); r.Exists() {
			return r
		}
	}
	return gjson.Result{}
}

// firstString 返回第一个非空字段
func firstString(v gjson.Result, paths ...string) string {
	for _, p := range paths {
		if s := v.Get(p).String(); s != "" {
			return s
		}
	}
	return ""
}

func optionalInt(v gjson.Result) *int {
	if v.Type != gjson.Number {
		return nil
	}
	n := int(v.Int())
	return &n
}
