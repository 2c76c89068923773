package recommend

import (
	"course_recommender/internal/model"
	"sort"
	"time"
)

// RecentCompletionLimit is how many of the latest completed courses feed topic matching.
const RecentCompletionLimit = 5

// ActivePath is a started learning path with its courses in path order.
type ActivePath struct {
	PathID    uint
	Title     string
	CourseIDs []uint
	Completed map[uint]bool
}

// NextIndex returns the position of the first unfinished course, or -1
// when every course of the path is done.
func (p ActivePath) NextIndex() int {
	for i, id := range p.CourseIDs {
		if !p.Completed[id] {
			return i
		}
	}
	return -1
}

func (p ActivePath) indexOf(courseID uint) int {
	for i, id := range p.CourseIDs {
		if id == courseID {
			return i
		}
	}
	return -1
}

type QuizResult struct {
	Score    int
	MaxScore int
}

type CompletedCourse struct {
	CourseID    uint
	Title       string
	PathID      uint
	Difficulty  model.Difficulty
	CompletedAt time.Time
}

// ScoringContext holds the per-user inputs of one scoring run. It is never persisted.
type ScoringContext struct {
	UserID                   uint
	CompletedCourseIDs       map[uint]bool
	ActivePaths              map[uint]ActivePath
	QuizScores               map[uint]QuizResult
	RecentlyCompletedCourses []CompletedCourse
	AllCourses               []model.CatalogCourse
	MaxEnrollment            int64
}

// QuizRatio returns Σscore/ΣmaxScore over all recorded quizzes.
// ok is false when there is nothing to average.
func (c *ScoringContext) QuizRatio() (ratio float64, ok bool) {
	var total, maxTotal int
	for _, q := range c.QuizScores {
		total += q.Score
		maxTotal += q.MaxScore
	}
	if maxTotal <= 0 {
		return 0, false
	}
	return float64(total) / float64(maxTotal), true
}

func (c *ScoringContext) recentlyCompleted(courseID uint) bool {
	for _, rc := range c.RecentlyCompletedCourses {
		if rc.CourseID == courseID {
			return true
		}
	}
	return false
}

// BuildContext derives a ScoringContext from a single storage snapshot.
// Completed courses and path progress are computed from the same
// completed-lesson counts so they cannot disagree.
func BuildContext(snap *model.LearnerSnapshot) *ScoringContext {
	sc := &ScoringContext{
		CompletedCourseIDs: make(map[uint]bool),
		ActivePaths:        make(map[uint]ActivePath),
		QuizScores:         make(map[uint]QuizResult),
	}
	if snap == nil {
		return sc
	}
	sc.UserID = snap.UserID
	sc.AllCourses = snap.Catalog
	sc.MaxEnrollment = maxEnrollment(snap.Catalog)

	// 用户不存在时只保留课程目录，退化为仅热度推荐
	if !snap.UserFound {
		return sc
	}

	byID := make(map[uint]model.CatalogCourse, len(snap.Catalog))
	for _, c := range snap.Catalog {
		byID[c.ID] = c
	}

	var recent []CompletedCourse
	for _, cp := range snap.Completions {
		course, ok := byID[cp.CourseID]
		if !ok || course.TotalLessons <= 0 || cp.CompletedLessons < course.TotalLessons {
			continue
		}
		sc.CompletedCourseIDs[course.ID] = true
		cc := CompletedCourse{
			CourseID:   course.ID,
			Title:      course.Title,
			PathID:     course.PathID,
			Difficulty: course.Difficulty,
		}
		if cp.LastCompletedAt != nil {
			cc.CompletedAt = *cp.LastCompletedAt
		}
		recent = append(recent, cc)
	}
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CompletedAt.After(recent[j].CompletedAt)
	})
	if len(recent) > RecentCompletionLimit {
		recent = recent[:RecentCompletionLimit]
	}
	sc.RecentlyCompletedCourses = recent

	for _, pathID := range snap.StartedPathIDs {
		sc.ActivePaths[pathID] = buildActivePath(pathID, snap.Catalog, sc.CompletedCourseIDs)
	}

	for _, q := range snap.QuizScores {
		sc.QuizScores[q.LessonID] = QuizResult{Score: q.Score, MaxScore: q.MaxScore}
	}

	return sc
}

func buildActivePath(pathID uint, catalog []model.CatalogCourse, completed map[uint]bool) ActivePath {
	var members []model.CatalogCourse
	for _, c := range catalog {
		if c.PathID == pathID {
			members = append(members, c)
		}
	}
	sort.SliceStable(members, func(i, j int) bool {
		return members[i].PathOrder < members[j].PathOrder
	})

	p := ActivePath{PathID: pathID, Completed: make(map[uint]bool)}
	for _, c := range members {
		if p.Title == "" {
			p.Title = c.PathTitle
		}
		p.CourseIDs = append(p.CourseIDs, c.ID)
		if completed[c.ID] {
			p.Completed[c.ID] = true
		}
	}
	return p
}

func maxEnrollment(courses []model.CatalogCourse) int64 {
	var top int64
	for _, c := range courses {
		if c.EnrollmentCount > top {
			top = c.EnrollmentCount
		}
	}
	return top
}
