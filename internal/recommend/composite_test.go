package recommend

import (
	"fmt"
	"testing"
	"time"

	"course_recommender/internal/model"

	"github.com/stretchr/testify/require"
)

func TestScore_AllSignalsCapAtOne(t *testing.T) {
	done := time.Now()
	sc := BuildContext(&model.LearnerSnapshot{
		UserID:    1,
		UserFound: true,
		Catalog: []model.CatalogCourse{
			{ID: 1, Title: "A", PathID: 2, PathTitle: "P", PathOrder: 1, TotalLessons: 1, Difficulty: model.DifficultyBeginner, EnrollmentCount: 10},
			{ID: 2, Title: "B", PathID: 2, PathTitle: "P", PathOrder: 2, TotalLessons: 1, Difficulty: model.DifficultyBeginner, EnrollmentCount: 50, PrerequisiteIDs: []uint{1}},
		},
		Completions:    []model.CourseCompletion{{CourseID: 1, CompletedLessons: 1, LastCompletedAt: &done}},
		StartedPathIDs: []uint{2},
		QuizScores:     []model.QuizScore{{LessonID: 1, Score: 5, MaxScore: 10}},
	})

	for _, scorer := range DefaultScorers {
		_, ok := scorer(course(sc, 2), sc)
		require.True(t, ok)
	}

	got := Score(sc, DefaultScorers, DefaultLimit)
	require.Len(t, got, 1)
	require.Equal(t, uint(2), got[0].Course.ID)
	require.Equal(t, 1.0, got[0].Score)
	require.Equal(t, model.ReasonContinuePath, got[0].ReasonType)
	require.Equal(t, "Continue your P journey", got[0].Reason)
}

func TestScore_ExcludesCompletedCourses(t *testing.T) {
	sc := pathContext()
	for i := range sc.AllCourses {
		sc.AllCourses[i].EnrollmentCount = 100
	}
	sc.MaxEnrollment = 100

	got := Score(sc, DefaultScorers, DefaultLimit)
	for _, r := range got {
		require.False(t, sc.CompletedCourseIDs[r.Course.ID], "completed course %d recommended", r.Course.ID)
	}
	require.Len(t, got, 4)
}

func TestScore_PathContinuationScenario(t *testing.T) {
	sc := pathContext()

	got := Score(sc, DefaultScorers, DefaultLimit)
	byID := make(map[uint]ScoredCourse)
	for _, r := range got {
		byID[r.Course.ID] = r
	}

	b, c := byID[2], byID[3]
	require.Equal(t, model.ReasonContinuePath, b.ReasonType)
	require.Equal(t, "Continue your P journey", b.Reason)
	require.Greater(t, b.Score, c.Score)

	// E is outside P: only the level-up topic signal reaches it.
	e, ok := byID[5]
	require.True(t, ok)
	require.Equal(t, model.ReasonComplement, e.ReasonType)
	require.InDelta(t, 0.175, e.Score, 1e-9)
}

func TestScore_ReasonIsStrongestSignal(t *testing.T) {
	sc := &ScoringContext{
		CompletedCourseIDs: map[uint]bool{},
		AllCourses:         []model.CatalogCourse{{ID: 1}},
	}
	weak := func(*model.CatalogCourse, *ScoringContext) (Signal, bool) {
		return Signal{Score: 0.1, Reason: "weak", ReasonType: model.ReasonPopular}, true
	}
	strong := func(*model.CatalogCourse, *ScoringContext) (Signal, bool) {
		return Signal{Score: 0.3, Reason: "strong", ReasonType: model.ReasonSkillGap}, true
	}
	tie := func(*model.CatalogCourse, *ScoringContext) (Signal, bool) {
		return Signal{Score: 0.3, Reason: "tie", ReasonType: model.ReasonComplement}, true
	}

	got := Score(sc, []Scorer{weak, strong, tie}, DefaultLimit)
	require.Len(t, got, 1)
	require.InDelta(t, 0.7, got[0].Score, 1e-9)
	require.Equal(t, "strong", got[0].Reason)
	require.Equal(t, model.ReasonSkillGap, got[0].ReasonType)
}

func TestScore_AbstainingCoursesDropped(t *testing.T) {
	sc := &ScoringContext{
		CompletedCourseIDs: map[uint]bool{},
		AllCourses:         []model.CatalogCourse{{ID: 1}, {ID: 2, EnrollmentCount: 3}},
	}
	got := Score(sc, DefaultScorers, DefaultLimit)
	require.Len(t, got, 1)
	require.Equal(t, uint(2), got[0].Course.ID)
}

func TestScore_TopLimitWithStableTies(t *testing.T) {
	sc := &ScoringContext{CompletedCourseIDs: map[uint]bool{}}
	for i := uint(1); i <= 15; i++ {
		sc.AllCourses = append(sc.AllCourses, model.CatalogCourse{ID: i, Title: fmt.Sprintf("c%d", i), EnrollmentCount: 1})
	}
	sc.AllCourses = append(sc.AllCourses, model.CatalogCourse{ID: 99, EnrollmentCount: 100})

	got := Score(sc, DefaultScorers, DefaultLimit)
	require.Len(t, got, DefaultLimit)
	require.Equal(t, uint(99), got[0].Course.ID)
	for i := 1; i < len(got); i++ {
		require.Equal(t, uint(i), got[i].Course.ID)
		require.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
}

func TestScore_EmptyCatalog(t *testing.T) {
	sc := BuildContext(&model.LearnerSnapshot{UserFound: true})
	require.Empty(t, Score(sc, DefaultScorers, 0))
}

func TestScore_LeavesContextUntouched(t *testing.T) {
	sc := &ScoringContext{
		CompletedCourseIDs: map[uint]bool{},
		AllCourses: []model.CatalogCourse{
			{ID: 1, EnrollmentCount: 10},
			{ID: 2, EnrollmentCount: 2},
		},
	}

	got := Score(sc, DefaultScorers, DefaultLimit)
	require.Len(t, got, 2)
	require.InDelta(t, WeightPopularity, got[0].Score, 1e-9)
	require.Equal(t, int64(0), sc.MaxEnrollment)
}
