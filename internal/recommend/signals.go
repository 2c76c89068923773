package recommend

import (
	"course_recommender/internal/model"
	"fmt"
)

// Signal weights. They sum to 1.0 so a course hit by every signal at full
// strength reaches the score ceiling exactly.
const (
	WeightPathProgress    = 0.35
	WeightTopicSimilarity = 0.25
	WeightSkillGap        = 0.20
	WeightPrerequisites   = 0.10
	WeightPopularity      = 0.10
)

const (
	lowQuizRatio        = 0.70
	highQuizRatio       = 0.90
	pathLookahead       = 2
	pathDecayPerStep    = 0.3
	pathDecayFloor      = 0.1
	levelUpFactor       = 0.7
	advancedReadyFactor = 0.8
	popularThreshold    = 0.5
	trendingFactor      = 0.3
)

// Signal is one weighted opinion about a course.
type Signal struct {
	Score      float64
	Reason     string
	ReasonType model.ReasonType
}

// Scorer inspects a candidate course. ok=false means the scorer abstains,
// which is different from a zero score.
type Scorer func(course *model.CatalogCourse, sc *ScoringContext) (sig Signal, ok bool)

// DefaultScorers is the strategy list run by Score, in tie-break order.
var DefaultScorers = []Scorer{
	PathProgress,
	TopicSimilarity,
	SkillGap,
	Prerequisites,
	Popularity,
}

// PathProgress favours the next unfinished courses of paths the learner has started.
func PathProgress(course *model.CatalogCourse, sc *ScoringContext) (Signal, bool) {
	if course.PathID == 0 {
		return Signal{}, false
	}
	path, ok := sc.ActivePaths[course.PathID]
	if !ok {
		return Signal{}, false
	}
	next := path.NextIndex()
	idx := path.indexOf(course.ID)
	if next < 0 || idx < 0 {
		return Signal{}, false
	}

	distance := idx - next
	switch {
	case distance == 0:
		return Signal{
			Score:      WeightPathProgress,
			Reason:     fmt.Sprintf("Continue your %s journey", path.Title),
			ReasonType: model.ReasonContinuePath,
		}, true
	case distance > 0 && distance <= pathLookahead:
		factor := 1 - pathDecayPerStep*float64(distance)
		if factor < pathDecayFloor {
			factor = pathDecayFloor
		}
		return Signal{
			Score:      WeightPathProgress * factor,
			Reason:     fmt.Sprintf("Part of your %s path", path.Title),
			ReasonType: model.ReasonContinuePath,
		}, true
	}
	return Signal{}, false
}

// TopicSimilarity matches a course against recently completed ones, first by
// path and then by the next difficulty step.
func TopicSimilarity(course *model.CatalogCourse, sc *ScoringContext) (Signal, bool) {
	if len(sc.RecentlyCompletedCourses) == 0 {
		return Signal{}, false
	}

	levels := make(map[model.Difficulty]bool)
	for _, rc := range sc.RecentlyCompletedCourses {
		if course.PathID != 0 && rc.PathID == course.PathID {
			return Signal{
				Score:      WeightTopicSimilarity,
				Reason:     fmt.Sprintf("Because you completed %s", rc.Title),
				ReasonType: model.ReasonSimilarTopic,
			}, true
		}
		levels[rc.Difficulty] = true
	}

	switch {
	case levels[model.DifficultyBeginner] && course.Difficulty == model.DifficultyIntermediate:
		return Signal{
			Score:      WeightTopicSimilarity * levelUpFactor,
			Reason:     "Ready to level up to intermediate",
			ReasonType: model.ReasonComplement,
		}, true
	case levels[model.DifficultyIntermediate] && course.Difficulty == model.DifficultyAdvanced:
		return Signal{
			Score:      WeightTopicSimilarity * levelUpFactor,
			Reason:     "Challenge yourself with advanced material",
			ReasonType: model.ReasonComplement,
		}, true
	}
	return Signal{}, false
}

// SkillGap uses the aggregate quiz ratio: weak learners get foundations,
// strong learners get advanced courses.
func SkillGap(course *model.CatalogCourse, sc *ScoringContext) (Signal, bool) {
	ratio, ok := sc.QuizRatio()
	if !ok {
		return Signal{}, false
	}

	switch {
	case ratio < lowQuizRatio && course.Difficulty == model.DifficultyBeginner:
		return Signal{
			Score:      WeightSkillGap,
			Reason:     "Strengthen your foundational skills",
			ReasonType: model.ReasonSkillGap,
		}, true
	case ratio > highQuizRatio && course.Difficulty == model.DifficultyAdvanced:
		return Signal{
			Score:      WeightSkillGap * advancedReadyFactor,
			Reason:     "You're ready for advanced challenges",
			ReasonType: model.ReasonSkillGap,
		}, true
	}
	return Signal{}, false
}

// Prerequisites fires only when the last gate was cleared recently; courses
// unlocked long ago do not re-trigger it.
func Prerequisites(course *model.CatalogCourse, sc *ScoringContext) (Signal, bool) {
	if len(course.PrerequisiteIDs) == 0 {
		return Signal{}, false
	}

	justCleared := false
	for _, id := range course.PrerequisiteIDs {
		if !sc.CompletedCourseIDs[id] {
			return Signal{}, false
		}
		if sc.recentlyCompleted(id) {
			justCleared = true
		}
	}
	if !justCleared {
		return Signal{}, false
	}

	return Signal{
		Score:      WeightPrerequisites,
		Reason:     "You're ready for this!",
		ReasonType: model.ReasonPrerequisiteMet,
	}, true
}

// Popularity normalises enrollment by the catalog maximum. Sparse catalogs
// still get a flat trending score for any course with enrollments.
func Popularity(course *model.CatalogCourse, sc *ScoringContext) (Signal, bool) {
	if course.EnrollmentCount <= 0 || sc.MaxEnrollment <= 0 {
		return Signal{}, false
	}

	normalized := float64(course.EnrollmentCount) / float64(sc.MaxEnrollment)
	if normalized >= popularThreshold {
		return Signal{
			Score:      WeightPopularity * normalized,
			Reason:     "Popular with learners like you",
			ReasonType: model.ReasonPopular,
		}, true
	}
	return Signal{
		Score:      WeightPopularity * trendingFactor,
		Reason:     "Trending course",
		ReasonType: model.ReasonPopular,
	}, true
}
