package recommend

import (
	"course_recommender/internal/model"
	"sort"
)

// DefaultLimit is how many scored courses a batch keeps.
const DefaultLimit = 10

// MaxScore caps the summed signal score.
const MaxScore = 1.0

// ScoredCourse is a candidate with its combined score and the single
// strongest signal shown to the learner.
type ScoredCourse struct {
	Course     model.CatalogCourse
	Score      float64
	Reason     string
	ReasonType model.ReasonType
}

// Score runs every scorer over every course the learner has not completed,
// sums the non-abstaining signals (capped at MaxScore) and keeps the top
// limit courses. Ties keep catalog order.
func Score(sc *ScoringContext, scorers []Scorer, limit int) []ScoredCourse {
	if limit <= 0 {
		limit = DefaultLimit
	}
	// 未设置热度上限时在副本上补齐，不修改调用方的上下文
	if sc.MaxEnrollment == 0 {
		local := *sc
		local.MaxEnrollment = maxEnrollment(sc.AllCourses)
		sc = &local
	}

	var results []ScoredCourse
	for i := range sc.AllCourses {
		course := &sc.AllCourses[i]
		if sc.CompletedCourseIDs[course.ID] {
			continue
		}

		var (
			total float64
			best  Signal
			fired bool
		)
		for _, score := range scorers {
			sig, ok := score(course, sc)
			if !ok {
				continue
			}
			total += sig.Score
			if !fired || sig.Score > best.Score {
				best = sig
			}
			fired = true
		}
		if !fired || total <= 0 {
			continue
		}
		if total > MaxScore {
			total = MaxScore
		}

		results = append(results, ScoredCourse{
			Course:     *course,
			Score:      total,
			Reason:     best.Reason,
			ReasonType: best.ReasonType,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}
