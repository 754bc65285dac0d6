// Package match contains the pure matching core: the score engine, the
// filter/sort pipeline and the digest builder. It performs no I/O and keeps
// no state — adapters (HTTP handlers, the digest service, the scheduler)
// call into it with snapshots and consume the results.
package match

import (
	"strings"

	"jobtrack/matcher-service/internal/model"
)

// Rule weights. They sum to exactly 100; the clamp in Score is a safety
// ceiling for future rules, not something the current table can reach.
const (
	weightTitleKeyword = 25
	weightDescKeyword  = 15
	weightLocation     = 15
	weightMode         = 10
	weightLevel        = 10
	weightSkillOverlap = 15
	weightFreshness    = 5
	weightChannel      = 5

	maxScore = 100

	freshnessMaxDays = 2
	bonusChannel     = "LinkedIn"
)

// Score computes the match score for one job against the user's preferences.
// The result is always in [0, 100]. A nil preference object scores 0, as does
// any individual rule whose preference field is absent or empty.
func Score(job model.Job, prefs *model.Preferences) int {
	if prefs == nil {
		return 0
	}

	score := 0

	if anyKeywordIn(job.Title, prefs.RoleKeywords) {
		score += weightTitleKeyword
	}
	if anyKeywordIn(job.Description, prefs.RoleKeywords) {
		score += weightDescKeyword
	}
	if anyEquals(job.Location, prefs.PreferredLocations) {
		score += weightLocation
	}
	if anyEquals(job.Mode, prefs.PreferredModes) {
		score += weightMode
	}
	if prefs.ExperienceLevel != "" && prefs.ExperienceLevel == job.Experience {
		score += weightLevel
	}
	if skillsOverlap(job.Skills, prefs.Skills) {
		score += weightSkillOverlap
	}
	if job.PostedDaysAgo <= freshnessMaxDays {
		score += weightFreshness
	}
	if job.Source == bonusChannel {
		score += weightChannel
	}

	if score > maxScore {
		score = maxScore
	}
	return score
}

// Annotate derives a scored view of jobs. The input slice and its elements
// are never mutated.
func Annotate(jobs []model.Job, prefs *model.Preferences) []model.ScoredJob {
	scored := make([]model.ScoredJob, 0, len(jobs))
	for _, job := range jobs {
		scored = append(scored, model.ScoredJob{Job: job, MatchScore: Score(job, prefs)})
	}
	return scored
}

// Band maps a match score to the qualitative badge tier shown to the user.
func Band(score int) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 60:
		return "Good"
	case score >= 40:
		return "Fair"
	default:
		return "Low"
	}
}

// anyKeywordIn reports whether any keyword appears as a case-insensitive
// substring of text. Empty keywords are skipped.
func anyKeywordIn(text string, keywords []string) bool {
	if len(keywords) == 0 {
		return false
	}
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// anyEquals reports whether value equals any candidate, case-insensitively
// and ignoring surrounding whitespace.
func anyEquals(value string, candidates []string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	for _, c := range candidates {
		if v == strings.ToLower(strings.TrimSpace(c)) && v != "" {
			return true
		}
	}
	return false
}

// skillsOverlap reports whether any job skill equals any preference skill.
// Comparison is case- and whitespace-insensitive; order never matters.
func skillsOverlap(jobSkills, prefSkills []string) bool {
	if len(jobSkills) == 0 || len(prefSkills) == 0 {
		return false
	}
	have := make(map[string]struct{}, len(jobSkills))
	for _, s := range jobSkills {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			have[s] = struct{}{}
		}
	}
	for _, s := range prefSkills {
		if _, ok := have[strings.ToLower(strings.TrimSpace(s))]; ok {
			return true
		}
	}
	return false
}
