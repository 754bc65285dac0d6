// Package ats computes the ATS readiness score for a résumé document.
// Like the match package it is pure: one résumé in, one report out, no
// storage or clock access.
package ats

import (
	"fmt"
	"regexp"
	"strings"

	"jobtrack/matcher-service/internal/model"
)

// Report is the full ATS evaluation: the clamped score, its qualitative
// level, and one suggestion line per unmet rule in rule-table order.
type Report struct {
	Score       int      `json:"score"`
	Level       string   `json:"level"`
	Suggestions []string `json:"suggestions"`
}

// actionVerbs matches a summary that opens with a strong action verb.
var actionVerbs = regexp.MustCompile(`^(?i)(Built|Developed|Designed|Implemented|Led|Improved|Created|Optimized|Automated|Managed|Orchestrated|Spearheaded|Launched|Initiated|Executed|Formulated|Coordinated|Established|Collaborated|Engineered|Architected)`)

const (
	summaryMinLen  = 50
	skillsMinCount = 5
	maxScore       = 100
)

// rule is one (predicate, weight) row of the ATS table. Rules are evaluated
// in declaration order so suggestions always enumerate the same way.
type rule struct {
	weight    int
	satisfied func(model.Resume) bool
	suggest   func(model.Resume) string
}

func fixed(s string) func(model.Resume) string {
	return func(model.Resume) string { return s }
}

var rules = []rule{
	{10, func(r model.Resume) bool { return strings.TrimSpace(r.FullName) != "" },
		fixed("Add your full name (+10).")},
	{10, func(r model.Resume) bool { return strings.TrimSpace(r.Email) != "" },
		fixed("Add a professional email (+10).")},
	{5, func(r model.Resume) bool { return strings.TrimSpace(r.Phone) != "" },
		fixed("Add a phone number (+5).")},
	{5, func(r model.Resume) bool { return strings.TrimSpace(r.LinkedIn) != "" },
		fixed("Add your LinkedIn profile (+5).")},
	{5, func(r model.Resume) bool { return strings.TrimSpace(r.GitHub) != "" },
		fixed("Add your GitHub profile (+5).")},
	{10, func(r model.Resume) bool { return len(r.Summary) > summaryMinLen },
		fixed("Expand your summary (> 50 chars) (+10).")},
	{10, func(r model.Resume) bool { return actionVerbs.MatchString(r.Summary) },
		fixed("Use action verbs in your summary (+10).")},
	{15, hasStructuredExperience, suggestExperience},
	{10, func(r model.Resume) bool { return len(r.Education) > 0 },
		fixed("Add education details (+10).")},
	{10, func(r model.Resume) bool { return r.Skills.Total() >= skillsMinCount },
		func(r model.Resume) string {
			return fmt.Sprintf("Add more skills (currently %d, need %d+) (+10).", r.Skills.Total(), skillsMinCount)
		}},
	{10, func(r model.Resume) bool { return len(r.Projects) >= 1 },
		fixed("Add at least one project (+10).")},
}

// hasStructuredExperience requires at least one experience entry whose
// description shows bullet structure: a bullet glyph, a dash, or more than
// one line.
func hasStructuredExperience(r model.Resume) bool {
	if len(r.Experience) == 0 {
		return false
	}
	for _, exp := range r.Experience {
		if strings.Contains(exp.Description, "•") ||
			strings.Contains(exp.Description, "-") ||
			len(strings.Split(exp.Description, "\n")) > 1 {
			return true
		}
	}
	return false
}

// suggestExperience distinguishes "no experience at all" from "experience
// present but unstructured".
func suggestExperience(r model.Resume) string {
	if len(r.Experience) == 0 {
		return "Add at least one work experience (+15)."
	}
	return "Use bullet points for experience descriptions (+15)."
}

// Evaluate scores a résumé against the ATS rule table. The score is the sum
// of satisfied rule weights, clamped to [0, 100]; every unmet rule emits
// exactly one suggestion line.
func Evaluate(r model.Resume) Report {
	score := 0
	suggestions := make([]string, 0, len(rules))

	for _, rl := range rules {
		if rl.satisfied(r) {
			score += rl.weight
		} else {
			suggestions = append(suggestions, rl.suggest(r))
		}
	}

	if score > maxScore {
		score = maxScore
	}

	return Report{
		Score:       score,
		Level:       Level(score),
		Suggestions: suggestions,
	}
}

// Level maps an ATS score to its qualitative band.
func Level(score int) string {
	switch {
	case score > 70:
		return "Strong Resume"
	case score > 40:
		return "Getting There"
	default:
		return "Needs Work"
	}
}
