package ats_test

import (
	"strings"
	"testing"

	"jobtrack/matcher-service/internal/ats"
	"jobtrack/matcher-service/internal/model"
)

func fullResume() model.Resume {
	return model.Resume{
		FullName: "Asha Rao",
		Email:    "asha@example.com",
		Phone:    "+91 98765 43210",
		LinkedIn: "linkedin.com/in/asharao",
		GitHub:   "github.com/asharao",
		Summary:  "Built and shipped customer-facing web applications for four years across two product teams.",
		Skills: model.SkillGroups{
			Technical: []string{"Go", "React", "PostgreSQL"},
			Soft:      []string{"Mentoring"},
			Tools:     []string{"Docker"},
		},
		Education: []model.Education{{School: "IIT Madras", Degree: "B.Tech", Year: "2020"}},
		Experience: []model.Experience{{
			Company:     "Acme",
			Role:        "Software Engineer",
			Duration:    "2021-2024",
			Description: "• Led checkout rewrite\n• Cut p99 latency by 40%",
		}},
		Projects: []model.Project{{Name: "jobtrack", Description: "Job tracker"}},
	}
}

func TestEvaluate_FullResume(t *testing.T) {
	report := ats.Evaluate(fullResume())

	if report.Score != 100 {
		t.Errorf("Score = %d, want 100", report.Score)
	}
	if report.Level != "Strong Resume" {
		t.Errorf("Level = %q, want Strong Resume", report.Level)
	}
	if len(report.Suggestions) != 0 {
		t.Errorf("Suggestions = %v, want none", report.Suggestions)
	}
}

func TestEvaluate_EmptyResume(t *testing.T) {
	report := ats.Evaluate(model.Resume{})

	if report.Score != 0 {
		t.Errorf("Score = %d, want 0", report.Score)
	}
	if report.Level != "Needs Work" {
		t.Errorf("Level = %q, want Needs Work", report.Level)
	}
	// One suggestion per rule.
	if len(report.Suggestions) != 11 {
		t.Errorf("got %d suggestions, want 11", len(report.Suggestions))
	}
}

func TestEvaluate_PartialResume(t *testing.T) {
	// Name and a project only: short summary with no opening verb, one
	// experience entry without bullet structure, three skills.
	r := model.Resume{
		FullName: "Asha Rao",
		Summary:  "A motivated engineer seeking new roles.",
		Skills:   model.SkillGroups{Technical: []string{"Go", "React", "SQL"}},
		Experience: []model.Experience{{
			Company:     "Acme",
			Role:        "Engineer",
			Description: "Worked on internal tooling",
		}},
		Projects: []model.Project{{Name: "jobtrack"}},
	}

	report := ats.Evaluate(r)

	if report.Score != 20 {
		t.Errorf("Score = %d, want 20 (name + project)", report.Score)
	}
	if report.Level != "Needs Work" {
		t.Errorf("Level = %q, want Needs Work", report.Level)
	}

	want := []string{
		"Add a professional email (+10).",
		"Add a phone number (+5).",
		"Add your LinkedIn profile (+5).",
		"Add your GitHub profile (+5).",
		"Expand your summary (> 50 chars) (+10).",
		"Use action verbs in your summary (+10).",
		"Use bullet points for experience descriptions (+15).",
		"Add education details (+10).",
		"Add more skills (currently 3, need 5+) (+10).",
	}
	if len(report.Suggestions) != len(want) {
		t.Fatalf("got %d suggestions, want %d:\n%s",
			len(report.Suggestions), len(want), strings.Join(report.Suggestions, "\n"))
	}
	for i := range want {
		if report.Suggestions[i] != want[i] {
			t.Errorf("suggestion %d = %q, want %q", i, report.Suggestions[i], want[i])
		}
	}
}

func TestEvaluate_ExperienceStructure(t *testing.T) {
	base := fullResume()

	cases := []struct {
		name        string
		description string
		satisfied   bool
	}{
		{"bullet glyph", "• Shipped the thing", true},
		{"dash", "- Shipped the thing", true},
		{"multiline", "Shipped the thing\nThen another thing", true},
		{"single line", "Shipped the thing", false},
		{"empty", "", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := base
			r.Experience = []model.Experience{{Company: "Acme", Description: c.description}}
			report := ats.Evaluate(r)
			want := 100
			if !c.satisfied {
				want = 85
			}
			if report.Score != want {
				t.Errorf("Score = %d, want %d", report.Score, want)
			}
		})
	}
}

func TestEvaluate_MissingExperienceSuggestion(t *testing.T) {
	r := fullResume()
	r.Experience = nil
	report := ats.Evaluate(r)

	found := false
	for _, s := range report.Suggestions {
		if s == "Add at least one work experience (+15)." {
			found = true
		}
	}
	if !found {
		t.Errorf("missing-experience suggestion absent: %v", report.Suggestions)
	}
}

func TestEvaluate_SummaryRules(t *testing.T) {
	base := fullResume()

	cases := []struct {
		name    string
		summary string
		want    int
	}{
		{"long with verb", base.Summary, 100},
		{"long without verb", "A very seasoned professional with a decade of broad industry experience.", 90},
		{"short with verb", "Built two products.", 90},
		{"verb case insensitive", "dEvElOpEd platform services for a large retail group over six years.", 100},
		{"empty", "", 80},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := base
			r.Summary = c.summary
			if report := ats.Evaluate(r); report.Score != c.want {
				t.Errorf("Score = %d, want %d", report.Score, c.want)
			}
		})
	}
}

func TestEvaluate_SkillCountAcrossGroups(t *testing.T) {
	r := fullResume()
	r.Skills = model.SkillGroups{
		Technical: []string{"Go", "SQL"},
		Soft:      []string{"Writing"},
		Tools:     []string{"Docker", "Git"},
	}
	if report := ats.Evaluate(r); report.Score != 100 {
		t.Errorf("five skills across groups: Score = %d, want 100", report.Score)
	}

	r.Skills.Tools = []string{"Docker"}
	report := ats.Evaluate(r)
	if report.Score != 90 {
		t.Errorf("four skills: Score = %d, want 90", report.Score)
	}
	if len(report.Suggestions) != 1 || report.Suggestions[0] != "Add more skills (currently 4, need 5+) (+10)." {
		t.Errorf("skill suggestion = %v", report.Suggestions)
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	r := fullResume()
	a := ats.Evaluate(r)
	b := ats.Evaluate(r)
	if a.Score != b.Score || a.Level != b.Level || len(a.Suggestions) != len(b.Suggestions) {
		t.Errorf("repeated evaluation diverged: %+v vs %+v", a, b)
	}
}

func TestLevel(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{100, "Strong Resume"},
		{71, "Strong Resume"},
		{70, "Getting There"},
		{41, "Getting There"},
		{40, "Needs Work"},
		{0, "Needs Work"},
	}
	for _, c := range cases {
		if got := ats.Level(c.score); got != c.want {
			t.Errorf("Level(%d) = %q, want %q", c.score, got, c.want)
		}
	}
}
