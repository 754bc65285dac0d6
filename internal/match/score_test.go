package match_test

import (
	"testing"

	"jobtrack/matcher-service/internal/match"
	"jobtrack/matcher-service/internal/model"
)

func sampleJob() model.Job {
	return model.Job{
		ID:            "job-1",
		Title:         "Frontend Developer",
		Company:       "Acme",
		Location:      "Bangalore",
		Mode:          "Remote",
		Experience:    "1-3",
		Description:   "We need React experience and strong CSS fundamentals.",
		Skills:        []string{"React", "CSS"},
		SalaryRange:   "₹8-12 LPA",
		Source:        "LinkedIn",
		PostedDaysAgo: 1,
	}
}

// ── Absent preferences ─────────────────────────────────────────────────────

func TestScore_NilPreferences(t *testing.T) {
	if got := match.Score(sampleJob(), nil); got != 0 {
		t.Errorf("Score with nil preferences = %d, want 0", got)
	}
}

func TestScore_EmptyPreferences(t *testing.T) {
	// All list fields empty, no level: only the preference-free rules
	// (freshness, channel) can fire.
	prefs := &model.Preferences{}
	if got := match.Score(sampleJob(), prefs); got != 10 {
		t.Errorf("Score with empty preferences = %d, want 10 (freshness + channel)", got)
	}
}

// ── Rule table ─────────────────────────────────────────────────────────────

func TestScore_TitleKeywordSkillFreshnessChannel(t *testing.T) {
	// Title hit (+25), skill overlap (+15), freshness (+5), LinkedIn (+5).
	// "frontend" does not appear in the description, and no location, mode
	// or level is configured.
	prefs := &model.Preferences{
		RoleKeywords: []string{"frontend"},
		Skills:       []string{"React"},
	}
	if got := match.Score(sampleJob(), prefs); got != 50 {
		t.Errorf("Score = %d, want 50", got)
	}
}

func TestScore_FullMatch(t *testing.T) {
	prefs := &model.Preferences{
		RoleKeywords:       []string{"react", "frontend"}, // title and description hit
		PreferredLocations: []string{"Bangalore"},
		PreferredModes:     []string{"Remote"},
		ExperienceLevel:    "1-3",
		Skills:             []string{"CSS"},
	}
	if got := match.Score(sampleJob(), prefs); got != 100 {
		t.Errorf("Score on full match = %d, want 100", got)
	}
}

func TestScore_IndividualRules(t *testing.T) {
	base := sampleJob()
	base.PostedDaysAgo = 5    // freshness off
	base.Source = "Naukri"    // channel off

	cases := []struct {
		name  string
		prefs model.Preferences
		want  int
	}{
		{"title keyword only", model.Preferences{RoleKeywords: []string{"frontend developer"}}, 25},
		{"description keyword only", model.Preferences{RoleKeywords: []string{"css fundamentals"}}, 15},
		{"location only", model.Preferences{PreferredLocations: []string{"bangalore"}}, 15},
		{"mode only", model.Preferences{PreferredModes: []string{"remote"}}, 10},
		{"level only", model.Preferences{ExperienceLevel: "1-3"}, 10},
		{"skill overlap only", model.Preferences{Skills: []string{" react "}}, 15},
		{"no rule fires", model.Preferences{RoleKeywords: []string{"golang"}, ExperienceLevel: "3-5"}, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := match.Score(base, &c.prefs); got != c.want {
				t.Errorf("Score = %d, want %d", got, c.want)
			}
		})
	}
}

func TestScore_LevelMatchIsExact(t *testing.T) {
	// Unlike the list rules, the experience level compares exactly.
	job := sampleJob()
	prefs := &model.Preferences{ExperienceLevel: "1-3 "}
	job.PostedDaysAgo = 5
	job.Source = "Naukri"
	if got := match.Score(job, prefs); got != 0 {
		t.Errorf("Score with non-exact level = %d, want 0", got)
	}
}

func TestScore_FreshnessBoundary(t *testing.T) {
	job := sampleJob()
	job.Source = "Naukri"

	job.PostedDaysAgo = 2
	if got := match.Score(job, &model.Preferences{}); got != 5 {
		t.Errorf("Score at 2 days = %d, want 5", got)
	}

	job.PostedDaysAgo = 3
	if got := match.Score(job, &model.Preferences{}); got != 0 {
		t.Errorf("Score at 3 days = %d, want 0", got)
	}
}

// ── Set semantics ──────────────────────────────────────────────────────────

func TestScore_KeywordOrderInvariant(t *testing.T) {
	job := sampleJob()
	a := &model.Preferences{
		RoleKeywords: []string{"frontend", "backend", "fullstack"},
		Skills:       []string{"Python", "React", "Go"},
	}
	b := &model.Preferences{
		RoleKeywords: []string{"fullstack", "frontend", "backend"},
		Skills:       []string{"Go", "Python", "React"},
	}
	if match.Score(job, a) != match.Score(job, b) {
		t.Errorf("Score changed under list reordering: %d vs %d",
			match.Score(job, a), match.Score(job, b))
	}
}

func TestScore_CaseAndWhitespaceInsensitive(t *testing.T) {
	job := sampleJob()
	prefs := &model.Preferences{
		RoleKeywords:       []string{"  FRONTEND  "},
		PreferredLocations: []string{" BANGALORE"},
		Skills:             []string{"react "},
	}
	// title +25, location +15, skill +15, freshness +5, channel +5
	if got := match.Score(job, prefs); got != 65 {
		t.Errorf("Score = %d, want 65", got)
	}
}

// ── Bounds ─────────────────────────────────────────────────────────────────

func TestScore_AlwaysWithinBounds(t *testing.T) {
	jobs := []model.Job{
		{}, // zero value
		sampleJob(),
		{Title: "x", Skills: []string{""}, PostedDaysAgo: -1, Source: "LinkedIn"},
	}
	prefsList := []*model.Preferences{
		nil,
		{},
		{RoleKeywords: []string{""}, Skills: []string{"", " "}},
		{RoleKeywords: []string{"x"}, PreferredLocations: []string{""}, PreferredModes: []string{""}},
	}
	for _, job := range jobs {
		for _, prefs := range prefsList {
			got := match.Score(job, prefs)
			if got < 0 || got > 100 {
				t.Errorf("Score(%+v) = %d, out of [0,100]", job, got)
			}
		}
	}
}

// ── Annotate ───────────────────────────────────────────────────────────────

func TestAnnotate_DoesNotMutateInput(t *testing.T) {
	jobs := []model.Job{sampleJob(), {ID: "job-2", Title: "Backend Engineer"}}
	prefs := &model.Preferences{RoleKeywords: []string{"frontend"}}

	scored := match.Annotate(jobs, prefs)

	if len(scored) != len(jobs) {
		t.Fatalf("Annotate returned %d jobs, want %d", len(scored), len(jobs))
	}
	if scored[0].MatchScore == 0 {
		t.Error("expected a positive score for the frontend job")
	}
	if jobs[0].ID != "job-1" || jobs[1].ID != "job-2" {
		t.Error("Annotate mutated the input slice")
	}
}

// ── Band ───────────────────────────────────────────────────────────────────

func TestBand(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{100, "Excellent"},
		{80, "Excellent"},
		{79, "Good"},
		{60, "Good"},
		{59, "Fair"},
		{40, "Fair"},
		{39, "Low"},
		{0, "Low"},
	}
	for _, c := range cases {
		if got := match.Band(c.score); got != c.want {
			t.Errorf("Band(%d) = %q, want %q", c.score, got, c.want)
		}
	}
}
