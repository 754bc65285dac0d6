// Package model defines the shared data structures for the matcher service.
package model

import "time"

// Job is a normalised job posting as stored in the jobs table and served to clients.
type Job struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Company       string   `json:"company"`
	Location      string   `json:"location"`
	Mode          string   `json:"mode"`       // Remote / Hybrid / Onsite
	Experience    string   `json:"experience"` // e.g. "Fresher", "0-1", "1-3", "3-5"
	Description   string   `json:"description"`
	Skills        []string `json:"skills"`
	SalaryRange   string   `json:"salaryRange"` // free text, e.g. "₹8-12 LPA"
	Source        string   `json:"source"`      // LinkedIn / Naukri / Indeed / …
	ApplyURL      string   `json:"applyUrl"`
	PostedDaysAgo int      `json:"postedDaysAgo"`
}

// ScoredJob is a Job annotated with its match score against the user's
// preferences. The annotation is derived, never stored back into the job row.
type ScoredJob struct {
	Job
	MatchScore int `json:"matchScore"`
}

// Preferences is the user-authored matching criteria record.
// A nil *Preferences means "no preferences configured yet"; every rule then
// contributes zero and the threshold filter is inert.
type Preferences struct {
	RoleKeywords       []string `json:"roleKeywords"`
	PreferredLocations []string `json:"preferredLocations"`
	PreferredModes     []string `json:"preferredModes"`
	ExperienceLevel    string   `json:"experienceLevel"`
	Skills             []string `json:"skills"`
	MinMatchScore      int      `json:"minMatchScore"`
}

// DigestSnapshot is a dated, immutable top-N ranking of scored jobs.
// Jobs is never nil: a generated digest with zero matches carries an empty
// list, which is distinct from "never generated for that date".
type DigestSnapshot struct {
	Date        string      `json:"date"` // YYYY-MM-DD
	GeneratedAt time.Time   `json:"generatedAt"`
	Jobs        []ScoredJob `json:"jobs"`
}

// Empty reports whether the snapshot was generated but matched nothing.
func (d DigestSnapshot) Empty() bool { return len(d.Jobs) == 0 }

// ─── Résumé ──────────────────────────────────────────────────────────────────

// Education is a single education entry on a résumé.
type Education struct {
	School string `json:"school"`
	Degree string `json:"degree"`
	Year   string `json:"year"`
}

// Experience is a single work-experience entry on a résumé.
type Experience struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// Project is a single project entry on a résumé.
type Project struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Link        string   `json:"link"`
	TechStack   []string `json:"techStack"`
}

// SkillGroups buckets résumé skills the way the builder form collects them.
type SkillGroups struct {
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
	Tools     []string `json:"tools"`
}

// Total returns the combined skill count across all groups.
func (s SkillGroups) Total() int {
	return len(s.Technical) + len(s.Soft) + len(s.Tools)
}

// Resume is the full résumé document, stored as one jsonb record per user
// and replaced wholesale on save.
type Resume struct {
	FullName   string       `json:"fullName"`
	Email      string       `json:"email"`
	Phone      string       `json:"phone"`
	Location   string       `json:"location"`
	LinkedIn   string       `json:"linkedin"`
	GitHub     string       `json:"github"`
	Summary    string       `json:"summary"`
	Skills     SkillGroups  `json:"skills"`
	Education  []Education  `json:"education"`
	Experience []Experience `json:"experience"`
	Projects   []Project    `json:"projects"`
}
