package match

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"jobtrack/matcher-service/internal/model"
)

// Sort keys accepted by Apply. Unknown values leave the input order untouched.
const (
	SortLatest = "latest" // posted days ago, ascending
	SortOldest = "oldest" // posted days ago, descending
	SortScore  = "score"  // match score, descending
	SortSalary = "salary" // first integer in the salary text, descending
)

// FilterAll is the pass-through value for the categorical filters.
const FilterAll = "all"

// Filters holds one round of interactive filter state. Empty or "all" values
// pass everything through for that dimension.
type Filters struct {
	Keyword     string // substring match on title OR company
	Location    string
	Mode        string
	Experience  string
	Source      string
	Status      string // matched against the per-job status map
	MatchesOnly bool   // threshold filter toggle; inert without preferences
	Sort        string
}

// Apply runs the ANDed filter predicates and the selected sort over a scored
// job list. statuses maps job ID to its tracked status; jobs with no entry
// count as StatusNotApplied. The input slice is never reordered or mutated —
// a new slice is returned.
func Apply(jobs []model.ScoredJob, f Filters, prefs *model.Preferences, statuses map[string]string) []model.ScoredJob {
	out := make([]model.ScoredJob, 0, len(jobs))

	for _, job := range jobs {
		if f.MatchesOnly && prefs != nil && job.MatchScore < prefs.MinMatchScore {
			continue
		}
		if f.Keyword != "" {
			kw := strings.ToLower(f.Keyword)
			inTitle := strings.Contains(strings.ToLower(job.Title), kw)
			inCompany := strings.Contains(strings.ToLower(job.Company), kw)
			if !inTitle && !inCompany {
				continue
			}
		}
		if !passCategorical(f.Location, job.Location) ||
			!passCategorical(f.Mode, job.Mode) ||
			!passCategorical(f.Experience, job.Experience) ||
			!passCategorical(f.Source, job.Source) {
			continue
		}
		if f.Status != "" && f.Status != FilterAll {
			st, ok := statuses[job.ID]
			if !ok {
				st = string(model.StatusNotApplied)
			}
			if st != f.Status {
				continue
			}
		}
		out = append(out, job)
	}

	sortJobs(out, f.Sort)
	return out
}

func passCategorical(want, have string) bool {
	return want == "" || want == FilterAll || want == have
}

// sortJobs orders jobs in place by the given key. All sorts are stable:
// equal keys preserve the relative input order.
func sortJobs(jobs []model.ScoredJob, key string) {
	switch key {
	case SortLatest:
		sort.SliceStable(jobs, func(i, j int) bool {
			return jobs[i].PostedDaysAgo < jobs[j].PostedDaysAgo
		})
	case SortOldest:
		sort.SliceStable(jobs, func(i, j int) bool {
			return jobs[i].PostedDaysAgo > jobs[j].PostedDaysAgo
		})
	case SortScore:
		sort.SliceStable(jobs, func(i, j int) bool {
			return jobs[i].MatchScore > jobs[j].MatchScore
		})
	case SortSalary:
		sort.SliceStable(jobs, func(i, j int) bool {
			return ExtractSalary(jobs[i].SalaryRange) > ExtractSalary(jobs[j].SalaryRange)
		})
	}
}

var firstNumber = regexp.MustCompile(`\d+`)

// ExtractSalary pulls the first integer out of a free-text compensation
// string for sorting. Unparsable text (e.g. "Not disclosed") yields 0.
func ExtractSalary(salaryRange string) int {
	m := firstNumber.FindString(salaryRange)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}
