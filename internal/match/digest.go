package match

import (
	"sort"
	"time"

	"jobtrack/matcher-service/internal/model"
)

// DigestSize is the maximum number of jobs in a daily digest.
const DigestSize = 10

// BuildDigest produces the top-N ranking for one calendar day from an
// already-scored job list. Only strictly positive scores qualify; the order
// is score descending with posted-days-ago ascending as the tie-break.
//
// The result is always a concrete snapshot: when nothing qualifies, Jobs is
// an empty (non-nil) list so callers can tell "generated, zero matches" apart
// from "never generated". BuildDigest itself never consults storage — the
// once-per-day rule lives in the digest service that persists its output.
func BuildDigest(jobs []model.ScoredJob, date string, generatedAt time.Time) model.DigestSnapshot {
	qualified := make([]model.ScoredJob, 0, len(jobs))
	for _, job := range jobs {
		if job.MatchScore > 0 {
			qualified = append(qualified, job)
		}
	}

	sort.SliceStable(qualified, func(i, j int) bool {
		if qualified[i].MatchScore != qualified[j].MatchScore {
			return qualified[i].MatchScore > qualified[j].MatchScore
		}
		return qualified[i].PostedDaysAgo < qualified[j].PostedDaysAgo
	})

	if len(qualified) > DigestSize {
		qualified = qualified[:DigestSize]
	}

	return model.DigestSnapshot{
		Date:        date,
		GeneratedAt: generatedAt,
		Jobs:        qualified,
	}
}
