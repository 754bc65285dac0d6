package match_test

import (
	"fmt"
	"testing"
	"time"

	"jobtrack/matcher-service/internal/match"
	"jobtrack/matcher-service/internal/model"
)

func TestBuildDigest_TopTenByScoreThenRecency(t *testing.T) {
	// Twelve qualifying candidates: only the ten best survive, score
	// descending with posted-days-ago breaking ties.
	jobs := make([]model.ScoredJob, 0, 12)
	for i := 0; i < 12; i++ {
		jobs = append(jobs, model.ScoredJob{
			Job:        model.Job{ID: fmt.Sprintf("job-%d", i), PostedDaysAgo: i % 3},
			MatchScore: 10 + i*5,
		})
	}

	snap := match.BuildDigest(jobs, "2026-09-01", time.Now())

	if len(snap.Jobs) != match.DigestSize {
		t.Fatalf("digest has %d jobs, want %d", len(snap.Jobs), match.DigestSize)
	}
	if snap.Jobs[0].ID != "job-11" {
		t.Errorf("top job = %s, want job-11 (highest score)", snap.Jobs[0].ID)
	}
	for i := 1; i < len(snap.Jobs); i++ {
		prev, cur := snap.Jobs[i-1], snap.Jobs[i]
		if cur.MatchScore > prev.MatchScore {
			t.Fatalf("score order broken at %d: %d before %d", i, prev.MatchScore, cur.MatchScore)
		}
	}
}

func TestBuildDigest_TieBreakOnRecency(t *testing.T) {
	jobs := []model.ScoredJob{
		{Job: model.Job{ID: "stale", PostedDaysAgo: 7}, MatchScore: 60},
		{Job: model.Job{ID: "fresh", PostedDaysAgo: 0}, MatchScore: 60},
		{Job: model.Job{ID: "mid", PostedDaysAgo: 3}, MatchScore: 60},
	}
	snap := match.BuildDigest(jobs, "2026-09-01", time.Now())
	want := []string{"fresh", "mid", "stale"}
	for i, id := range want {
		if snap.Jobs[i].ID != id {
			t.Errorf("position %d = %s, want %s", i, snap.Jobs[i].ID, id)
		}
	}
}

func TestBuildDigest_ExcludesZeroScores(t *testing.T) {
	jobs := []model.ScoredJob{
		{Job: model.Job{ID: "hit"}, MatchScore: 5},
		{Job: model.Job{ID: "miss"}, MatchScore: 0},
	}
	snap := match.BuildDigest(jobs, "2026-09-01", time.Now())
	if len(snap.Jobs) != 1 || snap.Jobs[0].ID != "hit" {
		t.Errorf("got %d jobs, want only the scoring one", len(snap.Jobs))
	}
}

func TestBuildDigest_EmptyStillConcrete(t *testing.T) {
	generated := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	snap := match.BuildDigest(nil, "2026-09-01", generated)

	if snap.Jobs == nil {
		t.Fatal("Jobs is nil; an empty digest must still carry a concrete list")
	}
	if !snap.Empty() {
		t.Error("Empty() = false for a zero-job digest")
	}
	if snap.Date != "2026-09-01" || !snap.GeneratedAt.Equal(generated) {
		t.Errorf("snapshot metadata lost: %+v", snap)
	}
}

func TestBuildDigest_Deterministic(t *testing.T) {
	jobs := scoredFixtures()
	a := match.BuildDigest(jobs, "2026-09-01", time.Unix(0, 0))
	b := match.BuildDigest(jobs, "2026-09-01", time.Unix(0, 0))
	if len(a.Jobs) != len(b.Jobs) {
		t.Fatalf("lengths differ: %d vs %d", len(a.Jobs), len(b.Jobs))
	}
	for i := range a.Jobs {
		if a.Jobs[i].ID != b.Jobs[i].ID {
			t.Errorf("position %d differs: %s vs %s", i, a.Jobs[i].ID, b.Jobs[i].ID)
		}
	}
}
