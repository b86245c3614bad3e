package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"decisionscan/pkg/models"
)

func record(b models.Blocker, fix string, at time.Time) models.HistoricalOutcome {
	return models.HistoricalOutcome{
		ContextID: "ctx",
		Outcome: models.DecisionOutcome{
			Blocker:           b,
			Category:          models.CategoryOf(b),
			WhatToChangeFirst: fix,
			Confidence:        60,
		},
		Stage:     models.StageAssessment{Stage: models.StageEvaluation},
		Timestamp: at,
	}
}

func seed(t *testing.T, store Store, blockers ...models.Blocker) {
	t.Helper()
	base := time.Now().Add(-time.Hour)
	for i, b := range blockers {
		if err := store.Record(context.Background(), "ctx", record(b, fmt.Sprintf("fix %d", i), base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
}

func TestRing_Eviction(t *testing.T) {
	ring := NewRing(3)
	seed(t, ring,
		models.BlockerTrustGap, models.BlockerTrustGap,
		models.BlockerOutcomeUnclear, models.BlockerEffortTooHigh)

	history, err := ring.History("ctx")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("len = %d, want ring capped at 3", len(history))
	}
	// Oldest record evicted, order preserved.
	if history[0].Outcome.Blocker != models.BlockerTrustGap ||
		history[2].Outcome.Blocker != models.BlockerEffortTooHigh {
		t.Errorf("unexpected order: %v, %v", history[0].Outcome.Blocker, history[2].Outcome.Blocker)
	}
}

func TestRing_ContextIsolation(t *testing.T) {
	ring := NewRing(10)
	_ = ring.Record(context.Background(), "a", record(models.BlockerTrustGap, "fix", time.Now()))

	history, _ := ring.History("b")
	if len(history) != 0 {
		t.Errorf("context b should be empty, got %d records", len(history))
	}
}

func TestTrajectories_Persistent(t *testing.T) {
	ring := NewRing(50)
	seed(t, ring,
		models.BlockerOutcomeUnclear, models.BlockerOutcomeUnclear,
		models.BlockerOutcomeUnclear, models.BlockerTrustGap,
		models.BlockerOutcomeUnclear)

	trajectories := NewAdvisor(ring).Trajectories("ctx")
	var ou *models.OutcomeTrajectory
	for i := range trajectories {
		if trajectories[i].Blocker == models.BlockerOutcomeUnclear {
			ou = &trajectories[i]
		}
	}
	if ou == nil {
		t.Fatal("Outcome Unclear trajectory missing")
	}
	if ou.Class != models.TrajectoryPersistent {
		t.Errorf("class = %q, want persistent at 80%% share", ou.Class)
	}
	if ou.Occurrences != 4 {
		t.Errorf("occurrences = %d, want 4", ou.Occurrences)
	}
}

func TestTrajectories_Emerging(t *testing.T) {
	ring := NewRing(50)
	seed(t, ring,
		models.BlockerTrustGap, models.BlockerTrustGap, models.BlockerTrustGap,
		models.BlockerTrustGap, models.BlockerTrustGap, models.BlockerTrustGap,
		models.BlockerIdentityMisfit)

	trajectories := NewAdvisor(ring).Trajectories("ctx")
	for _, tr := range trajectories {
		if tr.Blocker == models.BlockerIdentityMisfit && tr.Class != models.TrajectoryEmerging {
			t.Errorf("class = %q, want emerging for first-seen-in-last-2", tr.Class)
		}
	}
}

func TestFatigue_Thresholds(t *testing.T) {
	cases := []struct {
		repeats int
		want    models.FatigueLevel
	}{
		{0, models.FatigueNone},
		{1, models.FatigueLow},
		{2, models.FatigueMedium},
		{4, models.FatigueHigh},
		{6, models.FatigueCritical},
	}
	for _, tc := range cases {
		ring := NewRing(50)
		blockers := make([]models.Blocker, tc.repeats)
		for i := range blockers {
			blockers[i] = models.BlockerOutcomeUnclear
		}
		if len(blockers) > 0 {
			seed(t, ring, blockers...)
		}
		got := NewAdvisor(ring).Fatigue("ctx")
		if got.Level != tc.want {
			t.Errorf("fatigue after %d repeats = %q, want %q", tc.repeats, got.Level, tc.want)
		}
	}
}

func TestFatigue_IgnoresNonCognitive(t *testing.T) {
	ring := NewRing(50)
	seed(t, ring,
		models.BlockerTrustGap, models.BlockerTrustGap,
		models.BlockerTrustGap, models.BlockerTrustGap)

	got := NewAdvisor(ring).Fatigue("ctx")
	if got.Level != models.FatigueNone {
		t.Errorf("trust repeats should not count as cognitive fatigue, got %q", got.Level)
	}
}

func TestTrustDynamics_Worsening(t *testing.T) {
	ring := NewRing(50)
	seed(t, ring,
		models.BlockerOutcomeUnclear, models.BlockerOutcomeUnclear,
		models.BlockerTrustGap, models.BlockerTrustGap)

	d := NewAdvisor(ring).TrustDynamics("ctx")
	if d.Trend != models.TrustWorsening {
		t.Errorf("trend = %q, want worsening", d.Trend)
	}
}

func TestAdjustConfidence_Rules(t *testing.T) {
	adv := NewAdvisor(NewRing(50))

	// No history: neutral.
	if mult, _ := adv.AdjustConfidence("ctx", models.BlockerTrustGap); mult != 1.0 {
		t.Errorf("no history mult = %v, want 1.0", mult)
	}

	// Sparse history: damped.
	seed(t, adv.Store(), models.BlockerTrustGap)
	if mult, _ := adv.AdjustConfidence("ctx", models.BlockerTrustGap); mult != 0.9 {
		t.Errorf("sparse mult = %v, want 0.9", mult)
	}

	// Persistent pattern: boosted.
	seed(t, adv.Store(), models.BlockerTrustGap, models.BlockerTrustGap, models.BlockerTrustGap)
	if mult, note := adv.AdjustConfidence("ctx", models.BlockerTrustGap); mult != 1.1 {
		t.Errorf("persistent mult = %v (%q), want 1.1", mult, note)
	}

	// Conflicting: proposed blocker never seen.
	if mult, _ := adv.AdjustConfidence("ctx", models.BlockerIdentityMisfit); mult != 0.85 {
		t.Errorf("conflicting mult = %v, want 0.85", mult)
	}
}

func TestSuppressRepeatedFix(t *testing.T) {
	ring := NewRing(50)
	adv := NewAdvisor(ring)
	_ = ring.Record(context.Background(), "ctx", record(models.BlockerOutcomeUnclear,
		"Rewrite the headline to name the concrete outcome a first-time visitor gets.", time.Now()))

	if !adv.SuppressRepeatedFix("ctx", "Rewrite the headline to name the concrete outcome a first-time visitor gets.") {
		t.Error("identical fix should be suppressed")
	}
	if !adv.SuppressRepeatedFix("ctx", "Rewriting the headlines to name the concrete outcomes a first-time visitor gets") {
		t.Error("stemmed near-duplicate should be suppressed")
	}
	if adv.SuppressRepeatedFix("ctx", "Shorten the form to the minimum fields needed to start; ask for the rest later.") {
		t.Error("unrelated fix should not be suppressed")
	}
	if adv.SuppressRepeatedFix("other", "Rewrite the headline to name the concrete outcome a first-time visitor gets.") {
		t.Error("suppression is per-context")
	}
}

func TestInsight_NilWithoutHistory(t *testing.T) {
	adv := NewAdvisor(NewRing(50))
	if adv.Insight("ctx") != nil {
		t.Error("insight should be nil with no prior records")
	}
	seed(t, adv.Store(), models.BlockerTrustGap)
	if adv.Insight("ctx") == nil {
		t.Error("insight should exist with one record")
	}
}
