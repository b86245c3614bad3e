package memory

import (
	"context"
	"fmt"
	"strings"

	"decisionscan/pkg/models"
)

// Advisor derives insights from a Store and feeds the decision engine's
// confidence and suppression rules.
type Advisor struct {
	store Store
}

// NewAdvisor wraps a store.
func NewAdvisor(store Store) *Advisor {
	return &Advisor{store: store}
}

// Store exposes the backing store.
func (a *Advisor) Store() Store { return a.store }

// Record appends one outcome to the context's history.
func (a *Advisor) Record(ctx context.Context, contextID string, rec models.HistoricalOutcome) error {
	return a.store.Record(ctx, contextID, rec)
}

// Trajectories classifies every blocker observed in the context's history.
func (a *Advisor) Trajectories(contextID string) []models.OutcomeTrajectory {
	history, err := a.store.History(contextID)
	if err != nil || len(history) == 0 {
		return nil
	}
	total := len(history)

	type stat struct {
		count     int
		firstSeen int // index in history, oldest = 0
		lastSeen  int
	}
	stats := map[models.Blocker]*stat{}
	for i, rec := range history {
		s, ok := stats[rec.Outcome.Blocker]
		if !ok {
			s = &stat{firstSeen: i}
			stats[rec.Outcome.Blocker] = s
		}
		s.count++
		s.lastSeen = i
	}

	var out []models.OutcomeTrajectory
	for _, b := range models.AllBlockers {
		s, ok := stats[b]
		if !ok {
			continue
		}
		share := float64(s.count) / float64(total)
		var class models.TrajectoryClass
		switch {
		case share >= 0.7:
			class = models.TrajectoryPersistent
		case share >= 0.4:
			class = models.TrajectoryWeakening
		case total-1-s.lastSeen >= 3:
			class = models.TrajectoryResolved
		case s.firstSeen >= total-2:
			class = models.TrajectoryEmerging
		default:
			class = models.TrajectoryShifting
		}
		out = append(out, models.OutcomeTrajectory{
			Blocker:     b,
			Class:       class,
			Occurrences: s.count,
			Share:       share,
		})
	}
	return out
}

// Fatigue grades repeated exposure to the same cognitive-category blocker:
// high at four repeats, critical at six.
func (a *Advisor) Fatigue(contextID string) models.DecisionFatigueAnalysis {
	history, _ := a.store.History(contextID)

	counts := map[models.Blocker]int{}
	maxCount := 0
	var worst models.Blocker
	for _, rec := range history {
		if rec.Outcome.Category != models.CategoryCognitive {
			continue
		}
		counts[rec.Outcome.Blocker]++
		if counts[rec.Outcome.Blocker] > maxCount {
			maxCount = counts[rec.Outcome.Blocker]
			worst = rec.Outcome.Blocker
		}
	}

	var level models.FatigueLevel
	switch {
	case maxCount >= 6:
		level = models.FatigueCritical
	case maxCount >= 4:
		level = models.FatigueHigh
	case maxCount >= 2:
		level = models.FatigueMedium
	case maxCount == 1:
		level = models.FatigueLow
	default:
		level = models.FatigueNone
	}

	analysis := models.DecisionFatigueAnalysis{Level: level, Indicators: []string{}}
	if maxCount > 0 {
		analysis.Indicators = append(analysis.Indicators,
			fmt.Sprintf("%s diagnosed %d times in this context", worst, maxCount))
	}
	switch level {
	case models.FatigueCritical:
		analysis.Recommendation = "Incremental fixes have stopped working here; a structural redesign of the page is warranted."
	case models.FatigueHigh:
		analysis.Recommendation = "The same cognitive barrier keeps returning; consider restructuring rather than another copy change."
	case models.FatigueMedium:
		analysis.Recommendation = "Watch whether the recurring barrier survives the next change before escalating."
	default:
		analysis.Recommendation = "No recurring cognitive barrier detected."
	}
	return analysis
}

// TrustDynamics reports the trust-category trend by comparing the older
// and newer halves of the history window.
func (a *Advisor) TrustDynamics(contextID string) models.TrustDynamics {
	history, _ := a.store.History(contextID)

	d := models.TrustDynamics{
		Trend:          models.TrustStable,
		Consistency:    models.ConsistencyConsistent,
		Recommendation: "No trust-related history to act on.",
	}
	if len(history) < 2 {
		return d
	}

	mid := len(history) / 2
	older, newer := 0, 0
	totalTrust := 0
	for i, rec := range history {
		if rec.Outcome.Category != models.CategoryTrust {
			continue
		}
		totalTrust++
		if i < mid {
			older++
		} else {
			newer++
		}
	}
	if totalTrust == 0 {
		return d
	}

	switch {
	case newer < older:
		d.Trend = models.TrustImproving
		d.Consistency = models.ConsistencyImproving
		d.Recommendation = "Trust friction is receding; keep the proof placement that produced the improvement."
	case newer > older:
		d.Trend = models.TrustWorsening
		d.Consistency = models.ConsistencyInconsistent
		d.Recommendation = "Trust friction is growing across analyses; audit what reassurance was removed or diluted."
	default:
		d.Trend = models.TrustStable
		d.Consistency = models.ConsistencyConsistent
		d.Recommendation = "Trust friction is steady; it will not resolve without a deliberate intervention."
	}
	return d
}

// Insight assembles the full history roll-up, or nil when the context has
// no prior records.
func (a *Advisor) Insight(contextID string) *models.DecisionHistoryInsight {
	history, err := a.store.History(contextID)
	if err != nil || len(history) == 0 {
		return nil
	}

	trajectories := a.Trajectories(contextID)
	insight := &models.DecisionHistoryInsight{
		WhatFailed:            []string{},
		WhatImproved:          []string{},
		WhatRemainsUnresolved: []string{},
		Fatigue:               a.Fatigue(contextID),
		TrustDynamics:         a.TrustDynamics(contextID),
	}

	var summaryParts []string
	for _, tr := range trajectories {
		name := string(tr.Blocker)
		switch tr.Class {
		case models.TrajectoryPersistent:
			insight.WhatRemainsUnresolved = append(insight.WhatRemainsUnresolved,
				fmt.Sprintf("%s has persisted across %d of %d analyses", name, tr.Occurrences, len(history)))
			summaryParts = append(summaryParts, name+" persistent")
		case models.TrajectoryWeakening:
			insight.WhatImproved = append(insight.WhatImproved, name+" is weakening but not resolved")
			summaryParts = append(summaryParts, name+" weakening")
		case models.TrajectoryResolved:
			insight.WhatImproved = append(insight.WhatImproved, name+" has not recurred recently")
			summaryParts = append(summaryParts, name+" resolved")
		case models.TrajectoryEmerging:
			insight.WhatFailed = append(insight.WhatFailed, name+" appeared in the most recent analyses")
			summaryParts = append(summaryParts, name+" emerging")
		default:
			insight.WhatFailed = append(insight.WhatFailed, name+" appears intermittently")
			summaryParts = append(summaryParts, name+" shifting")
		}
	}
	insight.TrajectorySummary = strings.Join(summaryParts, "; ")
	return insight
}

// AdjustConfidence returns the engine's memory multiplier: 0.9 on sparse
// history, 1.1 when the proposed blocker is a consistent persistent
// pattern, 0.85 when history points elsewhere.
func (a *Advisor) AdjustConfidence(contextID string, proposed models.Blocker) (float64, string) {
	history, err := a.store.History(contextID)
	if err != nil || len(history) == 0 {
		return 1.0, ""
	}
	if len(history) < 3 {
		return 0.9, "sparse history, confidence damped"
	}

	count := 0
	for _, rec := range history {
		if rec.Outcome.Blocker == proposed {
			count++
		}
	}
	share := float64(count) / float64(len(history))
	switch {
	case share >= 0.7:
		return 1.1, fmt.Sprintf("%s is a persistent pattern here (%d of %d analyses)", proposed, count, len(history))
	case count == 0:
		return 0.85, "history names different blockers, confidence damped"
	default:
		return 1.0, ""
	}
}

// SuppressRepeatedFix reports whether the proposed fix is a near-duplicate
// of a fix suggested in the last five records for this context.
func (a *Advisor) SuppressRepeatedFix(contextID string, fix string) bool {
	history, err := a.store.History(contextID)
	if err != nil || len(history) == 0 {
		return false
	}
	window := history
	if len(window) > 5 {
		window = window[len(window)-5:]
	}

	proposed := normalizeFix(fix)
	for _, rec := range window {
		if similarFix(proposed, normalizeFix(rec.Outcome.WhatToChangeFirst)) {
			return true
		}
	}
	return false
}

// normalizeFix lowercases, strips punctuation, and crudely stems each
// token so "rewriting headlines" matches "rewrite the headline".
func normalizeFix(s string) map[string]bool {
	tokens := map[string]bool{}
	for _, w := range strings.Fields(strings.ToLower(s)) {
		w = strings.Trim(w, ".,;:!?'\"()")
		w = stem(w)
		if len(w) < 3 || stopwords[w] {
			continue
		}
		tokens[w] = true
	}
	return tokens
}

// stem strips common suffixes, then a trailing "e", so "rewrite" and
// "rewriting" share the root "rewrit".
func stem(w string) string {
	for _, suffix := range []string{"ing", "tion", "es", "ed", "s"} {
		if strings.HasSuffix(w, suffix) && len(w)-len(suffix) >= 3 {
			w = w[:len(w)-len(suffix)]
			break
		}
	}
	if strings.HasSuffix(w, "e") && len(w) >= 4 {
		w = w[:len(w)-1]
	}
	return w
}

var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "that": true,
	"this": true, "your": true, "into": true, "not": true, "one": true,
}

// similarFix is token-set Jaccard overlap at or above 0.6.
func similarFix(a, b map[string]bool) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	inter := 0
	for t := range a {
		if b[t] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter)/float64(union) >= 0.6
}
